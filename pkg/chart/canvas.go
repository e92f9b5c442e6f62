package chart

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

var log = logrus.WithField("component", "chart")

const (
	DefaultWidth  = 480
	DefaultHeight = 320
)

// Canvas is a single figure. Series are drawn in the order they are added.
type Canvas struct {
	chart.Chart

	legend *Legend
}

func NewCanvas(title string, width, height int) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	return &Canvas{
		Chart: chart.Chart{
			Title:      title,
			TitleStyle: chart.Style{Hidden: title == ""},
			Width:      width,
			Height:     height,
			Background: chart.Style{
				Padding: chart.Box{Top: 20, Left: 20, Right: 10, Bottom: 10},
			},
			XAxis: chart.XAxis{
				GridMajorStyle: chart.Hidden(),
				GridMinorStyle: chart.Hidden(),
			},
			YAxis: chart.YAxis{
				GridMajorStyle: chart.Hidden(),
				GridMinorStyle: chart.Hidden(),
			},
		},
	}
}

// SetXAxis sets the x axis name, its range and the ticks. Values outside of the ticks
// extent may be shown by passing a range wider than the first and the last tick.
func (c *Canvas) SetXAxis(name string, r Range, ticks []chart.Tick) {
	c.XAxis.Name = name
	c.XAxis.Range = newTickRange(r, ticks)
}

// SetYAxis sets the y axis; horizontal grid lines are drawn at every tick when grid is set.
func (c *Canvas) SetYAxis(name string, r Range, ticks []chart.Tick, grid bool) {
	c.YAxis.Name = name
	c.YAxis.Range = newTickRange(r, ticks)
	if !grid {
		return
	}

	c.YAxis.GridMajorStyle = chart.Style{StrokeColor: style.LightGray, StrokeWidth: 1}
	c.YAxis.GridLines = nil
	for _, t := range ticks {
		c.YAxis.GridLines = append(c.YAxis.GridLines, chart.GridLine{Value: t.Value})
	}
}

// Add appends series to the canvas.
func (c *Canvas) Add(series ...chart.Series) {
	c.Series = append(c.Series, series...)
}

// SetLegend attaches a legend listing every named LineSeries.
func (c *Canvas) SetLegend(legend *Legend) {
	c.legend = legend
}

func (c *Canvas) Render(w io.Writer) error {
	ch := c.Chart
	if c.legend != nil {
		ch.Elements = append(append([]chart.Renderable(nil), ch.Elements...), c.legend.Renderable(ch.Series))
	}

	if err := ch.Render(chart.SVG, w); err != nil {
		return errors.Wrapf(err, "can not render %q", c.Title)
	}
	return nil
}

// SVG renders the canvas into a byte slice.
func (c *Canvas) SVG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return nil, err
	}

	log.Debugf("rendered %q with %d series (%d bytes)", c.Title, len(c.Series), buf.Len())
	return buf.Bytes(), nil
}
