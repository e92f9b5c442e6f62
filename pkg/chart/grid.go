package chart

import (
	"bytes"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

var (
	PanelBlack = color.RGBA{A: 255}
	PanelGreen = color.RGBA{G: 128, A: 255}
	PanelGray  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// PanelLine is a curve of a panel.
type PanelLine struct {
	X, Y   []float64
	Color  color.Color
	Dashed bool
	Width  float64
}

// PanelText is an annotation at data coordinates.
type PanelText struct {
	X, Y  float64
	Text  string
	Right bool
}

// Panel is one tile of a Grid. NaN limits are derived from the data.
type Panel struct {
	Title  string
	Lines  []PanelLine
	VLines []float64
	Texts  []PanelText

	XMin, XMax float64
	YMin, YMax float64
}

func NewPanel(title string) *Panel {
	return &Panel{
		Title: title,
		XMin:  math.NaN(),
		XMax:  math.NaN(),
		YMin:  math.NaN(),
		YMax:  math.NaN(),
	}
}

// GridOptions sizes the document in inches.
type GridOptions struct {
	Width, Height float64
	FontSize      float64
}

func (p *Panel) plot(fontSize vg.Length) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.Title.TextStyle.Font.Size = fontSize
	pl.X.Tick.Label.Font.Size = fontSize * 0.8
	pl.Y.Tick.Label.Font.Size = fontSize * 0.8

	for _, l := range p.Lines {
		xys := make(plotter.XYs, 0, len(l.X))
		for i := range l.X {
			if math.IsNaN(l.X[i]) || math.IsNaN(l.Y[i]) {
				continue
			}
			xys = append(xys, plotter.XY{X: l.X[i], Y: l.Y[i]})
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "panel %q", p.Title)
		}
		line.Color = l.Color
		line.Width = vg.Points(1)
		if l.Width > 0 {
			line.Width = vg.Points(l.Width)
		}
		if l.Dashed {
			line.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		}
		pl.Add(line)
	}

	// limits are fixed before the vertical lines so they do not widen the data range
	p.limit(pl)

	for _, x := range p.VLines {
		vl, err := plotter.NewLine(plotter.XYs{{X: x, Y: pl.Y.Min}, {X: x, Y: pl.Y.Max}})
		if err != nil {
			return nil, errors.Wrapf(err, "panel %q", p.Title)
		}
		vl.Color = PanelGray
		vl.Width = vg.Points(0.8)
		pl.Add(vl)
	}

	if len(p.Texts) > 0 {
		xyl := plotter.XYLabels{}
		for _, t := range p.Texts {
			xyl.XYs = append(xyl.XYs, plotter.XY{X: t.X, Y: t.Y})
			xyl.Labels = append(xyl.Labels, t.Text)
		}
		labels, err := plotter.NewLabels(xyl)
		if err != nil {
			return nil, errors.Wrapf(err, "panel %q", p.Title)
		}
		for i, t := range p.Texts {
			labels.TextStyle[i].Font.Size = fontSize * 0.75
			if t.Right {
				labels.TextStyle[i].XAlign = draw.XRight
			}
		}
		pl.Add(labels)
	}

	// plotters only ever widen the range; set limits win again
	p.limit(pl)
	return pl, nil
}

func (p *Panel) limit(pl *plot.Plot) {
	if !math.IsNaN(p.XMin) {
		pl.X.Min = p.XMin
	}
	if !math.IsNaN(p.XMax) {
		pl.X.Max = p.XMax
	}
	if !math.IsNaN(p.YMin) {
		pl.Y.Min = p.YMin
	}
	if !math.IsNaN(p.YMax) {
		pl.Y.Max = p.YMax
	}
}

// Grid tiles the panels row by row into a single PDF page.
func Grid(rows [][]*Panel, opts GridOptions) ([]byte, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("grid has no panels")
	}

	if opts.Width <= 0 {
		opts.Width = 6
	}
	if opts.Height <= 0 {
		opts.Height = 5
	}
	fontSize := vg.Points(8)
	if opts.FontSize > 0 {
		fontSize = vg.Points(opts.FontSize)
	}

	cols := len(rows[0])
	plots := make([][]*plot.Plot, len(rows))
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Errorf("grid row %d has %d panels, want %d", i, len(row), cols)
		}

		plots[i] = make([]*plot.Plot, cols)
		for j, panel := range row {
			p, err := panel.plot(fontSize)
			if err != nil {
				return nil, err
			}
			plots[i][j] = p
		}
	}

	img := vgpdf.New(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(rows),
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	var buf bytes.Buffer
	if _, err := img.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "can not write pdf")
	}

	log.Debugf("rendered %dx%d panel grid (%d bytes)", len(rows), cols, buf.Len())
	return buf.Bytes(), nil
}
