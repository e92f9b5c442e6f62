package chart

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

type LegendPosition int

const (
	LegendUpperLeft LegendPosition = iota
	LegendUpperRight
	LegendLowerLeft
	LegendLowerRight

	// LegendBest is resolved by the figure to the corner covering the fewest points.
	LegendBest
)

const (
	legendPadding    = 5
	legendLineLength = 22
	legendGap        = 5
	legendRowSpacing = 3
	legendFontSize   = 8.0
)

// Legend lists the named line series of a canvas with a sample of their line and marker.
type Legend struct {
	Position LegendPosition
	Title    string

	// Rename replaces the label of the entry at the given position.
	Rename map[int]string

	// Columns spreads the entries over several columns, filled row by row.
	Columns int
}

// bestPosition returns the corner whose quadrant holds the fewest of the points, which
// are normalized to the unit square. Ties go to the upper right.
func bestPosition(points [][2]float64) LegendPosition {
	counts := make(map[LegendPosition]int)
	for _, p := range points {
		upper, right := p[1] >= 0.5, p[0] >= 0.5
		switch {
		case upper && right:
			counts[LegendUpperRight]++
		case upper:
			counts[LegendUpperLeft]++
		case right:
			counts[LegendLowerRight]++
		default:
			counts[LegendLowerLeft]++
		}
	}

	best := LegendUpperRight
	for _, pos := range []LegendPosition{LegendUpperLeft, LegendLowerLeft, LegendLowerRight} {
		if counts[pos] < counts[best] {
			best = pos
		}
	}
	return best
}

type legendEntry struct {
	label  string
	series *LineSeries
}

func (l *Legend) entries(series []chart.Series) []legendEntry {
	var entries []legendEntry
	for _, s := range series {
		ls, ok := s.(*LineSeries)
		if !ok || ls.Name == "" {
			continue
		}
		entries = append(entries, legendEntry{label: ls.Name, series: ls})
	}

	for i, label := range l.Rename {
		if i >= 0 && i < len(entries) {
			entries[i].label = label
		}
	}
	return entries
}

func (l *Legend) Renderable(series []chart.Series) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		entries := l.entries(series)
		if len(entries) == 0 && l.Title == "" {
			return
		}

		columns := l.Columns
		if columns < 1 {
			columns = 1
		}
		rows := (len(entries) + columns - 1) / columns

		textStyle := chart.Style{
			Font:      defaults.Font,
			FontSize:  legendFontSize,
			FontColor: style.Black,
		}
		textStyle.GetTextOptions().WriteToRenderer(r)

		// measure
		var rowHeight, titleHeight, titleWidth int
		cellWidths := make([]int, columns)
		for i, e := range entries {
			tb := r.MeasureText(e.label)
			if tb.Height() > rowHeight {
				rowHeight = tb.Height()
			}
			w := legendLineLength + legendGap + tb.Width()
			if w > cellWidths[i%columns] {
				cellWidths[i%columns] = w
			}
		}
		if l.Title != "" {
			tb := r.MeasureText(l.Title)
			titleHeight, titleWidth = tb.Height()+legendRowSpacing, tb.Width()
		}

		contentWidth := 0
		for _, w := range cellWidths {
			contentWidth += w
		}
		contentWidth += (columns - 1) * legendGap * 2
		if titleWidth > contentWidth {
			contentWidth = titleWidth
		}

		width := contentWidth + 2*legendPadding
		height := titleHeight + rows*rowHeight + (rows-1)*legendRowSpacing + 2*legendPadding
		if rows == 0 {
			height = titleHeight + 2*legendPadding
		}

		var box chart.Box
		switch l.Position {
		case LegendUpperRight:
			box = chart.Box{Top: cb.Top + legendPadding, Right: cb.Right - legendPadding}
			box.Left = box.Right - width
			box.Bottom = box.Top + height
		case LegendLowerLeft:
			box = chart.Box{Bottom: cb.Bottom - legendPadding, Left: cb.Left + legendPadding}
			box.Top = box.Bottom - height
			box.Right = box.Left + width
		case LegendLowerRight:
			box = chart.Box{Bottom: cb.Bottom - legendPadding, Right: cb.Right - legendPadding}
			box.Top = box.Bottom - height
			box.Left = box.Right - width
		default:
			box = chart.Box{Top: cb.Top + legendPadding, Left: cb.Left + legendPadding}
			box.Bottom = box.Top + height
			box.Right = box.Left + width
		}

		chart.Draw.Box(r, box, chart.Style{
			FillColor:   drawing.ColorWhite,
			StrokeColor: style.LightGray,
			StrokeWidth: 1,
		})

		textStyle.GetTextOptions().WriteToRenderer(r)
		y := box.Top + legendPadding
		if l.Title != "" {
			r.Text(l.Title, box.Left+(box.Width()-titleWidth)/2, y+titleHeight-legendRowSpacing)
			y += titleHeight
		}

		for i, e := range entries {
			row, col := i/columns, i%columns
			x := box.Left + legendPadding
			for c := 0; c < col; c++ {
				x += cellWidths[c] + legendGap*2
			}
			ty := y + row*(rowHeight+legendRowSpacing) + rowHeight
			ly := ty - rowHeight/2

			s := e.series
			if !s.NoLine {
				r.SetFillColor(drawing.ColorTransparent)
				r.SetStrokeColor(s.Color)
				r.SetStrokeWidth(s.lineWidth())
				r.SetStrokeDashArray(s.dashArray())
				r.MoveTo(x, ly)
				r.LineTo(x+legendLineLength, ly)
				r.Stroke()
			}
			if s.ShowMarkers || s.NoLine {
				drawMarker(r, s.Marker, x+legendLineLength/2, ly, s.markerSize(), s.Color)
			}

			textStyle.GetTextOptions().WriteToRenderer(r)
			r.Text(e.label, x+legendLineLength+legendGap, ty)
		}
	}
}
