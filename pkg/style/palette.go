package style

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Deep is the categorical palette shared by every figure.
var Deep = []drawing.Color{
	drawing.ColorFromHex("4C72B0"),
	drawing.ColorFromHex("DD8452"),
	drawing.ColorFromHex("55A868"),
	drawing.ColorFromHex("C44E52"),
	drawing.ColorFromHex("8172B3"),
	drawing.ColorFromHex("937860"),
	drawing.ColorFromHex("DA8BC3"),
}

var (
	Black     = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	White     = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	Gray      = drawing.Color{R: 128, G: 128, B: 128, A: 255}
	LightGray = drawing.Color{R: 221, G: 221, B: 221, A: 255}
)

// Style is the color and marker a backtest is drawn with.
type Style struct {
	Color  drawing.Color
	Marker Marker
}

func (s Style) Hex() string {
	return HexColor(s.Color)
}

func (s Style) String() string {
	return fmt.Sprintf("%s %s", s.Hex(), s.Marker)
}

func HexColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
