package style

// Marker is the glyph drawn at the marked points of a line.
type Marker int

const (
	MarkerCircle Marker = iota
	MarkerSquare
	MarkerDiamond
	MarkerPlus
	MarkerTriangleLeft
	MarkerTriangleRight
	MarkerTriangleUp
	MarkerTriangleDown
)

var markerNames = map[Marker]string{
	MarkerCircle:        "circle",
	MarkerSquare:        "square",
	MarkerDiamond:       "diamond",
	MarkerPlus:          "plus",
	MarkerTriangleLeft:  "triangle-left",
	MarkerTriangleRight: "triangle-right",
	MarkerTriangleUp:    "triangle-up",
	MarkerTriangleDown:  "triangle-down",
}

func (m Marker) String() string {
	if s, ok := markerNames[m]; ok {
		return s
	}
	return "unknown"
}

const plusArm = 0.35

// Vertices returns the outline of the marker in unit coordinates with the y axis
// pointing up. A circle has no outline and returns nil.
func (m Marker) Vertices() [][2]float64 {
	switch m {
	case MarkerSquare:
		return [][2]float64{{-0.75, -0.75}, {0.75, -0.75}, {0.75, 0.75}, {-0.75, 0.75}}
	case MarkerDiamond:
		return [][2]float64{{0, 1}, {0.7, 0}, {0, -1}, {-0.7, 0}}
	case MarkerPlus:
		w := plusArm
		return [][2]float64{
			{-w, 1}, {w, 1}, {w, w}, {1, w}, {1, -w}, {w, -w},
			{w, -1}, {-w, -1}, {-w, -w}, {-1, -w}, {-1, w}, {-w, w},
		}
	case MarkerTriangleLeft:
		return [][2]float64{{-1, 0}, {0.7, 0.9}, {0.7, -0.9}}
	case MarkerTriangleRight:
		return [][2]float64{{1, 0}, {-0.7, 0.9}, {-0.7, -0.9}}
	case MarkerTriangleUp:
		return [][2]float64{{0, 1}, {0.9, -0.7}, {-0.9, -0.7}}
	case MarkerTriangleDown:
		return [][2]float64{{0, -1}, {0.9, 0.7}, {-0.9, 0.7}}
	}
	return nil
}
