package draw

import (
	"image/color"
	"slices"

	"github.com/spaghettifunk/sketchbook/engine/typography"
)

// ShapeMode picks how the first two coordinates of Rect, Ellipse and Arc
// are read.
type ShapeMode int

const (
	// ModeCorner: x, y is the top-left corner.
	ModeCorner ShapeMode = iota
	// ModeCenter: x, y is the center.
	ModeCenter
)

// Style is the paint state a Pen applies before every primitive. Each Pen
// owns its own Style, so several pens can share one surface.
type Style struct {
	Fill      color.Color
	Stroke    color.Color
	NoFill    bool
	NoStroke  bool
	LineWidth float64
	Dash      []float64

	Face     typography.Face
	Align    typography.Align
	Baseline typography.Baseline
	// Leading is the distance between lines of multi-line text. Zero uses the
	// face line height.
	Leading float64

	RectMode    ShapeMode
	EllipseMode ShapeMode
}

func DefaultStyle() Style {
	return Style{
		Fill:        White,
		Stroke:      Black,
		LineWidth:   1,
		RectMode:    ModeCorner,
		EllipseMode: ModeCenter,
	}
}

func (s Style) Clone() Style {
	s.Dash = slices.Clone(s.Dash)
	return s
}

// Apply pushes the paint settings onto a surface.
func (s Style) Apply(surface Surface) {
	if s.Fill != nil {
		surface.SetFillColor(s.Fill)
	}
	if s.Stroke != nil {
		surface.SetStrokeColor(s.Stroke)
	}
	surface.SetLineWidth(s.LineWidth)
	surface.SetLineDash(s.Dash)
	if s.Face != nil {
		surface.SetFont(s.Face)
	}
	surface.SetTextAlign(s.Align)
	surface.SetTextBaseline(s.Baseline)
}

// lineHeight is the advance between lines of text.
func (s Style) lineHeight() float64 {
	if s.Leading > 0 {
		return s.Leading
	}
	if s.Face != nil {
		return s.Face.Metrics().LineHeight
	}
	return 0
}
