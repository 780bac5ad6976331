package draw

import (
	"image"
	"image/color"

	"github.com/spaghettifunk/sketchbook/engine/typography"
)

// Surface is a stateful 2D canvas. Paths are built in user space and mapped
// through the current transform; Fill and Stroke paint the current path with
// the current colours and line style. Save and Restore push and pop the
// transform together with every paint setting.
type Surface interface {
	// path construction
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	// Arc adds a circular arc, angles in radians measured clockwise from +x.
	Arc(cx, cy, radius, startAngle, endAngle float64, counterclockwise bool)
	ClosePath()

	// paint
	Fill()
	Stroke()

	// state
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(radians float64)
	Scale(sx, sy float64)
	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(width float64)
	SetLineDash(pattern []float64)

	// text
	SetFont(face typography.Face)
	SetTextAlign(align typography.Align)
	SetTextBaseline(baseline typography.Baseline)
	MeasureText(text string) float64
	FillText(text string, x, y float64)

	DrawImage(img image.Image, x, y, w, h float64)
}
