package draw

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/spaghettifunk/sketchbook/engine/typography"
)

// recorder is a Surface that logs every call.
type recorder struct {
	calls []string
}

func (r *recorder) log(name string, args ...float64) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%g", a)
	}
	r.calls = append(r.calls, name+"("+strings.Join(parts, ",")+")")
}

func (r *recorder) names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c[:strings.IndexByte(c, '(')]
	}
	return out
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.names() {
		if c == name {
			n++
		}
	}
	return n
}

func (r *recorder) BeginPath()          { r.log("BeginPath") }
func (r *recorder) MoveTo(x, y float64) { r.log("MoveTo", x, y) }
func (r *recorder) LineTo(x, y float64) { r.log("LineTo", x, y) }
func (r *recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.log("QuadraticCurveTo", cpx, cpy, x, y)
}
func (r *recorder) BezierCurveTo(a, b, c, d, x, y float64) {
	r.log("BezierCurveTo", a, b, c, d, x, y)
}
func (r *recorder) Arc(cx, cy, radius, start, end float64, ccw bool) {
	r.log("Arc", cx, cy, radius, start, end)
}
func (r *recorder) ClosePath()                    { r.log("ClosePath") }
func (r *recorder) Fill()                         { r.log("Fill") }
func (r *recorder) Stroke()                       { r.log("Stroke") }
func (r *recorder) Save()                         { r.log("Save") }
func (r *recorder) Restore()                      { r.log("Restore") }
func (r *recorder) Translate(x, y float64)        { r.log("Translate", x, y) }
func (r *recorder) Rotate(radians float64)        { r.log("Rotate", radians) }
func (r *recorder) Scale(sx, sy float64)          { r.log("Scale", sx, sy) }
func (r *recorder) SetFillColor(c color.Color)    { r.log("SetFillColor") }
func (r *recorder) SetStrokeColor(c color.Color)  { r.log("SetStrokeColor") }
func (r *recorder) SetLineWidth(width float64)    { r.log("SetLineWidth", width) }
func (r *recorder) SetLineDash(pattern []float64) { r.log("SetLineDash", pattern...) }
func (r *recorder) SetFont(face typography.Face)  { r.log("SetFont") }
func (r *recorder) SetTextAlign(typography.Align) { r.log("SetTextAlign") }
func (r *recorder) SetTextBaseline(typography.Baseline) {
	r.log("SetTextBaseline")
}
func (r *recorder) MeasureText(text string) float64 { return float64(len(text)) }
func (r *recorder) FillText(text string, x, y float64) {
	r.calls = append(r.calls, fmt.Sprintf("FillText(%s,%g,%g)", text, x, y))
}
func (r *recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.log("DrawImage", x, y, w, h)
}

// fixedFace advances every rune by the same width.
type fixedFace struct{}

func (fixedFace) Name() string  { return "fixed" }
func (fixedFace) Size() float64 { return 10 }
func (fixedFace) Metrics() typography.Metrics {
	return typography.Metrics{Ascent: 8, Descent: 2, LineHeight: 12}
}
func (fixedFace) Advance(r rune) float64 { return 6 }
func (fixedFace) Kern(a, b rune) float64 { return 0 }

func filter(calls []string, keep ...string) []string {
	var out []string
	for _, c := range calls {
		for _, k := range keep {
			if strings.HasPrefix(c, k+"(") {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func opaque(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y).A > 200
}

func blank(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y).A == 0
}
