package draw

import (
	"image"
	stdmath "math"
	"strings"

	"github.com/spaghettifunk/sketchbook/engine/math"
	"github.com/spaghettifunk/sketchbook/engine/typography"
)

type ArcMode int

const (
	// ArcOpen fills the chord but strokes only the curve.
	ArcOpen ArcMode = iota
	// ArcChord closes the arc with a straight line.
	ArcChord
	// ArcPie closes the arc through its center.
	ArcPie
)

// Pen draws primitives on a Surface with its own Style. Closed primitives
// are filled then stroked; open ones (Line, Bezier, open Spline) are only
// stroked.
type Pen struct {
	surface Surface
	style   Style
	stack   []Style
}

func NewPen(surface Surface) *Pen {
	return &Pen{surface: surface, style: DefaultStyle()}
}

func (p *Pen) Surface() Surface {
	return p.surface
}

// Style returns the live style; changes apply to the next primitive.
func (p *Pen) Style() *Style {
	return &p.style
}

// Push saves the style and the surface state.
func (p *Pen) Push() {
	p.stack = append(p.stack, p.style.Clone())
	p.surface.Save()
}

// Pop restores what the matching Push saved.
func (p *Pen) Pop() {
	if len(p.stack) == 0 {
		return
	}
	p.style = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.surface.Restore()
}

func (p *Pen) Translate(x, y float64) {
	p.surface.Translate(x, y)
}

func (p *Pen) Rotate(radians float64) {
	p.surface.Rotate(radians)
}

func (p *Pen) Scale(sx, sy float64) {
	p.surface.Scale(sx, sy)
}

func (p *Pen) paint(fill bool) {
	if fill && !p.style.NoFill {
		p.surface.Fill()
	}
	if !p.style.NoStroke {
		p.surface.Stroke()
	}
}

// Point draws a dot of the stroke colour, as wide as the line width.
func (p *Pen) Point(x, y float64) {
	if p.style.NoStroke {
		return
	}
	p.style.Apply(p.surface)
	p.surface.Save()
	p.surface.SetFillColor(p.style.Stroke)
	p.surface.BeginPath()
	p.surface.Arc(x, y, p.style.LineWidth/2, 0, math.K_PI_2, false)
	p.surface.Fill()
	p.surface.Restore()
}

func (p *Pen) Line(x1, y1, x2, y2 float64) {
	p.style.Apply(p.surface)
	p.surface.BeginPath()
	p.surface.MoveTo(x1, y1)
	p.surface.LineTo(x2, y2)
	p.paint(false)
}

func (p *Pen) Rect(x, y, w, h float64) {
	if p.style.RectMode == ModeCenter {
		x, y = x-w/2, y-h/2
	}
	p.style.Apply(p.surface)
	p.surface.BeginPath()
	p.surface.MoveTo(x, y)
	p.surface.LineTo(x+w, y)
	p.surface.LineTo(x+w, y+h)
	p.surface.LineTo(x, y+h)
	p.surface.ClosePath()
	p.paint(true)
}

// Ellipse draws an ellipse of width w and height h.
func (p *Pen) Ellipse(x, y, w, h float64) {
	cx, cy := p.ellipseCenter(x, y, w, h)
	rx, ry := w/2, h/2
	ox, oy := rx*kappa, ry*kappa

	p.style.Apply(p.surface)
	p.surface.BeginPath()
	p.surface.MoveTo(cx+rx, cy)
	p.surface.BezierCurveTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.surface.BezierCurveTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.surface.BezierCurveTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.surface.BezierCurveTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.surface.ClosePath()
	p.paint(true)
}

// Circle draws a circle of diameter d.
func (p *Pen) Circle(x, y, d float64) {
	p.Ellipse(x, y, d, d)
}

// Arc draws part of an ellipse from start to stop, radians clockwise from +x.
func (p *Pen) Arc(x, y, w, h, start, stop float64, mode ArcMode) {
	cx, cy := p.ellipseCenter(x, y, w, h)
	rx, ry := w/2, h/2
	for stop < start {
		stop += math.K_PI_2
	}
	if stop-start > math.K_PI_2 {
		stop = start + math.K_PI_2
	}

	p.style.Apply(p.surface)
	p.surface.BeginPath()
	if mode == ArcPie {
		p.surface.MoveTo(cx, cy)
	}
	ellipseArc(p.surface, cx, cy, rx, ry, start, stop, mode != ArcPie)
	if mode != ArcOpen {
		p.surface.ClosePath()
	}
	p.paint(true)
}

func (p *Pen) ellipseCenter(x, y, w, h float64) (float64, float64) {
	if p.style.EllipseMode == ModeCorner {
		return x + w/2, y + h/2
	}
	return x, y
}

// ellipseArc appends cubic segments of at most a quarter turn each. With
// move set the arc starts a new subpath, otherwise it connects to the
// current point.
func ellipseArc(s Surface, cx, cy, rx, ry, a1, a2 float64, move bool) {
	n := int(stdmath.Ceil((a2 - a1) / math.K_HALF_PI))
	if n < 1 {
		n = 1
	}
	step := (a2 - a1) / float64(n)
	alpha := 4.0 / 3.0 * stdmath.Tan(step/4)

	cos1, sin1 := stdmath.Cos(a1), stdmath.Sin(a1)
	if move {
		s.MoveTo(cx+rx*cos1, cy+ry*sin1)
	} else {
		s.LineTo(cx+rx*cos1, cy+ry*sin1)
	}
	for i := 0; i < n; i++ {
		b := a1 + step*float64(i+1)
		cos2, sin2 := stdmath.Cos(b), stdmath.Sin(b)
		s.BezierCurveTo(
			cx+rx*(cos1-alpha*sin1), cy+ry*(sin1+alpha*cos1),
			cx+rx*(cos2+alpha*sin2), cy+ry*(sin2-alpha*cos2),
			cx+rx*cos2, cy+ry*sin2,
		)
		cos1, sin1 = cos2, sin2
	}
}

// Polygon draws a closed polygon through the points.
func (p *Pen) Polygon(points ...math.Vec2) {
	if len(points) < 2 {
		return
	}
	p.style.Apply(p.surface)
	p.surface.BeginPath()
	p.surface.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.surface.LineTo(pt.X, pt.Y)
	}
	p.surface.ClosePath()
	p.paint(true)
}

// RegularPolygon draws an n-sided polygon inscribed in a circle of radius r.
func (p *Pen) RegularPolygon(n int, cx, cy, r, rotation float64) {
	if n < 3 {
		return
	}
	points := make([]math.Vec2, n)
	step := math.K_PI_2 / float64(n)
	for i := range points {
		a := rotation + step*float64(i)
		points[i] = math.NewVec2(cx+r*stdmath.Cos(a), cy+r*stdmath.Sin(a))
	}
	p.Polygon(points...)
}

// Spline draws a Catmull-Rom curve through every point.
func (p *Pen) Spline(closed bool, points ...math.Vec2) {
	n := len(points)
	if n < 2 {
		return
	}
	at := func(i int) math.Vec2 {
		if closed {
			return points[((i%n)+n)%n]
		}
		return points[math.Clamp(i, 0, n-1)]
	}

	p.style.Apply(p.surface)
	p.surface.BeginPath()
	p.surface.MoveTo(points[0].X, points[0].Y)
	segments := n - 1
	if closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		c1 := p1.Add(p2.Sub(p0).MulScalar(1.0 / 6))
		c2 := p2.Sub(p3.Sub(p1).MulScalar(1.0 / 6))
		p.surface.BezierCurveTo(c1.X, c1.Y, c2.X, c2.Y, p2.X, p2.Y)
	}
	if closed {
		p.surface.ClosePath()
	}
	p.paint(closed)
}

// Bezier draws one cubic curve from p0 to p3.
func (p *Pen) Bezier(p0, c1, c2, p3 math.Vec2) {
	p.style.Apply(p.surface)
	p.surface.BeginPath()
	p.surface.MoveTo(p0.X, p0.Y)
	p.surface.BezierCurveTo(c1.X, c1.Y, c2.X, c2.Y, p3.X, p3.Y)
	p.paint(false)
}

// Text draws text at x, y, one line per '\n', spaced by the style leading.
func (p *Pen) Text(text string, x, y float64) {
	if p.style.Face == nil {
		return
	}
	p.style.Apply(p.surface)
	p.drawLines(strings.Split(text, "\n"), x, y)
}

// TextBox wraps text to width before drawing it.
func (p *Pen) TextBox(text string, x, y, width float64) {
	if p.style.Face == nil {
		return
	}
	p.style.Apply(p.surface)
	p.drawLines(typography.Wrap(p.style.Face, text, width), x, y)
}

func (p *Pen) drawLines(lines []string, x, y float64) {
	lh := p.style.lineHeight()
	for i, line := range lines {
		p.surface.FillText(line, x, y+float64(i)*lh)
	}
}

// TextOnArc lays text along a circle, centered on angle.
func (p *Pen) TextOnArc(text string, cx, cy, radius, angle float64) {
	if p.style.Face == nil {
		return
	}
	p.style.Apply(p.surface)
	for _, pl := range typography.PlaceOnArc(p.style.Face, text, cx, cy, radius, angle) {
		p.surface.Save()
		p.surface.Translate(pl.Position.X, pl.Position.Y)
		p.surface.Rotate(pl.Angle)
		p.surface.SetTextAlign(typography.AlignCenter)
		p.surface.FillText(string(pl.Rune), 0, 0)
		p.surface.Restore()
	}
}

// TextWidth measures text with the pen's face.
func (p *Pen) TextWidth(text string) float64 {
	if p.style.Face == nil {
		return 0
	}
	return typography.Measure(p.style.Face, text)
}

// Image draws img into the rectangle; a zero w or h uses the image's own size.
func (p *Pen) Image(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if w == 0 {
		w = float64(b.Dx())
	}
	if h == 0 {
		h = float64(b.Dy())
	}
	if p.style.RectMode == ModeCenter {
		x, y = x-w/2, y-h/2
	}
	p.surface.DrawImage(img, x, y, w, h)
}
