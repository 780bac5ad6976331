package draw

import (
	"image"
	"image/color"
	stdmath "math"
	"slices"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/spaghettifunk/sketchbook/engine/math"
	"github.com/spaghettifunk/sketchbook/engine/typography"
)

type rasterState struct {
	transform math.Affine
	fill      color.Color
	stroke    color.Color
	lineWidth float64
	dash      []float64
	face      typography.Face
	align     typography.Align
	baseline  typography.Baseline
}

func (s rasterState) clone() rasterState {
	s.dash = slices.Clone(s.dash)
	return s
}

// RasterSurface is a software Surface drawing into an *image.RGBA.
// It is not safe for concurrent use.
type RasterSurface struct {
	img   *image.RGBA
	state rasterState
	stack []rasterState
	path  path
	z     vector.Rasterizer
}

func NewRasterSurface(width, height int) *RasterSurface {
	return NewRasterSurfaceFor(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewRasterSurfaceFor draws into an existing image.
func NewRasterSurfaceFor(img *image.RGBA) *RasterSurface {
	return &RasterSurface{
		img: img,
		state: rasterState{
			transform: math.NewAffineIdentity(),
			fill:      Black,
			stroke:    Black,
			lineWidth: 1,
		},
	}
}

func (rs *RasterSurface) Image() *image.RGBA {
	return rs.img
}

func (rs *RasterSurface) Bounds() image.Rectangle {
	return rs.img.Bounds()
}

func (rs *RasterSurface) Transform() math.Affine {
	return rs.state.transform
}

// Clear replaces every pixel with c, ignoring the transform.
func (rs *RasterSurface) Clear(c color.Color) {
	xdraw.Draw(rs.img, rs.img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

func (rs *RasterSurface) device(x, y float64) math.Vec2 {
	return rs.state.transform.Apply(math.Vec2{X: x, Y: y})
}

func (rs *RasterSurface) origin() math.Vec2 {
	b := rs.img.Bounds()
	return math.Vec2{X: float64(b.Min.X), Y: float64(b.Min.Y)}
}

func (rs *RasterSurface) BeginPath() {
	rs.path.reset()
}

func (rs *RasterSurface) MoveTo(x, y float64) {
	rs.path.moveTo(rs.device(x, y))
}

func (rs *RasterSurface) LineTo(x, y float64) {
	rs.path.lineTo(rs.device(x, y))
}

func (rs *RasterSurface) QuadraticCurveTo(cpx, cpy, x, y float64) {
	rs.path.quadTo(rs.device(cpx, cpy), rs.device(x, y))
}

func (rs *RasterSurface) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	rs.path.cubicTo(rs.device(cp1x, cp1y), rs.device(cp2x, cp2y), rs.device(x, y))
}

func (rs *RasterSurface) Arc(cx, cy, radius, startAngle, endAngle float64, counterclockwise bool) {
	if radius < 0 || stdmath.IsNaN(radius) {
		return
	}
	sweep := arcSweep(startAngle, endAngle, counterclockwise)
	steps := math.Clamp(int(stdmath.Ceil(stdmath.Abs(sweep)*radius*rs.state.transform.ScaleFactor()/2)), 4, 360)
	for i := 0; i <= steps; i++ {
		a := startAngle + sweep*float64(i)/float64(steps)
		p := rs.device(cx+radius*stdmath.Cos(a), cy+radius*stdmath.Sin(a))
		if i == 0 {
			if _, ok := rs.path.current(); !ok {
				rs.path.moveTo(p)
				continue
			}
		}
		rs.path.lineTo(p)
	}
}

func (rs *RasterSurface) ClosePath() {
	rs.path.close()
}

// Fill paints the interior of every subpath, each implicitly closed.
func (rs *RasterSurface) Fill() {
	if rs.path.empty() {
		return
	}
	b := rs.img.Bounds()
	rs.z.Reset(b.Dx(), b.Dy())
	origin := rs.origin()
	for _, sp := range rs.path.subpaths {
		if len(sp.points) > 2 {
			addPolygon(&rs.z, sp.points, origin)
		}
	}
	rs.z.Draw(rs.img, b, image.NewUniform(rs.state.fill), image.Point{})
}

// Stroke outlines the current path with round joins and caps. Width and
// dashes are scaled by the current transform.
func (rs *RasterSurface) Stroke() {
	if rs.path.empty() {
		return
	}
	scale := rs.state.transform.ScaleFactor()
	width := rs.state.lineWidth * scale
	var dash []float64
	for _, d := range rs.state.dash {
		dash = append(dash, d*scale)
	}

	b := rs.img.Bounds()
	rs.z.Reset(b.Dx(), b.Dy())
	origin := rs.origin()
	for _, sp := range rs.path.subpaths {
		if len(sp.points) < 2 {
			continue
		}
		for _, run := range dashPolyline(sp.polyline(), dash) {
			addStroke(&rs.z, run, width, origin)
		}
	}
	rs.z.Draw(rs.img, b, image.NewUniform(rs.state.stroke), image.Point{})
}

func (rs *RasterSurface) Save() {
	rs.stack = append(rs.stack, rs.state.clone())
}

// Restore pops the last saved state. It does nothing when the stack is empty.
func (rs *RasterSurface) Restore() {
	if len(rs.stack) == 0 {
		return
	}
	rs.state = rs.stack[len(rs.stack)-1]
	rs.stack = rs.stack[:len(rs.stack)-1]
}

func (rs *RasterSurface) Translate(x, y float64) {
	rs.state.transform = rs.state.transform.Translate(x, y)
}

func (rs *RasterSurface) Rotate(radians float64) {
	rs.state.transform = rs.state.transform.Rotate(radians)
}

func (rs *RasterSurface) Scale(sx, sy float64) {
	rs.state.transform = rs.state.transform.Scale(sx, sy)
}

func (rs *RasterSurface) SetFillColor(c color.Color) {
	rs.state.fill = c
}

func (rs *RasterSurface) SetStrokeColor(c color.Color) {
	rs.state.stroke = c
}

// SetLineWidth ignores widths that are not positive finite numbers.
func (rs *RasterSurface) SetLineWidth(width float64) {
	if width <= 0 || stdmath.IsNaN(width) || stdmath.IsInf(width, 0) {
		return
	}
	rs.state.lineWidth = width
}

// SetLineDash ignores patterns with negative entries. An empty or all-zero
// pattern draws solid lines.
func (rs *RasterSurface) SetLineDash(pattern []float64) {
	total := 0.0
	for _, d := range pattern {
		if d < 0 || stdmath.IsNaN(d) || stdmath.IsInf(d, 0) {
			return
		}
		total += d
	}
	if total == 0 {
		rs.state.dash = nil
		return
	}
	rs.state.dash = slices.Clone(pattern)
}

func (rs *RasterSurface) SetFont(face typography.Face) {
	rs.state.face = face
}

func (rs *RasterSurface) SetTextAlign(align typography.Align) {
	rs.state.align = align
}

func (rs *RasterSurface) SetTextBaseline(baseline typography.Baseline) {
	rs.state.baseline = baseline
}

func (rs *RasterSurface) MeasureText(text string) float64 {
	if rs.state.face == nil {
		return 0
	}
	return typography.Measure(rs.state.face, text)
}

// FillText draws a single line with the fill colour. Outline faces are filled
// through their glyph outlines and bitmap faces use their atlas alpha as a
// mask. Without a face nothing is drawn.
func (rs *RasterSurface) FillText(text string, x, y float64) {
	face := rs.state.face
	if face == nil || text == "" {
		return
	}
	x += typography.AlignOffset(typography.Measure(face, text), rs.state.align)
	y += typography.BaselineOffset(face.Metrics(), rs.state.baseline)

	switch f := face.(type) {
	case *typography.OutlineFace:
		rs.fillOutlineText(f, text, x, y)
	case *typography.BitmapFace:
		rs.fillBitmapText(f, text, x, y)
	}
}

func (rs *RasterSurface) fillOutlineText(face *typography.OutlineFace, text string, x, y float64) {
	b := rs.img.Bounds()
	rs.z.Reset(b.Dx(), b.Dy())
	origin := rs.origin()
	pt := func(p math.Vec2, dx float64) (float32, float32) {
		d := rs.device(x+dx+p.X, y+p.Y).Sub(origin)
		return float32(d.X), float32(d.Y)
	}

	pen := 0.0
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			pen += face.Kern(prev, r)
		}
		segs, err := face.Glyph(r)
		if err == nil {
			open := false
			for _, s := range segs {
				switch s.Op {
				case typography.SegmentMoveTo:
					if open {
						rs.z.ClosePath()
					}
					rs.z.MoveTo(pt(s.Points[0], pen))
					open = true
				case typography.SegmentLineTo:
					rs.z.LineTo(pt(s.Points[0], pen))
				case typography.SegmentQuadTo:
					bx, by := pt(s.Points[0], pen)
					cx, cy := pt(s.Points[1], pen)
					rs.z.QuadTo(bx, by, cx, cy)
				case typography.SegmentCubeTo:
					bx, by := pt(s.Points[0], pen)
					cx, cy := pt(s.Points[1], pen)
					dx, dy := pt(s.Points[2], pen)
					rs.z.CubeTo(bx, by, cx, cy, dx, dy)
				}
			}
			if open {
				rs.z.ClosePath()
			}
		}
		pen += face.Advance(r)
		prev = r
	}
	rs.z.Draw(rs.img, b, image.NewUniform(rs.state.fill), image.Point{})
}

func (rs *RasterSurface) fillBitmapText(face *typography.BitmapFace, text string, x, y float64) {
	src := image.NewUniform(rs.state.fill)
	top := y - face.Metrics().Ascent

	pen := 0.0
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			pen += face.Kern(prev, r)
		}
		if g, ok := face.Glyph(r); ok && !g.Rect.Empty() {
			if page, ok := face.Page(g.Page); ok {
				m := rs.state.transform.
					Translate(x+pen+g.XOffset, top+g.YOffset).
					Translate(-float64(g.Rect.Min.X), -float64(g.Rect.Min.Y))
				xdraw.ApproxBiLinear.Transform(rs.img, aff3(m), src, g.Rect, xdraw.Over, &xdraw.Options{
					SrcMask:  page,
					SrcMaskP: g.Rect.Min,
				})
			}
		}
		pen += face.Advance(r)
		prev = r
	}
}

// DrawImage scales img into the user-space rectangle x, y, w, h.
func (rs *RasterSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w == 0 || h == 0 {
		return
	}
	sb := img.Bounds()
	if sb.Empty() {
		return
	}
	m := rs.state.transform.
		Translate(x, y).
		Scale(w/float64(sb.Dx()), h/float64(sb.Dy())).
		Translate(-float64(sb.Min.X), -float64(sb.Min.Y))
	xdraw.ApproxBiLinear.Transform(rs.img, aff3(m), img, sb, xdraw.Over, nil)
}

func aff3(m math.Affine) f64.Aff3 {
	return f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
}
