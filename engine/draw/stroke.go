package draw

import (
	stdmath "math"

	"golang.org/x/image/vector"

	"github.com/spaghettifunk/sketchbook/engine/math"
)

// polyline returns the subpath as an open polyline, appending the first
// point again when it is closed.
func (sp subpath) polyline() []math.Vec2 {
	if !sp.closed || len(sp.points) < 2 {
		return sp.points
	}
	out := make([]math.Vec2, 0, len(sp.points)+1)
	out = append(out, sp.points...)
	return append(out, sp.points[0])
}

// dashPolyline splits a polyline into the "on" runs of a dash pattern.
// An odd-length pattern repeats twice to make one cycle.
func dashPolyline(points []math.Vec2, pattern []float64) [][]math.Vec2 {
	if len(pattern) == 0 || len(points) < 2 {
		return [][]math.Vec2{points}
	}
	if len(pattern)%2 != 0 {
		pattern = append(append([]float64{}, pattern...), pattern...)
	}
	cycle := 0.0
	for _, l := range pattern {
		cycle += l
	}
	if cycle <= 0 {
		return [][]math.Vec2{points}
	}

	var (
		runs    [][]math.Vec2
		current = []math.Vec2{points[0]}
		idx     int
		left    = pattern[0]
		on      = true
	)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		seg := a.Distance(b)
		pos := 0.0
		for seg-pos > left {
			pos += left
			pt := a.Lerp(b, pos/seg)
			if on {
				current = append(current, pt)
				runs = append(runs, current)
				current = nil
			} else {
				current = []math.Vec2{pt}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
		}
		left -= seg - pos
		if on {
			current = append(current, b)
		}
	}
	if on && len(current) > 1 {
		runs = append(runs, current)
	}
	return runs
}

// addStroke adds the outline of a polyline of the given width to the
// rasterizer: one quad per segment plus a round cap or join at every vertex.
// All pieces share the same winding so overlaps do not cancel.
func addStroke(z *vector.Rasterizer, points []math.Vec2, width float64, origin math.Vec2) {
	hw := width / 2
	if hw <= 0 || len(points) == 0 {
		return
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		dir := b.Sub(a)
		if dir.Length() == 0 {
			continue
		}
		n := dir.Normalized().Perp().MulScalar(hw)
		addPolygon(z, []math.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, origin)
	}
	for _, p := range points {
		addDisc(z, p, hw, origin)
	}
}

// addDisc adds a disc wound the same way as the stroke quads.
func addDisc(z *vector.Rasterizer, c math.Vec2, r float64, origin math.Vec2) {
	n := math.Clamp(int(stdmath.Ceil(r*2)), 8, 64)
	pts := make([]math.Vec2, n)
	for i := range pts {
		a := -math.K_PI_2 * float64(i) / float64(n)
		pts[i] = math.Vec2{X: c.X + r*stdmath.Cos(a), Y: c.Y + r*stdmath.Sin(a)}
	}
	addPolygon(z, pts, origin)
}

func addPolygon(z *vector.Rasterizer, pts []math.Vec2, origin math.Vec2) {
	if len(pts) < 2 {
		return
	}
	for _, p := range pts {
		if stdmath.IsNaN(p.X) || stdmath.IsNaN(p.Y) || stdmath.IsInf(p.X, 0) || stdmath.IsInf(p.Y, 0) {
			return
		}
	}
	z.MoveTo(float32(pts[0].X-origin.X), float32(pts[0].Y-origin.Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-origin.X), float32(p.Y-origin.Y))
	}
	z.ClosePath()
}
