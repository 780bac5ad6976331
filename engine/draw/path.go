package draw

import (
	stdmath "math"

	"github.com/spaghettifunk/sketchbook/engine/math"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498307936

// subpath is a flattened polyline in device space.
type subpath struct {
	points []math.Vec2
	closed bool
}

// path accumulates flattened subpaths. Curves are flattened as they are added,
// after the control points have been mapped to device space.
type path struct {
	subpaths []subpath
}

func (p *path) reset() {
	p.subpaths = p.subpaths[:0]
}

func (p *path) empty() bool {
	for _, sp := range p.subpaths {
		if len(sp.points) > 1 {
			return false
		}
	}
	return true
}

func (p *path) current() (math.Vec2, bool) {
	if len(p.subpaths) == 0 {
		return math.Vec2{}, false
	}
	sp := p.subpaths[len(p.subpaths)-1]
	if len(sp.points) == 0 {
		return math.Vec2{}, false
	}
	return sp.points[len(sp.points)-1], true
}

func (p *path) moveTo(pt math.Vec2) {
	p.subpaths = append(p.subpaths, subpath{points: []math.Vec2{pt}})
}

func (p *path) lineTo(pt math.Vec2) {
	if _, ok := p.current(); !ok {
		p.moveTo(pt)
		return
	}
	sp := &p.subpaths[len(p.subpaths)-1]
	sp.points = append(sp.points, pt)
}

func (p *path) quadTo(c, end math.Vec2) {
	start, ok := p.current()
	if !ok {
		p.moveTo(c)
		start = c
	}
	n := segmentsFor(start.Distance(c) + c.Distance(end))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		p.lineTo(math.Vec2{
			X: u*u*start.X + 2*u*t*c.X + t*t*end.X,
			Y: u*u*start.Y + 2*u*t*c.Y + t*t*end.Y,
		})
	}
}

func (p *path) cubicTo(c1, c2, end math.Vec2) {
	start, ok := p.current()
	if !ok {
		p.moveTo(c1)
		start = c1
	}
	n := segmentsFor(start.Distance(c1) + c1.Distance(c2) + c2.Distance(end))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		p.lineTo(math.Vec2{
			X: a*start.X + b*c1.X + c*c2.X + d*end.X,
			Y: a*start.Y + b*c1.Y + c*c2.Y + d*end.Y,
		})
	}
}

// close marks the last subpath closed and starts a new one at its first point.
func (p *path) close() {
	if len(p.subpaths) == 0 {
		return
	}
	sp := &p.subpaths[len(p.subpaths)-1]
	if len(sp.points) == 0 {
		return
	}
	sp.closed = true
	p.moveTo(sp.points[0])
}

// segmentsFor picks a flattening step count from the control polygon length
// in device pixels.
func segmentsFor(length float64) int {
	return math.Clamp(int(stdmath.Ceil(length/2)), 1, 256)
}

// arcSweep normalizes an arc the way a 2D canvas does: clockwise arcs sweep
// forward up to a full turn, counterclockwise arcs sweep backwards.
func arcSweep(start, end float64, counterclockwise bool) float64 {
	sweep := end - start
	if !counterclockwise {
		if sweep >= math.K_PI_2 {
			return math.K_PI_2
		}
		sweep = stdmath.Mod(sweep, math.K_PI_2)
		if sweep < 0 {
			sweep += math.K_PI_2
		}
		return sweep
	}
	if -sweep >= math.K_PI_2 {
		return -math.K_PI_2
	}
	sweep = stdmath.Mod(sweep, math.K_PI_2)
	if sweep > 0 {
		sweep -= math.K_PI_2
	}
	return sweep
}
