package draw

// Shape builds a custom path vertex by vertex:
//
//	pen.BeginShape().Vertex(0, 0).BezierVertex(10, 0, 20, 10, 20, 20).Close().End()
type Shape struct {
	pen      *Pen
	vertices int
	closed   bool
	ended    bool
}

// BeginShape starts a new path on the pen's surface.
func (p *Pen) BeginShape() *Shape {
	p.surface.BeginPath()
	return &Shape{pen: p}
}

func (s *Shape) Vertex(x, y float64) *Shape {
	if s.vertices == 0 {
		s.pen.surface.MoveTo(x, y)
	} else {
		s.pen.surface.LineTo(x, y)
	}
	s.vertices++
	return s
}

// BezierVertex adds a cubic segment from the last vertex. As the first call
// it only moves to the end point.
func (s *Shape) BezierVertex(c1x, c1y, c2x, c2y, x, y float64) *Shape {
	if s.vertices == 0 {
		return s.Vertex(x, y)
	}
	s.pen.surface.BezierCurveTo(c1x, c1y, c2x, c2y, x, y)
	s.vertices++
	return s
}

// QuadraticVertex adds a quadratic segment from the last vertex.
func (s *Shape) QuadraticVertex(cx, cy, x, y float64) *Shape {
	if s.vertices == 0 {
		return s.Vertex(x, y)
	}
	s.pen.surface.QuadraticCurveTo(cx, cy, x, y)
	s.vertices++
	return s
}

// Contour starts a new subpath inside the same shape, e.g. for holes.
func (s *Shape) Contour(x, y float64) *Shape {
	s.pen.surface.MoveTo(x, y)
	s.vertices++
	return s
}

func (s *Shape) Close() *Shape {
	if s.vertices > 0 {
		s.pen.surface.ClosePath()
		s.closed = true
	}
	return s
}

func (s *Shape) Closed() bool {
	return s.closed
}

// End paints the shape with the pen style. Calling End twice is a no-op.
func (s *Shape) End() {
	if s.ended || s.vertices == 0 {
		s.ended = true
		return
	}
	s.ended = true
	s.pen.style.Apply(s.pen.surface)
	s.pen.paint(s.vertices > 2 || s.closed)
}
