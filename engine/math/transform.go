package math

import m "math"

func NewAffineIdentity() Affine {
	return Affine{A: 1, D: 1}
}

func NewAffineTranslation(x, y float64) Affine {
	return Affine{A: 1, D: 1, E: x, F: y}
}

func NewAffineScale(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// NewAffineRotation rotates clockwise on screen (y axis pointing down).
func NewAffineRotation(radians float64) Affine {
	s, c := m.Sincos(radians)
	return Affine{A: c, B: s, C: -s, D: c}
}

// Mul returns a*b: b is applied first, then a.
func (a Affine) Mul(b Affine) Affine {
	return Affine{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate applies a translation before the current transform.
func (a Affine) Translate(x, y float64) Affine {
	return a.Mul(NewAffineTranslation(x, y))
}

// Rotate applies a rotation before the current transform.
func (a Affine) Rotate(radians float64) Affine {
	return a.Mul(NewAffineRotation(radians))
}

// Scale applies a scale before the current transform.
func (a Affine) Scale(sx, sy float64) Affine {
	return a.Mul(NewAffineScale(sx, sy))
}

func (a Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: a.A*p.X + a.C*p.Y + a.E,
		Y: a.B*p.X + a.D*p.Y + a.F,
	}
}

// ApplyVector transforms a direction, ignoring translation.
func (a Affine) ApplyVector(p Vec2) Vec2 {
	return Vec2{X: a.A*p.X + a.C*p.Y, Y: a.B*p.X + a.D*p.Y}
}

func (a Affine) Determinant() float64 {
	return a.A*a.D - a.B*a.C
}

// Inverse returns the inverse transform and false when a is singular.
func (a Affine) Inverse() (Affine, bool) {
	det := a.Determinant()
	if m.Abs(det) < K_FLOAT_EPSILON {
		return Affine{}, false
	}
	inv := 1 / det
	return Affine{
		A: a.D * inv,
		B: -a.B * inv,
		C: -a.C * inv,
		D: a.A * inv,
		E: (a.C*a.F - a.D*a.E) * inv,
		F: (a.B*a.E - a.A*a.F) * inv,
	}, true
}

// ScaleFactor is the mean linear scale, used to size stroke widths.
func (a Affine) ScaleFactor() float64 {
	return m.Sqrt(m.Abs(a.Determinant()))
}

func (a Affine) IsIdentity() bool {
	return a == NewAffineIdentity()
}
