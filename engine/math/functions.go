package math

import (
	m "math"

	"golang.org/x/exp/rand"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float64 = m.Pi
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float64 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float64 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float64 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float64 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + K_FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float64 = 1.192092896e-07
)

func DegToRad(degrees float64) float64 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float64) float64 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// Lerp interpolates between a and b; t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Map re-maps value from the range [inMin, inMax] onto [outMin, outMax].
func Map(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (value-inMin)*(outMax-outMin)/(inMax-inMin)
}

// NormalizeAngle wraps radians into [0, 2π).
func NormalizeAngle(radians float64) float64 {
	a := m.Mod(radians, K_PI_2)
	if a < 0 {
		a += K_PI_2
	}
	return a
}

var rng = rand.New(rand.NewSource(1))

// Seed resets the generator used by Random and RandomInRange.
func Seed(seed uint64) {
	rng.Seed(seed)
}

// Random returns a float in [0, 1).
func Random() float64 {
	return rng.Float64()
}

func RandomInRange(min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func NewVec2Zero() Vec2 {
	return Vec2{}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) MulScalar(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Length() float64 {
	return m.Hypot(v.X, v.Y)
}

// Normalized returns a unit vector in the same direction, or the zero vector.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Perp returns v rotated 90 degrees clockwise in a y-down system.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(v.X, other.X, t), Y: Lerp(v.Y, other.Y, t)}
}

func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

/**
 * @brief Compares all elements of vector_0 and vector_1 and ensures the difference
 * is less than tolerance.
 */
func (v Vec2) Compare(other Vec2, tolerance float64) bool {
	return m.Abs(v.X-other.X) <= tolerance && m.Abs(v.Y-other.Y) <= tolerance
}

// Extend grows the extents to include p.
func (e Extents2D) Extend(p Vec2) Extents2D {
	return Extents2D{
		Min: Vec2{X: m.Min(e.Min.X, p.X), Y: m.Min(e.Min.Y, p.Y)},
		Max: Vec2{X: m.Max(e.Max.X, p.X), Y: m.Max(e.Max.Y, p.Y)},
	}
}
