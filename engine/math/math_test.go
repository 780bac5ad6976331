package math

import (
	m "math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertVec(t *testing.T, want, got Vec2) {
	t.Helper()
	assert.True(t, want.Compare(got, tol), "want %v, got %v", want, got)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(30, 0, 10))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
	assert.Equal(t, uint8(255), Clamp(uint8(255), 0, 255))
}

func TestMapAndLerp(t *testing.T) {
	assert.Equal(t, 50.0, Map(5, 0, 10, 0, 100))
	assert.Equal(t, 1.0, Map(3, 2, 2, 1, 9))
	assert.Equal(t, 2.5, Lerp(0, 10, 0.25))
	assert.InDelta(t, K_PI, DegToRad(180), tol)
	assert.InDelta(t, 90.0, RadToDeg(K_HALF_PI), tol)
	assert.InDelta(t, K_HALF_PI, NormalizeAngle(-3*K_HALF_PI), tol)
}

func TestRandomInRange(t *testing.T) {
	Seed(7)
	for i := 0; i < 100; i++ {
		v := RandomInRange(2, 3)
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestVec2(t *testing.T) {
	v := NewVec2(3, 4)
	assert.Equal(t, 5.0, v.Length())
	assertVec(t, NewVec2(0.6, 0.8), v.Normalized())
	assertVec(t, NewVec2Zero(), NewVec2Zero().Normalized())
	assertVec(t, NewVec2(-4, 3), v.Perp())
	assert.Equal(t, 5.0, NewVec2Zero().Distance(v))
	assertVec(t, NewVec2(1.5, 2), v.Lerp(NewVec2Zero(), 0.5))

	e := Extents2D{Min: v, Max: v}.Extend(NewVec2(-1, 10))
	assertVec(t, NewVec2(-1, 4), e.Min)
	assertVec(t, NewVec2(3, 10), e.Max)
}

func TestAffine(t *testing.T) {
	vx := NewVec2(1, 0)

	assertVec(t, vx, NewAffineIdentity().Apply(vx))
	assertVec(t, NewVec2(0, 1), NewAffineRotation(K_HALF_PI).Apply(vx))

	// 1,0 -> scale(2) = 2,0 -> rotate 90 = 0,2 -> translate 1,1 -> 1,3
	tr := NewAffineIdentity().Translate(1, 1).Rotate(K_HALF_PI).Scale(2, 2)
	assertVec(t, NewVec2(1, 3), tr.Apply(vx))
	assert.InDelta(t, 2.0, tr.ScaleFactor(), tol)
	assertVec(t, NewVec2(0, 2), tr.ApplyVector(vx))

	inv, ok := tr.Inverse()
	assert.True(t, ok)
	assertVec(t, vx, inv.Apply(tr.Apply(vx)))

	_, ok = NewAffineScale(0, 1).Inverse()
	assert.False(t, ok)
	assert.True(t, NewAffineIdentity().IsIdentity())
	assert.False(t, tr.IsIdentity())
	assert.InDelta(t, m.Sqrt2, NewAffineScale(2, 1).ScaleFactor(), tol)
}
