package typography

import (
	"image"
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

// monoFace advances every rune by the same width and kerns "AV" by -1.
type monoFace struct {
	width float64
}

func (f monoFace) Name() string  { return "mono" }
func (f monoFace) Size() float64 { return 10 }
func (f monoFace) Metrics() Metrics {
	return Metrics{Ascent: 8, Descent: 2, LineHeight: 12}
}
func (f monoFace) Advance(r rune) float64 { return f.width }
func (f monoFace) Kern(a, b rune) float64 {
	if a == 'A' && b == 'V' {
		return -1
	}
	return 0
}

func goRegular(t *testing.T, size float64) *OutlineFace {
	t.Helper()
	face, err := NewOutlineFace(goregular.TTF, size)
	require.NoError(t, err)
	return face
}

func TestOutlineFace(t *testing.T) {
	face := goRegular(t, 32)

	assert.NotEmpty(t, face.Name())
	assert.Equal(t, 32.0, face.Size())

	m := face.Metrics()
	assert.Greater(t, m.Ascent, 0.0)
	assert.Greater(t, m.Descent, 0.0)
	assert.GreaterOrEqual(t, m.LineHeight, m.Ascent)

	assert.Greater(t, face.Advance('W'), face.Advance('i'))
	assert.Equal(t, face.Advance('a')+face.Advance('b')+face.Kern('a', 'b'), Measure(face, "ab"))
}

func TestOutlineFaceWithSize(t *testing.T) {
	small := goRegular(t, 16)
	big, err := small.WithSize(32)
	require.NoError(t, err)

	assert.InDelta(t, 2*small.Advance('M'), big.Advance('M'), 0.1)
	assert.Equal(t, small.Name(), big.Name())

	_, err = small.WithSize(0)
	assert.Error(t, err)
}

func TestOutlineFaceRejectsBadInput(t *testing.T) {
	_, err := NewOutlineFace(goregular.TTF, 0)
	assert.Error(t, err)

	_, err = NewOutlineFace([]byte("not a font"), 12)
	assert.Error(t, err)

	_, err = NewOutlineFaceIndex(goregular.TTF, 3, 12)
	assert.Error(t, err)
}

func TestGlyphOutline(t *testing.T) {
	face := goRegular(t, 32)

	segs, err := face.Glyph('A')
	require.NoError(t, err)
	require.NotEmpty(t, segs)
	assert.Equal(t, SegmentMoveTo, segs[0].Op)

	// Y grows downwards, so the apex of an 'A' sits above the baseline.
	minY := 0.0
	for _, s := range segs {
		if s.Points[0].Y < minY {
			minY = s.Points[0].Y
		}
	}
	assert.Less(t, minY, -10.0)

	space, err := face.Glyph(' ')
	require.NoError(t, err)
	assert.Empty(t, space)
}

func TestBitmapFace(t *testing.T) {
	glyphs := map[rune]BitmapGlyph{
		'a': {Rect: image.Rect(0, 0, 6, 8), XAdvance: 7},
		'b': {Rect: image.Rect(6, 0, 12, 8), XAdvance: 7, Page: 1},
	}
	kerning := map[[2]rune]float64{{'a', 'b'}: -2}
	page := image.NewRGBA(image.Rect(0, 0, 16, 16))
	face := NewBitmapFace("pixel", 8, 10, 8, glyphs, kerning, map[int]image.Image{1: page})

	assert.Equal(t, "pixel", face.Name())
	assert.Equal(t, Metrics{Ascent: 8, Descent: 2, LineHeight: 10}, face.Metrics())
	assert.Equal(t, 12.0, Measure(face, "ab"))
	assert.Equal(t, 0.0, face.Advance('z'))

	g, ok := face.Glyph('b')
	require.True(t, ok)
	assert.Equal(t, 1, g.Page)

	img, ok := face.Page(g.Page)
	require.True(t, ok)
	assert.Same(t, page, img)

	_, ok = face.Page(0)
	assert.False(t, ok)
}

func TestLoadBitmapFaceMissingFile(t *testing.T) {
	_, err := LoadBitmapFace("testdata/missing.fnt")
	assert.Error(t, err)
}

func TestMeasure(t *testing.T) {
	face := monoFace{width: 5}

	assert.Equal(t, 0.0, Measure(face, ""))
	assert.Equal(t, 15.0, Measure(face, "abc"))
	assert.Equal(t, 9.0, Measure(face, "AV"))
	assert.Equal(t, 20.0, Measure(face, "ab\nabcd\nc"))
}

func TestWrap(t *testing.T) {
	face := monoFace{width: 1}

	assert.Equal(t, []string{"the quick", "brown fox"}, Wrap(face, "the quick brown fox", 9))
	assert.Equal(t, []string{"a", "enormousword", "b"}, Wrap(face, "a enormousword b", 5))
	assert.Equal(t, []string{"one", "", "two"}, Wrap(face, "one\n\ntwo", 100))
	assert.Equal(t, []string{"no limit at all"}, Wrap(face, "no limit at all", 0))
}

func TestAlignAndBaseline(t *testing.T) {
	assert.Equal(t, 0.0, AlignOffset(40, AlignLeft))
	assert.Equal(t, -20.0, AlignOffset(40, AlignCenter))
	assert.Equal(t, -40.0, AlignOffset(40, AlignRight))

	m := Metrics{Ascent: 8, Descent: 2, LineHeight: 12}
	assert.Equal(t, 0.0, BaselineOffset(m, BaselineAlphabetic))
	assert.Equal(t, 8.0, BaselineOffset(m, BaselineTop))
	assert.Equal(t, 3.0, BaselineOffset(m, BaselineMiddle))
	assert.Equal(t, -2.0, BaselineOffset(m, BaselineBottom))
}

func TestPlaceOnArc(t *testing.T) {
	face := monoFace{width: 10}
	const radius = 100.0

	placements := PlaceOnArc(face, "arc", 50, 50, radius, -stdmath.Pi/2)
	require.Len(t, placements, 3)

	for i, p := range placements {
		assert.Equal(t, rune("arc"[i]), p.Rune)
		dx, dy := p.Position.X-50, p.Position.Y-50
		assert.InDelta(t, radius, stdmath.Hypot(dx, dy), 1e-9)
		if i > 0 {
			assert.Greater(t, p.Angle, placements[i-1].Angle)
		}
	}

	// The middle rune sits exactly at the top of the circle, upright.
	mid := placements[1]
	assert.InDelta(t, 50, mid.Position.X, 1e-9)
	assert.InDelta(t, -50, mid.Position.Y, 1e-9)
	assert.InDelta(t, 0, mid.Angle, 1e-9)

	assert.Nil(t, PlaceOnArc(face, "arc", 0, 0, 0, 0))
	assert.Empty(t, PlaceOnArc(face, "", 0, 0, 10, 0))
}
