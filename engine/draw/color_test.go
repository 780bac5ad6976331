package draw

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff8000", color.NRGBA{R: 255, G: 128, A: 255}},
		{"abc", color.NRGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}},
		{"#1234", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{"#00000080", color.NRGBA{A: 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "#12345", "#zzzzzz"} {
		_, err := ParseHex(bad)
		assert.Error(t, err, bad)
	}
	assert.Panics(t, func() { MustParseHex("nope") })
}

func TestColorHelpers(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, Lerp(Black, White, 0.5))
	assert.Equal(t, White, Lerp(Black, White, 2))
	assert.Equal(t, Black, Lerp(Black, White, -1))

	assert.Equal(t, color.NRGBA{R: 255, A: 128}, WithAlpha(red, 0.5))
	assert.Equal(t, color.NRGBA{R: 7, G: 7, B: 7, A: 255}, Gray(7))
}
