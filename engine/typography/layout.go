package typography

import (
	stdmath "math"
	"strings"

	"github.com/spaghettifunk/sketchbook/engine/math"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

// Placement positions one rune of curved text.
type Placement struct {
	Rune     rune
	Position math.Vec2
	// Angle is the rotation of the glyph, in radians.
	Angle float64
	Width float64
}

// Measure returns the advance width of the widest line of text, kerning included.
func Measure(face Face, text string) float64 {
	widest := 0.0
	for _, line := range strings.Split(text, "\n") {
		if w := measureLine(face, line); w > widest {
			widest = w
		}
	}
	return widest
}

func measureLine(face Face, line string) float64 {
	w := 0.0
	prev := rune(-1)
	for _, r := range line {
		if prev >= 0 {
			w += face.Kern(prev, r)
		}
		w += face.Advance(r)
		prev = r
	}
	return w
}

// Wrap breaks text into lines no wider than maxWidth, splitting on spaces.
// A single word wider than maxWidth gets a line of its own. Explicit
// newlines are kept.
func Wrap(face Face, text string, maxWidth float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if maxWidth > 0 && measureLine(face, candidate) > maxWidth {
				lines = append(lines, current)
				current = w
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}

// AlignOffset is the horizontal shift applied to a line of the given width
// so that the anchor x lands on its left edge, center or right edge.
func AlignOffset(width float64, align Align) float64 {
	switch align {
	case AlignCenter:
		return -width / 2
	case AlignRight:
		return -width
	default:
		return 0
	}
}

// BaselineOffset is the vertical shift from the anchor y to the alphabetic
// baseline. Y grows downwards.
func BaselineOffset(m Metrics, baseline Baseline) float64 {
	switch baseline {
	case BaselineTop:
		return m.Ascent
	case BaselineMiddle:
		return (m.Ascent - m.Descent) / 2
	case BaselineBottom:
		return -m.Descent
	default:
		return 0
	}
}

// PlaceOnArc lays text along a circle of the given radius, centered on
// startAngle (radians, clockwise from +x since y grows downwards). Each rune
// sits at the arc point under its horizontal center, rotated tangent to the
// circle so the glyph tops face outwards.
func PlaceOnArc(face Face, text string, cx, cy, radius, startAngle float64) []Placement {
	if radius <= 0 {
		return nil
	}
	runes := []rune(text)
	placements := make([]Placement, 0, len(runes))

	total := measureLine(face, text)
	angle := startAngle - total/radius/2
	for i, r := range runes {
		w := face.Advance(r)
		mid := angle + (w/2)/radius
		placements = append(placements, Placement{
			Rune:     r,
			Position: math.NewVec2(cx+radius*stdmath.Cos(mid), cy+radius*stdmath.Sin(mid)),
			Angle:    mid + math.K_HALF_PI,
			Width:    w,
		})
		angle += w / radius
		if i+1 < len(runes) {
			angle += face.Kern(r, runes[i+1]) / radius
		}
	}
	return placements
}
