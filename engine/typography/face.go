package typography

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/spaghettifunk/sketchbook/engine/math"
)

// Metrics are vertical font measurements in pixels.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// Face measures runes at a fixed pixel size.
type Face interface {
	Name() string
	Size() float64
	Metrics() Metrics
	Advance(r rune) float64
	Kern(a, b rune) float64
}

type SegmentOp int

const (
	SegmentMoveTo SegmentOp = iota
	SegmentLineTo
	SegmentQuadTo
	SegmentCubeTo
)

// Segment is one step of a glyph outline. MoveTo and LineTo use Points[0],
// QuadTo uses two points and CubeTo three.
type Segment struct {
	Op     SegmentOp
	Points [3]math.Vec2
}

// OutlineFace is a scalable OpenType/TrueType face. Outlines are in pixels,
// y down, with the origin on the baseline.
type OutlineFace struct {
	name    string
	size    float64
	ppem    fixed.Int26_6
	font    *sfnt.Font
	metrics Metrics

	// sfnt.Buffer is not safe for concurrent use.
	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewOutlineFace parses TTF/OTF data, or the first font of a TTC/OTC collection.
func NewOutlineFace(data []byte, size float64) (*OutlineFace, error) {
	return NewOutlineFaceIndex(data, 0, size)
}

// NewOutlineFaceIndex parses the index-th font of a collection.
func NewOutlineFaceIndex(data []byte, index int, size float64) (*OutlineFace, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", size)
	}
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= c.NumFonts() {
		return nil, fmt.Errorf("font index %d out of range (collection has %d)", index, c.NumFonts())
	}
	f, err := c.Font(index)
	if err != nil {
		return nil, err
	}

	of := &OutlineFace{
		size: size,
		ppem: fixed.Int26_6(size * 64),
		font: f,
	}
	if name, err := f.Name(&of.buf, sfnt.NameIDFamily); err == nil {
		of.name = name
	}
	m, err := f.Metrics(&of.buf, of.ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}
	of.metrics = Metrics{
		Ascent:     fixedToFloat(m.Ascent),
		Descent:    fixedToFloat(m.Descent),
		LineHeight: fixedToFloat(m.Height),
	}
	return of, nil
}

// LoadOutlineFace reads a font file from disk.
func LoadOutlineFace(path string, size float64) (*OutlineFace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewOutlineFace(data, size)
}

// WithSize returns a face sharing the parsed font at another size.
func (of *OutlineFace) WithSize(size float64) (*OutlineFace, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", size)
	}
	nf := &OutlineFace{
		name: of.name,
		size: size,
		ppem: fixed.Int26_6(size * 64),
		font: of.font,
	}
	m, err := nf.font.Metrics(&nf.buf, nf.ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}
	nf.metrics = Metrics{
		Ascent:     fixedToFloat(m.Ascent),
		Descent:    fixedToFloat(m.Descent),
		LineHeight: fixedToFloat(m.Height),
	}
	return nf, nil
}

func (of *OutlineFace) Name() string {
	return of.name
}

func (of *OutlineFace) Size() float64 {
	return of.size
}

func (of *OutlineFace) Metrics() Metrics {
	return of.metrics
}

func (of *OutlineFace) Advance(r rune) float64 {
	of.mu.Lock()
	defer of.mu.Unlock()
	idx, err := of.font.GlyphIndex(&of.buf, r)
	if err != nil {
		return 0
	}
	adv, err := of.font.GlyphAdvance(&of.buf, idx, of.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

func (of *OutlineFace) Kern(a, b rune) float64 {
	of.mu.Lock()
	defer of.mu.Unlock()
	ia, err := of.font.GlyphIndex(&of.buf, a)
	if err != nil {
		return 0
	}
	ib, err := of.font.GlyphIndex(&of.buf, b)
	if err != nil {
		return 0
	}
	k, err := of.font.Kern(&of.buf, ia, ib, of.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// Glyph returns the outline of r. Runes without ink return no segments.
func (of *OutlineFace) Glyph(r rune) ([]Segment, error) {
	of.mu.Lock()
	defer of.mu.Unlock()
	idx, err := of.font.GlyphIndex(&of.buf, r)
	if err != nil {
		return nil, err
	}
	segs, err := of.font.LoadGlyph(&of.buf, idx, of.ppem, nil)
	if err != nil {
		return nil, err
	}
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		seg := Segment{}
		n := 0
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			seg.Op, n = SegmentMoveTo, 1
		case sfnt.SegmentOpLineTo:
			seg.Op, n = SegmentLineTo, 1
		case sfnt.SegmentOpQuadTo:
			seg.Op, n = SegmentQuadTo, 2
		case sfnt.SegmentOpCubeTo:
			seg.Op, n = SegmentCubeTo, 3
		}
		for i := 0; i < n; i++ {
			seg.Points[i] = math.NewVec2(fixedToFloat(s.Args[i].X), fixedToFloat(s.Args[i].Y))
		}
		out = append(out, seg)
	}
	return out, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
