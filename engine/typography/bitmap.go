package typography

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/fzipp/bmfont"
)

// BitmapGlyph locates a rune inside a page image of a bitmap font.
type BitmapGlyph struct {
	Rect     image.Rectangle
	XOffset  float64
	YOffset  float64
	XAdvance float64
	Page     int
}

// BitmapFace is a fixed-size font rendered from atlas pages (AngelCode .fnt).
type BitmapFace struct {
	name       string
	size       float64
	lineHeight float64
	base       float64
	glyphs     map[rune]BitmapGlyph
	kerning    map[[2]rune]float64
	pages      map[int]image.Image
}

func NewBitmapFace(name string, size, lineHeight, base float64, glyphs map[rune]BitmapGlyph, kerning map[[2]rune]float64, pages map[int]image.Image) *BitmapFace {
	if kerning == nil {
		kerning = make(map[[2]rune]float64)
	}
	if pages == nil {
		pages = make(map[int]image.Image)
	}
	return &BitmapFace{
		name:       name,
		size:       size,
		lineHeight: lineHeight,
		base:       base,
		glyphs:     glyphs,
		kerning:    kerning,
		pages:      pages,
	}
}

// LoadBitmapFace imports a text .fnt descriptor and its page images.
func LoadBitmapFace(path string) (*BitmapFace, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, err
	}
	d := font.Descriptor

	glyphs := make(map[rune]BitmapGlyph, len(d.Chars))
	for r, g := range d.Chars {
		glyphs[rune(r)] = BitmapGlyph{
			Rect:     image.Rect(int(g.X), int(g.Y), int(g.X)+int(g.Width), int(g.Y)+int(g.Height)),
			XOffset:  float64(g.XOffset),
			YOffset:  float64(g.YOffset),
			XAdvance: float64(g.XAdvance),
			Page:     int(g.Page),
		}
	}
	kerning := make(map[[2]rune]float64, len(d.Kerning))
	for p, k := range d.Kerning {
		kerning[[2]rune{rune(p.First), rune(p.Second)}] = float64(k.Amount)
	}

	dir := filepath.Dir(path)
	pages := make(map[int]image.Image, len(d.Pages))
	for _, p := range d.Pages {
		img, err := loadPage(filepath.Join(dir, p.File))
		if err != nil {
			return nil, fmt.Errorf("bitmap font '%s' page %d: %w", path, p.ID, err)
		}
		pages[int(p.ID)] = img
	}

	return NewBitmapFace(d.Info.Face, float64(d.Info.Size), float64(d.Common.LineHeight), float64(d.Common.Base), glyphs, kerning, pages), nil
}

func loadPage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func (bf *BitmapFace) Name() string {
	return bf.name
}

func (bf *BitmapFace) Size() float64 {
	return bf.size
}

// Metrics maps the .fnt base line and line height; Descent is what is left
// of the line below the base.
func (bf *BitmapFace) Metrics() Metrics {
	return Metrics{
		Ascent:     bf.base,
		Descent:    bf.lineHeight - bf.base,
		LineHeight: bf.lineHeight,
	}
}

func (bf *BitmapFace) Advance(r rune) float64 {
	return bf.glyphs[r].XAdvance
}

func (bf *BitmapFace) Kern(a, b rune) float64 {
	return bf.kerning[[2]rune{a, b}]
}

// Glyph returns the atlas entry for r.
func (bf *BitmapFace) Glyph(r rune) (BitmapGlyph, bool) {
	g, ok := bf.glyphs[r]
	return g, ok
}

// Page returns the atlas image with the given id.
func (bf *BitmapFace) Page(id int) (image.Image, bool) {
	img, ok := bf.pages[id]
	return img, ok
}
