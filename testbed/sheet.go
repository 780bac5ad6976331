package testbed

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	stdmath "math"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/spaghettifunk/sketchbook/engine/assets"
	"github.com/spaghettifunk/sketchbook/engine/draw"
	"github.com/spaghettifunk/sketchbook/engine/math"
	"github.com/spaghettifunk/sketchbook/engine/typography"
)

type SheetOptions struct {
	Columns    int
	Cell       int
	Title      string
	Background color.Color
}

func DefaultSheetOptions() SheetOptions {
	return SheetOptions{
		Columns:    4,
		Cell:       160,
		Title:      "sketchbook",
		Background: draw.MustParseHex("#f4f1ea"),
	}
}

const (
	headerHeight = 64
	captionSize  = 13
	titleSize    = 28
	jsonPreview  = 160
)

var (
	inkColor    = draw.MustParseHex("#2b2b2b")
	accentColor = draw.MustParseHex("#7d56f4")
	failColor   = draw.MustParseHex("#d64545")
)

// RenderSheet draws every stored asset and every recent failure into a grid:
// images as fitted thumbnails, json payloads as text cards.
func RenderSheet(c *assets.Coordinator, opts SheetOptions) (*image.RGBA, error) {
	def := DefaultSheetOptions()
	if opts.Columns <= 0 {
		opts.Columns = def.Columns
	}
	if opts.Cell <= 0 {
		opts.Cell = def.Cell
	}
	if opts.Background == nil {
		opts.Background = def.Background
	}

	caption, err := typography.NewOutlineFace(goregular.TTF, captionSize)
	if err != nil {
		return nil, err
	}
	title, err := caption.WithSize(titleSize)
	if err != nil {
		return nil, err
	}

	var items []assets.Asset
	for _, id := range c.IDs() {
		if a, ok := c.Result(id); ok {
			items = append(items, a)
		}
	}
	failures := c.RecentFailures()

	count := len(items) + len(failures)
	rows := (count + opts.Columns - 1) / opts.Columns
	if rows == 0 {
		rows = 1
	}
	cell := float64(opts.Cell)
	width := opts.Columns * opts.Cell
	height := headerHeight + rows*opts.Cell

	surface := draw.NewRasterSurface(width, height)
	surface.Clear(opts.Background)
	pen := draw.NewPen(surface)

	drawHeader(pen, title, opts.Title, float64(width), len(items), len(failures))

	pen.Style().Face = caption
	for i, a := range items {
		x, y := cellOrigin(i, opts.Columns, cell)
		drawCell(pen, x, y, cell)
		switch a.Kind {
		case assets.KindImage:
			drawThumbnail(pen, a, x, y, cell)
		case assets.KindJSON:
			drawJSONCard(pen, a, x, y, cell)
		}
		drawCaption(pen, a.ID, x, y, cell, inkColor)
	}
	for j, f := range failures {
		x, y := cellOrigin(len(items)+j, opts.Columns, cell)
		drawCell(pen, x, y, cell)
		drawFailure(pen, x, y, cell)
		drawCaption(pen, f.ID, x, y, cell, failColor)
	}
	return surface.Image(), nil
}

func cellOrigin(i, columns int, cell float64) (float64, float64) {
	return float64(i%columns) * cell, headerHeight + float64(i/columns)*cell
}

func drawHeader(pen *draw.Pen, face *typography.OutlineFace, title string, width float64, loaded, failed int) {
	pen.Push()
	defer pen.Pop()

	s := pen.Style()
	s.Face = face
	s.Fill = inkColor
	s.NoStroke = true
	s.Baseline = typography.BaselineMiddle
	pen.Text(title, 16, headerHeight/2)

	s.Face = nil
	s.Fill = accentColor
	s.NoStroke = false
	s.Stroke = accentColor
	s.LineWidth = 2
	pen.Line(16, headerHeight-8, width-16, headerHeight-8)

	summary := fmt.Sprintf("%d loaded", loaded)
	if failed > 0 {
		summary += fmt.Sprintf(" · %d failed", failed)
	}
	caption, err := face.WithSize(captionSize)
	if err != nil {
		return
	}
	s.Face = caption
	s.Fill = inkColor
	s.NoStroke = true
	s.Align = typography.AlignRight
	pen.Text(summary, width-16, headerHeight/2)
}

func drawCell(pen *draw.Pen, x, y, cell float64) {
	pen.Push()
	defer pen.Pop()

	s := pen.Style()
	s.Fill = draw.White
	s.Stroke = draw.Gray(200)
	s.LineWidth = 1
	pen.Rect(x+6, y+6, cell-12, cell-12)
}

// drawThumbnail fits the image into the cell above the caption band,
// keeping its aspect ratio.
func drawThumbnail(pen *draw.Pen, a assets.Asset, x, y, cell float64) {
	if a.Image == nil {
		return
	}
	iw, ih := float64(a.Image.Width()), float64(a.Image.Height())
	if iw == 0 || ih == 0 {
		return
	}
	boxW, boxH := cell-32, cell-48
	scale := stdmath.Min(boxW/iw, boxH/ih)
	w, h := iw*scale, ih*scale
	pen.Image(a.Image.Image(), x+(cell-w)/2, y+16+(boxH-h)/2, w, h)
}

func drawJSONCard(pen *draw.Pen, a assets.Asset, x, y, cell float64) {
	pen.Push()
	defer pen.Pop()

	s := pen.Style()
	s.NoFill = true
	s.Stroke = accentColor
	s.Dash = []float64{4, 3}
	pen.Rect(x+14, y+14, cell-28, cell-50)

	text := strings.Join(strings.Fields(a.Text), " ")
	if runes := []rune(text); len(runes) > jsonPreview {
		text = string(runes[:jsonPreview]) + "…"
	}
	s.NoFill = false
	s.NoStroke = true
	s.Dash = nil
	s.Fill = inkColor
	s.Baseline = typography.BaselineTop
	s.Leading = captionSize + 2
	lines := typography.Wrap(s.Face, text, cell-40)
	maxLines := int((cell - 60) / s.Leading)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	pen.Text(strings.Join(lines, "\n"), x+20, y+20)
}

func drawFailure(pen *draw.Pen, x, y, cell float64) {
	pen.Push()
	defer pen.Pop()

	s := pen.Style()
	s.Stroke = failColor
	s.LineWidth = 4
	cx, cy, r := x+cell/2, y+cell/2-10, cell/5
	pen.Line(cx-r, cy-r, cx+r, cy+r)
	pen.Line(cx-r, cy+r, cx+r, cy-r)

	s.NoFill = true
	s.LineWidth = 2
	pen.Circle(cx, cy, r*2*stdmath.Sqrt2+8)
}

func drawCaption(pen *draw.Pen, id string, x, y, cell float64, ink color.Color) {
	pen.Push()
	defer pen.Pop()

	s := pen.Style()
	s.Fill = ink
	s.NoStroke = true
	s.Align = typography.AlignCenter
	s.Baseline = typography.BaselineBottom
	runes := []rune(id)
	label := id
	for len(runes) > 1 && pen.TextWidth(label) > cell-20 {
		runes = runes[:len(runes)-1]
		label = string(runes) + "…"
	}
	pen.Text(label, x+cell/2, y+cell-14)
}

// DrawBadge stamps a round seal with curved text, used to mark sheets
// rendered in watch mode.
func DrawBadge(img *image.RGBA, text string, center math.Vec2, radius float64) error {
	face, err := typography.NewOutlineFace(goregular.TTF, radius/4)
	if err != nil {
		return err
	}
	pen := draw.NewPen(draw.NewRasterSurfaceFor(img))
	s := pen.Style()
	s.Fill = draw.WithAlpha(accentColor, 0.15)
	s.Stroke = accentColor
	s.LineWidth = 2
	pen.Circle(center.X, center.Y, radius*2)

	s.Face = face
	s.Fill = accentColor
	s.NoStroke = true
	s.Baseline = typography.BaselineMiddle
	pen.TextOnArc(text, center.X, center.Y, radius*0.7, -math.K_HALF_PI)
	return nil
}

// WriteSheet encodes img as PNG at path.
func WriteSheet(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
