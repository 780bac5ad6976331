package loaders

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/h2non/filetype"

	"github.com/spaghettifunk/sketchbook/engine/core"
)

// Image is a decoded, renderable image handle.
type Image struct {
	Source string
	Format string
	img    image.Image
}

func NewImage(src, format string, img image.Image) *Image {
	return &Image{Source: src, Format: format, img: img}
}

func (i *Image) Width() int {
	return i.img.Bounds().Dx()
}

func (i *Image) Height() int {
	return i.img.Bounds().Dy()
}

// Image returns the pixels backing the handle.
func (i *Image) Image() image.Image {
	return i.img
}

// ImageDecoder turns raw image bytes into a renderable handle.
type ImageDecoder interface {
	Decode(ctx context.Context, src string, data []byte) (*Image, error)
}

// DecoderFunc adapts a plain function to the ImageDecoder interface.
type DecoderFunc func(ctx context.Context, src string, data []byte) (*Image, error)

func (f DecoderFunc) Decode(ctx context.Context, src string, data []byte) (*Image, error) {
	return f(ctx, src, data)
}

// DefaultDecoder decodes PNG and JPEG with the registered image decoders and
// rasterizes SVG documents at their intrinsic size.
type DefaultDecoder struct{}

func (DefaultDecoder) Decode(ctx context.Context, src string, data []byte) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: '%s' is empty", core.ErrDecodeFailed, src)
	}
	if isSVG(src, data) {
		img, err := rasterizeSVG(data)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s': %w", core.ErrDecodeFailed, src, err)
		}
		return NewImage(src, "svg", img), nil
	}

	// Sniff the content so a mislabelled file fails with a useful message.
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("%w: '%s' is not an image (detected %s)", core.ErrDecodeFailed, src, kind.MIME.Value)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", core.ErrDecodeFailed, src, err)
	}
	return NewImage(src, format, img), nil
}

func isSVG(src string, data []byte) bool {
	if strings.HasSuffix(src, ".svg") {
		return true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}
