package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/spaghettifunk/sketchbook/engine/assets/loaders"
)

// Loader is the fetch adapter for one kind of asset.
type Loader interface {
	Load(ctx context.Context, d Descriptor) (Asset, error)
}

// ImageLoader fetches binary data and hands it to the image decoder.
type ImageLoader struct {
	Fetcher loaders.Fetcher
	Decoder loaders.ImageDecoder
}

func (il *ImageLoader) Load(ctx context.Context, d Descriptor) (Asset, error) {
	data, err := il.Fetcher.Fetch(ctx, d.Src, loaders.RepresentationBinary)
	if err != nil {
		return Asset{}, err
	}
	img, err := il.Decoder.Decode(ctx, d.Src, data)
	if err != nil {
		return Asset{}, err
	}
	return Asset{
		ID:       d.ID,
		Src:      d.Src,
		Kind:     KindImage,
		Image:    img,
		Size:     len(data),
		LoadedAt: time.Now(),
	}, nil
}

// JSONLoader fetches the raw text payload. The payload is stored as-is.
type JSONLoader struct {
	Fetcher loaders.Fetcher
}

func (jl *JSONLoader) Load(ctx context.Context, d Descriptor) (Asset, error) {
	data, err := jl.Fetcher.Fetch(ctx, d.Src, loaders.RepresentationText)
	if err != nil {
		return Asset{}, err
	}
	return Asset{
		ID:       d.ID,
		Src:      d.Src,
		Kind:     KindJSON,
		Text:     string(data),
		Size:     len(data),
		LoadedAt: time.Now(),
	}, nil
}

// loadWithDeadline returns when the loader finishes or ctx is done, whichever
// comes first. A loader that ignores ctx keeps running in the background.
func loadWithDeadline(ctx context.Context, l Loader, d Descriptor) (Asset, error) {
	type outcome struct {
		asset Asset
		err   error
	}
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("loader panicked: %v", r)}
			}
		}()
		a, err := l.Load(ctx, d)
		ch <- outcome{asset: a, err: err}
	}()

	select {
	case o := <-ch:
		return o.asset, o.err
	case <-ctx.Done():
		return Asset{}, ctx.Err()
	}
}
