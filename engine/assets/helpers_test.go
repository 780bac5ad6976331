package assets

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sketchbook/engine/assets/loaders"
	"github.com/spaghettifunk/sketchbook/engine/core"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

// gatedFetcher blocks every fetch until its source is released.
type gatedFetcher struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	fail  map[string]error
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{
		gates: make(map[string]chan struct{}),
		fail:  make(map[string]error),
	}
}

func (g *gatedFetcher) gate(src string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[src]
	if !ok {
		ch = make(chan struct{})
		g.gates[src] = ch
	}
	return ch
}

func (g *gatedFetcher) release(src string) {
	close(g.gate(src))
}

func (g *gatedFetcher) Fetch(ctx context.Context, src string, rep loaders.Representation) ([]byte, error) {
	select {
	case <-g.gate(src):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	g.mu.Lock()
	err := g.fail[src]
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return []byte("payload:" + src), nil
}

// instantFetcher answers immediately with a payload derived from src.
var instantFetcher = loaders.FetcherFunc(func(_ context.Context, src string, _ loaders.Representation) ([]byte, error) {
	return []byte("payload:" + src), nil
})

// fakeDecoder produces an image whose width is the payload length.
var fakeDecoder = loaders.DecoderFunc(func(_ context.Context, src string, data []byte) (*loaders.Image, error) {
	return loaders.NewImage(src, "fake", image.NewRGBA(image.Rect(0, 0, len(data), 1))), nil
})

func newTestCoordinator(t *testing.T, workers int, timeout string, opts ...Option) *Coordinator {
	t.Helper()
	if timeout == "" {
		timeout = "0"
	}
	c, err := NewCoordinator(core.PreloaderConfig{
		Workers:     workers,
		QueueSize:   workers,
		ItemTimeout: timeout,
		BaseDir:     t.TempDir(),
	}, append([]Option{WithDecoder(fakeDecoder)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// recorder collects observer events.
type recorder struct {
	mu          sync.Mutex
	progress    []Progress
	completions []Completion
	progressCh  chan Progress
}

func newRecorder(c *Coordinator) *recorder {
	r := &recorder{progressCh: make(chan Progress, 1024)}
	c.OnProgress(func(p Progress) {
		r.mu.Lock()
		r.progress = append(r.progress, p)
		r.mu.Unlock()
		r.progressCh <- p
	})
	c.OnComplete(func(cm Completion) {
		r.mu.Lock()
		r.completions = append(r.completions, cm)
		r.mu.Unlock()
	})
	return r
}

func (r *recorder) snapshot() ([]Progress, []Completion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Progress(nil), r.progress...), append([]Completion(nil), r.completions...)
}

func (r *recorder) waitProgress(t *testing.T) Progress {
	t.Helper()
	select {
	case p := <-r.progressCh:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for progress")
		return Progress{}
	}
}

func waitBatch(t *testing.T, b *Batch) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	select {
	case <-b.Done():
	case <-ctx.Done():
		t.Fatalf("batch %s did not complete: %d/%d", b.ID(), b.Loaded(), b.Total())
	}
}

func descriptors(n int, ext string) []Descriptor {
	out := make([]Descriptor, n)
	for i := range out {
		out[i] = Descriptor{ID: fmt.Sprintf("asset-%02d", i), Src: fmt.Sprintf("dir/file-%02d.%s", i, ext)}
	}
	return out
}
