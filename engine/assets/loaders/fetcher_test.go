package loaders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sketchbook/engine/core"
)

func TestFileFetcherReadsRelativeToRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "level.json"), []byte(`{"n":1}`), 0o644))

	ff := NewFileFetcher(root)
	buf, err := ff.Fetch(context.Background(), "data/level.json", RepresentationText)
	require.NoError(t, err)
	assert.Equal(t, `{"n":1}`, string(buf))

	_, err = ff.Fetch(context.Background(), "data/missing.json", RepresentationText)
	assert.ErrorIs(t, err, core.ErrFetchFailed)
}

func TestFileFetcherRel(t *testing.T) {
	root := t.TempDir()
	ff := NewFileFetcher(root)

	rel, ok := ff.Rel(filepath.Join(root, "img", "a.png"))
	assert.True(t, ok)
	assert.Equal(t, "img/a.png", rel)

	_, ok = ff.Rel(filepath.Dir(root))
	assert.False(t, ok)
}

func TestFileFetcherHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileFetcher(t.TempDir()).Fetch(ctx, "x.json", RepresentationText)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.json":
			assert.Contains(t, r.Header.Get("Accept"), "application/json")
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/big.bin":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	hf := NewHTTPFetcher(srv.Client())
	buf, err := hf.Fetch(context.Background(), srv.URL+"/ok.json", RepresentationText)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(buf))

	_, err = hf.Fetch(context.Background(), srv.URL+"/missing.png", RepresentationBinary)
	assert.ErrorIs(t, err, core.ErrFetchFailed)

	hf.MaxBytes = 16
	_, err = hf.Fetch(context.Background(), srv.URL+"/big.bin", RepresentationBinary)
	assert.ErrorIs(t, err, core.ErrFetchFailed)
}

func TestMuxFetcherRoutesByScheme(t *testing.T) {
	var got []string
	record := func(name string) Fetcher {
		return FetcherFunc(func(_ context.Context, src string, _ Representation) ([]byte, error) {
			got = append(got, name+":"+src)
			return nil, nil
		})
	}
	mf := &MuxFetcher{
		Schemes: map[string]Fetcher{"https": record("net")},
		Default: record("file"),
	}

	ctx := context.Background()
	_, _ = mf.Fetch(ctx, "https://example.com/a.png", RepresentationBinary)
	_, _ = mf.Fetch(ctx, "img/b.png", RepresentationBinary)
	_, _ = mf.Fetch(ctx, "ftp://example.com/c.png", RepresentationBinary)

	assert.Equal(t, []string{
		"net:https://example.com/a.png",
		"file:img/b.png",
		"file:ftp://example.com/c.png",
	}, got)

	_, err := (&MuxFetcher{}).Fetch(ctx, "x", RepresentationText)
	assert.ErrorIs(t, err, core.ErrFetchFailed)
}
