package loaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/sketchbook/engine/core"
)

// Representation is the form in which the caller wants the payload.
type Representation int

const (
	RepresentationBinary Representation = iota
	RepresentationText
)

func (r Representation) String() string {
	switch r {
	case RepresentationText:
		return "text"
	default:
		return "binary"
	}
}

// Fetcher retrieves the raw payload behind a source locator.
type Fetcher interface {
	Fetch(ctx context.Context, src string, rep Representation) ([]byte, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, src string, rep Representation) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, src string, rep Representation) ([]byte, error) {
	return f(ctx, src, rep)
}

// FileFetcher reads sources from the local file system. Relative sources are
// resolved against Root.
type FileFetcher struct {
	Root string
}

func NewFileFetcher(root string) *FileFetcher {
	return &FileFetcher{Root: root}
}

// Resolve returns the file path a source maps to.
func (ff *FileFetcher) Resolve(src string) string {
	src = strings.TrimPrefix(src, "file://")
	if filepath.IsAbs(src) || ff.Root == "" {
		return filepath.Clean(src)
	}
	return filepath.Join(ff.Root, filepath.FromSlash(src))
}

// Rel maps a file path back to the source string it was resolved from.
// Returns false when path is outside Root.
func (ff *FileFetcher) Rel(path string) (string, bool) {
	root, err := filepath.Abs(ff.Root)
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (ff *FileFetcher) Fetch(ctx context.Context, src string, rep Representation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := ff.Resolve(src)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrFetchFailed, err)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading '%s': %w", core.ErrFetchFailed, path, err)
	}
	return buf, nil
}

// HTTPFetcher downloads sources over HTTP(S).
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	// Responses larger than MaxBytes are rejected. Zero means no limit.
	MaxBytes int64
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		Client:    client,
		UserAgent: "sketchbook-preloader",
	}
}

func (hf *HTTPFetcher) Fetch(ctx context.Context, src string, rep Representation) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrFetchFailed, err)
	}
	if hf.UserAgent != "" {
		req.Header.Set("User-Agent", hf.UserAgent)
	}
	if rep == RepresentationText {
		req.Header.Set("Accept", "application/json, text/plain, */*")
	}

	client := hf.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", core.ErrFetchFailed, src, resp.Status)
	}

	var body io.Reader = resp.Body
	if hf.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, hf.MaxBytes+1)
	}
	buf, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of %s: %w", core.ErrFetchFailed, src, err)
	}
	if hf.MaxBytes > 0 && int64(len(buf)) > hf.MaxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", core.ErrFetchFailed, src, hf.MaxBytes)
	}
	return buf, nil
}

// MuxFetcher routes a source to a fetcher by URL scheme. Sources without a
// scheme, or with a scheme that has no route, go to Default.
type MuxFetcher struct {
	Schemes map[string]Fetcher
	Default Fetcher
}

// NewDefaultFetcher returns a fetcher that reads http(s) URLs over the network
// and everything else from root.
func NewDefaultFetcher(root string) *MuxFetcher {
	hf := NewHTTPFetcher(nil)
	return &MuxFetcher{
		Schemes: map[string]Fetcher{
			"http":  hf,
			"https": hf,
		},
		Default: NewFileFetcher(root),
	}
}

func (mf *MuxFetcher) Fetch(ctx context.Context, src string, rep Representation) ([]byte, error) {
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		if f, ok := mf.Schemes[strings.ToLower(u.Scheme)]; ok {
			return f.Fetch(ctx, src, rep)
		}
	}
	if mf.Default == nil {
		return nil, fmt.Errorf("%w: no fetcher for '%s'", core.ErrFetchFailed, src)
	}
	return mf.Default.Fetch(ctx, src, rep)
}
