package engine

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sketchbook/engine/assets"
	"github.com/spaghettifunk/sketchbook/engine/core"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func writeProject(t *testing.T) (dir string, app *ApplicationConfig) {
	t.Helper()
	dir = t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dot.png"), buf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level.json"), []byte(`{"name":"one"}`), 0o644))

	manifest := `
[[asset]]
id = "dot"
src = "dot.png"

[[asset]]
id = "level"
src = "level.json"

[[asset]]
id = "readme"
src = "README.md"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets.toml"), []byte(manifest), 0o644))

	config := fmt.Sprintf("[preloader]\nworkers = 2\nbase_dir = %q\n\n[log]\nlevel = \"warn\"\n", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sketchbook.toml"), []byte(config), 0o644))

	return dir, &ApplicationConfig{
		Name:         "test",
		ManifestPath: filepath.Join(dir, "assets.toml"),
		ConfigPath:   filepath.Join(dir, "sketchbook.toml"),
	}
}

func TestEngineRunsManifest(t *testing.T) {
	dir, app := writeProject(t)

	var (
		initialized bool
		loaded      []assets.Completion
		shutdown    bool
	)
	g := &Game{
		ApplicationConfig: app,
		FnInitialize: func(c *assets.Coordinator) error {
			initialized = true
			return nil
		},
		FnOnLoaded: func(c *assets.Coordinator, done assets.Completion) error {
			loaded = append(loaded, done)
			a, ok := c.Result("dot")
			require.True(t, ok)
			assert.Equal(t, 3, a.Image.Width())
			return nil
		},
		FnShutdown: func() error {
			shutdown = true
			return nil
		},
	}

	e, err := New(g)
	require.NoError(t, err)
	assert.Equal(t, dir, e.Config().Preloader.BaseDir)
	assert.Equal(t, EngineStageUninitialized, e.Stage())

	require.Error(t, e.Run())
	require.NoError(t, e.Initialize())
	assert.True(t, initialized)
	require.Error(t, e.Initialize())

	require.NoError(t, e.Run())
	require.Len(t, loaded, 1)
	assert.Equal(t, 3, loaded[0].Total)
	assert.Zero(t, loaded[0].Failed)

	_, ok := e.Coordinator().Result("readme")
	assert.False(t, ok)
	level, ok := e.Coordinator().Result("level")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"one"}`, level.Text)

	require.NoError(t, e.Shutdown())
	require.NoError(t, e.Shutdown())
	assert.True(t, shutdown)
	assert.Equal(t, EngineStageShuttingDown, e.Stage())
}

func TestEngineReportsMissingManifest(t *testing.T) {
	_, app := writeProject(t)
	app.ManifestPath = filepath.Join(t.TempDir(), "missing.toml")

	e, err := New(&Game{ApplicationConfig: app})
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	assert.Error(t, e.Run())
	require.NoError(t, e.Shutdown())
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, app := writeProject(t)
	app.LogLevel = "loud"
	_, err = New(&Game{ApplicationConfig: app})
	assert.Error(t, err)
}
