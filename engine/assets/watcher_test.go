package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sketchbook/engine/core"
)

func TestWatchReloadsChangedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))
	path := filepath.Join(root, "data", "level.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"v":1}`), 0o644))

	c, err := NewCoordinator(core.PreloaderConfig{Workers: 2, BaseDir: root})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	b, err := c.Register(context.Background(), []Descriptor{{ID: "level", Src: "data/level.json"}})
	require.NoError(t, err)
	require.NoError(t, b.Wait(context.Background()))

	a, ok := c.Result("level")
	require.True(t, ok)
	assert.Equal(t, `{"v":1}`, a.Text)

	require.NoError(t, c.Watch(root))
	// replace atomically so the reload never observes a truncated file
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(`{"v":2}`), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool {
		a, ok := c.Result("level")
		return ok && a.Text == `{"v":2}`
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(path))
	assert.Eventually(t, func() bool {
		_, ok := c.Result("level")
		return !ok
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatchIgnoresUnknownFiles(t *testing.T) {
	root := t.TempDir()
	c, err := NewCoordinator(core.PreloaderConfig{Workers: 1, BaseDir: root})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Watch(root))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.json"), []byte(`{}`), 0o644))

	// nothing registered that file, so no batch is started
	time.Sleep(100 * time.Millisecond)
	assert.Nil(t, c.CurrentBatch())
	assert.Zero(t, c.Stats().Batches)
}
