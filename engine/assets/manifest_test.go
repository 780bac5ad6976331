package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sketchbook/engine/core"
)

func TestParseManifestFormats(t *testing.T) {
	want := []Descriptor{
		{ID: "hero", Src: "img/hero.png"},
		{ID: "level", Src: "data/level1.json"},
	}

	tests := []struct {
		format string
		data   string
	}{
		{"toml", `
[[asset]]
id = "hero"
src = "img/hero.png"

[[asset]]
id = "level"
src = "data/level1.json"
`},
		{"yaml", `
assets:
  - id: hero
    src: img/hero.png
  - id: level
    src: data/level1.json
`},
		{".json", `{"assets": [{"id": "hero", "src": "img/hero.png"}, {"id": "level", "src": "data/level1.json"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := ParseManifest(tt.format, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseManifestErrors(t *testing.T) {
	_, err := ParseManifest("ini", []byte("x=1"))
	assert.ErrorIs(t, err, core.ErrUnknownManifestFormat)

	_, err = ParseManifest("json", []byte(`{"assets": [{"id": "a", "src": "a.png"}, {"id": "a", "src": "b.png"}]}`))
	assert.ErrorIs(t, err, core.ErrDuplicateID)

	_, err = ParseManifest("json", []byte(`{"assets": [], "extra": true}`))
	assert.Error(t, err)

	_, err = ParseManifest("toml", []byte(`[[asset]`))
	assert.Error(t, err)
}

func TestLoadManifestUsesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.yml")
	require.NoError(t, os.WriteFile(path, []byte("assets:\n  - id: a\n    src: a.svg\n"), 0o644))

	got, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []Descriptor{{ID: "a", Src: "a.svg"}}, got)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
