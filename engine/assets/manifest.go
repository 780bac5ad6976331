package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/sketchbook/engine/core"
)

// Manifest lists the descriptors of a batch.
//
// TOML:
//
//	[[asset]]
//	id = "hero"
//	src = "img/hero.png"
//
// YAML and JSON use an "assets" list of {id, src} objects.
type Manifest struct {
	Assets []Descriptor `toml:"asset" yaml:"assets" json:"assets"`
}

// ParseManifest decodes data in the given format: "toml", "yaml"/"yml" or "json".
func ParseManifest(format string, data []byte) ([]Descriptor, error) {
	var m Manifest
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse toml manifest: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse yaml manifest: %w", err)
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to parse json manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: '%s'", core.ErrUnknownManifestFormat, format)
	}
	if err := validateDescriptors(m.Assets); err != nil {
		return nil, err
	}
	return m.Assets, nil
}

// LoadManifest reads a manifest file; the format follows the file extension.
func LoadManifest(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(filepath.Ext(path), data)
}
