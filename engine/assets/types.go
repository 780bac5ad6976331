package assets

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spaghettifunk/sketchbook/engine/assets/loaders"
)

// Descriptor names one asset to load.
type Descriptor struct {
	ID  string `toml:"id" yaml:"id" json:"id"`
	Src string `toml:"src" yaml:"src" json:"src"`
}

// Asset is a stored load result.
type Asset struct {
	ID   string
	Src  string
	Kind Kind
	// Set for KindImage.
	Image *loaders.Image
	// Raw payload, set for KindJSON.
	Text string
	// Number of bytes fetched.
	Size     int
	LoadedAt time.Time
}

// Value returns the image handle or the text payload.
func (a Asset) Value() interface{} {
	if a.Kind == KindImage {
		return a.Image
	}
	return a.Text
}

// DecodeJSON unmarshals the text payload of a json asset into v.
func (a Asset) DecodeJSON(v interface{}) error {
	if a.Kind != KindJSON {
		return fmt.Errorf("asset '%s' is of kind %s, not json", a.ID, a.Kind)
	}
	return json.Unmarshal([]byte(a.Text), v)
}

// Progress is delivered once per finished item.
type Progress struct {
	BatchID string
	Loaded  int
	Total   int
	// Loaded / Total.
	Fraction float64
}

// Completion is delivered once per batch, after its last Progress.
type Completion struct {
	BatchID string
	Total   int
	Failed  int
	Elapsed time.Duration
	// Joined item failures, nil when every item loaded.
	Err error
}

// Failure records an item that finished without a result.
type Failure struct {
	BatchID string
	ID      string
	Src     string
	Kind    Kind
	Err     error
	At      time.Time
}

func (f Failure) Error() string {
	return fmt.Sprintf("asset '%s' (%s): %s", f.ID, f.Src, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}
