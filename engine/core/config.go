package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultWorkerCount    = 4
	DefaultQueueSize      = 64
	DefaultItemTimeout    = 30 * time.Second
	DefaultFailureHistory = 32
)

// PreloaderConfig holds the knobs of the asset coordinator.
type PreloaderConfig struct {
	// Number of goroutines fetching and decoding assets.
	Workers int `toml:"workers"`
	// Buffered job queue length.
	QueueSize int `toml:"queue_size"`
	// Per-item deadline, in time.ParseDuration syntax ("30s", "1m").
	ItemTimeout string `toml:"item_timeout"`
	// Root directory for relative sources.
	BaseDir string `toml:"base_dir"`
	// Reload assets when their files change on disk.
	Watch bool `toml:"watch"`
	// How many failures the coordinator remembers for diagnostics.
	FailureHistory int `toml:"failure_history"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type Config struct {
	Preloader PreloaderConfig `toml:"preloader"`
	Log       LogConfig       `toml:"log"`
}

// DefaultConfig returns a configuration with every field set.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.Preloader.Workers <= 0 {
		c.Preloader.Workers = DefaultWorkerCount
	}
	if c.Preloader.QueueSize <= 0 {
		c.Preloader.QueueSize = DefaultQueueSize
	}
	if c.Preloader.ItemTimeout == "" {
		c.Preloader.ItemTimeout = DefaultItemTimeout.String()
	}
	if c.Preloader.BaseDir == "" {
		c.Preloader.BaseDir = "."
	}
	if c.Preloader.FailureHistory <= 0 {
		c.Preloader.FailureHistory = DefaultFailureHistory
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Timeout parses ItemTimeout. A value of "0" disables the per-item deadline.
func (c PreloaderConfig) Timeout() (time.Duration, error) {
	if c.ItemTimeout == "" {
		return DefaultItemTimeout, nil
	}
	d, err := time.ParseDuration(c.ItemTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid item_timeout %q: %w", c.ItemTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid item_timeout %q: must not be negative", c.ItemTimeout)
	}
	return d, nil
}

// Validate checks the values that defaults cannot repair.
func (c Config) Validate() error {
	if _, err := c.Preloader.Timeout(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// ParseConfig decodes a TOML document and applies defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads the TOML file at path and applies SKETCHBOOK_* environment
// overrides on top. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = ParseConfig(data); err != nil {
			return Config{}, err
		}
	case os.IsNotExist(err):
		LogDebug("config file '%s' not found, using defaults", path)
		cfg = DefaultConfig()
	default:
		return Config{}, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnvFiles loads KEY=value files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file '%s': %w", f, err)
		}
		LogDebug("loaded environment from '%s'", f)
	}
	return nil
}

// ApplyEnv overrides fields from SKETCHBOOK_WORKERS, SKETCHBOOK_QUEUE_SIZE,
// SKETCHBOOK_ITEM_TIMEOUT, SKETCHBOOK_BASE_DIR, SKETCHBOOK_WATCH,
// SKETCHBOOK_FAILURE_HISTORY and SKETCHBOOK_LOG_LEVEL.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	atoi := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
		return nil
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if err := atoi("SKETCHBOOK_WORKERS", &c.Preloader.Workers); err != nil {
		return err
	}
	if err := atoi("SKETCHBOOK_QUEUE_SIZE", &c.Preloader.QueueSize); err != nil {
		return err
	}
	if err := atoi("SKETCHBOOK_FAILURE_HISTORY", &c.Preloader.FailureHistory); err != nil {
		return err
	}
	str("SKETCHBOOK_ITEM_TIMEOUT", &c.Preloader.ItemTimeout)
	str("SKETCHBOOK_BASE_DIR", &c.Preloader.BaseDir)
	str("SKETCHBOOK_LOG_LEVEL", &c.Log.Level)
	if v, ok := lookup("SKETCHBOOK_WATCH"); ok && v != "" {
		w, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SKETCHBOOK_WATCH %q: %w", v, err)
		}
		c.Preloader.Watch = w
	}
	c.ApplyDefaults()
	return nil
}
