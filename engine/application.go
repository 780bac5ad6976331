package engine

type ApplicationConfig struct {
	// Name shown in the progress view and the log prefix.
	Name string
	// Asset manifest (.toml, .yaml, .yml or .json).
	ManifestPath string
	// Optional TOML configuration; a missing file means defaults.
	ConfigPath string
	// Keep running and reload assets when their files change.
	Watch bool
	// Show the interactive progress bar instead of log lines.
	Interactive bool
	// Overrides the configured log level when set.
	LogLevel string
	// Where log lines go while the interactive view owns the terminal.
	// Empty discards them.
	LogFile string
}
