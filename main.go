/*
sketchbook preloads the assets listed in a manifest, reports progress and
optionally renders a contact sheet of everything it loaded.

	sketchbook -manifest assets.toml [-config sketchbook.toml] [-watch] [-out sheet.png]

Settings from .env and .env.local are loaded first; SKETCHBOOK_* variables
override the config file.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/sketchbook/engine"
	"github.com/spaghettifunk/sketchbook/engine/core"
	"github.com/spaghettifunk/sketchbook/testbed"
)

func main() {
	var (
		manifest    = flag.String("manifest", "assets.toml", "Asset manifest (.toml, .yaml, .yml or .json)")
		config      = flag.String("config", "sketchbook.toml", "Configuration file")
		watch       = flag.Bool("watch", false, "Reload assets when their files change")
		out         = flag.String("out", "", "Write a contact sheet PNG after each batch")
		interactive = flag.Bool("i", false, "Show an interactive progress bar")
		logLevel    = flag.String("log-level", "", "Override the configured log level")
		logFile     = flag.String("log-file", "", "Log file used while the progress bar is shown")
	)
	flag.Parse()

	if err := core.LoadEnvFiles(".env", ".env.local"); err != nil {
		fail(err)
	}

	app := &engine.ApplicationConfig{
		Name:         "Sketchbook",
		ManifestPath: *manifest,
		ConfigPath:   *config,
		Watch:        *watch,
		Interactive:  *interactive,
		LogLevel:     *logLevel,
		LogFile:      *logFile,
	}

	tb, err := testbed.NewTestGame(app, *out)
	if err != nil {
		fail(err)
	}

	engine, err := engine.New(tb.Game)
	if err != nil {
		fail(err)
	}

	if err := engine.Initialize(); err != nil {
		fail(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = engine.Shutdown()
	}()

	// run engine
	runErr := engine.Run()
	if err := engine.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		fail(runErr)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
