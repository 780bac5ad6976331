//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
)

const (
	binaryPath      = "bin/sketchbook"
	defaultManifest = "assets.toml"
	sheetPath       = "sheet.png"
)

// raceTestArgs is shared by every test target.
var raceTestArgs = []string{"test", "-race", "-count=1"}

type cmdOptions struct {
	args   []string
	dir    string
	env    []string
	stream bool
}

type cmdOption func(*cmdOptions)

func withArgs(args ...string) cmdOption {
	return func(o *cmdOptions) {
		o.args = append(o.args, args...)
	}
}

func withDir(dir string) cmdOption {
	return func(o *cmdOptions) {
		o.dir = dir
	}
}

// withEnv adds KEY=value pairs on top of the current environment.
func withEnv(kv ...string) cmdOption {
	return func(o *cmdOptions) {
		o.env = append(o.env, kv...)
	}
}

func withStream() cmdOption {
	return func(o *cmdOptions) {
		o.stream = true
	}
}

func executeCmd(command string, options ...cmdOption) (string, error) {
	opts := &cmdOptions{}
	for _, o := range options {
		o(opts)
	}

	where := ""
	if opts.dir != "" {
		where = " (in " + opts.dir + ")"
	}
	fmt.Printf("Executing: %s %s%s\n", command, strings.Join(opts.args, " "), where)

	cmd := exec.Command(command, opts.args...)
	cmd.Dir = opts.dir
	if len(opts.env) > 0 {
		cmd.Env = append(os.Environ(), opts.env...)
	}

	var out bytes.Buffer
	stream := mg.Verbose() || opts.stream
	if stream {
		cmd.Stdout = io.MultiWriter(&out, os.Stdout)
		cmd.Stderr = io.MultiWriter(&out, os.Stderr)
	} else {
		cmd.Stdout = &out
		cmd.Stderr = &out
	}

	if err := cmd.Run(); err != nil {
		if !stream {
			fmt.Println("... failed command output:")
			fmt.Println(out.String())
		}
		return "", fmt.Errorf("error executing %s %s: %w", command, strings.Join(opts.args, " "), err)
	}
	return out.String(), nil
}

// goTest runs the race-enabled test suite below dir.
func goTest(dir string) error {
	args := append([]string{}, raceTestArgs...)
	if mg.Verbose() {
		args = append(args, "-v")
	}
	args = append(args, "./...")
	_, err := executeCmd("go", withArgs(args...), withDir(dir), withStream())
	return err
}

// runSketchbook starts the built binary, always writing the contact sheet
// and showing the progress bar. Verbose mage runs log at debug level.
func runSketchbook(args ...string) error {
	opts := []cmdOption{
		withArgs("-out", sheetPath, "-i"),
		withArgs(args...),
		withStream(),
	}
	if mg.Verbose() {
		opts = append(opts, withEnv("SKETCHBOOK_LOG_LEVEL=debug"))
	}
	_, err := executeCmd(binaryPath, opts...)
	return err
}

// manifestPath reads $SKETCHBOOK_MANIFEST, falling back to assets.toml.
func manifestPath() string {
	if m := os.Getenv("SKETCHBOOK_MANIFEST"); m != "" {
		return m
	}
	return defaultManifest
}

func goTidy() error {
	for _, sub := range [][]string{{"mod", "tidy"}, {"mod", "verify"}} {
		if _, err := executeCmd("go", withArgs(sub...)); err != nil {
			return fmt.Errorf("failed to run go %s: %w", strings.Join(sub, " "), err)
		}
	}
	return nil
}
