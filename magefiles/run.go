//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Preloads the manifest named by $SKETCHBOOK_MANIFEST (default assets.toml)
// with the progress bar and writes sheet.png.
func (Run) Preload() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run preload...")
	return runSketchbook("-manifest", manifestPath())
}

// Preloads and keeps watching the asset directory for changes.
func (Run) Watch() error {
	mg.Deps(Build.Binary)
	return runSketchbook("-manifest", manifestPath(), "-watch")
}
