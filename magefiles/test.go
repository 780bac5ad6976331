//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test with the race detector.
func (Test) All() error {
	return goTest(".")
}

// Runs the asset coordinator and loader tests only.
func (Test) Assets() error {
	return goTest("engine/assets")
}
