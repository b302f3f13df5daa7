//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts fixtures/xml into fixtures/json,
// recording runs in fixtures/manifest.db so unchanged files are skipped.
func Convert() error {
	mg.Deps(Init, Build)

	bin := filepath.Join(binDir, binName)
	err := sh.RunV(bin, "convert",
		"--root", "tsResponse",
		"--manifest", filepath.Join("fixtures", "manifest.db"),
		fixtureDirs[0], fixtureDirs[1])
	if err != nil {
		return fmt.Errorf("converting fixtures: %w", err)
	}
	return nil
}

// Reconvert converts every fixture again, ignoring the manifest.
func Reconvert() error {
	mg.Deps(Init, Build)

	return sh.RunV(filepath.Join(binDir, binName), "convert", "--force",
		"--root", "tsResponse", fixtureDirs[0], fixtureDirs[1])
}
