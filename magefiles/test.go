//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every test with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs every test without the race detector.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "./...")
}

// Golden rewrites the CLI golden files from current output.
func (Test) Golden() error {
	return sh.RunV(binGo, "test", "./internal/cli/...", "-run", "Golden", "-update")
}

// Cover writes a coverage profile to bin/cover.out and prints the summary.
func (Test) Cover() error {
	mg.Deps(mkBinDir)
	if err := sh.RunV(binGo, "test", "-coverprofile=bin/cover.out", "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func=bin/cover.out")
}
