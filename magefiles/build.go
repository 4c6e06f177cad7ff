//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the stockroom project using Mage.
//
// Usage:
//
//	mage build        Compile stockroom binary to bin/
//	mage test:all     Run all tests
//	mage test:unit    Run tests without the race detector
//	mage test:golden  Regenerate CLI golden files
//	mage smoke        Build and drive the binary against a scratch database
//	mage lint         Run golangci-lint
//	mage clean        Remove build artifacts
//	mage install      Install stockroom to GOPATH/bin
//	mage stats        Print Go LOC per package
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "stockroom"
	binaryDir  = "bin"
	cmdDir     = "./cmd/stockroom"
)

func mkBinDir() error {
	return os.MkdirAll(binaryDir, 0o755)
}

// Build compiles the stockroom binary to bin/.
func Build() error {
	if err := mkBinDir(); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Smoke builds the binary and runs a short session against a scratch
// database: add a store and a uniform, select the store, record an entry,
// and print stock.
func Smoke() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "stockroom-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	bin := filepath.Join(binaryDir, binaryName)
	env := map[string]string{
		"STOCKROOM_CONFIG_DIR": filepath.Join(dir, "config"),
		"STOCKROOM_DATA_DIR":   filepath.Join(dir, "data"),
	}
	steps := [][]string{
		{"init"},
		{"store", "add", "Smoke Store"},
		{"store", "select", "1"},
		{"uniform", "add", "Shirt", "M"},
		{"operation", "add", "--type", "entry", "--concept", "smoke", "--uniform", "1", "--quantity", "3"},
		{"stock"},
	}
	for _, args := range steps {
		if err := sh.RunWithV(env, bin, args...); err != nil {
			return fmt.Errorf("stockroom %v: %w", args, err)
		}
	}
	return nil
}
