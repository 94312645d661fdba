// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the tablemarks project using Mage.
//
// Usage:
//
//	mage build        Compile tablemarks binary to bin/
//	mage install      Install tablemarks to GOPATH/bin
//	mage clean        Remove build artifacts
//	mage lint         Run golangci-lint
//	mage test:all     Run all tests
//	mage test:unit    Run tests without the race detector or cache busting
//	mage test:cover   Write a coverage profile to bin/cover.out
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "tablemarks"
	binaryDir  = "bin"
	cmdDir     = "./cmd/tablemarks"
)

// Build compiles the tablemarks binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
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
