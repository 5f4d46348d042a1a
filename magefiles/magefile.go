//go:build mage

// Package main provides build targets for mqtbench using Mage.
//
// Usage:
//
//	mage build     Compile the mqtbench binary to bin/
//	mage test      Run all tests
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install mqtbench to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "mqtbench"
	binaryDir  = "bin"
	cmdDir     = "./cmd/mqtbench"
	versionPkg = "github.com/mqtbench/cli/internal/version"
)

// Build compiles the mqtbench binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(),
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
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
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

func ldflags() string {
	version := "v0.0.0-dev"
	if tag, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil && tag != "" {
		version = tag
	}
	commit := "unknown"
	if rev, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil && rev != "" {
		commit = rev
	}
	flags := []string{
		fmt.Sprintf("-X %s.Version=%s", versionPkg, version),
		fmt.Sprintf("-X %s.GitCommit=%s", versionPkg, commit),
		fmt.Sprintf("-X %s.BuildDate=%s", versionPkg, time.Now().UTC().Format(time.RFC3339)),
	}
	return strings.Join(flags, " ")
}
