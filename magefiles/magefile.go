//go:build mage

// Package main provides build targets for the diagram editor service using Mage.
//
// Usage:
//
//	mage build     Compile server and diagramctl to bin/
//	mage test      Run all tests
//	mage testDB    Run tests including the Postgres session store (needs TEST_DATABASE_URL)
//	mage lint      Run golangci-lint
//	mage run       Build and start the server
//	mage clean     Remove build artifacts
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryDir = "bin"

var binaries = map[string]string{
	"diagram-editor-service": "./cmd/server",
	"diagramctl":             "./cmd/diagramctl",
}

// Build compiles every binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	for name, pkg := range binaries {
		if err := sh.RunV("go", "build", "-o", filepath.Join(binaryDir, name), pkg); err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}
	}
	return nil
}

// Test runs all tests. Postgres tests skip without TEST_DATABASE_URL.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// TestDB runs the Postgres session store tests against TEST_DATABASE_URL.
func TestDB() error {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		return fmt.Errorf("TEST_DATABASE_URL is not set")
	}
	return sh.RunV("go", "test", "-count=1", "./internal/adapters/secondary/postgres/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Run builds and starts the server with the local .env.
func Run() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, "diagram-editor-service"))
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}
