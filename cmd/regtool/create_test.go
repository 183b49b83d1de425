package main

import (
	"path/filepath"
	"testing"
)

func TestCreateAndEnumCommands(t *testing.T) {
	resetGlobalFlags(t)
	regFile = filepath.Join(t.TempDir(), "test.reg")

	if err := runCreate(`Soft\App`); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}

	output, err := captureOutput(t, func() error {
		return runEnum("Soft")
	})
	if err != nil {
		t.Fatalf("runEnum() error = %v", err)
	}
	assertContains(t, output, []string{"App"})
}

func TestCreateCommandJSON(t *testing.T) {
	resetGlobalFlags(t)
	regFile = filepath.Join(t.TempDir(), "test.reg")
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runCreate("Soft")
	})
	if err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"created": true`})
}

func TestCreateVolatileKeyDoesNotPersist(t *testing.T) {
	resetGlobalFlags(t)
	regFile = filepath.Join(t.TempDir(), "test.reg")
	createVolatile = true
	defer func() { createVolatile = false }()

	if err := runCreate("Temp"); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}

	output, err := captureOutput(t, func() error {
		return runEnum("")
	})
	if err != nil {
		t.Fatalf("runEnum() error = %v", err)
	}
	if output != "" {
		t.Errorf("expected volatile key to be absent after reload, got %q", output)
	}
}
