package main

import (
	"path/filepath"
	"testing"
)

func TestExportThenImportRoundTrip(t *testing.T) {
	resetGlobalFlags(t)
	regFile = filepath.Join(t.TempDir(), "primary.reg")

	if err := runCreate(`Soft\App`); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}
	setType = "sz"
	if err := runSet(`Soft\App`, "greet", "hello"); err != nil {
		t.Fatalf("runSet() error = %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "exported.reg")
	if err := runExport(exportPath); err != nil {
		t.Fatalf("runExport() error = %v", err)
	}

	// Import into a brand new backing file: the exported file's paths
	// are rooted at HKEY_LOCAL_MACHINE's own label, so the re-anchored
	// load lands the key back under Soft\App regardless of --root.
	regFile = filepath.Join(t.TempDir(), "secondary.reg")
	if err := runImport(exportPath); err != nil {
		t.Fatalf("runImport() error = %v", err)
	}

	output, err := captureOutput(t, func() error {
		return runGet(`Soft\App`, "greet")
	})
	if err != nil {
		t.Fatalf("runGet() error = %v", err)
	}
	assertContains(t, output, []string{"hello"})
}

func TestDeleteKeyCommand(t *testing.T) {
	resetGlobalFlags(t)
	regFile = filepath.Join(t.TempDir(), "test.reg")

	if err := runCreate("Leaf"); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}
	if err := runDelete("Leaf"); err != nil {
		t.Fatalf("runDelete() error = %v", err)
	}

	output, err := captureOutput(t, func() error {
		return runEnum("")
	})
	if err != nil {
		t.Fatalf("runEnum() error = %v", err)
	}
	if output != "" {
		t.Errorf("expected no subkeys after delete, got %q", output)
	}
}

func TestLevelsCommandGatesSave(t *testing.T) {
	resetGlobalFlags(t)
	regFile = filepath.Join(t.TempDir(), "test.reg")

	// "Below" is created and saved at the default current/saving level
	// (0), so the first save includes it.
	if err := runCreate("Below"); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}

	// Re-load that same file with saving-level raised above every
	// existing key's level (still 0) and re-save: levels reloads,
	// applies the new gate, and saves back within one invocation, so
	// "Below" is excluded from this save.
	levelsCurrent = 0
	levelsSaving = 5
	if err := runLevels(); err != nil {
		t.Fatalf("runLevels() error = %v", err)
	}

	output, err := captureOutput(t, func() error {
		return runEnum("")
	})
	if err != nil {
		t.Fatalf("runEnum() error = %v", err)
	}
	if output != "" {
		t.Errorf("expected every level-0 key to be gated out of the save, got %q", output)
	}
}
