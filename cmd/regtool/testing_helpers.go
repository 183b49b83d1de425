package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// captureOutput captures stdout while running fn, the same stdout-pipe
// trick the original CLI's tests use to assert on printInfo/printJSON
// output without restructuring every run* function to take an
// io.Writer.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// resetGlobalFlags restores the package-level flag variables to their
// defaults between table-driven subtests, since cobra normally resets
// these via flag parsing but the tests call run* directly.
func resetGlobalFlags(t *testing.T) {
	t.Helper()
	quiet = false
	verbose = false
	jsonOut = false
	rootName = "HKEY_LOCAL_MACHINE"
	debugLevel = 0
	saveVersion = 0
}
