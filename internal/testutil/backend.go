// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package testutil builds stub backends for bridge tests. A stub backend is
// a directory whose entry points are POSIX shell scripts; tests run them with
// "sh" as the interpreter in place of Python.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"vulnscope/shell/internal/locator"
)

// Shell returns the path of sh, skipping the test where it is unavailable.
func Shell(t testing.TB) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub backends are POSIX shell scripts")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skipf("sh not found: %v", err)
	}
	return sh
}

// StubBackend writes each script under its entry point name into a fresh
// directory and returns the directory.
func StubBackend(t testing.TB, scripts map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range scripts {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	return dir
}

// EchoScript prints its arguments separated by "|" to stdout and exits 0.
// Noise goes to stderr so tests can check that it is discarded.
const EchoScript = `printf '%s|' "$@"
echo "warning: this goes to stderr" >&2
exit 0
`

// FailScript writes a diagnostic to stderr, noise to stdout, and exits 2.
const FailScript = `echo "partial output that must be ignored"
printf 'backend failed: %s' "$1" >&2
exit 2
`

// FixedLocator always returns the same directory.
type FixedLocator struct {
	Path      string
	Confirmed bool
	Fallback  bool
}

func (l FixedLocator) Locate() locator.Location {
	return locator.Location{Path: l.Path, Confirmed: l.Confirmed, Fallback: l.Fallback}
}
