// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// installTree creates root/l1/l2/l3/l4/l5/l6/app and returns root and the
// executable path. levels[0] is the executable's directory.
func installTree(t *testing.T) (string, []string, string) {
	t.Helper()
	root := t.TempDir()
	parts := []string{"l1", "l2", "l3", "l4", "l5", "l6"}
	exeDir := filepath.Join(append([]string{root}, parts...)...)
	if err := os.MkdirAll(exeDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	exe := filepath.Join(exeDir, "app")
	if err := os.WriteFile(exe, nil, 0o755); err != nil {
		t.Fatalf("write exe: %v", err)
	}

	levels := []string{exeDir}
	dir := exeDir
	for dir != root {
		dir = filepath.Dir(dir)
		levels = append(levels, dir)
	}
	return root, levels, exe
}

func fixed(p string) func() (string, error) {
	return func() (string, error) { return p, nil }
}

func TestLocateWalksUpToFiveLevels(t *testing.T) {
	for level := 0; level < MaxDepth; level++ {
		t.Run(fmt.Sprintf("level_%d", level), func(t *testing.T) {
			_, levels, exe := installTree(t)
			want := filepath.Join(levels[level], DirName)
			if err := os.Mkdir(want, 0o755); err != nil {
				t.Fatalf("mkdir backend: %v", err)
			}

			l := &Locator{Executable: fixed(exe), Getwd: fixed(t.TempDir())}
			got := l.Locate()
			if got.Path != want || !got.Confirmed || got.Fallback {
				t.Errorf("Locate() = %+v, want confirmed %q", got, want)
			}
		})
	}
}

func TestLocatePrefersNearestBackend(t *testing.T) {
	_, levels, exe := installTree(t)
	near := filepath.Join(levels[1], DirName)
	far := filepath.Join(levels[3], DirName)
	for _, d := range []string{near, far} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	l := &Locator{Executable: fixed(exe), Getwd: fixed(t.TempDir())}
	if got := l.Locate(); got.Path != near {
		t.Errorf("Locate() = %q, want nearest %q", got.Path, near)
	}
}

func TestLocateFallsBackToWorkingDirectory(t *testing.T) {
	_, levels, exe := installTree(t)
	// One level beyond the search bound.
	beyond := filepath.Join(levels[MaxDepth], DirName)
	if err := os.Mkdir(beyond, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	wd := t.TempDir()

	l := &Locator{Executable: fixed(exe), Getwd: fixed(wd)}
	got := l.Locate()
	if want := filepath.Join(wd, DirName); got.Path != want {
		t.Errorf("Locate() = %q, want fallback %q", got.Path, want)
	}
	if got.Confirmed || !got.Fallback {
		t.Errorf("Locate() = %+v, want unconfirmed fallback", got)
	}
}

func TestLocateConfirmsExistingWorkingDirectoryBackend(t *testing.T) {
	_, _, exe := installTree(t)
	wd := t.TempDir()
	want := filepath.Join(wd, DirName)
	if err := os.Mkdir(want, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	l := &Locator{Executable: fixed(exe), Getwd: fixed(wd)}
	got := l.Locate()
	if got.Path != want || !got.Confirmed || !got.Fallback {
		t.Errorf("Locate() = %+v, want confirmed fallback %q", got, want)
	}
}

func TestLocateIgnoresPlainFileNamedBackend(t *testing.T) {
	_, levels, exe := installTree(t)
	if err := os.WriteFile(filepath.Join(levels[0], DirName), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	wd := t.TempDir()

	l := &Locator{Executable: fixed(exe), Getwd: fixed(wd)}
	if got := l.Locate(); got.Path != filepath.Join(wd, DirName) {
		t.Errorf("Locate() = %q, want fallback", got.Path)
	}
}

func TestLocateSurvivesMissingExecutableAndWorkingDir(t *testing.T) {
	failing := func() (string, error) { return "", errors.New("unavailable") }

	wd := t.TempDir()
	l := &Locator{Executable: failing, Getwd: fixed(wd)}
	if got := l.Locate(); got.Path != filepath.Join(wd, DirName) {
		t.Errorf("Locate() = %q, want cwd fallback", got.Path)
	}

	l = &Locator{Executable: failing, Getwd: failing}
	if got := l.Locate(); got.Path != DirName || got.Confirmed {
		t.Errorf("Locate() = %+v, want relative %q", got, DirName)
	}
}

func TestLocateOverride(t *testing.T) {
	dir := t.TempDir()
	l := &Locator{Override: dir, Executable: fixed("/nonexistent/app"), Getwd: fixed("/nonexistent")}
	if got := l.Locate(); got.Path != dir || !got.Confirmed {
		t.Errorf("Locate() = %+v, want confirmed override %q", got, dir)
	}

	missing := filepath.Join(dir, "gone")
	l.Override = missing
	if got := l.Locate(); got.Path != missing || got.Confirmed {
		t.Errorf("Locate() = %+v, want unconfirmed override %q", got, missing)
	}
}

func TestLocateRecomputesEveryCall(t *testing.T) {
	_, levels, exe := installTree(t)
	wd := t.TempDir()
	l := &Locator{Executable: fixed(exe), Getwd: fixed(wd)}

	if got := l.Locate(); got.Confirmed {
		t.Fatalf("unexpected confirmed location before backend exists: %+v", got)
	}
	backend := filepath.Join(levels[2], DirName)
	if err := os.Mkdir(backend, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if got := l.Locate(); got.Path != backend {
		t.Errorf("Locate() = %q after install, want %q", got.Path, backend)
	}
}
