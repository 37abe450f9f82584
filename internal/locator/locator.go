// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package locator resolves the directory containing the backend entry points.
//
// The same binary runs from an installed bundle, where the backend sits a few
// directories above the executable, and from a development checkout, where the
// backend is a sibling of the working directory. Resolution never fails: when
// nothing is found near the executable it returns <cwd>/backend, confirmed
// only if that directory exists, and leaves the launch step to report a
// missing directory.
package locator

import (
	"os"
	"path/filepath"
)

const (
	// DirName is the name of the backend directory searched for.
	DirName = "backend"
	// MaxDepth is the number of directories examined, starting with the
	// executable's own directory.
	MaxDepth = 5
)

// Location is a resolved backend directory.
type Location struct {
	Path string
	// Confirmed reports whether Path exists as a directory.
	Confirmed bool
	// Fallback is set when no backend was found near the executable and
	// Path was derived from the working directory.
	Fallback bool
}

// Locator finds the backend directory. It holds no state between calls; the
// location is recomputed every time Locate is called.
type Locator struct {
	// Override, when set, is returned without searching.
	Override string

	// Executable and Getwd default to os.Executable and os.Getwd.
	Executable func() (string, error)
	Getwd      func() (string, error)
}

// New returns a Locator using the process's executable and working directory.
func New(override string) *Locator {
	return &Locator{
		Override:   override,
		Executable: os.Executable,
		Getwd:      os.Getwd,
	}
}

// Locate returns the backend directory.
func (l *Locator) Locate() Location {
	if l.Override != "" {
		p := l.Override
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		return Location{Path: p, Confirmed: isDir(p)}
	}

	if exe, err := l.executable(); err == nil {
		dir := filepath.Dir(exe)
		for i := 0; i < MaxDepth; i++ {
			candidate := filepath.Join(dir, DirName)
			if isDir(candidate) {
				return Location{Path: candidate, Confirmed: true}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	if wd, err := l.getwd(); err == nil {
		p := filepath.Join(wd, DirName)
		return Location{Path: p, Confirmed: isDir(p), Fallback: true}
	}
	return Location{Path: DirName, Confirmed: isDir(DirName), Fallback: true}
}

func (l *Locator) executable() (string, error) {
	if l.Executable != nil {
		return l.Executable()
	}
	return os.Executable()
}

func (l *Locator) getwd() (string, error) {
	if l.Getwd != nil {
		return l.Getwd()
	}
	return os.Getwd()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
