// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package hostopen asks the host operating system to open a path with its
// default handler (file browser for folders, associated app for files).
package hostopen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	apperrors "vulnscope/shell/internal/errors"
)

// Opener opens a filesystem path on the host.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// System opens paths with the platform's launcher:
//   - Windows: rundll32 url.dll,FileProtocolHandler
//   - macOS: open
//   - Linux and others: xdg-open
type System struct {
	// Command overrides the launcher; it returns the program and its arguments.
	Command func(path string) (string, []string)
}

func defaultCommand(path string) (string, []string) {
	switch runtime.GOOS {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open checks that path exists and hands it to the launcher, waiting for the
// launcher itself (not the opened application) to exit.
func (s System) Open(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return apperrors.New(apperrors.HostOpenFailed, "no path to open")
	}
	if _, err := os.Stat(path); err != nil {
		return apperrors.Wrap(apperrors.HostOpenFailed, fmt.Sprintf("cannot open %s", path), err)
	}

	build := s.Command
	if build == nil {
		build = defaultCommand
	}
	name, args := build(path)

	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return apperrors.New(apperrors.HostOpenFailed, msg)
		}
		return apperrors.Wrap(apperrors.HostOpenFailed, fmt.Sprintf("cannot open %s", path), err)
	}
	return nil
}
