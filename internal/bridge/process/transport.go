// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package process implements the bridge by spawning the backend interpreter
// once per call: locate the backend directory, invoke the entry point, and
// translate the exit status into a payload or an error.
package process

import (
	"context"
	"log/slog"

	"vulnscope/shell/internal/bridge/model"
	"vulnscope/shell/internal/locator"
)

// Locator resolves the backend directory for a call.
type Locator interface {
	Locate() locator.Location
}

// Transport is the process-per-call bridge implementation.
type Transport struct {
	Invoker *Invoker
	Locator Locator
	// Logger receives a warning when the backend directory is missing. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

func (t *Transport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// Call locates the backend, runs the request and translates the outcome.
// The backend location is resolved again on every call.
func (t *Transport) Call(ctx context.Context, req model.Request) (string, error) {
	loc := t.Locator.Locate()
	switch {
	case !loc.Confirmed:
		t.logger().Warn("backend directory not found",
			"path", loc.Path, "entry_point", string(req.EntryPoint))
	case loc.Fallback:
		t.logger().Debug("using backend from working directory", "path", loc.Path)
	}

	out, err := t.Invoker.Invoke(ctx, loc.Path, req)
	if err != nil {
		return "", err
	}
	if !out.Succeeded {
		t.logger().Debug("backend exited with failure",
			"command", req.Command, "exit_code", out.ExitCode, "stderr_bytes", len(out.Stderr))
	}
	return Translate(out)
}
