// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package bridge defines the request/response boundary between the command
// dispatcher and the backend. A Bridge takes a model.Request and yields either
// the backend's payload or an error carrying the backend's message.
//
// The process transport spawns the backend interpreter once per call. Other
// transports, such as a long-lived backend with a real IPC channel, can be
// substituted without changing the dispatcher.
package bridge

import (
	"context"
	"log/slog"
	"time"

	"vulnscope/shell/internal/bridge/model"
	"vulnscope/shell/internal/bridge/process"
	"vulnscope/shell/internal/locator"
)

// Bridge carries one request to the backend and returns its payload.
type Bridge interface {
	// Call blocks until the backend finishes. On success it returns the
	// backend's output verbatim; on failure the error text is the backend's
	// (or the host's) message.
	Call(ctx context.Context, req model.Request) (string, error)
}

// Options configure the default process transport.
type Options struct {
	// Python is the interpreter used to run backend entry points.
	Python string
	// BackendDir overrides automatic backend location when non-empty.
	BackendDir string
	// Timeout bounds each call; zero disables the bound.
	Timeout time.Duration
	// Env holds extra KEY=VALUE pairs for the backend process.
	Env    []string
	Logger *slog.Logger
}

// New creates a bridge that runs the backend as a child process per call.
func New(opts Options) Bridge {
	return &process.Transport{
		Invoker: &process.Invoker{Runtime: opts.Python, Timeout: opts.Timeout, Env: opts.Env},
		Locator: locator.New(opts.BackendDir),
		Logger:  opts.Logger,
	}
}
