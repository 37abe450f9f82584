// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for bridge failures.
// Every failure crossing the bridge carries a machine-readable Kind for logging
// and tests, while its Error text stays the plain message the front end shows.
//
// The Kind never appears in the Error text: a backend failure renders exactly
// the text the backend wrote to its error stream.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// LaunchFailed indicates the backend runtime could not be started at all.
	LaunchFailed Kind = "launch_failed"
	// BackendFailed indicates the backend ran and exited with a failure status.
	BackendFailed Kind = "backend_failed"
	// HostOpenFailed indicates the host OS refused to open a path.
	HostOpenFailed Kind = "host_open_failed"
	// TimedOut indicates the backend exceeded the configured call timeout and was killed.
	TimedOut Kind = "timed_out"
	// Canceled indicates the caller canceled the call while the backend was running.
	Canceled Kind = "canceled"
	// InvalidArguments indicates an operation was dispatched with the wrong arity.
	InvalidArguments Kind = "invalid_arguments"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf reports the Kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
