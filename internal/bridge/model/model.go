// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package model defines the transport-agnostic request and outcome types
// exchanged between the command dispatcher and bridge implementations.
package model

// EntryPoint names the backend script that handles a family of commands.
type EntryPoint string

const (
	// EntryMain handles analysis, history, reports, settings and PDF export.
	EntryMain EntryPoint = "main.py"
	// EntryMonitor handles project monitoring.
	EntryMonitor EntryPoint = "monitor.py"
)

// Request is one concrete backend call: an entry point, a command keyword
// and the ordered string arguments that follow it.
type Request struct {
	EntryPoint EntryPoint
	Command    string
	Args       []string
}

// Argv returns the argument vector passed to the runtime:
// entry point, command keyword, then Args.
func (r Request) Argv() []string {
	argv := make([]string, 0, len(r.Args)+2)
	argv = append(argv, string(r.EntryPoint), r.Command)
	return append(argv, r.Args...)
}

// Outcome is the result of a backend process that ran to completion.
type Outcome struct {
	Succeeded bool
	ExitCode  int
	Stdout    string
	Stderr    string
}
