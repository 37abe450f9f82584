// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal answers questions about the streams the CLI writes to.
package terminal

import (
	"io"

	"golang.org/x/term"
)

// File is a stream backed by a file descriptor, such as os.Stderr.
type File interface {
	io.Writer
	Fd() uintptr
}

// IsTerminal reports whether w is an interactive terminal. Buffers, pipes
// and redirected files are not.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of the terminal behind w, or 80 when it
// cannot be determined.
func Width(w io.Writer) int {
	if f, ok := w.(File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
