// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// PresentError formats an error for user display. The message is shown as
// the backend or host produced it; only surrounding whitespace is trimmed.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "backend exited with an error and no message"
	}
	return fmt.Sprintf("%s: %s", context, msg)
}

// RenderError writes PresentError's text to w using pterm's error style.
func RenderError(w io.Writer, context string, err error) {
	if err == nil {
		return
	}
	pterm.Error.WithWriter(w).Println(PresentError(context, err))
}
