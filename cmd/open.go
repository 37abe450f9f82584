// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"vulnscope/shell/internal/commands"
)

func newOpenCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:   "open <path>",
		Short: "Open a file or folder with the system's default application",
		Long: `The open command hands a path to the operating system, which opens folders
in the file browser and files in their associated application. It is handy
for PDF reports written by 'vulnscope pdf'.`,
		Label:    "Could not open path",
		Activity: "Opening",
		Args:     cobra.ExactArgs(1),
		Call: func(ctx context.Context, d *commands.Dispatcher, args []string) (string, error) {
			return "", d.OpenPath(ctx, args[0])
		},
	})
}
