// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"vulnscope/shell/internal/commands"
)

// newSettingsCmd exposes the settings the backend stores, such as the
// inference API URL. Local CLI settings live under 'vulnscope config'.
func newSettingsCmd(a *app) *cobra.Command {
	settings := &cobra.Command{
		Use:   "settings",
		Short: "Read or change backend settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	settings.AddCommand(
		a.newCallCmd(callCommand{
			Use:      "get",
			Short:    "Show backend settings",
			Label:    "Could not load settings",
			Activity: "Loading settings",
			Args:     cobra.NoArgs,
			Call:     noArgCall((*commands.Dispatcher).Settings),
		}),
		a.newCallCmd(callCommand{
			Use:      "save <value>",
			Short:    "Store a backend setting",
			Label:    "Could not save settings",
			Activity: "Saving settings",
			Args:     cobra.ExactArgs(1),
			Call:     pathCall((*commands.Dispatcher).SaveSettings),
		}),
	)
	return settings
}

func newCheckAPICmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:      "check-api",
		Short:    "Check whether the backend can reach its inference API",
		Label:    "API check failed",
		Activity: "Checking API",
		Args:     cobra.NoArgs,
		Call:     noArgCall((*commands.Dispatcher).CheckAPI),
	})
}
