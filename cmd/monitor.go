// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"vulnscope/shell/internal/commands"
)

// newMonitorCmd groups the operations served by the backend's monitor entry point.
func newMonitorCmd(a *app) *cobra.Command {
	monitor := &cobra.Command{
		Use:   "monitor",
		Short: "Track changes in project folders",
		Long: `The monitor commands register project folders with the backend and report
files changed, added or deleted since the last refresh.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	monitor.AddCommand(
		a.newCallCmd(callCommand{
			Use:      "register <dir>",
			Short:    "Start monitoring a project folder",
			Label:    "Could not register project",
			Activity: "Registering project",
			Args:     cobra.ExactArgs(1),
			Call:     pathCall((*commands.Dispatcher).RegisterProject),
		}),
		a.newCallCmd(callCommand{
			Use:      "list",
			Short:    "List monitored projects",
			Label:    "Could not list projects",
			Activity: "Loading projects",
			Args:     cobra.NoArgs,
			Call:     noArgCall((*commands.Dispatcher).ListProjects),
		}),
		a.newCallCmd(callCommand{
			Use:      "check <id>",
			Short:    "Report changes in a monitored project",
			Label:    "Could not check project",
			Activity: "Checking project",
			Args:     cobra.ExactArgs(1),
			Call:     idCall((*commands.Dispatcher).CheckProject),
		}),
		a.newCallCmd(callCommand{
			Use:      "refresh <id>",
			Short:    "Accept the current state of a project as its baseline",
			Label:    "Could not refresh project",
			Activity: "Refreshing project",
			Args:     cobra.ExactArgs(1),
			Call:     idCall((*commands.Dispatcher).RefreshProject),
		}),
		a.newCallCmd(callCommand{
			Use:      "remove <id>",
			Short:    "Stop monitoring a project",
			Label:    "Could not remove project",
			Activity: "Removing project",
			Args:     cobra.ExactArgs(1),
			Call:     idCall((*commands.Dispatcher).RemoveProject),
		}),
	)
	return monitor
}
