// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"vulnscope/shell/internal/commands"
)

func newHistoryCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:      "history",
		Short:    "List past analyses",
		Label:    "Could not load history",
		Activity: "Loading history",
		Args:     cobra.NoArgs,
		Call:     noArgCall((*commands.Dispatcher).History),
	})
}

func newReportCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:      "report <id>",
		Short:    "Show the report of one analysis",
		Label:    "Could not load report",
		Activity: "Loading report",
		Args:     cobra.ExactArgs(1),
		Call:     idCall((*commands.Dispatcher).Report),
	})
}

func newDashboardCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:      "dashboard",
		Short:    "Show aggregate statistics over all analyses",
		Label:    "Could not load dashboard",
		Activity: "Loading dashboard",
		Args:     cobra.NoArgs,
		Call:     noArgCall((*commands.Dispatcher).Dashboard),
	})
}

func newTrendCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:      "trend",
		Short:    "Show vulnerability counts over time",
		Label:    "Could not load trend data",
		Activity: "Loading trend data",
		Args:     cobra.NoArgs,
		Call:     noArgCall((*commands.Dispatcher).TrendData),
	})
}

func newDeleteCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:      "delete <id>",
		Short:    "Delete an analysis from the history",
		Label:    "Delete failed",
		Activity: "Deleting analysis",
		Args:     cobra.ExactArgs(1),
		Call:     idCall((*commands.Dispatcher).DeleteAnalysis),
	})
}

func newPDFCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:   "pdf <id>",
		Short: "Render the report of one analysis as PDF",
		Long: `The pdf command asks the backend to render an analysis report as a PDF file.
The backend prints where it wrote the file; open it with 'vulnscope open <path>'.`,
		Label:    "PDF generation failed",
		Activity: "Generating PDF",
		Args:     cobra.ExactArgs(1),
		Call:     idCall((*commands.Dispatcher).GeneratePDF),
	})
}
