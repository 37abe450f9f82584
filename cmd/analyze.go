// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"vulnscope/shell/internal/commands"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:   "analyze <file>",
		Short: "Analyze one source file for vulnerabilities",
		Long: `The analyze command runs the backend's full analysis pipeline on one source
file and prints the resulting report. The analysis is stored in the history
and can be fetched again with 'vulnscope report <id>'.`,
		Label:    "Analysis failed",
		Activity: "Analyzing",
		Args:     cobra.ExactArgs(1),
		Call:     pathCall((*commands.Dispatcher).AnalyzeFile),
	})
}

func newAnalyzeFolderCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:      "analyze-folder <dir>",
		Short:    "Analyze every source file in a folder",
		Label:    "Folder analysis failed",
		Activity: "Analyzing folder",
		Args:     cobra.ExactArgs(1),
		Call:     pathCall((*commands.Dispatcher).AnalyzeFolder),
	})
}

func newFunctionsCmd(a *app) *cobra.Command {
	return a.newCallCmd(callCommand{
		Use:      "functions <file>",
		Short:    "List the functions found in a source file",
		Label:    "Function extraction failed",
		Activity: "Extracting functions",
		Args:     cobra.ExactArgs(1),
		Call:     pathCall((*commands.Dispatcher).ExtractFunctions),
	})
}
