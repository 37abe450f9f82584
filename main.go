// Package main is the entry point for the Vulnscope CLI.
// It exposes the vulnerability analysis backend through one subcommand per operation.
package main

import (
	"vulnscope/shell/cmd"
)

func main() {
	cmd.Execute()
}
