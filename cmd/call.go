// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vulnscope/shell/internal/commands"
	apperrors "vulnscope/shell/internal/errors"
)

// newNamedCallCmd runs an operation selected by name, the way a GUI front end
// invokes the bridge. Output and errors match the dedicated subcommands.
func newNamedCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <operation> [args...]",
		Short: "Run an operation by name",
		Long: `The call command runs one operation by its bridge name, for scripts that
drive Vulnscope generically. Operations:

` + operationUsage(),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := commands.ByName(args[0])
			if !ok {
				return apperrors.New(apperrors.InvalidArguments,
					fmt.Sprintf("unknown operation %q; run 'vulnscope call --help' for the list", args[0]))
			}
			return a.runCall(cmd, op.String()+" failed", "Running "+op.String(), args[1:], namedCall(op))
		},
	}
}

// namedCall validates id parameters before dispatching op with raw arguments.
func namedCall(op commands.Operation) callFunc {
	return func(ctx context.Context, d *commands.Dispatcher, args []string) (string, error) {
		params := op.Spec().Params
		args = append([]string(nil), args...)
		for i, arg := range args {
			if i < len(params) && params[i] == commands.ParamID {
				id, err := parseID(arg)
				if err != nil {
					return "", err
				}
				args[i] = commands.FormatID(id)
			}
		}
		return d.Dispatch(ctx, op, args...)
	}
}

func operationUsage() string {
	var b strings.Builder
	for _, op := range commands.Operations() {
		spec := op.Spec()
		params := make([]string, len(spec.Params))
		for i, p := range spec.Params {
			params[i] = "<" + p.String() + ">"
		}
		fmt.Fprintf(&b, "  %s %s\n", spec.Name, strings.Join(params, " "))
	}
	return strings.TrimRight(b.String(), "\n")
}
