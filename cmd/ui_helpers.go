// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"vulnscope/shell/internal/commands"
	apperrors "vulnscope/shell/internal/errors"
	"vulnscope/shell/internal/logging"
	"vulnscope/shell/internal/terminal"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startSpinner shows an animated line on w while a backend call runs and
// returns the function that removes it. Nothing is drawn unless w is a terminal.
func startSpinner(w io.Writer, text string) func() {
	if !terminal.IsTerminal(w) {
		return func() {}
	}
	f, ok := w.(cursor.Writer)
	if !ok {
		return func() {}
	}
	if limit := terminal.Width(w) - 2; limit > 0 && len(text) > limit {
		text = text[:limit]
	}

	area := cursor.NewArea().WithWriter(f)
	hide := cursor.NewCursor().WithWriter(f)
	hide.Hide()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		for {
			frame := pterm.FgCyan.Sprint(spinnerFrames[i%len(spinnerFrames)])
			area.Update(fmt.Sprintf("%s %s", frame, text))
			select {
			case <-stop:
				return
			case <-t.C:
				i++
			}
		}
	}()

	return func() {
		close(stop)
		wg.Wait()
		area.Clear()
		hide.Show()
	}
}

// writePayload copies a backend payload to w. With pretty set, a payload that
// is valid JSON is re-indented; anything else is written unchanged.
func writePayload(w io.Writer, payload string, pretty bool) error {
	if trimmed := bytes.TrimSpace([]byte(payload)); pretty && json.Valid(trimmed) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, trimmed, "", "  "); err == nil {
			buf.WriteByte('\n')
			_, err = w.Write(buf.Bytes())
			return err
		}
	}
	_, err := io.WriteString(w, payload)
	return err
}

// parseID parses an analysis or project id given on the command line.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, apperrors.New(apperrors.InvalidArguments, fmt.Sprintf("invalid id %q: expected a non-negative integer", s))
	}
	return id, nil
}

// callFunc is one dispatcher call made by a subcommand.
type callFunc func(ctx context.Context, d *commands.Dispatcher, args []string) (string, error)

// runCall sets up the dispatcher, runs call behind a spinner and prints the
// result. Backend failures are rendered under label and reported once.
func (a *app) runCall(cmd *cobra.Command, label, activity string, args []string, call callFunc) error {
	d, err := a.setup(cmd)
	if err != nil {
		return err
	}

	stop := startSpinner(cmd.ErrOrStderr(), activity)
	payload, err := call(cmd.Context(), d, args)
	stop()

	if err != nil {
		logging.RenderError(cmd.ErrOrStderr(), label, err)
		return errReported
	}
	return writePayload(cmd.OutOrStdout(), payload, a.pretty)
}

// idCall adapts a dispatcher method taking one id to a callFunc.
func idCall(fn func(d *commands.Dispatcher, ctx context.Context, id int64) (string, error)) callFunc {
	return func(ctx context.Context, d *commands.Dispatcher, args []string) (string, error) {
		id, err := parseID(args[0])
		if err != nil {
			return "", err
		}
		return fn(d, ctx, id)
	}
}

// pathCall adapts a dispatcher method taking one path or text value.
func pathCall(fn func(d *commands.Dispatcher, ctx context.Context, s string) (string, error)) callFunc {
	return func(ctx context.Context, d *commands.Dispatcher, args []string) (string, error) {
		return fn(d, ctx, args[0])
	}
}

// noArgCall adapts a dispatcher method without parameters.
func noArgCall(fn func(d *commands.Dispatcher, ctx context.Context) (string, error)) callFunc {
	return func(ctx context.Context, d *commands.Dispatcher, _ []string) (string, error) {
		return fn(d, ctx)
	}
}

// callCommand describes a subcommand backed by one dispatcher call.
type callCommand struct {
	Use      string
	Short    string
	Long     string
	Label    string // prefix of rendered errors
	Activity string // spinner text
	Args     cobra.PositionalArgs
	Call     callFunc
}

func (a *app) newCallCmd(c callCommand) *cobra.Command {
	return &cobra.Command{
		Use:   c.Use,
		Short: c.Short,
		Long:  c.Long,
		Args:  c.Args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCall(cmd, c.Label, c.Activity, args, c.Call)
		},
	}
}
