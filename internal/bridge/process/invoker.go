// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"vulnscope/shell/internal/bridge/model"
	apperrors "vulnscope/shell/internal/errors"
)

// waitDelay bounds how long Wait keeps draining pipes after the child exits
// or is killed. A backend that leaves a grandchild holding stdout open would
// otherwise hang the call.
const waitDelay = 5 * time.Second

// Invoker runs backend entry points with an interpreter.
type Invoker struct {
	// Runtime is the interpreter executable, e.g. "python3".
	Runtime string
	// Timeout bounds a single call. Zero means wait indefinitely.
	Timeout time.Duration
	// Env is appended to the inherited environment.
	Env []string
}

// Invoke runs <Runtime> <entry point> <command> <args...> in dir and waits
// for it to exit.
//
// A process that starts and exits non-zero is not an error: it is reported
// through the Outcome. Errors are returned only when the runtime could not be
// launched, or when the call was killed because of its timeout or ctx.
func (inv *Invoker) Invoke(ctx context.Context, dir string, req model.Request) (model.Outcome, error) {
	if strings.TrimSpace(inv.Runtime) == "" {
		return model.Outcome{}, apperrors.New(apperrors.LaunchFailed, "failed to launch backend: no interpreter configured")
	}

	callCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(callCtx, inv.Runtime, req.Argv()...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "PYTHONIOENCODING=utf-8")
	cmd.Env = append(cmd.Env, inv.Env...)
	cmd.WaitDelay = waitDelay
	configureSysProcAttr(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := callCtx.Err(); ctxErr != nil {
			return model.Outcome{}, interrupted(ctxErr, inv.Timeout)
		}
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			// Ran to completion and reported failure.
		case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil:
			// Exited, but a descendant kept the pipes open; the exit status stands.
		default:
			return model.Outcome{}, apperrors.Wrap(apperrors.LaunchFailed,
				fmt.Sprintf("failed to launch %s", inv.Runtime), err)
		}
	}

	return model.Outcome{
		Succeeded: cmd.ProcessState.Success(),
		ExitCode:  cmd.ProcessState.ExitCode(),
		Stdout:    decode(stdout.Bytes()),
		Stderr:    decode(stderr.Bytes()),
	}, nil
}

func interrupted(ctxErr error, timeout time.Duration) error {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		if timeout <= 0 {
			return apperrors.Wrap(apperrors.TimedOut, "backend did not finish before the deadline and was stopped", ctxErr)
		}
		return apperrors.Wrap(apperrors.TimedOut,
			fmt.Sprintf("backend did not finish within %s and was stopped", timeout), ctxErr)
	}
	return apperrors.Wrap(apperrors.Canceled, "backend call canceled", ctxErr)
}

// decode converts captured output to text, replacing invalid UTF-8.
func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
