// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package process

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vulnscope/shell/internal/bridge/model"
	apperrors "vulnscope/shell/internal/errors"
	"vulnscope/shell/internal/testutil"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		outcome  model.Outcome
		want     string
		wantErr  string
		wantKind apperrors.Kind
	}{
		{
			name:    "success returns stdout and ignores stderr",
			outcome: model.Outcome{Succeeded: true, Stdout: `{"reachable": true}`, Stderr: "DeprecationWarning"},
			want:    `{"reachable": true}`,
		},
		{
			name:    "success with empty stdout",
			outcome: model.Outcome{Succeeded: true, Stderr: "noise"},
			want:    "",
		},
		{
			name:     "failure returns stderr verbatim and ignores stdout",
			outcome:  model.Outcome{Succeeded: false, ExitCode: 1, Stdout: `{"error": "x"}`, Stderr: "Traceback (most recent call last):\n  ...\n"},
			wantErr:  "Traceback (most recent call last):\n  ...\n",
			wantKind: apperrors.BackendFailed,
		},
		{
			name:     "failure with empty stderr",
			outcome:  model.Outcome{Succeeded: false, ExitCode: 1, Stdout: "ignored"},
			wantErr:  "",
			wantKind: apperrors.BackendFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.outcome)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.Empty(t, got)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
		})
	}
}

func TestInvokeSuccessCapturesStdoutAndArgv(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{"main.py": testutil.EchoScript})

	inv := &Invoker{Runtime: sh}
	out, err := inv.Invoke(context.Background(), dir, model.Request{
		EntryPoint: model.EntryMain,
		Command:    "analyze",
		Args:       []string{"/src/with space.cpp"},
	})
	require.NoError(t, err)
	assert.True(t, out.Succeeded)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, "analyze|/src/with space.cpp|", out.Stdout)
	assert.Contains(t, out.Stderr, "warning")
}

func TestInvokeRunsInBackendDirectory(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{"main.py": "pwd\n"})

	out, err := (&Invoker{Runtime: sh}).Invoke(context.Background(), dir, model.Request{EntryPoint: model.EntryMain, Command: "history"})
	require.NoError(t, err)

	got, err := filepath.EvalSymlinks(strings.TrimSpace(out.Stdout))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInvokePassesExtraEnvironment(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{"main.py": `printf '%s|%s' "$VULNSCOPE_API_URL" "$PYTHONIOENCODING"` + "\n"})

	inv := &Invoker{Runtime: sh, Env: []string{"VULNSCOPE_API_URL=http://localhost:8000"}}
	out, err := inv.Invoke(context.Background(), dir, model.Request{EntryPoint: model.EntryMain, Command: "check_api"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000|utf-8", out.Stdout)
}

func TestInvokeNonZeroExitIsNotAnError(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{"monitor.py": testutil.FailScript})

	out, err := (&Invoker{Runtime: sh}).Invoke(context.Background(), dir, model.Request{
		EntryPoint: model.EntryMonitor,
		Command:    "check",
		Args:       []string{"12"},
	})
	require.NoError(t, err)
	assert.False(t, out.Succeeded)
	assert.Equal(t, 2, out.ExitCode)
	assert.Equal(t, "backend failed: check", out.Stderr)
}

func TestInvokeLaunchFailures(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{"main.py": testutil.EchoScript})

	tests := []struct {
		name    string
		runtime string
		dir     string
		want    string
	}{
		{
			name:    "missing interpreter",
			runtime: filepath.Join(t.TempDir(), "no-such-python"),
			dir:     dir,
			want:    "failed to launch",
		},
		{
			name:    "missing working directory",
			runtime: sh,
			dir:     filepath.Join(dir, "does-not-exist"),
			want:    "failed to launch " + sh,
		},
		{
			name:    "empty interpreter",
			runtime: "",
			dir:     dir,
			want:    "no interpreter configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Invoker{Runtime: tt.runtime}).Invoke(context.Background(), tt.dir, model.Request{EntryPoint: model.EntryMain, Command: "history"})
			require.Error(t, err)
			assert.Equal(t, apperrors.LaunchFailed, apperrors.KindOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInvokeTimeoutKillsBackend(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{"main.py": "exec sleep 10\n"})

	inv := &Invoker{Runtime: sh, Timeout: 200 * time.Millisecond}
	start := time.Now()
	_, err := inv.Invoke(context.Background(), dir, model.Request{EntryPoint: model.EntryMain, Command: "analyze_folder", Args: []string{"/big"}})
	require.Error(t, err)
	assert.Equal(t, apperrors.TimedOut, apperrors.KindOf(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestInvokeCanceledByCaller(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{"main.py": "exec sleep 10\n"})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	_, err := (&Invoker{Runtime: sh}).Invoke(ctx, dir, model.Request{EntryPoint: model.EntryMain, Command: "dashboard"})
	require.Error(t, err)
	assert.Equal(t, apperrors.Canceled, apperrors.KindOf(err))
}

func TestInvokeDecodesInvalidUTF8Lossily(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{"main.py": `printf 'ok\377done'` + "\n"})

	out, err := (&Invoker{Runtime: sh}).Invoke(context.Background(), dir, model.Request{EntryPoint: model.EntryMain, Command: "report", Args: []string{"1"}})
	require.NoError(t, err)
	assert.Equal(t, "ok\uFFFDdone", out.Stdout)
}

func TestTransportCall(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{
		"main.py":    testutil.EchoScript,
		"monitor.py": testutil.FailScript,
	})

	var logs bytes.Buffer
	tr := &Transport{
		Invoker: &Invoker{Runtime: sh},
		Locator: testutil.FixedLocator{Path: dir, Confirmed: true},
		Logger:  slog.New(slog.NewTextHandler(&logs, nil)),
	}

	got, err := tr.Call(context.Background(), model.Request{EntryPoint: model.EntryMain, Command: "report", Args: []string{"1024"}})
	require.NoError(t, err)
	assert.Equal(t, "report|1024|", got)
	assert.Empty(t, logs.String())

	_, err = tr.Call(context.Background(), model.Request{EntryPoint: model.EntryMonitor, Command: "remove", Args: []string{"3"}})
	require.Error(t, err)
	assert.Equal(t, "backend failed: remove", err.Error())
	assert.Equal(t, apperrors.BackendFailed, apperrors.KindOf(err))
}

func TestTransportMissingBackendDirIsLaunchFailure(t *testing.T) {
	sh := testutil.Shell(t)
	tr := &Transport{
		Invoker: &Invoker{Runtime: sh},
		Locator: testutil.FixedLocator{Path: filepath.Join(t.TempDir(), "backend")},
		Logger:  slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	}

	_, err := tr.Call(context.Background(), model.Request{EntryPoint: model.EntryMain, Command: "history"})
	require.Error(t, err)
	assert.Equal(t, apperrors.LaunchFailed, apperrors.KindOf(err))
}

func TestTransportLogsOnlyMissingBackend(t *testing.T) {
	sh := testutil.Shell(t)
	dir := testutil.StubBackend(t, map[string]string{"main.py": testutil.EchoScript})

	tests := []struct {
		name    string
		loc     testutil.FixedLocator
		wantLog string
	}{
		{name: "found near executable", loc: testutil.FixedLocator{Path: dir, Confirmed: true}},
		{name: "found in working directory", loc: testutil.FixedLocator{Path: dir, Confirmed: true, Fallback: true}},
		{name: "missing", loc: testutil.FixedLocator{Path: filepath.Join(dir, "backend"), Fallback: true}, wantLog: "backend directory not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			tr := &Transport{
				Invoker: &Invoker{Runtime: sh},
				Locator: tt.loc,
				Logger:  slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn})),
			}
			_, _ = tr.Call(context.Background(), model.Request{EntryPoint: model.EntryMain, Command: "history"})
			if tt.wantLog == "" {
				assert.Empty(t, logs.String())
			} else {
				assert.Contains(t, logs.String(), tt.wantLog)
			}
		})
	}
}
