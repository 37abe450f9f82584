// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line front end of Vulnscope.
// Every backend operation is one cobra subcommand that calls the matching
// commands.Dispatcher method, writes the payload to stdout unchanged and
// reports failures on stderr.
package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vulnscope/shell/internal/bridge"
	"vulnscope/shell/internal/commands"
	"vulnscope/shell/internal/config"
	"vulnscope/shell/internal/hostopen"
	"vulnscope/shell/internal/logging"
	"vulnscope/shell/internal/tracing"
)

// errReported marks an error that was already rendered to stderr.
var errReported = stderrors.New("reported")

// app carries flag values and the lazily built dispatcher shared by all
// subcommands of one invocation.
type app struct {
	configPath string
	backendDir string
	python     string
	timeout    string
	logLevel   string
	pretty     bool

	// opener replaces the host opener; nil uses hostopen.System.
	opener hostopen.Opener

	cfg        config.Config
	loaded     bool
	logger     *slog.Logger
	dispatcher *commands.Dispatcher
	closers    []func(context.Context) error
}

// Execute runs the CLI and exits with status 1 on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, &app{}, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close(context.Background())
	if err == nil {
		return 0
	}
	if !stderrors.Is(err, errReported) {
		logging.RenderError(stderr, root.Name(), err)
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "vulnscope",
		Short: "Vulnscope CLI for the vulnerability analysis backend",
		Long: `Vulnscope runs source code vulnerability analyses through its Python backend.

Each subcommand starts one backend process, waits for it and prints what the
backend wrote: the payload on stdout when it succeeds, its error message on
stderr when it fails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default is the XDG config dir)")
	pf.StringVar(&a.backendDir, "backend-dir", "", "backend directory (default: located next to the executable)")
	pf.StringVar(&a.python, "python", "", "Python runtime used to start the backend")
	pf.StringVar(&a.timeout, "timeout", "", `bound on one backend call, e.g. "90s"; "0" disables it`)
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.pretty, "pretty", false, "indent JSON payloads")

	root.AddCommand(
		newAnalyzeCmd(a),
		newAnalyzeFolderCmd(a),
		newFunctionsCmd(a),
		newHistoryCmd(a),
		newReportCmd(a),
		newDashboardCmd(a),
		newTrendCmd(a),
		newDeleteCmd(a),
		newPDFCmd(a),
		newCheckAPICmd(a),
		newMonitorCmd(a),
		newSettingsCmd(a),
		newOpenCmd(a),
		newNamedCallCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the config file and applies flag overrides on top of it.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	if a.loaded {
		return a.cfg, nil
	}

	var (
		cfg config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend-dir") {
		cfg.BackendDir = a.backendDir
	}
	if flags.Changed("python") {
		cfg.Python = a.python
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}

	a.cfg = cfg
	a.loaded = true
	return cfg, nil
}

// setup builds the logger, tracer and dispatcher on first use.
func (a *app) setup(cmd *cobra.Command) (*commands.Dispatcher, error) {
	if a.dispatcher != nil {
		return a.dispatcher, nil
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.CallTimeout()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return closeLog() })
	a.logger = logger

	shutdown, err := tracing.Setup(cmd.Context(), cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("set up tracing: %w", err)
	}
	a.closers = append(a.closers, shutdown)

	opener := a.opener
	if opener == nil {
		opener = hostopen.System{}
	}
	b := bridge.New(bridge.Options{
		Python:     cfg.Python,
		BackendDir: cfg.BackendDir,
		Timeout:    timeout,
		Env:        cfg.Environ(),
		Logger:     logger,
	})
	a.dispatcher = commands.NewDispatcher(b, opener, logger)
	return a.dispatcher, nil
}

func (a *app) close(ctx context.Context) {
	// Tracing shuts down before the log file closes.
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && a.logger != nil {
			a.logger.Warn("shutdown", "error", err)
		}
	}
	a.closers = nil
}
