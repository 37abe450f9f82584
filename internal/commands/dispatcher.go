// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package commands is the registry of operations the front end can invoke
// and the dispatcher that turns each call into a backend request.
//
// Every operation has a typed method on Dispatcher. Each method formats its
// parameters as strings, builds the request from the operation's static
// Spec and hands it to the bridge. Payloads and error messages come back
// as opaque text; nothing here parses them.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"vulnscope/shell/internal/bridge"
	"vulnscope/shell/internal/bridge/model"
	apperrors "vulnscope/shell/internal/errors"
	"vulnscope/shell/internal/hostopen"
	"vulnscope/shell/internal/logging"
	"vulnscope/shell/internal/tracing"
)

// Dispatcher maps operations onto bridge calls. It holds no mutable state,
// so concurrent calls each run their own backend process.
type Dispatcher struct {
	bridge bridge.Bridge
	opener hostopen.Opener
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil logger discards logs.
func NewDispatcher(b bridge.Bridge, opener hostopen.Opener, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Dispatcher{bridge: b, opener: opener, logger: logger}
}

// FormatID renders a numeric id as the backend expects it: plain base 10,
// no grouping or locale.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// BuildRequest resolves a backend operation and its string arguments into a request.
func BuildRequest(op Operation, args ...string) (model.Request, error) {
	spec := op.Spec()
	if spec.Name == "" {
		return model.Request{}, apperrors.New(apperrors.InvalidArguments, fmt.Sprintf("unknown operation %d", int(op)))
	}
	if spec.Host() {
		return model.Request{}, apperrors.New(apperrors.InvalidArguments, fmt.Sprintf("%s is not a backend operation", spec.Name))
	}
	if len(args) != len(spec.Params) {
		return model.Request{}, apperrors.New(apperrors.InvalidArguments,
			fmt.Sprintf("%s takes %d argument(s), got %d", spec.Name, len(spec.Params), len(args)))
	}
	return model.Request{
		EntryPoint: spec.EntryPoint,
		Command:    spec.Keyword,
		Args:       append([]string(nil), args...),
	}, nil
}

// Dispatch runs op with already-formatted string arguments. The typed
// methods below are the usual entry points; Dispatch serves callers that
// select operations by name.
func (d *Dispatcher) Dispatch(ctx context.Context, op Operation, args ...string) (string, error) {
	spec := op.Spec()
	callID := ulid.Make().String()
	log := d.logger.With("call_id", callID, "operation", op.String())

	ctx, span := tracing.StartSpan(ctx, "bridge."+op.String())
	defer span.End()
	span.SetAttributes(tracing.StringAttr("bridge.call_id", callID), tracing.IntAttr("bridge.args", len(args)))

	start := time.Now()
	var (
		payload string
		err     error
	)
	if spec.Host() && spec.Name != "" {
		err = d.open(ctx, spec, args)
	} else {
		var req model.Request
		req, err = BuildRequest(op, args...)
		if err == nil {
			span.SetAttributes(
				tracing.StringAttr("bridge.entry_point", string(req.EntryPoint)),
				tracing.StringAttr("bridge.command", req.Command),
			)
			log.Debug("backend call", "entry_point", string(req.EntryPoint), "command", req.Command,
				"args", logging.MaskArgs(req.Args))
			payload, err = d.bridge.Call(ctx, req)
		}
	}

	elapsed := time.Since(start)
	if err != nil {
		tracing.RecordError(span, err)
		log.Info("call failed", "kind", string(apperrors.KindOf(err)), "duration_ms", elapsed.Milliseconds())
		return "", err
	}
	tracing.SetOK(span)
	log.Debug("call finished", "duration_ms", elapsed.Milliseconds(), "payload_bytes", len(payload))
	return payload, nil
}

func (d *Dispatcher) open(ctx context.Context, spec Spec, args []string) error {
	if len(args) != len(spec.Params) {
		return apperrors.New(apperrors.InvalidArguments,
			fmt.Sprintf("%s takes %d argument(s), got %d", spec.Name, len(spec.Params), len(args)))
	}
	if d.opener == nil {
		return apperrors.New(apperrors.HostOpenFailed, "opening paths is not supported here")
	}
	return d.opener.Open(ctx, args[0])
}

// AnalyzeFile runs the full analysis pipeline on one source file.
func (d *Dispatcher) AnalyzeFile(ctx context.Context, filePath string) (string, error) {
	return d.Dispatch(ctx, OpAnalyzeFile, filePath)
}

// AnalyzeFolder analyzes every source file under folderPath.
func (d *Dispatcher) AnalyzeFolder(ctx context.Context, folderPath string) (string, error) {
	return d.Dispatch(ctx, OpAnalyzeFolder, folderPath)
}

// History lists past analyses.
func (d *Dispatcher) History(ctx context.Context) (string, error) {
	return d.Dispatch(ctx, OpListHistory)
}

// Report fetches the report of one analysis.
func (d *Dispatcher) Report(ctx context.Context, analysisID int64) (string, error) {
	return d.Dispatch(ctx, OpGetReport, FormatID(analysisID))
}

func (d *Dispatcher) Dashboard(ctx context.Context) (string, error) {
	return d.Dispatch(ctx, OpGetDashboard)
}

func (d *Dispatcher) TrendData(ctx context.Context) (string, error) {
	return d.Dispatch(ctx, OpGetTrendData)
}

// ExtractFunctions lists the functions found in a source file without analyzing them.
func (d *Dispatcher) ExtractFunctions(ctx context.Context, filePath string) (string, error) {
	return d.Dispatch(ctx, OpExtractFunctions, filePath)
}

// CheckAPI asks the backend whether its inference API is reachable.
func (d *Dispatcher) CheckAPI(ctx context.Context) (string, error) {
	return d.Dispatch(ctx, OpCheckAPI)
}

// RegisterProject starts monitoring a folder for changes.
func (d *Dispatcher) RegisterProject(ctx context.Context, folderPath string) (string, error) {
	return d.Dispatch(ctx, OpRegisterProject, folderPath)
}

func (d *Dispatcher) ListProjects(ctx context.Context) (string, error) {
	return d.Dispatch(ctx, OpListProjects)
}

// CheckProject reports files changed, added or deleted since the last refresh.
func (d *Dispatcher) CheckProject(ctx context.Context, projectID int64) (string, error) {
	return d.Dispatch(ctx, OpCheckProject, FormatID(projectID))
}

// RefreshProject records the current state of a monitored project as the new baseline.
func (d *Dispatcher) RefreshProject(ctx context.Context, projectID int64) (string, error) {
	return d.Dispatch(ctx, OpRefreshProject, FormatID(projectID))
}

func (d *Dispatcher) RemoveProject(ctx context.Context, projectID int64) (string, error) {
	return d.Dispatch(ctx, OpRemoveProject, FormatID(projectID))
}

func (d *Dispatcher) DeleteAnalysis(ctx context.Context, analysisID int64) (string, error) {
	return d.Dispatch(ctx, OpDeleteAnalysis, FormatID(analysisID))
}

func (d *Dispatcher) Settings(ctx context.Context) (string, error) {
	return d.Dispatch(ctx, OpGetSettings)
}

// SaveSettings stores a backend setting, such as the inference API URL.
func (d *Dispatcher) SaveSettings(ctx context.Context, value string) (string, error) {
	return d.Dispatch(ctx, OpSaveSettings, value)
}

// GeneratePDF renders an analysis report to PDF and returns what the backend
// reports, typically the output file path.
func (d *Dispatcher) GeneratePDF(ctx context.Context, analysisID int64) (string, error) {
	return d.Dispatch(ctx, OpGeneratePDF, FormatID(analysisID))
}

// OpenPath opens path with the host's default handler. The backend is not involved.
func (d *Dispatcher) OpenPath(ctx context.Context, path string) error {
	_, err := d.Dispatch(ctx, OpOpenPath, path)
	return err
}
