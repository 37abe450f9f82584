// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package commands

import (
	"fmt"

	"vulnscope/shell/internal/bridge/model"
)

// Operation is one capability exposed to the front end. The set is closed:
// adding an operation means adding a constant and a row in specs.
type Operation int

const (
	OpAnalyzeFile Operation = iota
	OpAnalyzeFolder
	OpListHistory
	OpGetReport
	OpGetDashboard
	OpGetTrendData
	OpExtractFunctions
	OpCheckAPI
	OpRegisterProject
	OpListProjects
	OpCheckProject
	OpRefreshProject
	OpRemoveProject
	OpDeleteAnalysis
	OpGetSettings
	OpSaveSettings
	OpGeneratePDF
	OpOpenPath

	numOperations
)

// Param describes the type of one operation parameter. Every parameter is
// passed to the backend as a string; the kind decides how it is formatted.
type Param int

const (
	// ParamPath is a filesystem path passed through unchanged.
	ParamPath Param = iota
	// ParamID is a non-negative integer id, formatted in base 10.
	ParamID
	// ParamText is an opaque string such as a settings value.
	ParamText
)

func (p Param) String() string {
	switch p {
	case ParamPath:
		return "path"
	case ParamID:
		return "id"
	case ParamText:
		return "value"
	default:
		return fmt.Sprintf("param(%d)", int(p))
	}
}

// Spec is the static description of an operation.
type Spec struct {
	// Name is the front-end facing operation name.
	Name string
	// EntryPoint is empty for operations handled by the host, not the backend.
	EntryPoint model.EntryPoint
	Keyword    string
	Params     []Param
}

// Host reports whether the operation bypasses the backend.
func (s Spec) Host() bool { return s.EntryPoint == "" }

var specs = [numOperations]Spec{
	OpAnalyzeFile:      {Name: "analyze_file", EntryPoint: model.EntryMain, Keyword: "analyze", Params: []Param{ParamPath}},
	OpAnalyzeFolder:    {Name: "analyze_folder", EntryPoint: model.EntryMain, Keyword: "analyze_folder", Params: []Param{ParamPath}},
	OpListHistory:      {Name: "get_history", EntryPoint: model.EntryMain, Keyword: "history"},
	OpGetReport:        {Name: "get_report", EntryPoint: model.EntryMain, Keyword: "report", Params: []Param{ParamID}},
	OpGetDashboard:     {Name: "get_dashboard", EntryPoint: model.EntryMain, Keyword: "dashboard"},
	OpGetTrendData:     {Name: "get_trend_data", EntryPoint: model.EntryMain, Keyword: "get_trend_data"},
	OpExtractFunctions: {Name: "extract_functions", EntryPoint: model.EntryMain, Keyword: "extract_functions", Params: []Param{ParamPath}},
	OpCheckAPI:         {Name: "check_api", EntryPoint: model.EntryMain, Keyword: "check_api"},
	OpRegisterProject:  {Name: "register_project", EntryPoint: model.EntryMonitor, Keyword: "register", Params: []Param{ParamPath}},
	OpListProjects:     {Name: "list_projects", EntryPoint: model.EntryMonitor, Keyword: "list"},
	OpCheckProject:     {Name: "check_project", EntryPoint: model.EntryMonitor, Keyword: "check", Params: []Param{ParamID}},
	OpRefreshProject:   {Name: "refresh_project", EntryPoint: model.EntryMonitor, Keyword: "refresh", Params: []Param{ParamID}},
	OpRemoveProject:    {Name: "remove_project", EntryPoint: model.EntryMonitor, Keyword: "remove", Params: []Param{ParamID}},
	OpDeleteAnalysis:   {Name: "delete_analysis", EntryPoint: model.EntryMain, Keyword: "delete_analysis", Params: []Param{ParamID}},
	OpGetSettings:      {Name: "get_settings", EntryPoint: model.EntryMain, Keyword: "get_settings"},
	OpSaveSettings:     {Name: "save_settings", EntryPoint: model.EntryMain, Keyword: "save_settings", Params: []Param{ParamText}},
	OpGeneratePDF:      {Name: "generate_pdf", EntryPoint: model.EntryMain, Keyword: "generate_pdf", Params: []Param{ParamID}},
	OpOpenPath:         {Name: "open_path", Params: []Param{ParamPath}},
}

// Spec returns the operation's static description.
func (op Operation) Spec() Spec {
	if op < 0 || op >= numOperations {
		return Spec{}
	}
	return specs[op]
}

func (op Operation) String() string {
	if s := op.Spec(); s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("operation(%d)", int(op))
}

// Operations returns every operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, 0, numOperations)
	for op := Operation(0); op < numOperations; op++ {
		ops = append(ops, op)
	}
	return ops
}

// ByName looks up an operation by its front-end name.
func ByName(name string) (Operation, bool) {
	for op := Operation(0); op < numOperations; op++ {
		if specs[op].Name == name {
			return op, true
		}
	}
	return 0, false
}
