package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/qualitygate/internal/adapters/outbound/baseline"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/detector"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/runner"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/scanner"
	"github.com/abdidvp/qualitygate/internal/application"
	"github.com/abdidvp/qualitygate/internal/domain"
)

// handlers binds tool and resource handlers to one project.
type handlers struct {
	projectPath string
	cfg         domain.Config
	logger      *slog.Logger
}

// registerTools registers all qualitygate MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcplib.NewTool("quality_gate",
			mcplib.WithDescription("Run lint and build checks (and tests when requested) and return the gate report as JSON"),
			mcplib.WithBoolean("test", mcplib.Description("Also run the test check")),
		),
		h.handleQualityGate,
	)

	s.AddTool(
		mcplib.NewTool("validate_task",
			mcplib.WithDescription("Validate the task-update and code-review documents of a task"),
			mcplib.WithString("task",
				mcplib.Required(),
				mcplib.Description("Task name, the directory under the tasks dir"),
			),
		),
		h.handleValidateTask,
	)

	s.AddTool(
		mcplib.NewTool("sloc_baseline",
			mcplib.WithDescription("Record the current SLOC of files or directories as their baseline"),
			mcplib.WithString("paths",
				mcplib.Required(),
				mcplib.Description("Comma-separated paths relative to the project root"),
			),
		),
		h.handleSlocBaseline,
	)

	s.AddTool(
		mcplib.NewTool("sloc_update",
			mcplib.WithDescription("Recompute current SLOC and deltas for the given paths, or every tracked path"),
			mcplib.WithString("paths", mcplib.Description("Comma-separated paths relative to the project root")),
			mcplib.WithBoolean("git_changed", mcplib.Description("Also update files changed in the git worktree")),
		),
		h.handleSlocUpdate,
	)

	s.AddTool(
		mcplib.NewTool("sloc_report",
			mcplib.WithDescription("Return the final SLOC report with per-category totals and a markdown table"),
		),
		h.handleSlocReport,
	)
}

func (h *handlers) slocService() *application.SlocService {
	return application.NewSlocService(baseline.New(), scanner.New(), gitinfo.New(), h.cfg)
}

func (h *handlers) handleQualityGate(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	withTests, _ := request.GetArguments()["test"].(bool)

	svc := application.NewGateService(
		runner.New(runner.WithLogger(h.logger)),
		detector.New(),
		gitinfo.New(),
		h.cfg,
		h.logger,
	)
	report, err := svc.Run(ctx, h.projectPath, application.Checks(withTests))
	if err != nil {
		return errorResult(fmt.Sprintf("quality gate failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *handlers) handleValidateTask(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	task, err := request.RequireString("task")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	report, err := application.NewTaskService(h.cfg).Validate(h.projectPath, task)
	if err != nil {
		return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *handlers) handleSlocBaseline(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	pathsStr, err := request.RequireString("paths")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	report, err := h.slocService().CreateBaseline(h.projectPath, splitAndTrim(pathsStr))
	if err != nil {
		return errorResult(fmt.Sprintf("baseline failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *handlers) handleSlocUpdate(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := request.GetArguments()
	var paths []string
	if pathsStr, ok := args["paths"].(string); ok && pathsStr != "" {
		paths = splitAndTrim(pathsStr)
	}

	svc := h.slocService()
	if gitChanged, _ := args["git_changed"].(bool); gitChanged {
		changed, err := svc.ChangedPaths(h.projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("update failed: %v", err)), nil
		}
		if len(paths) == 0 && len(changed) == 0 {
			return textResult("No changed source files."), nil
		}
		paths = append(paths, changed...)
	}

	report, err := svc.Update(h.projectPath, paths)
	if err != nil {
		return errorResult(fmt.Sprintf("update failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *handlers) handleSlocReport(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	report, err := h.slocService().FinalReport(h.projectPath)
	if err != nil {
		return errorResult(fmt.Sprintf("report failed: %v", err)), nil
	}
	return jsonResult(report)
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
