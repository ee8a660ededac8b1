package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const baselineURI = "qualitygate://sloc/baseline"

// registerResources registers all qualitygate MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			baselineURI,
			"SLOC Baseline",
			mcplib.WithResourceDescription("The persisted per-file SLOC baseline of the project"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleBaselineResource,
	)
}

func (h *handlers) handleBaselineResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	b, err := h.slocService().Baseline(h.projectPath)
	if err != nil {
		return nil, fmt.Errorf("reading baseline: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling baseline: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      baselineURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
