package mcp

import (
	"io"
	"log/slog"

	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/mark3labs/mcp-go/server"
)

// NewQualityGateMCPServer creates an MCP server with all qualitygate tools
// and resources registered against the project at projectPath.
func NewQualityGateMCPServer(projectPath string, cfg domain.Config, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := server.NewMCPServer(
		"qualitygate",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{projectPath: projectPath, cfg: cfg, logger: logger}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
