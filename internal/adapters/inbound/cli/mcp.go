package cli

import (
	mcpadapter "github.com/abdidvp/qualitygate/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the qualitygate MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the qualitygate MCP server (stdio)",
		Long: "Start the qualitygate MCP server using stdio transport. AI coding assistants can run " +
			"the quality gate, validate tasks and maintain the SLOC baseline through it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			if projectPath == "" {
				projectPath = "."
			}
			s := mcpadapter.NewQualityGateMCPServer(projectPath, e.cfg, e.logger)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
