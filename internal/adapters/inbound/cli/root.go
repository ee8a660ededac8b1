package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	format     string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "qualitygate",
		Short: "File-based quality gate for agent workflows",
		Long: "qualitygate runs lint/build/test checks, validates task documents and tracks " +
			"source lines of code against a baseline. Every command prints one JSON document " +
			"and reports pass/fail through its exit code.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a .qualitygate.yaml file (defaults are used when omitted)")
	pf.StringVar(&opts.format, "format", formatJSON, "Output format (json, text)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "auto", "Log format (auto, text, json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGateCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newSlocCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command; ctx is cancelled on interrupt by main.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
