package cli

import (
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/detector"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/runner"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/tui"
	"github.com/abdidvp/qualitygate/internal/application"
	"github.com/spf13/cobra"
)

func newGateCmd(opts *rootOptions) *cobra.Command {
	var withTests bool

	cmd := &cobra.Command{
		Use:     "gate <project_dir>",
		Aliases: []string{"quality_gate", "quality-gate"},
		Short:   "Run lint and build (and optionally test) checks",
		Long: "Run lint and build checks against a project directory, trying candidate commands in order. " +
			"A check whose tool cannot be found is skipped. Exits 1 if any check failed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			svc := application.NewGateService(
				runner.New(runner.WithLogger(e.logger)),
				detector.New(),
				gitinfo.New(),
				e.cfg,
				e.logger,
			)

			report, err := svc.Run(cmd.Context(), args[0], application.Checks(withTests))
			if err != nil {
				return err
			}

			if err := e.emit(cmd, report, func() string { return tui.RenderGateReport(report) }); err != nil {
				return err
			}
			if !report.Passed {
				return failed()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withTests, "test", false, "Also run the test check")

	return cmd
}
