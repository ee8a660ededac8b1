package cli

import (
	"errors"
	"log/slog"

	"github.com/abdidvp/qualitygate/internal/adapters/outbound/baseline"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/scanner"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/tui"
	"github.com/abdidvp/qualitygate/internal/application"
	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/spf13/cobra"
)

func newSlocCmd(opts *rootOptions) *cobra.Command {
	var (
		doBaseline bool
		doUpdate   bool
		doFinal    bool
		gitChanged bool
	)

	cmd := &cobra.Command{
		Use:     "sloc <project_dir> (--baseline <path>... | --update [<path>...] | --final)",
		Aliases: []string{"sloc_tracker", "sloc-tracker"},
		Short:   "Track source lines of code against a baseline",
		Long: "Record a SLOC baseline for the given files, update their current counts, or print the " +
			"final per-file and per-category report. Directories expand to the source files below them.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			projectDir, paths := args[0], args[1:]
			svc := application.NewSlocService(baseline.New(), scanner.New(), gitinfo.New(), e.cfg)

			var report *domain.SlocReport
			switch {
			case doBaseline:
				report, err = svc.CreateBaseline(projectDir, paths)
			case doUpdate:
				if gitChanged {
					changed, err := svc.ChangedPaths(projectDir)
					if err != nil {
						return err
					}
					e.logger.Debug("changed files from git", slog.Int("count", len(changed)))
					paths = append(paths, changed...)
					if len(paths) == 0 {
						return errors.New("--git-changed found no changed source files")
					}
				}
				report, err = svc.Update(projectDir, paths)
			case doFinal:
				if len(paths) > 0 {
					return errors.New("--final takes no paths")
				}
				report, err = svc.FinalReport(projectDir)
			}
			if err != nil {
				return err
			}

			return e.emit(cmd, report, func() string { return tui.RenderSlocReport(report) })
		},
	}

	cmd.Flags().BoolVar(&doBaseline, "baseline", false, "Record the current SLOC of the given paths as their baseline")
	cmd.Flags().BoolVar(&doUpdate, "update", false, "Recompute current SLOC for the given paths, or every tracked path")
	cmd.Flags().BoolVar(&doFinal, "final", false, "Print the final report without writing")
	cmd.Flags().BoolVar(&gitChanged, "git-changed", false, "With --update, also update files changed in the git worktree")
	cmd.MarkFlagsMutuallyExclusive("baseline", "update", "final")
	cmd.MarkFlagsOneRequired("baseline", "update", "final")
	cmd.MarkFlagsMutuallyExclusive("git-changed", "baseline")
	cmd.MarkFlagsMutuallyExclusive("git-changed", "final")

	return cmd
}
