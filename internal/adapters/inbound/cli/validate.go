package cli

import (
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/tui"
	"github.com/abdidvp/qualitygate/internal/application"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate <project_dir> <task-name>",
		Aliases: []string{"task_validator", "task-validator"},
		Short:   "Validate the markdown documents of a task",
		Long: "Check that a task's task-update and code-review documents exist, carry their required " +
			"sections and have their checklists completed. Exits 1 if any document is invalid.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			report, err := application.NewTaskService(e.cfg).Validate(args[0], args[1])
			if err != nil {
				return err
			}

			if err := e.emit(cmd, report, func() string { return tui.RenderTaskValidation(report) }); err != nil {
				return err
			}
			if !report.Valid {
				return failed()
			}
			return nil
		},
	}

	return cmd
}
