package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/qualitygate/internal/adapters/outbound/config"
	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [project_dir]",
		Short: "Generate a .qualitygate.yaml configuration file",
		Long: "Create a .qualitygate.yaml holding the compiled-in defaults. The file is only read " +
			"when passed explicitly with --config.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
				return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, path)
			}

			dest := filepath.Join(absPath, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			content, err := generateConfig()
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, content, 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .qualitygate.yaml")

	return cmd
}

func generateConfig() ([]byte, error) {
	body, err := config.Marshal(domain.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("rendering config: %w", err)
	}

	header := "# qualitygate configuration\n" +
		"# Use with: qualitygate --config " + config.FileName + " <command> ...\n\n"

	footer := `
# Candidate commands per check replace the toolchain defaults, tried in order:
# commands:
#   lint:
#     - npm run lint
#     - npx --no-install eslint .
#   build:
#     - npm run build
#   test:
#     - npm test
`
	return append(append([]byte(header), body...), footer...), nil
}
