package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abdidvp/qualitygate/internal/adapters/outbound/config"
	"github.com/abdidvp/qualitygate/internal/adapters/outbound/logging"
	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// env is what a subcommand needs after the persistent flags are resolved.
type env struct {
	cfg    domain.Config
	logger *slog.Logger
	format string
}

func (o *rootOptions) resolve(cmd *cobra.Command) (*env, error) {
	if o.format != formatJSON && o.format != formatText {
		return nil, fmt.Errorf("invalid format %q (valid: json, text)", o.format)
	}

	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	logFormat, err := logging.ParseFormat(o.logFormat)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Config{Level: level, Format: logFormat, Output: cmd.ErrOrStderr()})

	cfg, err := config.New().Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.configPath != "" {
		logger.Debug("loaded config", slog.String("path", o.configPath))
	}

	return &env{cfg: cfg, logger: logger, format: o.format}, nil
}

// emit writes v as indented JSON, or the text rendering when --format text.
func (e *env) emit(cmd *cobra.Command, v any, text func() string) error {
	if e.format == formatText {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text())
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
