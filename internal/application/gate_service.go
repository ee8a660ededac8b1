package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/abdidvp/qualitygate/internal/domain/diagnostics"
	"github.com/google/uuid"
)

// GateService runs the quality gate: for each check, resolve a candidate
// command, run it, and parse its output when it fails.
type GateService struct {
	runner   domain.CommandRunner
	detector domain.ToolchainDetector
	git      domain.GitInfo
	cfg      domain.Config
	logger   *slog.Logger
}

func NewGateService(
	runner domain.CommandRunner,
	detector domain.ToolchainDetector,
	git domain.GitInfo,
	cfg domain.Config,
	logger *slog.Logger,
) *GateService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &GateService{
		runner:   runner,
		detector: detector,
		git:      git,
		cfg:      cfg,
		logger:   logger,
	}
}

// Checks returns the checks run by default, optionally including tests.
func Checks(withTests bool) []string {
	if withTests {
		return []string{domain.CheckLint, domain.CheckBuild, domain.CheckTest}
	}
	return []string{domain.CheckLint, domain.CheckBuild}
}

// Run executes checks sequentially against projectDir. It fails only for
// environment errors; tool failures are recorded in the report.
func (s *GateService) Run(ctx context.Context, projectDir string, checks []string) (*domain.QualityGateReport, error) {
	absDir, err := resolveProjectDir(projectDir)
	if err != nil {
		return nil, err
	}
	for _, c := range checks {
		if !domain.IsValidCheck(c) {
			return nil, fmt.Errorf("%w %q (valid: %s)", domain.ErrUnknownCheck, c, strings.Join(domain.ValidChecks, ", "))
		}
	}

	runID := uuid.NewString()
	logger := s.logger.With(slog.String("run_id", runID))

	ecosystems := s.detector.Detect(absDir)
	logger.Debug("detected toolchain", slog.Any("ecosystems", ecosystems))

	results := make(map[string]domain.CheckResult, len(checks))
	for _, check := range checks {
		outcome := s.runner.Run(ctx, domain.RunRequest{
			Dir:        absDir,
			Check:      check,
			Candidates: s.cfg.CandidatesFor(check, ecosystems),
			Timeout:    s.cfg.Timeout(),
		})
		result := toCheckResult(check, outcome, s.cfg.Timeout())
		results[check] = result

		logger.Info("check finished",
			slog.String("check", check),
			slog.String("command", result.Command),
			slog.Bool("skipped", result.Skipped()),
			slog.Bool("failed", result.Failed()),
			slog.Int("errors", len(result.Errors)),
		)
	}

	report := domain.NewQualityGateReport(absDir, results)
	report.RunID = runID
	if s.git.IsGitRepo(absDir) {
		if hash, err := s.git.CommitHash(absDir); err == nil {
			report.Commit = hash
		} else {
			logger.Debug("no commit hash", slog.String("error", err.Error()))
		}
	}
	return report, nil
}

// toCheckResult maps a runner outcome to a check result. Errors are parsed
// only for failed checks, so a passed check never carries errors.
func toCheckResult(check string, outcome domain.RunOutcome, timeout time.Duration) domain.CheckResult {
	if !outcome.Resolved {
		reason := "no candidate command resolved"
		if len(outcome.Tried) > 0 {
			reason += " (tried: " + strings.Join(outcome.Tried, ", ") + ")"
		}
		return domain.CheckResult{
			Errors:        []domain.ErrorEntry{},
			SkippedReason: reason,
		}
	}

	result := domain.CheckResult{
		Command:    outcome.Command,
		ExitCode:   outcome.ExitCode,
		DurationMs: outcome.Duration.Milliseconds(),
		RawOutput:  outcome.Output,
		Errors:     []domain.ErrorEntry{},
	}

	switch {
	case outcome.TimedOut:
		result.Passed = domain.BoolPtr(false)
		result.Errors = []domain.ErrorEntry{{Message: TimeoutMessage(timeout)}}
	case outcome.ExitCode == 0:
		result.Passed = domain.BoolPtr(true)
	default:
		result.Passed = domain.BoolPtr(false)
		result.Errors = diagnostics.Parse(outcome.Output, check)
	}
	return result
}

// TimeoutMessage is the synthetic error recorded for a timed out check.
func TimeoutMessage(timeout time.Duration) string {
	if timeout%time.Second == 0 {
		return fmt.Sprintf("command timed out after %ds", int(timeout/time.Second))
	}
	return fmt.Sprintf("command timed out after %s", timeout)
}

// resolveProjectDir returns the absolute path of an existing directory.
func resolveProjectDir(projectDir string) (string, error) {
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", domain.ErrProjectNotFound, projectDir)
	}
	return absDir, nil
}
