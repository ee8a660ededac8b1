// Package runner executes quality-gate candidate commands as subprocesses.
//
// A candidate is tried only if its tool resolves. A candidate that runs but
// reports its own tool as missing (exit 127, a shell "command not found"
// line, a missing package.json script) is treated the same as one whose
// executable is not on PATH, and the next candidate is tried. The first
// resolved candidate is the check, whatever its exit code.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/abdidvp/qualitygate/internal/domain"
)

const (
	defaultWaitDelay = 2 * time.Second
	defaultMaxOutput = 4 * 1024 * 1024
)

// exitNotFound is the shell convention for "command not found".
const exitNotFound = 127

var unresolvedMarkers = []string{
	"command not found",
	"Missing script:",
	"could not determine executable to run",
	"is not recognized as an internal or external command",
}

var unresolvedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Command "[^"]+" not found`),
	regexp.MustCompile(`^(?:/bin/)?(?:ba|z)?sh: (?:\d+: )?[^:]+: not found`),
}

// toolErrorPrefixes mark lines written by the shell or package manager
// rather than by the tool. Only these lines are searched for the markers.
var toolErrorPrefixes = []string{
	"sh: ", "/bin/sh: ", "bash: ", "/bin/bash: ", "zsh: ",
	"npm ERR! ", "npm error ", "error Command ", "ERR_PNPM_",
}

// cmdNotRecognizedRe is cmd.exe's own not-found line.
var cmdNotRecognizedRe = regexp.MustCompile(`^'[^']+' is not recognized as an internal or external command`)

// Runner implements domain.CommandRunner using os/exec.
type Runner struct {
	logger    *slog.Logger
	waitDelay time.Duration
	maxOutput int
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-attempt diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithWaitDelay bounds how long Run waits for output pipes to close after
// the process has been killed.
func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) { r.waitDelay = d }
}

// WithMaxOutput caps the captured combined output in bytes.
func WithMaxOutput(n int) Option {
	return func(r *Runner) { r.maxOutput = n }
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		waitDelay: defaultWaitDelay,
		maxOutput: defaultMaxOutput,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run tries each candidate in order and returns the first resolved outcome.
// Tool failures are reported in the outcome, never as errors.
func (r *Runner) Run(ctx context.Context, req domain.RunRequest) domain.RunOutcome {
	var tried []string
	for _, candidate := range req.Candidates {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		tried = append(tried, candidate)

		outcome, resolved := r.attempt(ctx, req, candidate, fields)
		if !resolved {
			continue
		}
		outcome.Tried = tried
		return outcome
	}

	r.logger.Info("no candidate resolved",
		slog.String("check", req.Check),
		slog.Any("tried", tried),
	)
	return domain.RunOutcome{Tried: tried}
}

func (r *Runner) attempt(ctx context.Context, req domain.RunRequest, candidate string, fields []string) (domain.RunOutcome, bool) {
	ctx, span := startCommandSpan(ctx, req.Check, candidate)
	defer span.End()

	if !resolvable(req.Dir, fields[0]) {
		r.logger.Debug("candidate not on PATH",
			slog.String("check", req.Check),
			slog.String("command", candidate),
		)
		finishCommand(ctx, span, req.Check, outcomeUnresolved, 0, 0)
		return domain.RunOutcome{}, false
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeoutSeconds * time.Second
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, fields[0], fields[1:]...)
	cmd.Dir = req.Dir
	out := &limitedWriter{w: &bytes.Buffer{}, limit: r.maxOutput}
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.WaitDelay = r.waitDelay
	setProcessGroup(cmd)

	r.logger.Debug("executing command",
		slog.String("check", req.Check),
		slog.String("command", candidate),
		slog.String("dir", req.Dir),
		slog.Duration("timeout", timeout),
	)

	start := time.Now()
	err := cmd.Run()
	outcome := domain.RunOutcome{
		Resolved: true,
		Command:  candidate,
		Output:   out.String(),
		Duration: time.Since(start),
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		outcome.TimedOut = true
		outcome.ExitCode = -1
		r.logger.Warn("command timed out",
			slog.String("check", req.Check),
			slog.String("command", candidate),
			slog.Duration("timeout", timeout),
		)
		finishCommand(ctx, span, req.Check, outcomeTimeout, outcome.ExitCode, outcome.Duration)
		return outcome, true
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The executable exists but could not be started.
			r.logger.Debug("candidate failed to start",
				slog.String("command", candidate),
				slog.String("error", err.Error()),
			)
			finishCommand(ctx, span, req.Check, outcomeUnresolved, 0, outcome.Duration)
			return domain.RunOutcome{}, false
		}
		outcome.ExitCode = exitErr.ExitCode()
	}

	if toolMissing(outcome.ExitCode, outcome.Output) {
		r.logger.Debug("candidate reported missing tool",
			slog.String("check", req.Check),
			slog.String("command", candidate),
			slog.Int("exit_code", outcome.ExitCode),
		)
		finishCommand(ctx, span, req.Check, outcomeUnresolved, outcome.ExitCode, outcome.Duration)
		return domain.RunOutcome{}, false
	}

	finishCommand(ctx, span, req.Check, outcomeResolved, outcome.ExitCode, outcome.Duration)
	return outcome, true
}

// toolMissing reports whether a finished command failed because the tool it
// wraps is not installed. Successful commands are always resolved.
func toolMissing(exitCode int, output string) bool {
	if exitCode == 0 {
		return false
	}
	if exitCode == exitNotFound {
		return true
	}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if cmdNotRecognizedRe.MatchString(line) {
			return true
		}
		if !hasToolErrorPrefix(line) {
			continue
		}
		for _, m := range unresolvedMarkers {
			if strings.Contains(line, m) {
				return true
			}
		}
		for _, re := range unresolvedPatterns {
			if re.MatchString(line) {
				return true
			}
		}
	}
	return false
}

func hasToolErrorPrefix(line string) bool {
	for _, p := range toolErrorPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// resolvable reports whether the executable of a candidate exists. A
// relative path with a separator is resolved against dir, the directory the
// command will run in, not the current working directory.
func resolvable(dir, name string) bool {
	if strings.ContainsAny(name, `/\`) && !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	_, err := exec.LookPath(name)
	return err == nil
}

// limitedWriter wraps a writer with a size limit.
type limitedWriter struct {
	w         *bytes.Buffer
	limit     int
	written   int
	truncated bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if lw.written >= lw.limit {
		lw.truncated = true
		return n, nil // silently discard
	}
	if remaining := lw.limit - lw.written; len(p) > remaining {
		p = p[:remaining]
		lw.truncated = true
	}
	written, err := lw.w.Write(p)
	lw.written += written
	if err != nil {
		return written, err
	}
	return n, nil
}

func (lw *limitedWriter) String() string {
	if lw.truncated {
		return lw.w.String() + "\n[output truncated]\n"
	}
	return lw.w.String()
}
