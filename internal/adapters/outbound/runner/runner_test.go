package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/abdidvp/qualitygate/internal/adapters/outbound/runner"
	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript writes an executable /bin/sh script into dir and returns its path.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func run(t *testing.T, dir string, timeout time.Duration, candidates ...string) domain.RunOutcome {
	t.Helper()
	return runner.New().Run(context.Background(), domain.RunRequest{
		Dir:        dir,
		Check:      domain.CheckLint,
		Candidates: candidates,
		Timeout:    timeout,
	})
}

func TestRun_FirstResolvedCandidateWins(t *testing.T) {
	dir := t.TempDir()
	ok := writeScript(t, dir, "ok.sh", `echo "all good"`)

	outcome := run(t, dir, time.Minute, "definitely-not-installed-tool-x1 lint", ok)

	require.True(t, outcome.Resolved)
	assert.Equal(t, ok, outcome.Command)
	assert.Equal(t, 0, outcome.ExitCode)
	assert.Contains(t, outcome.Output, "all good")
	assert.Equal(t, []string{"definitely-not-installed-tool-x1 lint", ok}, outcome.Tried)
}

func TestRun_ResolvedFailureStopsSearch(t *testing.T) {
	dir := t.TempDir()
	fail := writeScript(t, dir, "fail.sh", `echo "src/a.ts:1:1: error: boom"; exit 2`)
	ok := writeScript(t, dir, "ok.sh", `exit 0`)

	outcome := run(t, dir, time.Minute, fail, ok)

	require.True(t, outcome.Resolved)
	assert.Equal(t, fail, outcome.Command)
	assert.Equal(t, 2, outcome.ExitCode)
	assert.Len(t, outcome.Tried, 1)
}

func TestRun_ToolMissingMarkersAreUnresolved(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"exit 127", `exit 127`},
		{"command not found", `echo "sh: eslint: command not found"; exit 1`},
		{"dash not found", `echo "sh: 1: eslint: not found" >&2; exit 1`},
		{"npm missing script", `echo 'npm ERR! Missing script: "lint"' >&2; exit 1`},
		{"yarn missing command", `echo 'error Command "lint" not found.'; exit 1`},
		{"npx cannot resolve", `echo 'npm ERR! could not determine executable to run' >&2; exit 1`},
		{"npm 10 missing script", `echo 'npm error Missing script: "lint"' >&2; exit 1`},
		{"bash command not found", `echo "/bin/bash: line 1: eslint: command not found" >&2; exit 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			missing := writeScript(t, dir, "missing.sh", tt.body)
			ok := writeScript(t, dir, "ok.sh", `exit 0`)

			outcome := run(t, dir, time.Minute, missing, ok)
			require.True(t, outcome.Resolved)
			assert.Equal(t, ok, outcome.Command)
		})
	}
}

func TestRun_MarkersIgnoredOnSuccess(t *testing.T) {
	dir := t.TempDir()
	ok := writeScript(t, dir, "ok.sh", `echo "checked: command not found handling"; exit 0`)

	outcome := run(t, dir, time.Minute, ok)
	assert.True(t, outcome.Resolved)
}

func TestRun_FailingToolQuotingMarkerStaysResolved(t *testing.T) {
	dir := t.TempDir()
	fail := writeScript(t, dir, "fail.sh",
		`echo 'FAIL install.test: expected stderr "foo: command not found"'; echo '  want: Missing script: "build"'; exit 1`)
	ok := writeScript(t, dir, "ok.sh", `exit 0`)

	outcome := run(t, dir, time.Minute, fail, ok)

	require.True(t, outcome.Resolved)
	assert.Equal(t, fail, outcome.Command)
	assert.Equal(t, 1, outcome.ExitCode)
	assert.Len(t, outcome.Tried, 1)
}

func TestRun_RelativeCandidateResolvesAgainstDir(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	writeScript(t, bin, "lint", `echo "src/a.go:3:1: unused"; exit 1`)

	outcome := run(t, dir, time.Minute, "./bin/lint")

	require.True(t, outcome.Resolved)
	assert.Equal(t, "./bin/lint", outcome.Command)
	assert.Equal(t, 1, outcome.ExitCode)
	assert.Contains(t, outcome.Output, "unused")
}

func TestRun_NothingResolves(t *testing.T) {
	dir := t.TempDir()
	missing := writeScript(t, dir, "missing.sh", `exit 127`)

	outcome := run(t, dir, time.Minute, "not-a-real-binary-zz9", missing, "   ")
	assert.False(t, outcome.Resolved)
	assert.Empty(t, outcome.Command)
	assert.Equal(t, []string{"not-a-real-binary-zz9", missing}, outcome.Tried)
}

func TestRun_CapturesStderrAndRunsInDir(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "where.sh", `pwd; echo "to stderr" >&2; exit 1`)

	outcome := run(t, dir, time.Minute, script)
	require.True(t, outcome.Resolved)
	assert.Equal(t, 1, outcome.ExitCode)
	assert.Contains(t, outcome.Output, "to stderr")
	assert.Contains(t, outcome.Output, filepath.Base(dir))
}

func TestRun_ArgumentsAreSplitWithoutShell(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "args.sh", `for a in "$@"; do echo "[$a]"; done`)

	outcome := run(t, dir, time.Minute, script+" one  two $HOME")
	require.True(t, outcome.Resolved)
	assert.Equal(t, "[one]\n[two]\n[$HOME]\n", outcome.Output)
}

func TestRun_TimeoutKillsProcessGroup(t *testing.T) {
	dir := t.TempDir()
	slow := writeScript(t, dir, "slow.sh", `sleep 30 & sleep 30`)

	start := time.Now()
	outcome := run(t, dir, 300*time.Millisecond, slow)
	elapsed := time.Since(start)

	require.True(t, outcome.Resolved)
	assert.True(t, outcome.TimedOut)
	assert.Equal(t, -1, outcome.ExitCode)
	assert.Less(t, elapsed, 10*time.Second, "timed out command must not wait for its children")
}

func TestRun_OutputIsCapped(t *testing.T) {
	dir := t.TempDir()
	loud := writeScript(t, dir, "loud.sh", `i=0; while [ $i -lt 200 ]; do echo "0123456789"; i=$((i+1)); done`)

	outcome := runner.New(runner.WithMaxOutput(100)).Run(context.Background(), domain.RunRequest{
		Dir:        dir,
		Check:      domain.CheckBuild,
		Candidates: []string{loud},
		Timeout:    time.Minute,
	})
	require.True(t, outcome.Resolved)
	assert.True(t, strings.HasSuffix(outcome.Output, "[output truncated]\n"))
	assert.Less(t, len(outcome.Output), 200)
}
