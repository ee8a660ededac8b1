package cli_test

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateProject writes lint and build scripts plus a config that runs them.
func gateProject(t *testing.T, lint, build string) (dir, configPath string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh scripts")
	}
	dir = t.TempDir()
	writeFile(t, dir, "lint.sh", lint)
	writeFile(t, dir, "build.sh", build)
	configPath = writeFile(t, t.TempDir(), "gate.yaml", `commands:
  lint:
    - sh lint.sh
  build:
    - sh build.sh
  test:
    - definitely-not-a-real-tool-qg
`)
	return dir, configPath
}

func TestGateCommand_Passes(t *testing.T) {
	dir, cfg := gateProject(t, "echo linted\n", "echo built\n")

	out, err := run(t, "--config", cfg, "gate", dir)
	require.NoError(t, err)

	var report domain.QualityGateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), "output should be valid JSON")
	assert.True(t, report.Passed)
	assert.Equal(t, domain.GateSummary{Total: 2, Passed: 2}, report.Summary)
	assert.Contains(t, report.Checks[domain.CheckLint].RawOutput, "linted")
	assert.NotContains(t, report.Checks, domain.CheckTest)
}

func TestGateCommand_FailedBuildExitsOne(t *testing.T) {
	dir, cfg := gateProject(t, "exit 0\n",
		"echo \"src/a.ts:10:5: error TS2304: Cannot find name 'Foo'.\"\nexit 1\n")

	out, err := run(t, "--config", cfg, "quality_gate", dir)
	assert.Equal(t, 1, exitCode(err))

	var report domain.QualityGateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), "a failed gate still prints its report")
	assert.False(t, report.Passed)

	build := report.Checks[domain.CheckBuild]
	require.NotNil(t, build.Passed)
	assert.False(t, *build.Passed)
	require.Len(t, build.Errors, 1)
	assert.Equal(t, "src/a.ts", build.Errors[0].FilePath)
	assert.Equal(t, 10, build.Errors[0].Line)
	assert.Equal(t, 5, build.Errors[0].Column)
}

func TestGateCommand_TestFlagSkipsMissingTool(t *testing.T) {
	dir, cfg := gateProject(t, "exit 0\n", "exit 0\n")

	out, err := run(t, "--config", cfg, "gate", dir, "--test")
	require.NoError(t, err, "a skipped check does not fail the gate")

	var report domain.QualityGateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Nil(t, report.Checks[domain.CheckTest].Passed)
	assert.Equal(t, 1, report.Summary.Skipped)
}

func TestGateCommand_TextFormat(t *testing.T) {
	dir, cfg := gateProject(t, "exit 0\n", "exit 3\n")

	out, err := run(t, "--config", cfg, "--format", "text", "gate", dir)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "build")
}

func TestGateCommand_MissingDirectory(t *testing.T) {
	out, err := run(t, "gate", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Empty(t, out, "fatal errors emit no report")
}

func TestGateCommand_RequiresDirectory(t *testing.T) {
	_, err := run(t, "gate")
	assert.Error(t, err)
}
