package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQualityGateReport_AllPassed(t *testing.T) {
	report := domain.NewQualityGateReport("/p", map[string]domain.CheckResult{
		"lint":  {Passed: domain.BoolPtr(true)},
		"build": {Passed: domain.BoolPtr(true)},
	})
	assert.True(t, report.Passed)
	assert.Equal(t, domain.GateSummary{Total: 2, Passed: 2}, report.Summary)
}

func TestNewQualityGateReport_OneFailed(t *testing.T) {
	report := domain.NewQualityGateReport("/p", map[string]domain.CheckResult{
		"lint":  {Passed: domain.BoolPtr(true)},
		"build": {Passed: domain.BoolPtr(false)},
		"test":  {Passed: nil},
	})
	assert.False(t, report.Passed)
	assert.Equal(t, domain.GateSummary{Total: 3, Passed: 1, Failed: 1, Skipped: 1}, report.Summary)
}

func TestNewQualityGateReport_AllSkippedPasses(t *testing.T) {
	report := domain.NewQualityGateReport("/p", map[string]domain.CheckResult{
		"lint":  {},
		"build": {},
	})
	assert.True(t, report.Passed)
	assert.Equal(t, 2, report.Summary.Skipped)
}

func TestCheckResult_SkippedSerializesNull(t *testing.T) {
	data, err := json.Marshal(domain.CheckResult{SkippedReason: "no tool"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"passed":null`)
}

func TestCheckResult_States(t *testing.T) {
	assert.True(t, domain.CheckResult{}.Skipped())
	assert.False(t, domain.CheckResult{}.Failed())
	assert.True(t, domain.CheckResult{Passed: domain.BoolPtr(false)}.Failed())
	assert.False(t, domain.CheckResult{Passed: domain.BoolPtr(true)}.Failed())
}
