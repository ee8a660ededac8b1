package tui_test

import (
	"testing"

	"github.com/abdidvp/qualitygate/internal/adapters/outbound/tui"
	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleGateReport() *domain.QualityGateReport {
	report := domain.NewQualityGateReport("/home/dev/projects/invoice-app", map[string]domain.CheckResult{
		"lint": {
			Passed:   domain.BoolPtr(false),
			Command:  "npm run lint",
			ExitCode: 1,
			Errors: []domain.ErrorEntry{
				{FilePath: "src/app.ts", Line: 3, Column: 7, Message: "'x' is defined but never used", Rule: "no-unused-vars"},
			},
		},
		"build": {Passed: domain.BoolPtr(true), Command: "npm run build", Errors: []domain.ErrorEntry{}},
		"test":  {SkippedReason: "no candidate command resolved"},
	})
	report.RunID = "0b5d6c1e-1111-4c2a-9b7e-222222222222"
	report.Commit = "4f2a9c1d8e7b6a5f4e3d2c1b0a9f8e7d6c5b4a39"
	return report
}

func TestRenderGateReport_ContainsVerdictAndChecks(t *testing.T) {
	out := tui.RenderGateReport(sampleGateReport())
	assert.Contains(t, out, "qualitygate")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "lint")
	assert.Contains(t, out, "build")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "no candidate command resolved")
}

func TestRenderGateReport_ShowsDiagnostics(t *testing.T) {
	out := tui.RenderGateReport(sampleGateReport())
	assert.Contains(t, out, "src/app.ts:3:7")
	assert.Contains(t, out, "'x' is defined but never used")
	assert.Contains(t, out, "no-unused-vars")
}

func TestRenderGateReport_ShortCommit(t *testing.T) {
	out := tui.RenderGateReport(sampleGateReport())
	assert.Contains(t, out, "4f2a9c1")
	assert.NotContains(t, out, "4f2a9c1d8e7b")
}

func TestRenderGateReport_Passed(t *testing.T) {
	report := domain.NewQualityGateReport("/p", map[string]domain.CheckResult{
		"lint": {Passed: domain.BoolPtr(true), Command: "go vet ./..."},
	})
	out := tui.RenderGateReport(report)
	assert.Contains(t, out, "PASSED")
	assert.NotContains(t, out, "FAILED")
}

func TestRenderTaskValidation(t *testing.T) {
	invalid := domain.NewValidationResult()
	invalid.AddError(`task-update.md: missing required section "Testing"`)
	invalid.Checklist = domain.ChecklistCount{Checked: 1, Total: 2}

	valid := domain.NewValidationResult()
	valid.AddWarning(`code-review.md: section "Verdict" is empty`)

	out := tui.RenderTaskValidation(&domain.TaskValidationReport{
		Task: "add-export",
		Documents: []domain.DocumentResult{
			{File: "task-update.md", Result: invalid},
			{File: "code-review.md", Result: valid},
		},
	})
	assert.Contains(t, out, "add-export")
	assert.Contains(t, out, "INVALID")
	assert.Contains(t, out, "1/2 checked")
	assert.Contains(t, out, `missing required section "Testing"`)
	assert.Contains(t, out, `section "Verdict" is empty`)
}

func TestRenderSlocReport_Final(t *testing.T) {
	rows := []domain.SlocRow{
		{Path: "src/app.ts", Category: domain.CategorySource, SlocEntry: domain.SlocEntry{Baseline: 10, Current: 14, Delta: 4}},
		{Path: "src/app.test.ts", Category: domain.CategoryTests, SlocEntry: domain.SlocEntry{Baseline: 5, Current: 2, Delta: -3}},
	}
	out := tui.RenderSlocReport(&domain.SlocReport{
		Action:       "final",
		BaselineFile: "planning/sloc-baseline.json",
		Summary:      domain.SlocTotals{Files: 2, Baseline: 15, Current: 16, Delta: 1},
		Rows:         rows,
		Categories: map[string]domain.SlocTotals{
			domain.CategorySource: {Files: 1, Baseline: 10, Current: 14, Delta: 4},
			domain.CategoryTests:  {Files: 1, Baseline: 5, Current: 2, Delta: -3},
		},
	})
	assert.Contains(t, out, "SLOC final")
	assert.Contains(t, out, "src/app.ts")
	assert.Contains(t, out, "↑4")
	assert.Contains(t, out, "↓3")
	assert.Contains(t, out, "total")
}

func TestRenderSlocReport_UsesFilesWithoutRows(t *testing.T) {
	out := tui.RenderSlocReport(&domain.SlocReport{
		Action: "baseline",
		Files:  domain.SlocBaseline{"a.py": {Baseline: 3, Current: 3}},
	})
	assert.Contains(t, out, "a.py")
	assert.Contains(t, out, "±0")
}
