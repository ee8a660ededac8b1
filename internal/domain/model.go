package domain

import "errors"

// Check names understood by the quality gate.
const (
	CheckLint  = "lint"
	CheckBuild = "build"
	CheckTest  = "test"
)

// ValidChecks enumerates all check names in their canonical run order.
var ValidChecks = []string{CheckLint, CheckBuild, CheckTest}

var (
	// ErrProjectNotFound is returned when the target project directory does not exist.
	ErrProjectNotFound = errors.New("project directory not found")
	// ErrNoBaseline is returned when a SLOC operation needs a baseline file that is absent.
	ErrNoBaseline = errors.New("no baseline found; create one first")
	// ErrUnknownCheck is returned for check names outside ValidChecks.
	ErrUnknownCheck = errors.New("unknown check")
	// ErrNotGitRepo is returned when a git-backed operation targets a directory outside a repository.
	ErrNotGitRepo = errors.New("not a git repository")
)

// ErrorEntry is one diagnostic parsed from tool output. Message is never empty.
type ErrorEntry struct {
	FilePath string `json:"file_path,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Rule     string `json:"rule,omitempty"`
}

// CheckResult is the outcome of one named check. Passed is nil when the
// check was skipped because no candidate command resolved.
type CheckResult struct {
	Passed        *bool        `json:"passed"`
	Command       string       `json:"command,omitempty"`
	ExitCode      int          `json:"exit_code"`
	DurationMs    int64        `json:"duration_ms"`
	RawOutput     string       `json:"raw_output"`
	Errors        []ErrorEntry `json:"errors"`
	SkippedReason string       `json:"skipped_reason,omitempty"`
}

// Skipped reports whether the check did not run.
func (r CheckResult) Skipped() bool { return r.Passed == nil }

// Failed reports whether the check ran and did not pass.
func (r CheckResult) Failed() bool { return r.Passed != nil && !*r.Passed }

// GateSummary counts check outcomes.
type GateSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// QualityGateReport aggregates all checks of one gate invocation.
type QualityGateReport struct {
	Passed     bool                   `json:"passed"`
	Checks     map[string]CheckResult `json:"checks"`
	Summary    GateSummary            `json:"summary"`
	ProjectDir string                 `json:"project_dir"`
	Commit     string                 `json:"commit,omitempty"`
	RunID      string                 `json:"run_id"`
}

// NewQualityGateReport builds a report from check results. Overall pass is
// the AND of every non-skipped check; a report with only skipped checks passes.
func NewQualityGateReport(projectDir string, checks map[string]CheckResult) *QualityGateReport {
	report := &QualityGateReport{
		Passed:     true,
		Checks:     checks,
		ProjectDir: projectDir,
	}
	for _, c := range checks {
		report.Summary.Total++
		switch {
		case c.Skipped():
			report.Summary.Skipped++
		case c.Failed():
			report.Summary.Failed++
			report.Passed = false
		default:
			report.Summary.Passed++
		}
	}
	return report
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
