package domain

// ChecklistItem is one `- [ ]` / `- [x]` line of a markdown document.
type ChecklistItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
	Line    int    `json:"line"`
}

// ChecklistCount summarises checklist completion.
type ChecklistCount struct {
	Checked int `json:"checked"`
	Total   int `json:"total"`
}

// ValidationResult is the outcome of validating one or more markdown documents.
// Valid is false whenever Errors is non-empty; Warnings never affect Valid.
type ValidationResult struct {
	Valid     bool            `json:"valid"`
	Errors    []string        `json:"errors"`
	Warnings  []string        `json:"warnings"`
	Checklist ChecklistCount  `json:"checklist"`
	Items     []ChecklistItem `json:"items,omitempty"`
}

// NewValidationResult returns a valid result with empty, non-nil slices.
func NewValidationResult() ValidationResult {
	return ValidationResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

// AddError records an error and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

// AddWarning records a warning.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// DocumentResult is the validation outcome of a single task document.
type DocumentResult struct {
	File   string           `json:"file"`
	Result ValidationResult `json:"result"`
}

// TaskValidationReport aggregates the documents belonging to one task.
type TaskValidationReport struct {
	Valid     bool             `json:"valid"`
	Errors    []string         `json:"errors"`
	Warnings  []string         `json:"warnings"`
	Task      string           `json:"task"`
	Documents []DocumentResult `json:"documents"`
}
