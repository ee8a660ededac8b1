package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SLOC categories.
const (
	CategorySource = "source"
	CategoryTests  = "tests"
)

// SlocEntry tracks one file against its recorded baseline.
type SlocEntry struct {
	Baseline int `json:"baseline"`
	Current  int `json:"current"`
	Delta    int `json:"delta"`
}

// SlocBaseline is the persisted mapping of project-relative path to entry.
type SlocBaseline map[string]SlocEntry

// Paths returns the tracked paths in sorted order.
func (b SlocBaseline) Paths() []string {
	paths := make([]string, 0, len(b))
	for p := range b {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Totals sums baseline, current and delta over all entries.
func (b SlocBaseline) Totals() SlocTotals {
	var t SlocTotals
	for _, e := range b {
		t.Add(e)
	}
	return t
}

// SlocTotals is an aggregate over a set of entries.
type SlocTotals struct {
	Files    int `json:"files"`
	Baseline int `json:"baseline"`
	Current  int `json:"current"`
	Delta    int `json:"delta"`
}

// Add accumulates one entry.
func (t *SlocTotals) Add(e SlocEntry) {
	t.Files++
	t.Baseline += e.Baseline
	t.Current += e.Current
	t.Delta += e.Delta
}

// SlocRow is one line of the final report table.
type SlocRow struct {
	Path     string `json:"path"`
	Category string `json:"category"`
	SlocEntry
}

// SlocReport is the output of a baseline, update or final invocation.
type SlocReport struct {
	Action       string                `json:"action"`
	BaselineFile string                `json:"baseline_file"`
	Summary      SlocTotals            `json:"summary"`
	Files        SlocBaseline          `json:"files"`
	Categories   map[string]SlocTotals `json:"categories,omitempty"`
	Rows         []SlocRow             `json:"rows,omitempty"`
	Markdown     string                `json:"markdown,omitempty"`
}

// MarkdownTable renders rows as a GitHub-flavoured markdown table with a total line.
func MarkdownTable(rows []SlocRow, total SlocTotals) string {
	var b strings.Builder
	b.WriteString("| File | Category | Baseline | Current | Delta |\n")
	b.WriteString("|------|----------|---------:|--------:|------:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %+d |\n", r.Path, r.Category, r.Baseline, r.Current, r.Delta)
	}
	fmt.Fprintf(&b, "| **Total** | | **%d** | **%d** | **%+d** |\n", total.Baseline, total.Current, total.Delta)
	return b.String()
}
