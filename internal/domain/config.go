package domain

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied when a value is not configured.
const (
	DefaultTimeoutSeconds = 300
	DefaultMinBytes       = 100
	DefaultTasksDir       = "planning/tasks"
	DefaultBaselineFile   = "planning/sloc-baseline.json"
)

// Config holds the gate configuration, optionally loaded from a YAML file
// passed with --config.
type Config struct {
	TimeoutSeconds int                 `yaml:"timeout_seconds" json:"timeout_seconds,omitempty"`
	Commands       map[string][]string `yaml:"commands"        json:"commands,omitempty"`
	Tasks          TaskConfig          `yaml:"tasks"           json:"tasks"`
	Sloc           SlocConfig          `yaml:"sloc"            json:"sloc"`
}

// TaskConfig configures the task validator.
type TaskConfig struct {
	Dir       string         `yaml:"dir"       json:"dir,omitempty"`
	MinBytes  int            `yaml:"min_bytes" json:"min_bytes,omitempty"`
	Documents []DocumentRule `yaml:"documents" json:"documents,omitempty"`
}

// DocumentRule names one markdown document of a task and what it must contain.
type DocumentRule struct {
	File             string   `yaml:"file"              json:"file"`
	RequiredSections []string `yaml:"required_sections" json:"required_sections"`
	RequireChecked   bool     `yaml:"require_checked"   json:"require_checked"`
}

// SlocConfig configures the SLOC tracker.
type SlocConfig struct {
	BaselineFile string   `yaml:"baseline_file" json:"baseline_file,omitempty"`
	TestMarkers  []string `yaml:"test_markers"  json:"test_markers,omitempty"`
}

// DefaultTestMarkers are the path words that classify a file as a test.
var DefaultTestMarkers = []string{"test", "tests", "spec", "specs", "__tests__", "testdata"}

// DefaultDocuments are the documents every task is expected to carry.
func DefaultDocuments() []DocumentRule {
	return []DocumentRule{
		{
			File:             "task-update.md",
			RequiredSections: []string{"Summary", "Changes", "Testing"},
			RequireChecked:   true,
		},
		{
			File:             "code-review.md",
			RequiredSections: []string{"Summary", "Findings", "Verdict"},
			RequireChecked:   false,
		},
	}
}

// DefaultConfig returns the compiled-in configuration. Commands is left
// empty so the gate derives candidates from the detected toolchain.
func DefaultConfig() Config {
	return Config{
		TimeoutSeconds: DefaultTimeoutSeconds,
		Tasks: TaskConfig{
			Dir:       DefaultTasksDir,
			MinBytes:  DefaultMinBytes,
			Documents: DefaultDocuments(),
		},
		Sloc: SlocConfig{
			BaselineFile: DefaultBaselineFile,
			TestMarkers:  DefaultTestMarkers,
		},
	}
}

// Timeout returns the per-command timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CandidatesFor returns the configured candidates for a check, falling back
// to the toolchain defaults for the given ecosystems.
func (c Config) CandidatesFor(check string, ecosystems []Ecosystem) []string {
	if cmds, ok := c.Commands[check]; ok && len(cmds) > 0 {
		return cmds
	}
	return DefaultCandidates(check, ecosystems)
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be > 0 (got %d)", c.TimeoutSeconds)
	}

	for check, cmds := range c.Commands {
		if !IsValidCheck(check) {
			return fmt.Errorf("%w %q in commands (valid: %s)", ErrUnknownCheck, check, strings.Join(ValidChecks, ", "))
		}
		if len(cmds) == 0 {
			return fmt.Errorf("commands.%s must list at least one candidate", check)
		}
		for i, cmd := range cmds {
			if strings.TrimSpace(cmd) == "" {
				return fmt.Errorf("commands.%s[%d] must not be empty", check, i)
			}
		}
	}

	if c.Tasks.MinBytes < 0 {
		return fmt.Errorf("tasks.min_bytes must be >= 0 (got %d)", c.Tasks.MinBytes)
	}
	for i, doc := range c.Tasks.Documents {
		if strings.TrimSpace(doc.File) == "" {
			return fmt.Errorf("tasks.documents[%d].file must not be empty", i)
		}
	}

	return nil
}

// IsValidCheck reports whether name is a known check.
func IsValidCheck(name string) bool {
	for _, c := range ValidChecks {
		if c == name {
			return true
		}
	}
	return false
}
