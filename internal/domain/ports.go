package domain

import (
	"context"
	"time"
)

// CommandRunner executes the first resolvable candidate command for a check.
type CommandRunner interface {
	Run(ctx context.Context, req RunRequest) RunOutcome
}

// RunRequest describes one check execution.
type RunRequest struct {
	Dir        string
	Check      string
	Candidates []string
	Timeout    time.Duration
}

// RunOutcome is a tagged result: Resolved is false when no candidate's tool
// could be found, in which case the remaining fields are zero.
type RunOutcome struct {
	Resolved bool
	Command  string
	ExitCode int
	Output   string
	Duration time.Duration
	TimedOut bool
	// Tried lists every candidate attempted, in order.
	Tried []string
}

// ToolchainDetector reports which ecosystems a project directory belongs to.
type ToolchainDetector interface {
	Detect(projectDir string) []Ecosystem
}

// ConfigLoader loads configuration from an explicit file. An empty path
// yields DefaultConfig.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// BaselineStore persists the SLOC baseline. Load returns (nil, nil) when
// the file does not exist.
type BaselineStore interface {
	Load(file string) (SlocBaseline, error)
	Save(file string, baseline SlocBaseline) error
}

// ProjectScanner lists source files below a directory of a project.
type ProjectScanner interface {
	Scan(projectPath, dir string) (*ScanResult, error)
}

// ScanResult holds the files found by a scan, relative to RootPath and slash separated.
type ScanResult struct {
	RootPath string   `json:"root_path"`
	Files    []string `json:"files"`
}

// GitInfo reads repository metadata for a project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	ChangedFiles(projectPath string) ([]string, error)
}
