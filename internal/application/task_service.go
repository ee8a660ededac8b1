package application

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/abdidvp/qualitygate/internal/domain/checklist"
)

// TaskService validates the markdown documents belonging to a task.
type TaskService struct {
	cfg domain.Config
}

func NewTaskService(cfg domain.Config) *TaskService {
	return &TaskService{cfg: cfg}
}

// Validate checks every configured document of task under projectDir.
// Missing or malformed documents are reported in the result, not as errors.
func (s *TaskService) Validate(projectDir, task string) (*domain.TaskValidationReport, error) {
	absDir, err := resolveProjectDir(projectDir)
	if err != nil {
		return nil, err
	}
	if err := validateTaskName(task); err != nil {
		return nil, err
	}

	report := &domain.TaskValidationReport{
		Valid:     true,
		Errors:    []string{},
		Warnings:  []string{},
		Task:      task,
		Documents: []domain.DocumentResult{},
	}

	for _, doc := range s.cfg.Tasks.Documents {
		rel := path.Join(filepath.ToSlash(s.cfg.Tasks.Dir), task, doc.File)

		var result domain.ValidationResult
		content, err := os.ReadFile(filepath.Join(absDir, filepath.FromSlash(rel)))
		switch {
		case errors.Is(err, os.ErrNotExist):
			result = checklist.NotFound(rel)
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		default:
			rules := checklist.RulesFor(doc, s.cfg.Tasks.MinBytes)
			rules.File = rel
			result = checklist.Validate(content, rules)
		}

		report.Documents = append(report.Documents, domain.DocumentResult{File: rel, Result: result})
		report.Errors = append(report.Errors, result.Errors...)
		report.Warnings = append(report.Warnings, result.Warnings...)
		if !result.Valid {
			report.Valid = false
		}
	}

	return report, nil
}

func validateTaskName(task string) error {
	if strings.TrimSpace(task) == "" {
		return errors.New("task name must not be empty")
	}
	if strings.ContainsAny(task, `/\`) || task == "." || task == ".." {
		return fmt.Errorf("invalid task name %q", task)
	}
	return nil
}
