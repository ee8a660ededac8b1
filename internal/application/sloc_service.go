package application

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/abdidvp/qualitygate/internal/domain/sloc"
)

// SLOC actions reported in SlocReport.Action.
const (
	SlocActionBaseline = "baseline"
	SlocActionUpdate   = "update"
	SlocActionFinal    = "final"
)

// SlocService maintains the per-file SLOC baseline of a project. Every
// mutation loads the whole baseline, applies the change and saves it back.
type SlocService struct {
	store   domain.BaselineStore
	scanner domain.ProjectScanner
	git     domain.GitInfo
	cfg     domain.Config
}

func NewSlocService(
	store domain.BaselineStore,
	scanner domain.ProjectScanner,
	git domain.GitInfo,
	cfg domain.Config,
) *SlocService {
	return &SlocService{store: store, scanner: scanner, git: git, cfg: cfg}
}

// CreateBaseline records {baseline: N, current: N, delta: 0} for each path,
// overwriting only those entries. Paths missing on disk record 0.
func (s *SlocService) CreateBaseline(projectDir string, paths []string) (*domain.SlocReport, error) {
	absDir, err := resolveProjectDir(projectDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("--baseline needs at least one path")
	}

	baseline, err := s.load(absDir)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		baseline = domain.SlocBaseline{}
	}

	expanded, err := s.expand(absDir, paths, baseline)
	if err != nil {
		return nil, err
	}

	touched := domain.SlocBaseline{}
	for _, p := range expanded {
		n, err := countFile(absDir, p)
		if err != nil {
			return nil, err
		}
		entry := domain.SlocEntry{Baseline: n, Current: n}
		baseline[p] = entry
		touched[p] = entry
	}

	if err := s.store.Save(s.baselinePath(absDir), baseline); err != nil {
		return nil, fmt.Errorf("saving baseline: %w", err)
	}
	return s.report(SlocActionBaseline, touched), nil
}

// Update recomputes current and delta for paths, or for every tracked path
// when none are given. Baselines are left unchanged; an untracked path is
// recorded as a new file with baseline 0.
func (s *SlocService) Update(projectDir string, paths []string) (*domain.SlocReport, error) {
	absDir, err := resolveProjectDir(projectDir)
	if err != nil {
		return nil, err
	}

	baseline, err := s.load(absDir)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		return nil, domain.ErrNoBaseline
	}

	targets := baseline.Paths()
	if len(paths) > 0 {
		targets, err = s.expand(absDir, paths, baseline)
		if err != nil {
			return nil, err
		}
	}

	touched := domain.SlocBaseline{}
	for _, p := range targets {
		n, err := countFile(absDir, p)
		if err != nil {
			return nil, err
		}
		entry := baseline[p]
		entry.Current = n
		entry.Delta = n - entry.Baseline
		baseline[p] = entry
		touched[p] = entry
	}

	if err := s.store.Save(s.baselinePath(absDir), baseline); err != nil {
		return nil, fmt.Errorf("saving baseline: %w", err)
	}
	return s.report(SlocActionUpdate, touched), nil
}

// FinalReport reads the whole baseline and returns totals, a per-category
// breakdown, per-file rows and a markdown table. It never writes.
func (s *SlocService) FinalReport(projectDir string) (*domain.SlocReport, error) {
	absDir, err := resolveProjectDir(projectDir)
	if err != nil {
		return nil, err
	}

	baseline, err := s.load(absDir)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		return nil, domain.ErrNoBaseline
	}

	report := s.report(SlocActionFinal, baseline)
	report.Categories = map[string]domain.SlocTotals{}
	for _, p := range baseline.Paths() {
		category := sloc.Category(p, s.cfg.Sloc.TestMarkers)
		entry := baseline[p]
		report.Rows = append(report.Rows, domain.SlocRow{Path: p, Category: category, SlocEntry: entry})

		totals := report.Categories[category]
		totals.Add(entry)
		report.Categories[category] = totals
	}
	report.Markdown = domain.MarkdownTable(report.Rows, report.Summary)
	return report, nil
}

// Baseline returns the stored baseline of projectDir, or ErrNoBaseline.
func (s *SlocService) Baseline(projectDir string) (domain.SlocBaseline, error) {
	absDir, err := resolveProjectDir(projectDir)
	if err != nil {
		return nil, err
	}
	baseline, err := s.load(absDir)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		return nil, domain.ErrNoBaseline
	}
	return baseline, nil
}

// ChangedPaths returns the source files changed in the project's git
// worktree, excluding the baseline file itself.
func (s *SlocService) ChangedPaths(projectDir string) ([]string, error) {
	absDir, err := resolveProjectDir(projectDir)
	if err != nil {
		return nil, err
	}
	if !s.git.IsGitRepo(absDir) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotGitRepo, absDir)
	}
	changed, err := s.git.ChangedFiles(absDir)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	baselineRel := path.Clean(filepath.ToSlash(s.cfg.Sloc.BaselineFile))
	var paths []string
	for _, p := range changed {
		if p == baselineRel || !domain.IsSourceFile(p) {
			continue
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *SlocService) report(action string, entries domain.SlocBaseline) *domain.SlocReport {
	return &domain.SlocReport{
		Action:       action,
		BaselineFile: s.cfg.Sloc.BaselineFile,
		Summary:      entries.Totals(),
		Files:        entries,
	}
}

func (s *SlocService) load(absDir string) (domain.SlocBaseline, error) {
	baseline, err := s.store.Load(s.baselinePath(absDir))
	if err != nil {
		return nil, fmt.Errorf("loading baseline: %w", err)
	}
	return baseline, nil
}

func (s *SlocService) baselinePath(absDir string) string {
	file := s.cfg.Sloc.BaselineFile
	if file == "" {
		file = domain.DefaultBaselineFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(absDir, filepath.FromSlash(file))
}

// expand normalises paths to project-relative slash form. Existing
// directories expand to their source files plus any tracked paths below
// them, so files deleted since the baseline still update to 0.
func (s *SlocService) expand(absDir string, paths []string, tracked domain.SlocBaseline) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, raw := range paths {
		rel, err := normalizePath(absDir, raw)
		if err != nil {
			return nil, err
		}

		info, statErr := os.Stat(filepath.Join(absDir, filepath.FromSlash(rel)))
		isDir := statErr == nil && info.IsDir()
		below := trackedBelow(tracked, rel)

		switch {
		case isDir:
			scan, err := s.scanner.Scan(absDir, rel)
			if err != nil {
				return nil, fmt.Errorf("scanning %s: %w", rel, err)
			}
			for _, f := range scan.Files {
				add(f)
			}
			for _, f := range below {
				add(f)
			}
		case statErr != nil && len(below) > 0 && !hasKey(tracked, rel):
			// A tracked directory that no longer exists.
			for _, f := range below {
				add(f)
			}
		default:
			add(rel)
		}
	}

	sort.Strings(out)
	return out, nil
}

func normalizePath(absDir, raw string) (string, error) {
	p := raw
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(absDir, p)
		if err != nil {
			return "", fmt.Errorf("path %s: %w", raw, err)
		}
		p = rel
	}
	p = path.Clean(filepath.ToSlash(p))
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("path %s is outside the project directory", raw)
	}
	return p, nil
}

func trackedBelow(tracked domain.SlocBaseline, dir string) []string {
	prefix := dir + "/"
	if dir == "." {
		prefix = ""
	}
	var out []string
	for _, p := range tracked.Paths() {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

func hasKey(b domain.SlocBaseline, key string) bool {
	_, ok := b[key]
	return ok
}

// countFile returns the SLOC of a project-relative file, 0 if it does not exist.
func countFile(absDir, rel string) (int, error) {
	content, err := os.ReadFile(filepath.Join(absDir, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading %s: %w", rel, err)
	}
	return sloc.Count(content), nil
}
