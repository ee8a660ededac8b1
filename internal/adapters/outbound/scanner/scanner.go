package scanner

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/abdidvp/qualitygate/internal/domain"
	ignore "github.com/sabhiram/go-gitignore"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

// FileScanner implements domain.ProjectScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan lists source files below dir (relative to projectPath). Built-in skip
// directories and the project's .gitignore are honoured. A dir naming a
// single file yields that file regardless of its extension.
func (s *FileScanner) Scan(projectPath, dir string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	result := &domain.ScanResult{
		RootPath: absPath,
		Files:    []string{},
	}

	start := filepath.Join(absPath, filepath.FromSlash(dir))
	info, err := os.Stat(start)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		rel, err := filepath.Rel(absPath, start)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, filepath.ToSlash(rel))
		return result, nil
	}

	gi := loadGitignore(absPath)

	err = filepath.WalkDir(start, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path != start && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if relPath != "." && gi != nil && gi.MatchesPath(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if gi != nil && gi.MatchesPath(relPath) {
			return nil
		}
		if !domain.IsSourceFile(relPath) {
			return nil
		}
		result.Files = append(result.Files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result.Files)
	return result, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil // no readable .gitignore: nothing is ignored
	}
	return gi
}
