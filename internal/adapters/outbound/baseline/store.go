package baseline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/qualitygate/internal/domain"
)

// Store is a file-based implementation of domain.BaselineStore. Every
// mutation is load whole file, apply, write whole file.
type Store struct{}

// New creates a new file-based baseline store.
func New() *Store {
	return &Store{}
}

// Load reads the baseline from file. Returns (nil, nil) if no baseline exists.
func (s *Store) Load(file string) (domain.SlocBaseline, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no baseline is not an error here
		}
		return nil, err
	}

	var b domain.SlocBaseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing baseline %s: %w", file, err)
	}
	if b == nil {
		b = domain.SlocBaseline{}
	}
	return b, nil
}

// Save writes the baseline next to its final location and renames it into
// place, creating directories as needed.
func (s *Store) Save(file string, b domain.SlocBaseline) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if b == nil {
		b = domain.SlocBaseline{}
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".sloc-baseline-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), file)
}
