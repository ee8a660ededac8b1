package detector

import (
	"os"
	"path/filepath"

	"github.com/abdidvp/qualitygate/internal/domain"
)

// markers maps root-level marker files to the ecosystem they imply, in the
// order ecosystems are reported.
var markers = []struct {
	file      string
	ecosystem domain.Ecosystem
}{
	{"package.json", domain.EcosystemNode},
	{"go.mod", domain.EcosystemGo},
	{"pyproject.toml", domain.EcosystemPython},
	{"setup.py", domain.EcosystemPython},
	{"requirements.txt", domain.EcosystemPython},
}

// ToolchainDetector implements domain.ToolchainDetector by looking for
// marker files in the project root.
type ToolchainDetector struct{}

func New() *ToolchainDetector {
	return &ToolchainDetector{}
}

// Detect returns the ecosystems present in projectDir, without duplicates.
func (d *ToolchainDetector) Detect(projectDir string) []domain.Ecosystem {
	var found []domain.Ecosystem
	seen := map[domain.Ecosystem]bool{}
	for _, m := range markers {
		if seen[m.ecosystem] {
			continue
		}
		if _, err := os.Stat(filepath.Join(projectDir, m.file)); err == nil {
			found = append(found, m.ecosystem)
			seen[m.ecosystem] = true
		}
	}
	return found
}
