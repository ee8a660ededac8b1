package domain

// Ecosystem identifies a project toolchain by its marker files.
type Ecosystem string

const (
	EcosystemNode   Ecosystem = "node"
	EcosystemGo     Ecosystem = "go"
	EcosystemPython Ecosystem = "python"
)

// defaultCommands lists candidate commands per ecosystem and check, in the
// order they are tried.
var defaultCommands = map[Ecosystem]map[string][]string{
	EcosystemNode: {
		CheckLint:  {"npm run lint", "yarn lint", "pnpm lint", "npx --no-install eslint ."},
		CheckBuild: {"npm run build", "yarn build", "pnpm build", "npx --no-install tsc --noEmit"},
		CheckTest:  {"npm test", "yarn test", "pnpm test"},
	},
	EcosystemGo: {
		CheckLint:  {"golangci-lint run", "go vet ./..."},
		CheckBuild: {"go build ./..."},
		CheckTest:  {"go test ./..."},
	},
	EcosystemPython: {
		CheckLint:  {"ruff check .", "flake8"},
		CheckBuild: {"python3 -m compileall -q ."},
		CheckTest:  {"pytest -q", "python3 -m pytest -q"},
	},
}

// DefaultCandidates concatenates the candidates of every ecosystem in order.
// With no ecosystem detected it falls back to the node candidates.
func DefaultCandidates(check string, ecosystems []Ecosystem) []string {
	if len(ecosystems) == 0 {
		ecosystems = []Ecosystem{EcosystemNode}
	}
	var out []string
	for _, eco := range ecosystems {
		out = append(out, defaultCommands[eco][check]...)
	}
	return out
}
