package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/qualitygate/internal/adapters/outbound/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../../../testdata/js-project"

func TestFileScanner_Scan(t *testing.T) {
	s := scanner.New()
	result, err := s.Scan(fixtureDir, ".")
	require.NoError(t, err)

	assert.Equal(t, []string{"src/app.test.ts", "src/app.ts", "src/util/format.ts"}, result.Files)
	assert.True(t, filepath.IsAbs(result.RootPath))
}

func TestFileScanner_Subdirectory(t *testing.T) {
	s := scanner.New()
	result, err := s.Scan(fixtureDir, "src/util")
	require.NoError(t, err)

	assert.Equal(t, []string{"src/util/format.ts"}, result.Files)
}

func TestFileScanner_SingleFile(t *testing.T) {
	s := scanner.New()
	result, err := s.Scan(fixtureDir, "package.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"package.json"}, result.Files)
}

func TestFileScanner_ExcludesVendorAndGit(t *testing.T) {
	s := scanner.New()
	result, err := s.Scan(fixtureDir, ".")
	require.NoError(t, err)

	for _, f := range result.Files {
		assert.NotContains(t, f, "node_modules/")
		assert.NotContains(t, f, "dist/")
		assert.NotContains(t, f, "generated/", "gitignored directory must be skipped")
		assert.NotContains(t, f, ".log")
	}
}

func TestFileScanner_GitignoreFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*_gen.go\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api_gen.go"), []byte("package main\n"), 0644))

	result, err := scanner.New().Scan(dir, ".")
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, result.Files)
}

func TestFileScanner_MissingDir(t *testing.T) {
	_, err := scanner.New().Scan(fixtureDir, "nope")
	assert.Error(t, err)
}
