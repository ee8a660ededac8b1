package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/qualitygate/internal/adapters/outbound/config"
	"github.com/abdidvp/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	out, err := run(t, "init", tmpDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created .qualitygate.yaml")

	data, err := os.ReadFile(filepath.Join(tmpDir, ".qualitygate.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout_seconds: 300")
	assert.Contains(t, string(data), "task-update.md")
	assert.Contains(t, string(data), "# commands:")
}

func TestInitCmd_GeneratedConfigLoads(t *testing.T) {
	tmpDir := t.TempDir()
	_, err := run(t, "init", tmpDir)
	require.NoError(t, err)

	cfg, err := config.New().Load(filepath.Join(tmpDir, ".qualitygate.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".qualitygate.yaml"), []byte("existing"), 0644))

	_, err := run(t, "init", tmpDir)
	assert.ErrorContains(t, err, "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".qualitygate.yaml"), []byte("old"), 0644))

	_, err := run(t, "init", tmpDir, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, ".qualitygate.yaml"))
	require.NoError(t, err)
	assert.NotEqual(t, "old", string(data))
}

func TestInitCmd_MissingDirectory(t *testing.T) {
	_, err := run(t, "init", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
