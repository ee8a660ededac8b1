package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abdidvp/qualitygate/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the conventional name written by `qualitygate init`. It is
// never discovered implicitly; it must be passed with --config.
const FileName = ".qualitygate.yaml"

// YAMLLoader implements domain.ConfigLoader by reading an explicit YAML file.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the config file at path and merges it over DefaultConfig.
// An empty path returns DefaultConfig.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	if path == "" {
		return domain.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("config file %s not found", path)
		}
		return domain.Config{}, err
	}

	var raw fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := mergeConfig(domain.DefaultConfig(), raw)
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// fileConfig mirrors domain.Config as written on disk. Scalars that have a
// meaningful zero value are pointers so an explicit 0 is kept apart from an
// absent key.
type fileConfig struct {
	TimeoutSeconds *int                `yaml:"timeout_seconds"`
	Commands       map[string][]string `yaml:"commands"`
	Tasks          fileTaskConfig      `yaml:"tasks"`
	Sloc           domain.SlocConfig   `yaml:"sloc"`
}

type fileTaskConfig struct {
	Dir       string                `yaml:"dir"`
	MinBytes  *int                  `yaml:"min_bytes"`
	Documents []domain.DocumentRule `yaml:"documents"`
}

// mergeConfig overlays the keys present in the file on top of defaults.
func mergeConfig(base domain.Config, override fileConfig) domain.Config {
	result := base

	if override.TimeoutSeconds != nil {
		result.TimeoutSeconds = *override.TimeoutSeconds
	}

	// Per-check command lists replace the ecosystem defaults for that check only.
	if len(override.Commands) > 0 {
		result.Commands = override.Commands
	}

	if override.Tasks.Dir != "" {
		result.Tasks.Dir = override.Tasks.Dir
	}
	if override.Tasks.MinBytes != nil {
		result.Tasks.MinBytes = *override.Tasks.MinBytes
	}
	if len(override.Tasks.Documents) > 0 {
		result.Tasks.Documents = override.Tasks.Documents
	}

	if override.Sloc.BaselineFile != "" {
		result.Sloc.BaselineFile = override.Sloc.BaselineFile
	}
	if len(override.Sloc.TestMarkers) > 0 {
		result.Sloc.TestMarkers = override.Sloc.TestMarkers
	}

	return result
}

// Marshal renders cfg as YAML, used by `qualitygate init`.
func Marshal(cfg domain.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
