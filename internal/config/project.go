package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig represents a .cxx2rs.yaml file in a source tree
type ProjectConfig struct {
	Version string `yaml:"version"`

	// Output directory for generated Rust sources
	OutputDir string `yaml:"output_dir,omitempty"`

	// Emit stub bodies instead of translated bodies
	Stubs bool `yaml:"stubs,omitempty"`

	// File patterns
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// DefaultProjectConfig returns sensible defaults
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Version:   "1.0",
		OutputDir: "./rust_out",
		Include:   []string{"**/*.cpp", "**/*.cc", "**/*.cxx"},
		Exclude: []string{
			"**/build/**",
			"**/third_party/**",
			"**/*_test.cpp",
		},
	}
}

// LoadProjectConfig loads a .cxx2rs.yaml from the given directory
func LoadProjectConfig(rootPath string) (*ProjectConfig, error) {
	configPath := filepath.Join(rootPath, ".cxx2rs.yaml")

	// Check if config exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Also try .cxx2rs.yml
		configPath = filepath.Join(rootPath, ".cxx2rs.yml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return DefaultProjectConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveProjectConfig saves the config to .cxx2rs.yaml
func SaveProjectConfig(rootPath string, cfg *ProjectConfig) error {
	configPath := filepath.Join(rootPath, ".cxx2rs.yaml")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Merge applies overrides from another config (e.g., CLI flags)
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}

	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}

	if other.Stubs {
		c.Stubs = true
	}

	if len(other.Include) > 0 {
		c.Include = other.Include
	}

	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
}
