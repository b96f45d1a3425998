// Package config handles loading and saving condtree configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/condtree/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/condtree/pkg/model"
)

// UIConfig holds editor appearance preferences.
type UIConfig struct {
	Theme         string `yaml:"theme,omitempty"`          // "dark", "light", "auto"
	ShowIDs       bool   `yaml:"show_ids,omitempty"`       // Render node ids next to rows
	ConfirmDelete bool   `yaml:"confirm_delete,omitempty"` // Ask before deleting a node
}

// EditorConfig holds defaults for structural edits.
type EditorConfig struct {
	DefaultOperator model.Operator `yaml:"default_operator,omitempty"` // AND or OR for new groups
}

// Config is the top-level configuration for condtree.
type Config struct {
	UI     UIConfig     `yaml:"ui,omitempty"`
	Editor EditorConfig `yaml:"editor,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme:         "auto",
			ConfirmDelete: true,
		},
		Editor: EditorConfig{
			DefaultOperator: model.OpAnd,
		},
	}
}

// ConfigDir returns the XDG config directory for condtree.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "condtree")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "condtree")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if !cfg.Editor.DefaultOperator.Valid() {
		cfg.Editor.DefaultOperator = model.OpAnd
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
