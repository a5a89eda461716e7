// Package config handles configuration loading and defaults for checklistpp.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/checklistpp/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"checklistpp/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// View names accepted for the default_view key.
const (
	ViewChecklist = "checklist"
	ViewKanban    = "kanban"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.checklists)
	DataDir string `yaml:"data_dir,omitempty"`

	// Limits holds the advisory column limits and the task title limit
	Limits LimitsConfig `yaml:"limits,omitempty"`

	// Repaint re-renders the active view after each mutating command
	Repaint bool `yaml:"repaint"`

	// DefaultView selects the startup view: "checklist" or "kanban"
	DefaultView string `yaml:"default_view,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`
}

// LimitsConfig defines per-column task count limits (advisory, warnings
// only) and the task title length cap.
type LimitsConfig struct {
	Todo     int `yaml:"todo,omitempty"`
	Progress int `yaml:"progress,omitempty"`
	Done     int `yaml:"done,omitempty"`
	TaskName int `yaml:"taskname,omitempty"`
}

// ThemeConfig defines color settings (hex, e.g. "#FF5733").
type ThemeConfig struct {
	// Primary color for headers and the focused prompt
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text
	Muted string `yaml:"muted,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Limits: LimitsConfig{
			Todo:     10,
			Progress: 3,
			Done:     10,
			TaskName: 40,
		},
		Repaint:     true,
		DefaultView: ViewChecklist,
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".checklists"
	}
	return filepath.Join(home, ".checklists")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "checklistpp")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "checklistpp")
}

func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults. If no config
// file exists, the defaults are returned as-is.
func Load() (*Config, error) {
	path := configPath()
	if path == "" {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path, merging with defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; presence checks fall back to false

	cfg.merge(&userCfg, &doc)
	return cfg, nil
}

// merge applies user values over the defaults. Strings and positive ints
// win when non-zero; the repaint boolean wins only when the key is present
// in the YAML document, so `repaint: false` is honored without clobbering
// the default for files that omit it.
func (c *Config) merge(other *Config, doc *yaml.Node) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.Limits.Todo > 0 {
		c.Limits.Todo = other.Limits.Todo
	}
	if other.Limits.Progress > 0 {
		c.Limits.Progress = other.Limits.Progress
	}
	if other.Limits.Done > 0 {
		c.Limits.Done = other.Limits.Done
	}
	if other.Limits.TaskName > 0 {
		c.Limits.TaskName = other.Limits.TaskName
	}
	if other.DefaultView == ViewChecklist || other.DefaultView == ViewKanban {
		c.DefaultView = other.DefaultView
	}
	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}

	if yamlHasPath(doc, "repaint") {
		c.Repaint = other.Repaint
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Kind == yaml.ScalarNode && n.Content[i].Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path, expanding a leading ~.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(c.DataDir, "~/"))
		}
	}
	return c.DataDir
}
