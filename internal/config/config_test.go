package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if cfg.Limits.Todo != 10 || cfg.Limits.Progress != 3 || cfg.Limits.Done != 10 {
		t.Errorf("column limits = %+v, want 10/3/10", cfg.Limits)
	}
	if cfg.Limits.TaskName != 40 {
		t.Errorf("Limits.TaskName = %d, want 40", cfg.Limits.TaskName)
	}
	if !cfg.Repaint {
		t.Error("Repaint should default to true")
	}
	if cfg.DefaultView != ViewChecklist {
		t.Errorf("DefaultView = %q, want checklist", cfg.DefaultView)
	}
	if cfg.Theme.Primary == "" {
		t.Error("Theme.Primary should have a default value")
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Limits.Todo != 10 {
		t.Errorf("Limits.Todo = %d, want default 10", cfg.Limits.Todo)
	}
}

func TestLoadFrom_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data_dir: /custom/data
limits:
  progress: 5
default_view: kanban
theme:
  primary: "#FF0000"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.DataDir != "/custom/data" {
		t.Errorf("DataDir = %q, want /custom/data", cfg.DataDir)
	}
	if cfg.Limits.Progress != 5 {
		t.Errorf("Limits.Progress = %d, want 5", cfg.Limits.Progress)
	}
	if cfg.Limits.Todo != 10 {
		t.Errorf("Limits.Todo = %d, want default 10 kept", cfg.Limits.Todo)
	}
	if cfg.DefaultView != ViewKanban {
		t.Errorf("DefaultView = %q, want kanban", cfg.DefaultView)
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("Theme.Primary = %q, want #FF0000", cfg.Theme.Primary)
	}
	if cfg.Theme.Accent == "" {
		t.Error("Theme.Accent default was lost in merge")
	}
}

// repaint: false must survive the merge even though false is the zero
// value; presence in the file is what matters.
func TestLoadFrom_RepaintFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("repaint: false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Repaint {
		t.Error("Repaint = true, want false from file")
	}
}

func TestLoadFrom_RepaintOmittedKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: /x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !cfg.Repaint {
		t.Error("Repaint = false, want default true when the key is absent")
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("limits: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() with invalid YAML succeeded")
	}
}

func TestLoadFrom_InvalidViewIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_view: spreadsheet\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.DefaultView != ViewChecklist {
		t.Errorf("DefaultView = %q, want default checklist", cfg.DefaultView)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.DataDir = "/saved/data"
	cfg.Limits.Done = 25
	cfg.Repaint = false
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.DataDir != "/saved/data" || loaded.Limits.Done != 25 || loaded.Repaint {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestGetDataDir_TildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := &Config{DataDir: "~/notes"}
	if got, want := cfg.GetDataDir(), filepath.Join(home, "notes"); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}

	cfg = &Config{DataDir: "/absolute/path"}
	if got := cfg.GetDataDir(); got != "/absolute/path" {
		t.Errorf("GetDataDir() = %q, want /absolute/path", got)
	}
}
