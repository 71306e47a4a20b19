package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_AutoInstantiate(t *testing.T) {
	cfg := Default()
	if !cfg.Runtime.AutoInstantiate {
		t.Fatal("Default().Runtime.AutoInstantiate = false, want true")
	}
	if cfg.Display.CollapsedHeight != 12 {
		t.Fatalf("Default().Display.CollapsedHeight = %d, want 12", cfg.Display.CollapsedHeight)
	}
}

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	t.Setenv("NBTERM_LOG_PATH", "")
	t.Setenv("NBTERM_THEME", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Fatalf("cfg.Source = %q, want %q", cfg.Source, path)
	}
	if !cfg.Runtime.AutoInstantiate {
		t.Fatal("cfg.Runtime.AutoInstantiate = false, want default true")
	}
}

func TestLoad_FromTOML(t *testing.T) {
	t.Setenv("NBTERM_LOG_PATH", "")
	t.Setenv("NBTERM_THEME", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`
[runtime]
auto_instantiate = false

[display]
collapsed_height = 20
theme = "dark"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Runtime.AutoInstantiate {
		t.Fatal("cfg.Runtime.AutoInstantiate = true, want false")
	}
	if cfg.Display.CollapsedHeight != 20 {
		t.Fatalf("cfg.Display.CollapsedHeight = %d, want 20", cfg.Display.CollapsedHeight)
	}
	if cfg.Display.Theme != "dark" {
		t.Fatalf("cfg.Display.Theme = %q, want %q", cfg.Display.Theme, "dark")
	}
}

func TestSave_PersistsOverrides(t *testing.T) {
	t.Setenv("NBTERM_LOG_PATH", "")
	t.Setenv("NBTERM_THEME", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Source = path
	cfg = ApplyKVOverrides(cfg, []string{
		"display.collapsed_height=7",
		"runtime.auto_instantiate=false",
	})
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Display.CollapsedHeight != 7 {
		t.Fatalf("saved collapsed_height = %d, want 7", got.Display.CollapsedHeight)
	}
	if got.Runtime.AutoInstantiate {
		t.Fatal("saved runtime.auto_instantiate = true, want false")
	}
}

func TestApplyKVOverrides(t *testing.T) {
	cfg := Default()
	got := ApplyKVOverrides(cfg, []string{
		"runtime.auto_instantiate=false",
		"display.collapsed_height=5",
		"malformed",
	})
	if got.Runtime.AutoInstantiate {
		t.Fatal("override runtime.auto_instantiate=false not applied")
	}
	if got.Display.CollapsedHeight != 5 {
		t.Fatalf("override display.collapsed_height=5 not applied, got %d", got.Display.CollapsedHeight)
	}
}
