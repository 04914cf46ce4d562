package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultsWhenAbsent(t *testing.T) {
	tmp := t.TempDir()

	cfg, err := Load(tmp)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg != Default() {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, Default())
	}

	if _, err := os.Stat(filepath.Join(tmp, FileName)); err != nil {
		t.Fatalf("expected %s to be written: %v", FileName, err)
	}
}

func TestLoadReadsExistingConfig(t *testing.T) {
	tmp := t.TempDir()

	contents := `[export]
path = "/tmp/exports"
format = "csv"

[ui]
show_instructions = false
auto_save = false
`
	if err := os.WriteFile(filepath.Join(tmp, FileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(tmp)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Export.Path != "/tmp/exports" {
		t.Fatalf("Export.Path = %q, want %q", cfg.Export.Path, "/tmp/exports")
	}
	if cfg.UI.ShowInstructions {
		t.Fatalf("UI.ShowInstructions = true, want false")
	}
	if cfg.UI.AutoSave {
		t.Fatalf("UI.AutoSave = true, want false")
	}
}

func TestLoadFallsBackOnCorruptConfig(t *testing.T) {
	tmp := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmp, FileName), []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(tmp)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadFillsMissingKeysWithDefaults(t *testing.T) {
	tmp := t.TempDir()

	contents := `[export]
path = "/srv/exports"
`
	if err := os.WriteFile(filepath.Join(tmp, FileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(tmp)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Export.Path != "/srv/exports" {
		t.Fatalf("Export.Path = %q, want %q", cfg.Export.Path, "/srv/exports")
	}
	if cfg.Export.Format != "csv" {
		t.Fatalf("Export.Format = %q, want %q", cfg.Export.Format, "csv")
	}
	if !cfg.UI.ShowInstructions {
		t.Fatalf("UI.ShowInstructions = false, want default true")
	}
}
