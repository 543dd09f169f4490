package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Dir != "./out" {
		t.Errorf("Output.Dir = %q, want ./out", cfg.Output.Dir)
	}
	if cfg.Export.Scene != "scene.yaml" {
		t.Errorf("Export.Scene = %q, want scene.yaml", cfg.Export.Scene)
	}
	if !cfg.Export.CopyTextures {
		t.Error("Export.CopyTextures should default to true")
	}
	if !cfg.Export.WriteImages {
		t.Error("Export.WriteImages should default to true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestSaveToAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "texfuse.yaml")

	cfg := Default()
	cfg.Output.Dir = "/tmp/export"
	cfg.Export.Environment = "sky.dds"
	cfg.Export.CopyTextures = false
	cfg.Logging.Level = "debug"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if loaded.Output.Dir != "/tmp/export" {
		t.Errorf("Output.Dir = %q", loaded.Output.Dir)
	}
	if loaded.Export.Environment != "sky.dds" {
		t.Errorf("Export.Environment = %q", loaded.Export.Environment)
	}
	if loaded.Export.CopyTextures {
		t.Error("Export.CopyTextures should round-trip as false")
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", loaded.Logging.Level)
	}
}

func TestLoadFromFile_PartialMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "texfuse.yaml")
	partial := "output:\n  dir: /data/out\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Output.Dir != "/data/out" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	// Untouched sections keep their defaults.
	if cfg.Export.Scene != "scene.yaml" {
		t.Errorf("Export.Scene = %q, defaults should survive a partial file", cfg.Export.Scene)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
