// texfuse converts material and texture definitions from a scene
// description into a portable runtime asset set: packed images plus a JSON
// manifest of texture descriptors.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/texfuse/internal/config"
	"github.com/Faultbox/texfuse/internal/logger"
	"github.com/Faultbox/texfuse/pkg/diag"
	"github.com/Faultbox/texfuse/pkg/export"
	"github.com/Faultbox/texfuse/pkg/scene"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Sugar.Errorf("export failed: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	sc, err := scene.LoadScene(cfg.Export.Scene)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	mode := export.ModeWriteFiles
	if !cfg.Export.WriteImages {
		mode = export.ModeAttach
	}

	recorder := &diag.Recorder{}
	sink := diag.NewSink(diag.ZapHandler{Log: logger.Log}, recorder)
	exp := export.New(export.Options{
		OutputDir:    cfg.Output.Dir,
		Mode:         mode,
		CopyTextures: cfg.Export.CopyTextures,
	}, sink)

	logger.Sugar.Infof("exporting %d material(s) to %s", len(sc.Materials), cfg.Output.Dir)
	manifest := exp.ExportScene(sc, cfg.Export.Environment)

	if err := writeManifest(cfg.Output.Dir, manifest); err != nil {
		return err
	}

	logger.Sugar.Infof("export finished: %s", sink.Summary())
	if sink.Errors() > 0 {
		return fmt.Errorf("%s", sink.Summary())
	}
	return nil
}

// writeManifest writes the texture manifest next to the images.
func writeManifest(dir string, m *export.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	path := filepath.Join(dir, "textures.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
