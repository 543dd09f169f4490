package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagScene  = flag.String("scene", "", "Path to the scene description file")
	flagOut    = flag.String("out", "", "Output directory")
	flagEnv    = flag.String("env", "", "Path to a DDS environment cube map")
	flagNoCopy = flag.Bool("no-copy", false, "Skip all image file I/O, descriptors only")
	flagBuffer = flag.Bool("buffer", false, "Keep composited images in memory instead of writing them")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Export.Scene = *flagScene
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagEnv != "" {
		cfg.Export.Environment = *flagEnv
	}
	if *flagNoCopy {
		cfg.Export.CopyTextures = false
	}
	if *flagBuffer {
		cfg.Export.WriteImages = false
	}
}
