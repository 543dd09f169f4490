// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds output packaging settings.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Directory receiving images and the manifest
}

// ExportConfig holds pipeline behavior settings.
type ExportConfig struct {
	Scene        string `yaml:"scene"`         // Path to the scene description file
	Environment  string `yaml:"environment"`   // Optional DDS environment cube map
	CopyTextures bool   `yaml:"copy_textures"` // Gate for all image file I/O
	WriteImages  bool   `yaml:"write_images"`  // false keeps composited bitmaps in memory
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: "./out",
		},
		Export: ExportConfig{
			Scene:        "scene.yaml",
			CopyTextures: true,
			WriteImages:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
