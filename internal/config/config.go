// Package config handles tool configuration loading and management.
package config

import (
	"github.com/Faultbox/mapinfo/pkg/presets"
	"github.com/Faultbox/mapinfo/pkg/scenes"
)

// Config holds all tool settings.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Manifest scenes.Schema  `yaml:"manifest"`
	Preset   presets.Schema `yaml:"preset"`
	Report   ReportConfig   `yaml:"report"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig holds extraction paths.
type DataConfig struct {
	ExtractDir string `yaml:"extract_dir"` // root written by the asset extractor
	Bundle     string `yaml:"bundle"`      // bundle directory name, empty = first "*.bundle*"
	PresetExt  string `yaml:"preset_ext"`  // extension of preset assets
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	Format string `yaml:"format"` // "text" or "yaml"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			ExtractDir: "Extract",
			Bundle:     "",
			PresetExt:  presets.AssetExt,
		},
		Manifest: scenes.DefaultSchema(),
		Preset:   presets.DefaultSchema(),
		Report: ReportConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
