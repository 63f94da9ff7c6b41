package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	Config     string
	Debug      bool
	LogFile    string
	ExtractDir string
	Bundle     string
	Format     string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file (rotated)")
	fs.StringVarP(&f.ExtractDir, "extract", "e", "", "Extraction output root")
	fs.StringVarP(&f.Bundle, "bundle", "b", "", "Bundle directory name under the extraction root")
	fs.StringVarP(&f.Format, "format", "f", "", "Report format: text or yaml")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.ExtractDir != "" {
		cfg.Data.ExtractDir = f.ExtractDir
	}
	if f.Bundle != "" {
		cfg.Data.Bundle = f.Bundle
	}
	if f.Format != "" {
		cfg.Report.Format = f.Format
	}
}
