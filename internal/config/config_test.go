package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test data defaults
	if cfg.Data.ExtractDir != "Extract" {
		t.Errorf("expected extract dir 'Extract', got %s", cfg.Data.ExtractDir)
	}
	if cfg.Data.Bundle != "" {
		t.Errorf("expected empty bundle, got %s", cfg.Data.Bundle)
	}
	if cfg.Data.PresetExt != ".asset" {
		t.Errorf("expected preset ext '.asset', got %s", cfg.Data.PresetExt)
	}

	// Test schema defaults
	if cfg.Manifest.SceneList != "m_Scenes" {
		t.Errorf("expected scene list 'm_Scenes', got %s", cfg.Manifest.SceneList)
	}
	if cfg.Preset.Children != "ChildPresets" {
		t.Errorf("expected children 'ChildPresets', got %s", cfg.Preset.Children)
	}

	// Test report and logging defaults
	if cfg.Report.Format != "text" {
		t.Errorf("expected format 'text', got %s", cfg.Report.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
data:
  extract_dir: "D:/tarkov/Extract"
  bundle: "maps.bundle"

preset:
  children: "Includes"

report:
  format: yaml

logging:
  level: "debug"
  log_file: "mapinfo.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Data.ExtractDir != "D:/tarkov/Extract" {
		t.Errorf("expected extract dir D:/tarkov/Extract, got %s", cfg.Data.ExtractDir)
	}
	if cfg.Data.Bundle != "maps.bundle" {
		t.Errorf("expected bundle maps.bundle, got %s", cfg.Data.Bundle)
	}
	if cfg.Preset.Children != "Includes" {
		t.Errorf("expected children 'Includes', got %s", cfg.Preset.Children)
	}
	// Unset schema fields keep their defaults
	if cfg.Preset.Root != "MonoBehaviour" {
		t.Errorf("expected root 'MonoBehaviour', got %s", cfg.Preset.Root)
	}
	if cfg.Report.Format != "yaml" {
		t.Errorf("expected format yaml, got %s", cfg.Report.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "mapinfo.log" {
		t.Errorf("expected log file 'mapinfo.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
data:
  extract_dir: [not a string
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	// Keep the user's real config out of the lookup
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Create temp directory and change to it
	chdir(t, t.TempDir())

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create mapinfo.yaml in current directory
	if err := os.WriteFile(FileName, []byte("data:\n  bundle: x\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find mapinfo.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "extract and bundle flags",
			args: []string{"-e", "/data/extract", "--bundle", "maps_1.bundle"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.ExtractDir != "/data/extract" {
					t.Errorf("expected extract dir /data/extract, got %s", cfg.Data.ExtractDir)
				}
				if cfg.Data.Bundle != "maps_1.bundle" {
					t.Errorf("expected bundle maps_1.bundle, got %s", cfg.Data.Bundle)
				}
			},
		},
		{
			name: "format and log file flags",
			args: []string{"--format", "yaml", "--log-file", "run.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Report.Format != "yaml" {
					t.Errorf("expected format yaml, got %s", cfg.Report.Format)
				}
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.ExtractDir != "Extract" {
					t.Errorf("expected default extract dir, got %s", cfg.Data.ExtractDir)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags Flags
			fs := pflag.NewFlagSet(tt.name, pflag.ContinueOnError)
			flags.Register(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			cfg := Default()
			flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
data:
  extract_dir: from-file
  bundle: file.bundle
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	flags := &Flags{Config: configPath, ExtractDir: "from-flag"}

	// Load config
	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Extract dir should be from flag, not file
	if cfg.Data.ExtractDir != "from-flag" {
		t.Errorf("expected extract dir from flag, got %s", cfg.Data.ExtractDir)
	}

	// Bundle should be from file since no flag override
	if cfg.Data.Bundle != "file.bundle" {
		t.Errorf("expected bundle from file, got %s", cfg.Data.Bundle)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Data.Bundle = "maps.bundle"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := Load(&Flags{Config: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Data.Bundle != "maps.bundle" {
		t.Errorf("expected bundle maps.bundle, got %s", loaded.Data.Bundle)
	}
	if loaded.Preset != cfg.Preset {
		t.Errorf("preset schema changed on round trip: %+v", loaded.Preset)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
