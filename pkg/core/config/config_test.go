package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	mdwerror "github.com/msto63/acid/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"seconds", "2s", 2 * time.Second, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{250 * time.Millisecond}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "250ms" {
		t.Errorf("MarshalText() = %v, want 250ms", string(result))
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.Name != "acid" {
		t.Errorf("General.Name = %v, want acid", cfg.General.Name)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.Parser.MaxInputLength != 1<<20 {
		t.Errorf("Parser.MaxInputLength = %v, want 1 MiB", cfg.Parser.MaxInputLength)
	}
	if cfg.Parser.MaxDepth != 10000 {
		t.Errorf("Parser.MaxDepth = %v, want 10000", cfg.Parser.MaxDepth)
	}
	if cfg.Parser.SlowThreshold.Duration != 250*time.Millisecond {
		t.Errorf("Parser.SlowThreshold = %v, want 250ms", cfg.Parser.SlowThreshold.Duration)
	}
	if cfg.Output.Format != "text" || !cfg.ColorEnabled() {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.REPL.Prompt != "> " || cfg.REPL.HistorySize != 500 || cfg.REPL.HistoryFile != "~/.acid_history" || !cfg.BannerEnabled() {
		t.Errorf("REPL = %+v", cfg.REPL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"log level", func(c *Config) { c.General.LogLevel = "loud" }, "general.log_level"},
		{"log format", func(c *Config) { c.General.LogFormat = "xml" }, "general.log_format"},
		{"depth", func(c *Config) { c.Parser.MaxDepth = -1 }, "parser.max_depth"},
		{"output", func(c *Config) { c.Output.Format = "html" }, "output.format"},
		{"history", func(c *Config) { c.REPL.HistorySize = -5 }, "repl.history_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if mdwerror.GetCode(err) != mdwerror.CodeInvalidConfig {
				t.Fatalf("Validate() = %v, want INVALID_CONFIG", err)
			}
			var coded *mdwerror.Error
			if e, ok := err.(*mdwerror.Error); ok {
				coded = e
			}
			if coded == nil || coded.Details()["field"] != tt.field {
				t.Errorf("field detail = %v, want %s", coded, tt.field)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/acid.toml")
	if mdwerror.GetCode(err) != mdwerror.CodeMissingConfig {
		t.Errorf("Load() = %v, want MISSING_CONFIG", err)
	}
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())
	if mdwerror.GetCode(err) != mdwerror.CodeInvalidConfig {
		t.Errorf("Load(dir) = %v, want INVALID_CONFIG", err)
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "acid.toml", `
[general]
name = "test-acid"
log_level = "debug"

[parser]
max_depth = 64
slow_threshold = "1s"

[output]
format = "json"
color = false

[repl]
prompt = "λ "
`},
		{"yaml", "acid.yaml", `
general:
  name: test-acid
  log_level: debug
parser:
  max_depth: 64
  slow_threshold: 1s
output:
  format: json
  color: false
repl:
  prompt: "λ "
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if cfg.General.Name != "test-acid" {
				t.Errorf("General.Name = %v, want test-acid", cfg.General.Name)
			}
			if cfg.General.LogLevel != "debug" {
				t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
			}
			if cfg.Parser.MaxDepth != 64 {
				t.Errorf("Parser.MaxDepth = %v, want 64", cfg.Parser.MaxDepth)
			}
			if cfg.Parser.SlowThreshold.Duration != time.Second {
				t.Errorf("Parser.SlowThreshold = %v, want 1s", cfg.Parser.SlowThreshold.Duration)
			}
			if cfg.Output.Format != "json" || cfg.ColorEnabled() {
				t.Errorf("Output = %+v", cfg.Output)
			}
			if cfg.REPL.Prompt != "λ " {
				t.Errorf("REPL.Prompt = %q", cfg.REPL.Prompt)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q, want %q", cfg.Path(), path)
			}

			// Check defaults were applied for missing values
			if cfg.Parser.MaxInputLength != 1<<20 {
				t.Errorf("Parser.MaxInputLength = %v, want default", cfg.Parser.MaxInputLength)
			}
			if cfg.REPL.HistorySize != 500 {
				t.Errorf("REPL.HistorySize = %v, want default", cfg.REPL.HistorySize)
			}
		})
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml syntax", "a.toml", "[general\nname = 1"},
		{"toml unknown key", "a.toml", "[general]\ncolour = true"},
		{"yaml unknown key", "a.yaml", "general:\n  colour: true\n"},
		{"bad value", "a.toml", "[output]\nformat = \"html\""},
		{"bad duration", "a.yaml", "parser:\n  slow_threshold: soon\n"},
		{"unknown extension", "a.ini", "[general]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if mdwerror.GetCode(err) != mdwerror.CodeInvalidConfig {
				t.Errorf("Load() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad_EmptyYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yml", ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.Name != "acid" {
		t.Errorf("defaults not applied: %+v", cfg.General)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "env.toml", "[general]\nname = \"from-env\"\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "from-env" {
		t.Errorf("General.Name = %v, want from-env", cfg.General.Name)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	// Change to a temp directory without config files
	originalWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(originalWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Path() != "" || cfg.General.Name != "acid" {
		t.Errorf("expected defaults, got %+v from %q", cfg.General, cfg.Path())
	}
}

func TestLoad_SampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "configs", "acid.toml"))
	if err != nil {
		t.Fatalf("Load(sample) error = %v", err)
	}
	cfg.path = ""
	if want := Default(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("sample config = %+v, want defaults %+v", cfg, want)
	}
}
