// ============================================================================
// Acid - Lexer, Parser und REPL
// ============================================================================
//
// Package:     config
// Description: Toolchain configuration from TOML or YAML files
// Author:      Mike Stoffels with Claude
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	mdwerror "github.com/msto63/acid/foundation/core/error"
	mdwlog "github.com/msto63/acid/foundation/core/log"
	mdwfilex "github.com/msto63/acid/foundation/utils/filex"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "ACID_CONFIG"

// Config holds the complete toolchain configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`

	// path is the file the configuration was loaded from, empty for defaults
	path string
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// ParserConfig holds parser limits
type ParserConfig struct {
	MaxInputLength int      `toml:"max_input_length" yaml:"max_input_length"`
	MaxDepth       int      `toml:"max_depth" yaml:"max_depth"`
	SlowThreshold  Duration `toml:"slow_threshold" yaml:"slow_threshold"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  *bool  `toml:"color" yaml:"color"`
	Spans  bool   `toml:"spans" yaml:"spans"`
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistorySize int    `toml:"history_size" yaml:"history_size"`
	HistoryFile string `toml:"history_file" yaml:"history_file"` // plain mode only, "-" disables
	Banner      *bool  `toml:"banner" yaml:"banner"`
	Plain       bool   `toml:"plain" yaml:"plain"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration string from a YAML scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file; the extension decides
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = mdwfilex.ExpandHome(os.ExpandEnv(path))

	if !mdwfilex.Exists(path) {
		return nil, mdwerror.New("config file not found").
			WithCode(mdwerror.CodeMissingConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	if !mdwfilex.IsFile(path) {
		return nil, mdwerror.New("config path is not a file").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		var md toml.MetaData
		md, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %s", undecoded[0])
			}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves everything at its default
		if err = dec.Decode(&cfg); errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, mdwerror.Newf("unsupported config format %q", ext).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	// Apply defaults
	cfg.applyDefaults()
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths returns the files LoadFromEnv tries when ACID_CONFIG is unset
func SearchPaths() []string {
	return []string{
		"./configs/acid.toml",
		"./acid.toml",
		"./acid.yaml",
		"~/.config/acid/acid.toml",
	}
}

// LoadFromEnv loads configuration from the ACID_CONFIG environment variable
// or the first existing default location. Without any file the defaults
// are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}
	if path, ok := mdwfilex.FirstExisting(SearchPaths()...); ok {
		return Load(path)
	}
	return Default(), nil
}

// Path returns the file the configuration came from, empty for defaults
func (c *Config) Path() string {
	return c.path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "acid"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Parser
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = 1 << 20
	}
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = 10000
	}
	if c.Parser.SlowThreshold.Duration == 0 {
		c.Parser.SlowThreshold.Duration = 250 * time.Millisecond
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Color == nil {
		on := true
		c.Output.Color = &on
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "> "
	}
	if c.REPL.HistorySize == 0 {
		c.REPL.HistorySize = 500
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = "~/.acid_history"
	}
	if c.REPL.Banner == nil {
		on := true
		c.REPL.Banner = &on
	}
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}, reason string) error {
		return mdwerror.New("invalid configuration: "+field+" "+reason).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("field", field).
			WithDetail("value", value)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, "is not a log level")
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, "is not a log format")
	}
	if c.Parser.MaxDepth < 0 {
		return invalid("parser.max_depth", c.Parser.MaxDepth, "must not be negative")
	}
	if c.Parser.SlowThreshold.Duration < 0 {
		return invalid("parser.slow_threshold", c.Parser.SlowThreshold.String(), "must not be negative")
	}
	switch c.Output.Format {
	case "text", "tree", "json", "yaml":
	default:
		return invalid("output.format", c.Output.Format, "must be text, tree, json or yaml")
	}
	if c.REPL.HistorySize < 0 {
		return invalid("repl.history_size", c.REPL.HistorySize, "must not be negative")
	}
	return nil
}

// ColorEnabled reports whether diagnostics and the REPL use colors
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// BannerEnabled reports whether the REPL prints its banner
func (c *Config) BannerEnabled() bool {
	return c.REPL.Banner == nil || *c.REPL.Banner
}
