// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the cmdlets configuration file.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tombee/cmdlets/internal/log"
	"github.com/tombee/cmdlets/pkg/errors"
)

// Config is the top-level configuration.
type Config struct {
	// Log configures the CLI logger.
	Log LogConfig `yaml:"log"`

	// Presets maps preset names to command trees. A preset is a string, a
	// list of tokens, or a mapping with cmdslice, workdir and children.
	Presets map[string]any `yaml:"presets"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	// Level sets the minimum log level (trace, debug, info, warn, error).
	// Environment: CMDLETS_LOG_LEVEL, LOG_LEVEL
	// Default: info
	Level string `yaml:"level"`

	// Format sets the output format (json, text).
	// Environment: LOG_FORMAT
	// Default: text
	Format string `yaml:"format"`

	// AddSource adds source file and line information to logs.
	// Environment: LOG_SOURCE
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: string(log.FormatText),
		},
		Presets: map[string]any{},
	}
}

// Load reads configuration from configPath, or from the XDG default location
// when configPath is empty. A missing default file yields Default(); a
// missing explicit file is an error. Environment variables override file
// values.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	path := configPath
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, &errors.ConfigError{Key: "config_file", Reason: "cannot locate config directory", Cause: err}
		}
		if _, err := os.Stat(path); stderrors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, &errors.ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", path),
				Cause:  err,
			}
		}
	}

	cfg.applyDefaults()
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile decodes a YAML file, rejecting unknown top-level fields.
func (c *Config) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Presets == nil {
		c.Presets = map[string]any{}
	}
}

// loadFromEnv applies the same variables internal/log reads, so a config
// file never masks an explicit environment setting.
func (c *Config) loadFromEnv() {
	debug := os.Getenv("CMDLETS_DEBUG")
	if debug == "true" || debug == "1" {
		c.Log.Level = "debug"
		c.Log.AddSource = true
	} else if debug == "" {
		if level := os.Getenv("CMDLETS_LOG_LEVEL"); level != "" {
			c.Log.Level = strings.ToLower(level)
		} else if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.Log.Level = strings.ToLower(level)
		}
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Log.Format = strings.ToLower(format)
	}
	if os.Getenv("LOG_SOURCE") == "1" {
		c.Log.AddSource = true
	}
}

// Validate checks log settings and preset names.
func (c *Config) Validate() error {
	if !log.ValidLevel(c.Log.Level) {
		return &errors.ConfigError{Key: "log.level", Reason: fmt.Sprintf("unsupported level %q", c.Log.Level)}
	}
	switch log.Format(c.Log.Format) {
	case log.FormatJSON, log.FormatText:
	default:
		return &errors.ConfigError{Key: "log.format", Reason: fmt.Sprintf("unsupported format %q", c.Log.Format)}
	}
	for name := range c.Presets {
		if name == "" || strings.HasPrefix(name, "_") || strings.Contains(name, ".") {
			return &errors.ConfigError{
				Key:    "presets." + name,
				Reason: "preset names must be non-empty, must not start with '_' and must not contain '.'",
			}
		}
	}
	return nil
}

// Logger builds the log configuration, writing to w.
func (l LogConfig) Logger(w io.Writer) *log.Config {
	return &log.Config{
		Level:     l.Level,
		Format:    log.Format(l.Format),
		Output:    w,
		AddSource: l.AddSource,
	}
}
