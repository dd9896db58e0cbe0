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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/cmdlets/pkg/errors"
)

// clearEnv isolates a test from the caller's logging environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CMDLETS_DEBUG", "CMDLETS_LOG_LEVEL", "LOG_LEVEL", "LOG_FORMAT", "LOG_SOURCE"} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Presets)
}

func TestLoad_DefaultLocation(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), AppName)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: debug\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "config_file", cfgErr.Key)
}

func TestLoad_Presets(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
log:
  format: json
presets:
  hg: [hg, --pager, never]
  mk:
    cmdslice: make
    workdir: /src
    children:
      docs:
        cmdslice: [-C, docs]
      t: test
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []any{"hg", "--pager", "never"}, cfg.Presets["hg"])

	mk, ok := cfg.Presets["mk"].(map[string]any)
	require.True(t, ok, "mapping presets decode as map[string]any")
	assert.Equal(t, "/src", mk["workdir"])
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_UnknownField(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantLevel  string
		wantFormat string
		wantSource bool
	}{
		{
			name:       "LOG_LEVEL",
			env:        map[string]string{"LOG_LEVEL": "WARN"},
			wantLevel:  "warn",
			wantFormat: "text",
		},
		{
			name:       "CMDLETS_LOG_LEVEL wins over LOG_LEVEL",
			env:        map[string]string{"LOG_LEVEL": "warn", "CMDLETS_LOG_LEVEL": "trace"},
			wantLevel:  "trace",
			wantFormat: "text",
		},
		{
			name:       "CMDLETS_DEBUG",
			env:        map[string]string{"CMDLETS_DEBUG": "1", "LOG_LEVEL": "error"},
			wantLevel:  "debug",
			wantFormat: "text",
			wantSource: true,
		},
		{
			name:       "LOG_FORMAT and LOG_SOURCE",
			env:        map[string]string{"LOG_FORMAT": "JSON", "LOG_SOURCE": "1"},
			wantLevel:  "error",
			wantFormat: "json",
			wantSource: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(writeConfig(t, "log:\n  level: error\n"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, cfg.Log.Level)
			assert.Equal(t, tt.wantFormat, cfg.Log.Format)
			assert.Equal(t, tt.wantSource, cfg.Log.AddSource)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"reserved preset", func(c *Config) { c.Presets["_x"] = "x" }, "presets._x"},
		{"dotted preset", func(c *Config) { c.Presets["a.b"] = "x" }, "presets.a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *errors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "cmdlets", "config.yaml"), path)
}

func TestLogConfig_Logger(t *testing.T) {
	lc := LogConfig{Level: "debug", Format: "json", AddSource: true}
	out := lc.Logger(os.Stdout)
	assert.Equal(t, "debug", out.Level)
	assert.Equal(t, "json", string(out.Format))
	assert.True(t, out.AddSource)
	assert.Equal(t, os.Stdout, out.Output)
}
