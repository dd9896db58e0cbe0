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

package shared

import (
	"io"
	"log/slog"

	"github.com/tombee/cmdlets/internal/config"
	"github.com/tombee/cmdlets/internal/log"
	"github.com/tombee/cmdlets/internal/presets"
	"github.com/tombee/cmdlets/pkg/runner"
)

// LoadConfig loads the config file selected by --config.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigPath())
	if err != nil {
		return nil, NewConfigError("failed to load config", err)
	}
	return cfg, nil
}

// NewLogger builds the CLI logger from cfg. --verbose forces debug and
// --quiet forces error, in that order of precedence.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	lc := cfg.Log.Logger(w)
	switch {
	case GetVerbose():
		lc.Level = "debug"
	case GetQuiet():
		lc.Level = "error"
	}
	return log.WithComponent(log.New(lc), "cli")
}

// NewRegistry builds a preset registry over the configured definitions and
// validates it.
func NewRegistry(cfg *config.Config, r *runner.Runner) (*presets.Registry, error) {
	reg := presets.New(cfg.Presets, r)
	if err := reg.Validate(); err != nil {
		return nil, NewConfigError("invalid presets", err)
	}
	return reg, nil
}
