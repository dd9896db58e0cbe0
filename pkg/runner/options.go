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

package runner

import (
	"fmt"
	"sort"

	"github.com/tombee/cmdlets/pkg/errors"
)

// Option names recognized by ParseOptions.
const (
	OptionWorkdir        = "workdir"
	OptionRaw            = "raw"
	OptionIgnoreExitCode = "ignore_returncode"
)

// Options configures a single Run.
type Options struct {
	// Workdir overrides the spawn directory when non-empty
	Workdir string

	// Raw asks for raw text output instead of lines
	Raw bool

	// IgnoreExitCode suppresses ExecutionError on non-zero exit
	IgnoreExitCode bool
}

// ParseOptions converts loosely typed options, such as those decoded from YAML
// or collected from a CLI, into Options.
//
// Every unrecognized name is reported in a single *errors.ConfigError before
// any value is inspected. A recognized name with a value of the wrong type is
// also a ConfigError. A nil value leaves the option at its zero value.
func ParseOptions(values map[string]any) (Options, error) {
	var unknown []string
	for name := range values {
		switch name {
		case OptionWorkdir, OptionRaw, OptionIgnoreExitCode:
		default:
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Options{}, &errors.ConfigError{
			Keys:   unknown,
			Reason: "unknown options",
		}
	}

	var opts Options
	for name, value := range values {
		if value == nil {
			continue
		}
		switch name {
		case OptionWorkdir:
			s, ok := value.(string)
			if !ok {
				return Options{}, typeError(name, "string", value)
			}
			opts.Workdir = s
		case OptionRaw:
			b, ok := value.(bool)
			if !ok {
				return Options{}, typeError(name, "bool", value)
			}
			opts.Raw = b
		case OptionIgnoreExitCode:
			b, ok := value.(bool)
			if !ok {
				return Options{}, typeError(name, "bool", value)
			}
			opts.IgnoreExitCode = b
		}
	}
	return opts, nil
}

func typeError(name, want string, got any) error {
	return &errors.ConfigError{
		Key:    name,
		Reason: fmt.Sprintf("expected %s, got %T", want, got),
	}
}
