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
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/tombee/cmdlets/pkg/errors"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitExecutionFailed},
		{"exit error", &ExitError{Code: 42, Message: "x"}, 42},
		{"child exit code", &pkgerrors.ExecutionError{Command: "false", ExitCode: 3}, 3},
		{"signal exit code", &pkgerrors.ExecutionError{Command: "sleep", ExitCode: -1}, ExitExecutionFailed},
		{"wrapped child exit code", fmt.Errorf("run: %w", &pkgerrors.ExecutionError{ExitCode: 7}), 7},
		{"spawn", &pkgerrors.SpawnError{Argv: []string{"nope"}, Cause: errors.New("not found")}, ExitSpawnFailed},
		{"timeout", &pkgerrors.TimeoutError{Operation: "sleep"}, ExitTimeout},
		{"config", &pkgerrors.ConfigError{Keys: []string{"bogus"}, Reason: "unknown options"}, ExitConfigError},
		{"lookup", &pkgerrors.LookupError{Name: "_x"}, ExitConfigError},
		{"validation", &pkgerrors.ValidationError{Message: "empty"}, ExitConfigError},
		{"not found", &pkgerrors.NotFoundError{Resource: "preset", ID: "x"}, ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestReportError_Suggestion(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("invoke: %w", &pkgerrors.ExecutionError{Command: "false", ExitCode: 1})

	code := ReportError(&buf, err)

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "Error: invoke: error running \"false\"")
	assert.Contains(t, buf.String(), "Suggestion: Pass --ignore-returncode")
}

func TestReportError_NoSuggestion(t *testing.T) {
	var buf bytes.Buffer

	code := ReportError(&buf, NewConfigError("failed to load config", errors.New("bad yaml")))

	assert.Equal(t, ExitConfigError, code)
	assert.Equal(t, "Error: failed to load config: bad yaml\n", buf.String())
}

func TestReportError_Silent(t *testing.T) {
	var buf bytes.Buffer
	err := &ExitError{Code: 5, Message: "child failed", Silent: true}

	assert.Equal(t, 5, ReportError(&buf, err))
	assert.Empty(t, buf.String())
}

func TestExitError_Unwrap(t *testing.T) {
	cause := &pkgerrors.SpawnError{Argv: []string{"x"}, Cause: errors.New("nope")}
	err := NewExecutionError("run failed", cause)

	var spawnErr *pkgerrors.SpawnError
	assert.True(t, errors.As(err, &spawnErr))
	assert.Equal(t, "run failed: failed to start x: nope", err.Error())
}
