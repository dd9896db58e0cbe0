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

package errors

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents invalid caller input.
// Use this for empty argument vectors, unsupported slice values and similar
// constraint violations.
type ValidationError struct {
	// Field identifies which input failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ErrorType implements ErrorClassifier.
func (e *ValidationError) ErrorType() string { return "validation" }

// IsRetryable implements ErrorClassifier.
func (e *ValidationError) IsRetryable() bool { return false }

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	// Resource is the type of resource (e.g., "preset")
	Resource string

	// ID is the identifier that was not found
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrorType implements ErrorClassifier.
func (e *NotFoundError) ErrorType() string { return "not_found" }

// IsRetryable implements ErrorClassifier.
func (e *NotFoundError) IsRetryable() bool { return false }

// ConfigError represents configuration problems: unrecognized execution
// options, unknown keys in a structured child assignment, or invalid values in
// the config file.
type ConfigError struct {
	// Key is the single configuration key that has the problem (e.g., "log.level")
	Key string

	// Keys lists every unrecognized option or key name, sorted.
	Keys []string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case len(e.Keys) > 0:
		return fmt.Sprintf("config error: %s: %s", e.Reason, strings.Join(e.Keys, ", "))
	case e.Key != "":
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	default:
		return fmt.Sprintf("config error: %s", e.Reason)
	}
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *ConfigError) ErrorType() string { return "config" }

// IsRetryable implements ErrorClassifier.
func (e *ConfigError) IsRetryable() bool { return false }

// ExecutionError is returned when a process was started and exited with a
// non-zero code while exit codes were not being ignored.
type ExecutionError struct {
	// Command is the argument vector joined with single spaces
	Command string

	// Argv is the literal argument vector that was executed
	Argv []string

	// ExitCode is the process exit code
	ExitCode int

	// Stderr is the captured standard error output
	Stderr string
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("error running %q: exit code %d, stderr: %s", e.Command, e.ExitCode, e.Stderr)
}

// ErrorType implements ErrorClassifier.
func (e *ExecutionError) ErrorType() string { return "execution" }

// IsRetryable implements ErrorClassifier.
func (e *ExecutionError) IsRetryable() bool { return false }

// IsUserVisible implements UserVisibleError.
func (e *ExecutionError) IsUserVisible() bool { return true }

// UserMessage implements UserVisibleError.
func (e *ExecutionError) UserMessage() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

// Suggestion implements UserVisibleError.
func (e *ExecutionError) Suggestion() string {
	return "Pass --ignore-returncode to accept non-zero exit codes"
}

// SpawnError is returned when the executable could not be started at all.
type SpawnError struct {
	// Argv is the argument vector that was attempted
	Argv []string

	// Workdir is the directory the process was to be started in
	Workdir string

	// Cause is the underlying error from the process-creation primitive
	Cause error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	name := ""
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	if e.Workdir != "" {
		return fmt.Sprintf("failed to start %s in %s: %v", name, e.Workdir, e.Cause)
	}
	return fmt.Sprintf("failed to start %s: %v", name, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *SpawnError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *SpawnError) ErrorType() string { return "spawn" }

// IsRetryable implements ErrorClassifier.
func (e *SpawnError) IsRetryable() bool { return false }

// LookupError is returned when a child name collides with the reserved
// namespace of a command node.
type LookupError struct {
	// Name is the rejected child name
	Name string

	// Reason explains why the name was rejected
	Reason string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("invalid child name %q: %s", e.Name, e.Reason)
}

// ErrorType implements ErrorClassifier.
func (e *LookupError) ErrorType() string { return "lookup" }

// IsRetryable implements ErrorClassifier.
func (e *LookupError) IsRetryable() bool { return false }

// TimeoutError represents a caller-imposed deadline that expired while a
// process was running.
type TimeoutError struct {
	// Operation describes what timed out (e.g., the command line)
	Operation string

	// Duration is how long the operation ran before timing out
	Duration time.Duration

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s operation timed out after %v", e.Operation, e.Duration)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *TimeoutError) ErrorType() string { return "timeout" }

// IsRetryable implements ErrorClassifier.
func (e *TimeoutError) IsRetryable() bool { return false }
