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
	"errors"
	"fmt"
	"io"
	"os"

	pkgerrors "github.com/tombee/cmdlets/pkg/errors"
)

// Exit codes for cmdlets commands. A child process that exits non-zero has
// its own code passed through instead of ExitExecutionFailed.
const (
	ExitSuccess         = 0
	ExitExecutionFailed = 1
	ExitConfigError     = 2
	ExitTimeout         = 124 // matches timeout(1)
	ExitSpawnFailed     = 127 // matches the shell's "command not found"
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error

	// Silent suppresses the "Error:" line, used when the child already wrote
	// its own diagnostics to stderr.
	Silent bool
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates an error for invalid configuration or options.
func NewConfigError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitConfigError,
		Message: msg,
		Cause:   cause,
	}
}

// NewExecutionError creates an error for generic execution failures.
func NewExecutionError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitExecutionFailed,
		Message: msg,
		Cause:   cause,
	}
}

// ExitCodeFor classifies err into a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var execErr *pkgerrors.ExecutionError
	if errors.As(err, &execErr) {
		if execErr.ExitCode > 0 && execErr.ExitCode < 256 {
			return execErr.ExitCode
		}
		return ExitExecutionFailed
	}

	var spawnErr *pkgerrors.SpawnError
	if errors.As(err, &spawnErr) {
		return ExitSpawnFailed
	}

	var timeoutErr *pkgerrors.TimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitTimeout
	}

	var (
		configErr     *pkgerrors.ConfigError
		validationErr *pkgerrors.ValidationError
		lookupErr     *pkgerrors.LookupError
		notFoundErr   *pkgerrors.NotFoundError
	)
	if errors.As(err, &configErr) || errors.As(err, &validationErr) ||
		errors.As(err, &lookupErr) || errors.As(err, &notFoundErr) {
		return ExitConfigError
	}

	return ExitExecutionFailed
}

// HandleExitError reports err on stderr and exits with its exit code.
func HandleExitError(err error) {
	if err == nil {
		return
	}
	os.Exit(ReportError(os.Stderr, err))
}

// ReportError writes err and any user-visible suggestion to w and returns the
// exit code HandleExitError would use.
func ReportError(w io.Writer, err error) int {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || !exitErr.Silent {
		fmt.Fprintln(w, "Error:", err.Error())
		printUserVisibleSuggestion(w, err)
	}
	return ExitCodeFor(err)
}

// printUserVisibleSuggestion walks the error chain for a UserVisibleError and
// prints its suggestion if available.
func printUserVisibleSuggestion(w io.Writer, err error) {
	for err != nil {
		if userErr, ok := err.(pkgerrors.UserVisibleError); ok {
			if userErr.IsUserVisible() {
				if suggestion := userErr.Suggestion(); suggestion != "" {
					fmt.Fprintf(w, "\nSuggestion: %s\n", suggestion)
				}
			}
			return
		}
		err = errors.Unwrap(err)
	}
}
