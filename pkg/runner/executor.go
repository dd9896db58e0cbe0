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
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Command is the literal process description handed to an Executor.
type Command struct {
	// Path is the executable, resolved through PATH when it has no separator
	Path string

	// Args are passed to the process verbatim
	Args []string

	// Dir is the working directory; empty means the caller's directory
	Dir string
}

// Completed holds what a finished process produced.
type Completed struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Executor is the process-creation primitive used by Runner.
//
// Execute must return a non-nil error only when the process could not be
// started or waited for. A process that ran and exited non-zero is a
// successful Execute with a non-zero Completed.ExitCode.
type Executor interface {
	Execute(ctx context.Context, cmd Command) (*Completed, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, cmd Command) (*Completed, error)

// Execute calls f(ctx, cmd).
func (f ExecutorFunc) Execute(ctx context.Context, cmd Command) (*Completed, error) {
	return f(ctx, cmd)
}

// OSExecutor starts real processes with os/exec.
type OSExecutor struct{}

// Execute runs cmd to completion, capturing both output streams.
func (OSExecutor) Execute(ctx context.Context, c Command) (*Completed, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	err := cmd.Wait()
	if err != nil {
		// A context kill also surfaces as an ExitError; report the context instead.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
	}

	return &Completed{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}
