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
	"context"
	stderrors "errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tombee/cmdlets/internal/log"
	"github.com/tombee/cmdlets/pkg/errors"
)

// Runner executes argument vectors through an Executor.
//
// A Runner holds no per-call state and may be shared between goroutines as
// long as its Executor is.
type Runner struct {
	executor Executor
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithExecutor replaces the process-creation primitive.
func WithExecutor(executor Executor) Option {
	return func(r *Runner) {
		if executor != nil {
			r.executor = executor
		}
	}
}

// WithLogger sets the logger used for debug and trace events. The runner never
// logs errors; they are returned to the caller.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Runner. Without options it starts real processes and logs
// nothing.
func New(opts ...Option) *Runner {
	r := &Runner{
		executor: OSExecutor{},
		logger:   log.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRunner = New()

// Default returns the shared Runner used by nodes that were not given one.
func Default() *Runner {
	return defaultRunner
}

// Executor returns the process-creation primitive in use.
func (r *Runner) Executor() Executor {
	return r.executor
}

// RunMap validates loosely typed options with ParseOptions and then calls Run.
// An unrecognized option fails before anything is spawned.
func (r *Runner) RunMap(ctx context.Context, argv []string, options map[string]any) (*Result, error) {
	opts, err := ParseOptions(options)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, argv, opts)
}

// Run executes argv[0] with argv[1:] as arguments and waits for it to exit.
//
// On a non-zero exit without opts.IgnoreExitCode, the completed Result is
// returned together with an *errors.ExecutionError. Spawn failures and
// context errors return a nil Result.
func (r *Runner) Run(ctx context.Context, argv []string, opts Options) (*Result, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, &errors.ValidationError{
			Field:      "argv",
			Message:    "an executable is required",
			Suggestion: "Give the root node a name or a non-empty slice",
		}
	}
	argv = slices.Clone(argv)
	commandLine := strings.Join(argv, " ")

	id := uuid.NewString()
	logger := log.WithRunContext(r.logger, id, argv[0])
	logger.DebugContext(ctx, "spawning process",
		slog.Any(log.ArgvKey, argv),
		slog.String(log.WorkdirKey, opts.Workdir),
	)

	start := time.Now()
	done, err := r.executor.Execute(ctx, Command{
		Path: argv[0],
		Args: argv[1:],
		Dir:  opts.Workdir,
	})
	elapsed := time.Since(start)

	if err != nil {
		switch {
		case stderrors.Is(err, context.DeadlineExceeded):
			return nil, &errors.TimeoutError{
				Operation: commandLine,
				Duration:  elapsed,
				Cause:     err,
			}
		case stderrors.Is(err, context.Canceled):
			return nil, errors.Wrapf(err, "running %s", argv[0])
		default:
			return nil, &errors.SpawnError{
				Argv:    argv,
				Workdir: opts.Workdir,
				Cause:   err,
			}
		}
	}

	result := &Result{
		ID:       id,
		Argv:     argv,
		Workdir:  opts.Workdir,
		ExitCode: done.ExitCode,
		Stdout:   NewOutput(string(done.Stdout)),
		Stderr:   NewOutput(string(done.Stderr)),
		Raw:      opts.Raw,
		Duration: elapsed,
	}

	logger.DebugContext(ctx, "process exited",
		slog.Int(log.ExitCodeKey, result.ExitCode),
		slog.Int64(log.DurationKey, elapsed.Milliseconds()),
	)
	log.Trace(ctx, logger, "captured output",
		slog.String("stdout", result.Stdout.String()),
		slog.String("stderr", result.Stderr.String()),
	)

	if result.ExitCode != 0 && !opts.IgnoreExitCode {
		return result, &errors.ExecutionError{
			Command:  commandLine,
			Argv:     argv,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr.String(),
		}
	}
	return result, nil
}
