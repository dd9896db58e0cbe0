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

package run

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tombee/cmdlets/internal/commands/shared"
	"github.com/tombee/cmdlets/internal/config"
	"github.com/tombee/cmdlets/internal/metrics"
	"github.com/tombee/cmdlets/internal/tracing"
	"github.com/tombee/cmdlets/pkg/cmdtree"
	cmdleterrors "github.com/tombee/cmdlets/pkg/errors"
	"github.com/tombee/cmdlets/pkg/runner"
)

// runResponse is the JSON document written by run --json.
type runResponse struct {
	shared.JSONResponse
	ID         string             `json:"id,omitempty"`
	Argv       []string           `json:"argv"`
	Workdir    string             `json:"workdir,omitempty"`
	ExitCode   *int               `json:"exit_code,omitempty"`
	Stdout     any                `json:"stdout,omitempty"`
	Stderr     string             `json:"stderr,omitempty"`
	DurationMS int64              `json:"duration_ms"`
	Errors     []shared.JSONError `json:"errors,omitempty"`
}

// runNode resolves path, invokes it with args and reports the outcome.
func runNode(cmd *cobra.Command, path string, args []string, flags runFlags) error {
	jsonOut := shared.GetJSON()
	fail := func(err error) error {
		if !jsonOut {
			return err
		}
		if emitErr := shared.EmitJSONError(cmd.OutOrStdout(), "run", err); emitErr != nil {
			return emitErr
		}
		return &shared.ExitError{Code: shared.ExitCodeFor(err), Message: "run failed", Cause: err, Silent: true}
	}

	cfg, err := shared.LoadConfig()
	if err != nil {
		return fail(err)
	}
	logger := shared.NewLogger(cfg, cmd.ErrOrStderr())

	executor := newExecutor()
	var registry *prometheus.Registry
	if flags.metrics {
		registry = prometheus.NewRegistry()
		executor = metrics.WrapExecutor(executor, metrics.New(registry))
	}
	if flags.trace {
		v, _, _ := shared.GetVersion()
		tp, err := tracing.NewStdoutProvider(cmd.ErrOrStderr(), config.AppName, v)
		if err != nil {
			return fail(shared.NewExecutionError("failed to start tracing", err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Warn("failed to flush traces", "error", err)
			}
		}()
		executor = tracing.WrapExecutor(executor, tp.Tracer(tracing.TracerName),
			tracing.WithRedactor(tracing.NewRedactor(tracing.ModeStandard)))
	}

	r := runner.New(runner.WithExecutor(executor), runner.WithLogger(logger))
	presets, err := shared.NewRegistry(cfg, r)
	if err != nil {
		return fail(err)
	}
	node, err := presets.Resolve(path)
	if err != nil {
		return fail(shared.NewConfigError(fmt.Sprintf("cannot resolve %q", path), err))
	}

	ctx, cancel := commandContext(cmd, flags.timeout)
	defer cancel()

	opts := runner.Options{
		Workdir:        flags.workdir,
		Raw:            flags.raw,
		IgnoreExitCode: flags.ignoreExitCode,
	}
	lines, runErr := node.InvokeWith(ctx, args, opts)
	result := node.LastResult()

	if jsonOut {
		resp := newRunResponse(node, args, flags, lines, result, runErr)
		if err := shared.EmitJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
	} else if result != nil {
		writeOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, lines)
	}

	if registry != nil {
		if err := metrics.WriteText(cmd.ErrOrStderr(), registry); err != nil {
			logger.Warn("failed to write metrics", "error", err)
		}
	}

	if runErr == nil {
		return nil
	}
	return exitError(runErr, jsonOut)
}

// writeOutput prints the child's stdout to out and its stderr to errOut.
func writeOutput(out, errOut io.Writer, result *runner.Result, lines []string) {
	if result.Raw {
		fmt.Fprint(out, result.Stdout.String())
	} else {
		if lines == nil {
			lines = result.Stdout.Slice()
		}
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
	}
	if result.Stderr.Len() > 0 {
		fmt.Fprint(errOut, result.Stderr.String())
	}
}

func newRunResponse(node *cmdtree.Node, args []string, flags runFlags, lines []string, result *runner.Result, runErr error) runResponse {
	resp := runResponse{
		JSONResponse: shared.NewJSONResponse("run", runErr == nil),
		Argv:         append(node.Argv(), args...),
		Workdir:      flags.workdir,
	}
	if resp.Workdir == "" {
		resp.Workdir = node.Workdir()
	}

	if result != nil {
		code := result.ExitCode
		resp.ID = result.ID
		resp.Argv = result.Argv
		resp.ExitCode = &code
		resp.Stderr = result.Stderr.String()
		resp.DurationMS = result.Duration.Milliseconds()
		switch {
		case result.Raw:
			resp.Stdout = result.Stdout.String()
		case lines != nil:
			resp.Stdout = lines
		default:
			resp.Stdout = result.Stdout.Slice()
		}
	}

	if runErr != nil {
		resp.Errors = []shared.JSONError{shared.NewJSONError(runErr)}
	}
	return resp
}

// exitError maps an invocation error to the process exit status. The child's
// stderr has already been forwarded, so a failed child is reported briefly.
func exitError(err error, silent bool) error {
	code := shared.ExitCodeFor(err)

	var execErr *cmdleterrors.ExecutionError
	if !silent && errors.As(err, &execErr) {
		return &shared.ExitError{Code: code, Message: execErr.UserMessage()}
	}
	return &shared.ExitError{Code: code, Message: "run failed", Cause: err, Silent: silent}
}
