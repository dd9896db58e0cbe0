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

package tracing

import (
	"context"
	"fmt"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/cmdlets/pkg/runner"
)

// TracerName is the instrumentation scope used by the CLI.
const TracerName = "github.com/tombee/cmdlets"

// Span attribute keys.
const (
	AttrCommand     = attribute.Key("process.command")
	AttrCommandArgs = attribute.Key("process.command_args")
	AttrWorkdir     = attribute.Key("process.working_directory")
	AttrExitCode    = attribute.Key("process.exit_code")
)

// WrapOption configures WrapExecutor.
type WrapOption func(*wrapConfig)

type wrapConfig struct {
	redactor *Redactor
}

// WithRedactor masks secrets in recorded arguments. Without it arguments are
// recorded verbatim.
func WithRedactor(r *Redactor) WrapOption {
	return func(c *wrapConfig) {
		c.redactor = r
	}
}

// WrapExecutor returns an Executor that records a span around every call to
// next.
func WrapExecutor(next runner.Executor, tracer trace.Tracer, opts ...WrapOption) runner.Executor {
	var cfg wrapConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return runner.ExecutorFunc(func(ctx context.Context, cmd runner.Command) (*runner.Completed, error) {
		argv := cfg.redactor.RedactArgv(append([]string{cmd.Path}, cmd.Args...))
		ctx, span := tracer.Start(ctx, "exec "+filepath.Base(cmd.Path),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				AttrCommand.String(cmd.Path),
				AttrCommandArgs.StringSlice(argv),
				AttrWorkdir.String(cmd.Dir),
			),
		)
		defer span.End()

		done, err := next.Execute(ctx, cmd)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		span.SetAttributes(AttrExitCode.Int(done.ExitCode))
		if done.ExitCode != 0 {
			span.SetStatus(codes.Error, fmt.Sprintf("exit code %d", done.ExitCode))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return done, nil
	})
}
