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

/*
Package tracing wraps process execution in OpenTelemetry spans.

Each spawn becomes one span named "exec <command>" carrying the argument
vector, working directory and exit code. Spawn failures and non-zero exits set
the span status to Error.

	tp, err := tracing.NewStdoutProvider(os.Stderr, "cmdlets", version)
	if err != nil {
	    return err
	}
	defer tp.Shutdown(ctx)

	exec := tracing.WrapExecutor(runner.OSExecutor{}, tp.Tracer(tracing.TracerName),
	    tracing.WithRedactor(tracing.NewRedactor(tracing.ModeStandard)))
	r := runner.New(runner.WithExecutor(exec))

# Redaction

Span attributes are exported outside the process, so arguments that look like
credentials can be masked with a Redactor. The executor itself always
receives the real arguments.
*/
package tracing
