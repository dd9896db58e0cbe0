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

// Package runner executes a literal argument vector as a child process and
// normalizes the outcome.
//
// Commands are never passed through a shell: argv[0] is resolved through PATH
// and argv[1:] are handed to the process verbatim, so shell metacharacters in
// any token stay literal. Standard output and standard error are always
// captured and fully drained before Run returns.
//
// # Errors
//
// Run distinguishes three failure kinds:
//
//   - *errors.ConfigError: unrecognized execution options (RunMap, ParseOptions).
//     Nothing is spawned.
//   - *errors.SpawnError: the executable could not be started.
//   - *errors.ExecutionError: the process exited non-zero and
//     Options.IgnoreExitCode was false. The completed Result is returned
//     alongside the error.
//
// Nothing is retried. Runner has no timeout of its own; pass a context with a
// deadline to bound a call, in which case an expired deadline is reported as
// *errors.TimeoutError.
package runner
