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
	"time"

	"github.com/spf13/cobra"

	"github.com/tombee/cmdlets/internal/commands/shared"
	"github.com/tombee/cmdlets/pkg/runner"
)

// newExecutor returns the base process executor. Tests replace it.
var newExecutor = func() runner.Executor { return runner.OSExecutor{} }

type runFlags struct {
	workdir        string
	raw            bool
	ignoreExitCode bool
	timeout        time.Duration
	trace          bool
	metrics        bool
}

// NewCommand creates the run command
func NewCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <path> [--] [args...]",
		Short: "Run a command node",
		Annotations: map[string]string{
			"group": "execution",
		},
		Long: `Run resolves a dotted command path and executes it with any extra
arguments appended.

The first path segment names a preset from the config file or a builtin
(git). Unknown names run the executable of that name. Further segments are
child nodes:

  cmdlets run git.log --oneline -n 5   runs git --no-pager log --oneline -n 5
  cmdlets run ls -la                   runs ls -la

Flags for cmdlets must come before the path; everything after it is passed
to the child process unchanged. A "--" right after the path is dropped:

  cmdlets run sh -- -c 'exit 7'        runs sh -c 'exit 7'

Output:
  (default)  Standard output as lines with trailing whitespace removed
  --raw      Standard output exactly as produced
  --json     A JSON document describing the result

A non-zero exit status from the child becomes the exit status of cmdlets
unless --ignore-returncode is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNode(cmd, args[0], shared.ChildArgs(args), flags)
		},
	}

	// Everything after the path belongs to the child process.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringVarP(&flags.workdir, "workdir", "C", "", "Run in this directory instead of the node's workdir")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print standard output verbatim")
	cmd.Flags().BoolVar(&flags.ignoreExitCode, "ignore-returncode", false, "Treat non-zero exit codes as success")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Kill the process after this duration (e.g. 30s)")
	cmd.Flags().BoolVar(&flags.trace, "trace", false, "Write an OpenTelemetry span for the process to stderr")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "Write Prometheus metrics for the process to stderr")

	return cmd
}

func commandContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
