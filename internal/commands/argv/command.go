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

// Package argv implements the argv command, which prints what run would
// execute without starting a process.
package argv

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/tombee/cmdlets/internal/commands/shared"
)

// Response is the JSON document written by argv --json.
type Response struct {
	shared.JSONResponse
	Argv        []string `json:"argv"`
	CommandLine string   `json:"command_line"`
	Workdir     string   `json:"workdir,omitempty"`
}

// NewCommand creates the argv command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "argv <path> [--] [args...]",
		Short: "Show the argument vector a command path resolves to",
		Annotations: map[string]string{
			"group": "inspection",
		},
		Long: `Argv resolves a dotted command path the same way run does and prints
the resulting command line, shell-quoted, followed by the working directory
when one is set. Nothing is executed.

  cmdlets argv git.log --format='%h %s'
  git --no-pager log '--format=%h %s'

A "--" right after the path is dropped, as with run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showArgv(cmd, args[0], shared.ChildArgs(args))
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func showArgv(cmd *cobra.Command, path string, args []string) error {
	cfg, err := shared.LoadConfig()
	if err != nil {
		return err
	}
	presets, err := shared.NewRegistry(cfg, nil)
	if err != nil {
		return err
	}
	node, err := presets.Resolve(path)
	if err != nil {
		return shared.NewConfigError(fmt.Sprintf("cannot resolve %q", path), err)
	}

	argv := append(node.Argv(), args...)
	resp := Response{
		JSONResponse: shared.NewJSONResponse("argv", true),
		Argv:         argv,
		CommandLine:  shellquote.Join(argv...),
		Workdir:      node.Workdir(),
	}

	out := cmd.OutOrStdout()
	if shared.GetJSON() {
		return shared.EmitJSON(out, resp)
	}

	fmt.Fprintln(out, resp.CommandLine)
	if resp.Workdir != "" && !shared.GetQuiet() {
		label := "workdir:"
		if shared.IsTerminal(out) {
			label = shared.RenderLabel(label)
		}
		fmt.Fprintf(out, "%s %s\n", label, resp.Workdir)
	}
	return nil
}
