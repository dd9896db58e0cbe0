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

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tombee/cmdlets/internal/commands/argv"
	"github.com/tombee/cmdlets/internal/commands/presets"
	"github.com/tombee/cmdlets/internal/commands/run"
	"github.com/tombee/cmdlets/internal/commands/shared"
	versioncmd "github.com/tombee/cmdlets/internal/commands/version"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command with global flags only.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmdlets",
		Short: "cmdlets - compose and run command trees",
		Long: `cmdlets runs external programs through named command trees.

A tree such as git → log binds a fixed argument prefix ("git --no-pager log")
and a working directory. Trees come from builtins or from the presets section
of ~/.config/cmdlets/config.yaml, and are addressed with dotted paths:

  cmdlets run git.log --oneline -n 5
  cmdlets argv git.log --oneline
  cmdlets presets`,
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
	}

	verbose, quiet, json, config := shared.RegisterFlagPointers()

	cmd.PersistentFlags().BoolVarP(verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(quiet, "quiet", "q", false, "Suppress non-error output")
	cmd.PersistentFlags().BoolVar(json, "json", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(config, "config", "", "Path to config file (default: ~/.config/cmdlets/config.yaml)")

	return cmd
}

// NewCommandTree returns the root command with every subcommand attached.
func NewCommandTree() *cobra.Command {
	root := NewRootCommand()

	root.AddCommand(run.NewCommand())
	root.AddCommand(argv.NewCommand())
	root.AddCommand(presets.NewCommand())
	root.AddCommand(versioncmd.NewVersionCommand())

	root.SetHelpCommand(NewHelpCommand(root))
	return root
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// HandleExitError handles exit errors with proper exit codes
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
