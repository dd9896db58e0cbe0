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
Package cli provides the root command and shared configuration for the
cmdlets CLI.

This package creates the Cobra command tree and handles global concerns like
version information, persistent flags and exit codes. Individual commands
are implemented in the internal/commands subpackages.

# Command Tree

	cmdlets
	├── run       Run a command node
	├── argv      Show the argument vector a path resolves to
	├── presets   List configured and builtin presets
	├── version   Show version
	└── help      Show help (supports --json)

# Usage

From main.go:

	cli.SetVersion(version, commit, date)
	if err := cli.NewCommandTree().Execute(); err != nil {
	    cli.HandleExitError(err)
	}

# Global Flags

All commands inherit these flags:

	--verbose, -v    Enable debug logging
	--quiet, -q      Suppress non-error output
	--json           Output in JSON format
	--config         Path to config file

# Exit Codes

  - 0: Success
  - 1: General error
  - 2: Invalid configuration, options or command path
  - 124: The --timeout deadline expired
  - 127: The executable could not be started
  - any other: the exit status of a child that failed
*/
package cli
