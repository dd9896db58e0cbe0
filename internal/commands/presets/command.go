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

// Package presets implements the presets command.
package presets

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/tombee/cmdlets/internal/commands/shared"
	"github.com/tombee/cmdlets/pkg/cmdtree"
)

// PresetInfo describes one preset tree in JSON output.
type PresetInfo struct {
	Name     string       `json:"name"`
	Argv     []string     `json:"argv"`
	Workdir  string       `json:"workdir,omitempty"`
	Builtin  bool         `json:"builtin,omitempty"`
	Children []PresetInfo `json:"children,omitempty"`
}

// Response is the JSON document written by presets --json.
type Response struct {
	shared.JSONResponse
	Presets []PresetInfo `json:"presets"`
}

// NewCommand creates the presets command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [pattern]",
		Short: "List configured and builtin presets",
		Annotations: map[string]string{
			"group": "inspection",
		},
		Long: `Presets lists every named command tree available to run and argv,
with the command line each node resolves to.

An optional glob pattern filters preset names:

  cmdlets presets 'g*'
  cmdlets presets '{git,docker}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}
			return listPresets(cmd, pattern)
		},
	}
}

func listPresets(cmd *cobra.Command, pattern string) error {
	cfg, err := shared.LoadConfig()
	if err != nil {
		return err
	}
	registry, err := shared.NewRegistry(cfg, nil)
	if err != nil {
		return err
	}
	names, err := registry.Names(pattern)
	if err != nil {
		return shared.NewConfigError("invalid pattern", err)
	}

	infos := make([]PresetInfo, 0, len(names))
	for _, name := range names {
		node, err := registry.Lookup(name)
		if err != nil {
			return shared.NewConfigError(fmt.Sprintf("preset %s", name), err)
		}
		info := describe(node)
		info.Builtin = registry.IsBuiltin(name)
		infos = append(infos, info)
	}

	out := cmd.OutOrStdout()
	if shared.GetJSON() {
		return shared.EmitJSON(out, Response{
			JSONResponse: shared.NewJSONResponse("presets", true),
			Presets:      infos,
		})
	}

	if len(infos) == 0 {
		if !shared.GetQuiet() {
			fmt.Fprintln(out, "No presets match.")
		}
		return nil
	}
	tw := treeWriter{w: out, styled: shared.IsTerminal(out)}
	for _, info := range infos {
		tw.write(info, 0)
	}
	return nil
}

func describe(node *cmdtree.Node) PresetInfo {
	info := PresetInfo{
		Name:    node.Name(),
		Argv:    node.Argv(),
		Workdir: node.Workdir(),
	}
	for _, name := range node.Children() {
		child, ok := node.Lookup(name)
		if !ok {
			continue
		}
		info.Children = append(info.Children, describe(child))
	}
	return info
}

// treeWriter prints preset trees, styling them only for terminals.
type treeWriter struct {
	w      io.Writer
	styled bool
}

func (tw treeWriter) render(style lipgloss.Style, text string) string {
	if !tw.styled {
		return text
	}
	return style.Render(text)
}

func (tw treeWriter) write(info PresetInfo, depth int) {
	line := shared.RenderTree(depth, tw.render(shared.Bold, info.Name)) + "  " +
		tw.render(shared.Muted, shellquote.Join(info.Argv...))
	if info.Builtin {
		line += " " + tw.render(shared.Tag, "(builtin)")
	}
	if info.Workdir != "" {
		line += " " + tw.render(shared.Muted, "in "+info.Workdir)
	}
	fmt.Fprintln(tw.w, line)

	for _, child := range info.Children {
		tw.write(child, depth+1)
	}
}
