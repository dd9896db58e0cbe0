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

// Package presets builds named command trees from built-in factories and the
// presets section of the config file.
package presets

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tombee/cmdlets/pkg/cmdtree"
	"github.com/tombee/cmdlets/pkg/errors"
	"github.com/tombee/cmdlets/pkg/runner"
)

// KeyChildren nests child definitions inside a mapping preset.
const KeyChildren = "children"

// PathSeparator splits a dotted node path such as "git.log".
const PathSeparator = "."

// Factory builds a preset root.
type Factory func(opts ...cmdtree.Option) *cmdtree.Node

// Builtins are available without any configuration.
var Builtins = map[string]Factory{
	"git": cmdtree.NewGit,
}

// Registry resolves preset names to freshly built trees.
type Registry struct {
	defs   map[string]any
	runner *runner.Runner
}

// New creates a registry over the decoded presets section. Definitions with
// the same name as a builtin replace it.
func New(defs map[string]any, r *runner.Runner) *Registry {
	if defs == nil {
		defs = map[string]any{}
	}
	return &Registry{defs: defs, runner: r}
}

// Names lists every preset, sorted. A non-empty pattern filters names with
// doublestar glob syntax.
func (reg *Registry) Names(pattern string) ([]string, error) {
	all := make(map[string]struct{}, len(Builtins)+len(reg.defs))
	for name := range Builtins {
		all[name] = struct{}{}
	}
	for name := range reg.defs {
		all[name] = struct{}{}
	}

	names := slices.Sorted(maps.Keys(all))
	if pattern == "" {
		return names, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, &errors.ValidationError{Field: "pattern", Message: fmt.Sprintf("invalid glob %q", pattern)}
	}

	matched := names[:0]
	for _, name := range names {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// IsBuiltin reports whether name resolves to a built-in factory.
func (reg *Registry) IsBuiltin(name string) bool {
	if _, ok := reg.defs[name]; ok {
		return false
	}
	_, ok := Builtins[name]
	return ok
}

// Lookup builds a new tree for the preset called name.
func (reg *Registry) Lookup(name string) (*cmdtree.Node, error) {
	opts := reg.nodeOptions()
	if def, ok := reg.defs[name]; ok {
		return Build(name, def, opts...)
	}
	if factory, ok := Builtins[name]; ok {
		return factory(opts...), nil
	}
	return nil, &errors.NotFoundError{Resource: "preset", ID: name}
}

// Resolve turns a dotted path into a node. The first segment names a preset;
// an unknown first segment becomes a plain root node of that name. Remaining
// segments are children.
func (reg *Registry) Resolve(path string) (*cmdtree.Node, error) {
	if path == "" {
		return nil, &errors.ValidationError{Field: "path", Message: "a command path is required"}
	}

	segments := strings.Split(path, PathSeparator)
	node, err := reg.Lookup(segments[0])
	if err != nil {
		var notFound *errors.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		if segments[0] == "" || strings.HasPrefix(segments[0], cmdtree.ReservedPrefix) {
			return nil, &errors.LookupError{Name: segments[0], Reason: "not a valid command name"}
		}
		node = cmdtree.New(segments[0], reg.nodeOptions()...)
	}

	for _, segment := range segments[1:] {
		node, err = node.Get(segment)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// Validate builds every configured preset once so definition errors surface
// at load time.
func (reg *Registry) Validate() error {
	for _, name := range slices.Sorted(maps.Keys(reg.defs)) {
		if _, err := Build(name, reg.defs[name]); err != nil {
			return errors.Wrapf(err, "preset %s", name)
		}
	}
	return nil
}

func (reg *Registry) nodeOptions() []cmdtree.Option {
	if reg.runner == nil {
		return nil
	}
	return []cmdtree.Option{cmdtree.WithRunner(reg.runner)}
}

// Build creates a root node called name from a preset definition.
//
// A string or list sets the root's slice. A mapping may carry cmdslice and
// workdir, applied through Node.Apply, plus a children mapping whose entries
// are built the same way on the corresponding children.
func Build(name string, def any, opts ...cmdtree.Option) (*cmdtree.Node, error) {
	root := cmdtree.New(name, opts...)
	if err := apply(root, def, name); err != nil {
		return nil, err
	}
	return root, nil
}

func apply(node *cmdtree.Node, def any, path string) error {
	fields, ok := def.(map[string]any)
	if !ok {
		return node.Apply(def)
	}

	own := make(map[string]any, len(fields))
	var children any
	for key, value := range fields {
		if key == KeyChildren {
			children = value
			continue
		}
		own[key] = value
	}
	if err := node.Apply(own); err != nil {
		return errors.Wrapf(err, "presets.%s", path)
	}

	if children == nil {
		return nil
	}
	entries, ok := children.(map[string]any)
	if !ok {
		return &errors.ConfigError{
			Key:    "presets." + path + "." + KeyChildren,
			Reason: fmt.Sprintf("expected mapping, got %T", children),
		}
	}
	for _, childName := range slices.Sorted(maps.Keys(entries)) {
		child, err := node.Get(childName)
		if err != nil {
			return errors.Wrapf(err, "presets.%s", path)
		}
		if err := apply(child, entries[childName], path+PathSeparator+childName); err != nil {
			return err
		}
	}
	return nil
}
