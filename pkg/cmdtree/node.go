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

package cmdtree

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"reflect"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/tombee/cmdlets/pkg/errors"
	"github.com/tombee/cmdlets/pkg/runner"
)

// ReservedPrefix marks names that cannot be used for children.
const ReservedPrefix = "_"

// Keys recognized by SetChildValue when given a map.
const (
	KeyWorkdir  = "workdir"
	KeyCmdslice = "cmdslice"
)

// Node is one segment of a command line.
type Node struct {
	name   string
	parent *Node

	slice   []string
	workdir *string

	children map[string]*Node
	last     *runner.Result
	runner   *runner.Runner
}

// Option configures a root node.
type Option func(*Node)

// WithSlice replaces the default slice (the node's name) with tokens. Calling
// it with no tokens makes the node contribute nothing, which is useful for a
// root that only groups commands.
func WithSlice(tokens ...string) Option {
	return func(n *Node) {
		n.slice = slices.Clone(tokens)
		if n.slice == nil {
			n.slice = []string{}
		}
	}
}

// WithWorkdir sets the node's working directory.
func WithWorkdir(dir string) Option {
	return func(n *Node) {
		n.SetWorkdir(dir)
	}
}

// WithRunner sets the runner used by the node and every descendant that does
// not have its own.
func WithRunner(r *runner.Runner) Option {
	return func(n *Node) {
		n.runner = r
	}
}

// New creates a root node. Its slice defaults to [name] when name is not
// empty, otherwise to an empty slice.
func New(name string, opts ...Option) *Node {
	n := newNode(name, nil)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func newNode(name string, parent *Node) *Node {
	n := &Node{
		name:     name,
		parent:   parent,
		children: make(map[string]*Node),
	}
	if name != "" {
		n.slice = []string{name}
	} else {
		n.slice = []string{}
	}
	return n
}

// Name returns the name the node was created with.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks up to the top of the tree.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Get returns the child called name, creating it on first use.
func (n *Node) Get(name string) (*Node, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if child, ok := n.children[name]; ok {
		return child, nil
	}
	child := newNode(name, n)
	n.children[name] = child
	return child, nil
}

// Child is the fluent form of Get. It panics when name is reserved, so it is
// meant for names known at compile time.
func (n *Node) Child(name string) *Node {
	child, err := n.Get(name)
	if err != nil {
		panic(err)
	}
	return child
}

// Path follows Child for each name in turn.
func (n *Node) Path(names ...string) *Node {
	node := n
	for _, name := range names {
		node = node.Child(name)
	}
	return node
}

// Lookup returns an existing child without creating one.
func (n *Node) Lookup(name string) (*Node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// RemoveChild forgets the memoized child. The next Get creates a new node.
func (n *Node) RemoveChild(name string) {
	delete(n.children, name)
}

// Children returns the names of the memoized children, sorted.
func (n *Node) Children() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateName(name string) error {
	if name == "" {
		return &errors.LookupError{Name: name, Reason: "name must not be empty"}
	}
	if strings.HasPrefix(name, ReservedPrefix) {
		return &errors.LookupError{
			Name:   name,
			Reason: fmt.Sprintf("names starting with %q are reserved", ReservedPrefix),
		}
	}
	return nil
}

// Slice returns the tokens this node itself contributes.
func (n *Node) Slice() []string {
	return n.slice
}

// SetSlice replaces the tokens this node contributes.
//
// Accepted values:
//   - nil clears the slice
//   - string becomes a one-element slice
//   - []string is stored by reference, so later changes made through the
//     caller's slice show up in Argv
//   - any other slice or array, iter.Seq[string] and iter.Seq[any] are copied,
//     formatting each element with %v
//
// Any other value is a *errors.ValidationError and leaves the slice unchanged.
func (n *Node) SetSlice(value any) error {
	tokens, err := normalizeSlice(value)
	if err != nil {
		return err
	}
	n.slice = tokens
	return nil
}

func normalizeSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{v}, nil
	case []string:
		if v == nil {
			return []string{}, nil
		}
		return v, nil
	case []any:
		tokens := make([]string, len(v))
		for i, elem := range v {
			tokens[i] = fmt.Sprint(elem)
		}
		return tokens, nil
	case iter.Seq[string]:
		tokens := slices.Collect(v)
		if tokens == nil {
			tokens = []string{}
		}
		return tokens, nil
	case iter.Seq[any]:
		tokens := []string{}
		for elem := range v {
			tokens = append(tokens, fmt.Sprint(elem))
		}
		return tokens, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		tokens := make([]string, rv.Len())
		for i := range tokens {
			tokens[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return tokens, nil
	default:
		return nil, &errors.ValidationError{
			Field:      "slice",
			Message:    fmt.Sprintf("unsupported value of type %T", value),
			Suggestion: "Use a string, a sequence of values, or nil",
		}
	}
}

// OwnWorkdir returns the node's own working directory and whether it is set.
func (n *Node) OwnWorkdir() (string, bool) {
	if n.workdir == nil {
		return "", false
	}
	return *n.workdir, true
}

// SetWorkdir sets the node's own working directory.
func (n *Node) SetWorkdir(dir string) {
	n.workdir = &dir
}

// ClearWorkdir makes the node inherit its parent's working directory again.
func (n *Node) ClearWorkdir() {
	n.workdir = nil
}

// ChildConfig is the structured form accepted by SetChildValue.
type ChildConfig struct {
	// Workdir, when non-nil, becomes the child's working directory
	Workdir *string `yaml:"workdir,omitempty" json:"workdir,omitempty"`

	// Cmdslice, when non-nil, becomes the child's slice
	Cmdslice []string `yaml:"cmdslice,omitempty" json:"cmdslice,omitempty"`
}

// SetChildValue assigns value to the child called name, creating it if
// needed. See Apply for the accepted values. A child created by a failed
// assignment is discarded again, so errors leave the tree unchanged.
func (n *Node) SetChildValue(name string, value any) error {
	_, existed := n.children[name]
	child, err := n.Get(name)
	if err != nil {
		return err
	}
	if err := child.Apply(value); err != nil {
		if !existed {
			n.RemoveChild(name)
		}
		return err
	}
	return nil
}

// Apply assigns value to the node itself.
//
// A string, a sequence or nil is applied with SetSlice. A ChildConfig applies
// each field that is set. A map[string]any or map[string]string may only
// carry the keys "workdir" and "cmdslice"; any other key fails with a
// *errors.ConfigError naming every offending key, and nothing is applied.
func (n *Node) Apply(value any) error {
	switch v := value.(type) {
	case ChildConfig:
		return n.applyConfig(v)
	case *ChildConfig:
		if v == nil {
			return n.SetSlice(nil)
		}
		return n.applyConfig(*v)
	case map[string]any:
		cfg, err := childConfigFromMap(v)
		if err != nil {
			return err
		}
		return n.applyConfig(cfg)
	case map[string]string:
		values := make(map[string]any, len(v))
		for key, val := range v {
			values[key] = val
		}
		return n.Apply(values)
	default:
		return n.SetSlice(value)
	}
}

func (n *Node) applyConfig(cfg ChildConfig) error {
	if cfg.Cmdslice != nil {
		if err := n.SetSlice(cfg.Cmdslice); err != nil {
			return err
		}
	}
	if cfg.Workdir != nil {
		n.SetWorkdir(*cfg.Workdir)
	}
	return nil
}

func childConfigFromMap(values map[string]any) (ChildConfig, error) {
	var unknown []string
	for key := range values {
		if key != KeyWorkdir && key != KeyCmdslice {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ChildConfig{}, &errors.ConfigError{
			Keys:   unknown,
			Reason: "unknown keys",
		}
	}

	var cfg ChildConfig
	if raw, ok := values[KeyCmdslice]; ok {
		tokens, err := normalizeSlice(raw)
		if err != nil {
			return ChildConfig{}, &errors.ConfigError{Key: KeyCmdslice, Reason: err.Error(), Cause: err}
		}
		cfg.Cmdslice = tokens
	}
	if raw, ok := values[KeyWorkdir]; ok && raw != nil {
		dir, ok := raw.(string)
		if !ok {
			return ChildConfig{}, &errors.ConfigError{
				Key:    KeyWorkdir,
				Reason: fmt.Sprintf("expected string, got %T", raw),
			}
		}
		cfg.Workdir = &dir
	}
	return cfg, nil
}

// Argv resolves the full argument vector: every slice from the root down to
// this node, with empty tokens dropped. It is recomputed on each call.
func (n *Node) Argv() []string {
	var chain []*Node
	for node := n; node != nil; node = node.parent {
		chain = append(chain, node)
	}

	argv := []string{}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, token := range chain[i].slice {
			if token != "" {
				argv = append(argv, token)
			}
		}
	}
	return argv
}

// Workdir resolves the node's effective working directory.
func (n *Node) Workdir() string {
	if n.workdir == nil {
		if n.parent == nil {
			return ""
		}
		return n.parent.Workdir()
	}

	dir := *n.workdir
	if filepath.IsAbs(dir) || isCurrentRelative(dir) {
		return dir
	}
	if n.parent == nil {
		return dir
	}
	return filepath.Join(n.parent.Workdir(), dir)
}

func isCurrentRelative(dir string) bool {
	return dir == "." || strings.HasPrefix(dir, "./") ||
		(filepath.Separator != '/' && strings.HasPrefix(dir, "."+string(filepath.Separator)))
}

func (n *Node) effectiveRunner() *runner.Runner {
	for node := n; node != nil; node = node.parent {
		if node.runner != nil {
			return node.runner
		}
	}
	return runner.Default()
}

// LastResult returns the result of the most recent invocation that ran to
// completion, or nil.
func (n *Node) LastResult() *runner.Result {
	return n.last
}

// Invoke runs Argv() followed by args in Workdir() and returns standard output
// as lines with trailing whitespace removed.
func (n *Node) Invoke(ctx context.Context, args ...string) ([]string, error) {
	return n.InvokeWith(ctx, args, runner.Options{})
}

// InvokeWith is Invoke with explicit execution options. A non-empty
// opts.Workdir overrides the resolved working directory.
//
// LastResult is updated whenever the process ran to completion, including
// when an *errors.ExecutionError is returned.
func (n *Node) InvokeWith(ctx context.Context, args []string, opts runner.Options) ([]string, error) {
	argv := append(n.Argv(), args...)
	if opts.Workdir == "" {
		opts.Workdir = n.Workdir()
	}

	result, err := n.effectiveRunner().Run(ctx, argv, opts)
	if result != nil {
		n.last = result
	}
	if err != nil {
		return nil, err
	}
	return stripLines(result.Stdout), nil
}

// Call is InvokeWith for loosely typed options. Unrecognized option names fail
// with a *errors.ConfigError before anything is spawned.
func (n *Node) Call(ctx context.Context, args []string, options map[string]any) ([]string, error) {
	opts, err := runner.ParseOptions(options)
	if err != nil {
		return nil, err
	}
	return n.InvokeWith(ctx, args, opts)
}

func stripLines(out runner.Output) []string {
	lines := []string{}
	for line := range out.Lines() {
		lines = append(lines, strings.TrimRightFunc(line, unicode.IsSpace))
	}
	return lines
}

// String renders the resolved argument vector for debugging.
func (n *Node) String() string {
	return strings.Join(n.Argv(), " ")
}
