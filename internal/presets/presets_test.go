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

package presets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/cmdlets/pkg/errors"
	"github.com/tombee/cmdlets/pkg/runner"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		def      any
		path     []string
		wantArgv []string
		wantDir  string
	}{
		{
			name:     "string",
			def:      "hg",
			wantArgv: []string{"hg"},
		},
		{
			name:     "list",
			def:      []any{"hg", "--pager", "never"},
			wantArgv: []string{"hg", "--pager", "never"},
		},
		{
			name:     "mapping without slice keeps name",
			def:      map[string]any{"workdir": "/src"},
			wantArgv: []string{"p"},
			wantDir:  "/src",
		},
		{
			name: "nested children",
			def: map[string]any{
				"cmdslice": "make",
				"workdir":  "/src",
				"children": map[string]any{
					"docs": map[string]any{
						"cmdslice": []any{"-C", "docs"},
						"workdir":  "docs",
						"children": map[string]any{
							"html": "html",
						},
					},
				},
			},
			path:     []string{"docs", "html"},
			wantArgv: []string{"make", "-C", "docs", "html"},
			wantDir:  "/src/docs",
		},
		{
			name: "alias child",
			def: map[string]any{
				"cmdslice": []any{"git", "--no-pager"},
				"children": map[string]any{"lg": []any{"log", "--oneline"}},
			},
			path:     []string{"lg"},
			wantArgv: []string{"git", "--no-pager", "log", "--oneline"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Build("p", tt.def)
			require.NoError(t, err)

			node := root.Path(tt.path...)
			assert.Equal(t, tt.wantArgv, node.Argv())
			assert.Equal(t, tt.wantDir, node.Workdir())
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Run("unknown keys", func(t *testing.T) {
		_, err := Build("p", map[string]any{
			"cmdslice": "x",
			"children": map[string]any{
				"c": map[string]any{"cmdsilce": "typo", "env": "x"},
			},
		})
		var cfgErr *errors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, []string{"cmdsilce", "env"}, cfgErr.Keys)
		assert.Contains(t, err.Error(), "presets.p.c")
	})

	t.Run("children must be a mapping", func(t *testing.T) {
		_, err := Build("p", map[string]any{"children": []any{"a"}})
		var cfgErr *errors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "presets.p.children", cfgErr.Key)
	})

	t.Run("reserved child", func(t *testing.T) {
		_, err := Build("p", map[string]any{"children": map[string]any{"_x": "y"}})
		var lookupErr *errors.LookupError
		require.ErrorAs(t, err, &lookupErr)
	})

	t.Run("unsupported scalar", func(t *testing.T) {
		_, err := Build("p", 3)
		var valErr *errors.ValidationError
		require.ErrorAs(t, err, &valErr)
	})
}

func TestRegistry_Lookup(t *testing.T) {
	reg := New(map[string]any{"hg": []any{"hg", "--pager", "never"}}, nil)

	git, err := reg.Lookup("git")
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "--no-pager"}, git.Argv())
	assert.True(t, reg.IsBuiltin("git"))

	hg, err := reg.Lookup("hg")
	require.NoError(t, err)
	assert.Equal(t, []string{"hg", "--pager", "never"}, hg.Argv())
	assert.False(t, reg.IsBuiltin("hg"))

	_, err = reg.Lookup("svn")
	var notFound *errors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "svn", notFound.ID)
}

func TestRegistry_LookupBuildsFreshTrees(t *testing.T) {
	reg := New(nil, nil)

	first, err := reg.Lookup("git")
	require.NoError(t, err)
	require.NoError(t, first.SetSlice("changed"))

	second, err := reg.Lookup("git")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, []string{"git", "--no-pager"}, second.Argv())
}

func TestRegistry_OverrideBuiltin(t *testing.T) {
	reg := New(map[string]any{"git": []any{"git", "-c", "color.ui=never"}}, nil)

	git, err := reg.Lookup("git")
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "-c", "color.ui=never"}, git.Argv())
	assert.False(t, reg.IsBuiltin("git"))
}

func TestRegistry_Resolve(t *testing.T) {
	reg := New(map[string]any{
		"mk": map[string]any{
			"cmdslice": "make",
			"children": map[string]any{"t": "test"},
		},
	}, nil)

	tests := []struct {
		path string
		want []string
	}{
		{"git.log", []string{"git", "--no-pager", "log"}},
		{"mk.t", []string{"make", "test"}},
		{"ls", []string{"ls"}},
		{"docker.compose.up", []string{"docker", "compose", "up"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			node, err := reg.Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, node.Argv())
		})
	}
}

func TestRegistry_ResolveErrors(t *testing.T) {
	reg := New(nil, nil)

	_, err := reg.Resolve("")
	var valErr *errors.ValidationError
	require.ErrorAs(t, err, &valErr)

	var lookupErr *errors.LookupError
	_, err = reg.Resolve("git._parent")
	require.ErrorAs(t, err, &lookupErr)

	_, err = reg.Resolve("_x")
	require.ErrorAs(t, err, &lookupErr)

	_, err = reg.Resolve("git..log")
	require.ErrorAs(t, err, &lookupErr)
}

func TestRegistry_ResolveUsesRunner(t *testing.T) {
	var calls []runner.Command
	r := runner.New(runner.WithExecutor(runner.ExecutorFunc(
		func(_ context.Context, cmd runner.Command) (*runner.Completed, error) {
			calls = append(calls, cmd)
			return &runner.Completed{}, nil
		},
	)))
	reg := New(nil, r)

	node, err := reg.Resolve("git.status")
	require.NoError(t, err)
	_, err = node.Invoke(context.Background(), "--short")
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, []string{"--no-pager", "status", "--short"}, calls[0].Args)
}

func TestRegistry_Names(t *testing.T) {
	reg := New(map[string]any{"hg": "hg", "gh": "gh", "mk": "make"}, nil)

	all, err := reg.Names("")
	require.NoError(t, err)
	assert.Equal(t, []string{"gh", "git", "hg", "mk"}, all)

	g, err := reg.Names("g*")
	require.NoError(t, err)
	assert.Equal(t, []string{"gh", "git"}, g)

	braces, err := reg.Names("{hg,mk}")
	require.NoError(t, err)
	assert.Equal(t, []string{"hg", "mk"}, braces)

	_, err = reg.Names("[")
	var valErr *errors.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestRegistry_Validate(t *testing.T) {
	assert.NoError(t, New(map[string]any{"ok": "x"}, nil).Validate())

	err := New(map[string]any{"bad": map[string]any{"nope": 1}}, nil).Validate()
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "preset bad")
}
