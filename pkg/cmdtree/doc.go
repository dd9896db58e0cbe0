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

// Package cmdtree composes command lines as a tree of nodes.
//
// Each node contributes an argument slice, by default its own name. The
// argument vector of a node is the concatenation of the slices on the path
// from the root, so
//
//	git := cmdtree.NewGit()
//	lines, err := git.Path("log").Invoke(ctx, "--oneline", "-n", "5")
//
// runs "git --no-pager log --oneline -n 5" and returns its standard output as
// lines.
//
// Children are created on first access and memoized until RemoveChild is
// called. Names starting with an underscore are reserved and rejected; use
// SetSlice to emit tokens that start with one.
//
// # Working directories
//
// A node without a working directory inherits its parent's. An absolute
// directory, or one that is explicitly relative to the current directory ("."
// or a "./" prefix), is used as is. Any other relative directory is joined
// onto the parent's resolved directory. The root resolves to "" (the caller's
// directory) when nothing is set.
//
// # Concurrency
//
// Nodes are not safe for concurrent use. Memoization and slice or workdir
// mutation are unsynchronized; guard a shared tree externally.
package cmdtree
