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

// GitSlice is the slice NewGit seeds its root with. The pager is disabled so
// output can be captured.
var GitSlice = []string{"git", "--no-pager"}

// NewGit returns a root node for git commands:
//
//	NewGit().Child("status").Argv() // [git --no-pager status]
func NewGit(opts ...Option) *Node {
	return New("git", append([]Option{WithSlice(GitSlice...)}, opts...)...)
}
