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

package runner

import (
	"iter"
	"slices"
	"strings"
	"time"
)

// Output is the captured content of one output stream.
//
// The zero value is an empty stream.
type Output struct {
	text string
}

// NewOutput wraps captured text.
func NewOutput(text string) Output {
	return Output{text: text}
}

// String returns the raw captured text.
func (o Output) String() string {
	return o.text
}

// Len returns the number of captured bytes.
func (o Output) Len() int {
	return len(o.text)
}

// Lines returns a lazily evaluated sequence of lines with the trailing "\n"
// or "\r\n" removed. The sequence can be ranged over any number of times.
// A final line without terminator is still yielded; a trailing terminator does
// not produce an extra empty line.
func (o Output) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := o.text
		for rest != "" {
			line, tail, found := strings.Cut(rest, "\n")
			if !yield(strings.TrimSuffix(line, "\r")) {
				return
			}
			if !found {
				return
			}
			rest = tail
		}
	}
}

// Slice collects Lines into a slice.
func (o Output) Slice() []string {
	lines := slices.Collect(o.Lines())
	if lines == nil {
		return []string{}
	}
	return lines
}

// Result is the normalized outcome of a completed process.
type Result struct {
	// ID uniquely identifies this invocation in logs and traces
	ID string

	// Argv is the argument vector that was executed
	Argv []string

	// Workdir is the directory the process ran in ("" for the caller's)
	Workdir string

	// ExitCode is the process exit code
	ExitCode int

	Stdout Output
	Stderr Output

	// Raw records that the caller asked for raw text rather than lines
	Raw bool

	// Duration is the wall time between spawn and exit
	Duration time.Duration
}

// Success reports whether the process exited with code 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}
