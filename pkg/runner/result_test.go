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
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"single without newline", "foo", []string{"foo"}},
		{"trailing newline", "foo\nbar\n", []string{"foo", "bar"}},
		{"crlf", "foo\r\nbar\r\n", []string{"foo", "bar"}},
		{"blank line kept", "foo\n\nbar", []string{"foo", "", "bar"}},
		{"trailing spaces kept", "foo  \n", []string{"foo  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewOutput(tt.text).Slice())
		})
	}
}

func TestOutputLines_Restartable(t *testing.T) {
	out := NewOutput("a\nb\nc\n")

	first := slices.Collect(out.Lines())
	second := slices.Collect(out.Lines())
	assert.Equal(t, first, second)

	var got []string
	for line := range out.Lines() {
		got = append(got, line)
		if line == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestOutputString(t *testing.T) {
	out := NewOutput("raw\ntext\n")
	assert.Equal(t, "raw\ntext\n", out.String())
	assert.Equal(t, 9, out.Len())

	var zero Output
	assert.Equal(t, "", zero.String())
	assert.Empty(t, zero.Slice())
}

func TestResultSuccess(t *testing.T) {
	assert.True(t, (&Result{ExitCode: 0}).Success())
	assert.False(t, (&Result{ExitCode: 2}).Success())
}
