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

package tracing

import (
	"regexp"
	"strings"
)

// RedactionMode determines how much of a command line reaches span attributes.
type RedactionMode string

const (
	// ModeNone records arguments verbatim.
	ModeNone RedactionMode = "none"

	// ModeStandard masks values that look like credentials.
	ModeStandard RedactionMode = "standard"

	// ModeStrict replaces every argument after the executable.
	ModeStrict RedactionMode = "strict"
)

// Redacted replaces masked values.
const Redacted = "[REDACTED]"

// Pattern rewrites matches of Regex with Replacement.
type Pattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

// StandardPatterns returns the patterns applied in ModeStandard.
func StandardPatterns() []Pattern {
	return []Pattern{
		{
			Name:        "url_credentials",
			Regex:       regexp.MustCompile(`(://[^/\s:@]+:)[^/\s@]+@`),
			Replacement: "${1}" + Redacted + "@",
		},
		{
			Name:        "bearer_token",
			Regex:       regexp.MustCompile(`(?i)(bearer\s+)[a-zA-Z0-9_\-\.=]{8,}`),
			Replacement: "${1}" + Redacted,
		},
		{
			Name:        "key_value_secret",
			Regex:       regexp.MustCompile(`(?i)((?:api[_-]?key|password|passwd|secret|token)=)[^\s&]+`),
			Replacement: "${1}" + Redacted,
		},
		{
			Name:        "aws_key",
			Regex:       regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
			Replacement: Redacted,
		},
		{
			Name:        "jwt",
			Regex:       regexp.MustCompile(`eyJ[a-zA-Z0-9_-]*\.eyJ[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]*`),
			Replacement: Redacted,
		},
	}
}

// sensitiveFlags take a secret as their following argument.
var sensitiveFlags = []string{"--password", "--token", "--api-key", "--secret"}

// Redactor masks secrets in argument vectors before they are recorded.
type Redactor struct {
	mode     RedactionMode
	patterns []Pattern
}

// NewRedactor creates a redactor using StandardPatterns.
func NewRedactor(mode RedactionMode) *Redactor {
	return &Redactor{mode: mode, patterns: StandardPatterns()}
}

// RedactString applies the redaction patterns to s.
func (r *Redactor) RedactString(s string) string {
	switch r.mode {
	case ModeNone:
		return s
	case ModeStrict:
		return Redacted
	}
	for _, pattern := range r.patterns {
		s = pattern.Regex.ReplaceAllString(s, pattern.Replacement)
	}
	return s
}

// RedactArgv returns a copy of argv with secrets masked. The executable at
// argv[0] is never masked. In ModeStandard the value following a sensitive
// flag such as --password is masked as well.
func (r *Redactor) RedactArgv(argv []string) []string {
	out := make([]string, len(argv))
	copy(out, argv)
	if r == nil || r.mode == ModeNone {
		return out
	}

	maskNext := false
	for i := 1; i < len(out); i++ {
		switch {
		case r.mode == ModeStrict || maskNext:
			out[i] = Redacted
			maskNext = false
		case isSensitiveFlag(out[i]):
			maskNext = true
		default:
			out[i] = r.RedactString(out[i])
		}
	}
	return out
}

func isSensitiveFlag(arg string) bool {
	lower := strings.ToLower(arg)
	for _, flag := range sensitiveFlags {
		if lower == flag {
			return true
		}
	}
	return false
}
