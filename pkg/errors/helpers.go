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
package errors

import (
	stderrors "errors"
	"fmt"
)

// Wrap prefixes err with message, keeping err reachable through errors.As
// and errors.Is. A nil err stays nil.
//
//	if err := node.Apply(def); err != nil {
//		return errors.Wrap(err, "presets.git")
//	}
func Wrap(err error, message string) error {
	return Wrapf(err, "%s", message)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is, As, Unwrap and New re-export the standard library so callers that
// import this package under the name errors do not need a second import.
var (
	Is     = stderrors.Is
	As     = stderrors.As
	Unwrap = stderrors.Unwrap
	New    = stderrors.New
)

// Classify returns the ErrorType of the first ErrorClassifier in err's chain,
// or "" when there is none.
func Classify(err error) string {
	var classifier ErrorClassifier
	if As(err, &classifier) {
		return classifier.ErrorType()
	}
	return ""
}
