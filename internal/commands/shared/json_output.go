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

package shared

import (
	"encoding/json"
	"errors"
	"io"

	pkgerrors "github.com/tombee/cmdlets/pkg/errors"
)

// JSONVersion is the envelope version emitted in "@version".
const JSONVersion = "1.0"

// JSONResponse is the base envelope for all JSON output
type JSONResponse struct {
	Version string `json:"@version"`
	Command string `json:"command"`
	Success bool   `json:"success"`
}

// NewJSONResponse returns an envelope for command.
func NewJSONResponse(command string, success bool) JSONResponse {
	return JSONResponse{Version: JSONVersion, Command: command, Success: success}
}

// JSONError is a structured error entry.
type JSONError struct {
	// Type is the ErrorClassifier type, e.g. "execution" or "config"
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// NewJSONError converts err into a JSONError, classifying it through
// ErrorClassifier and UserVisibleError when the chain provides them.
func NewJSONError(err error) JSONError {
	out := JSONError{Type: pkgerrors.Classify(err), Message: err.Error()}
	if out.Type == "" {
		out.Type = "internal"
	}

	var visible pkgerrors.UserVisibleError
	if errors.As(err, &visible) && visible.IsUserVisible() {
		out.Suggestion = visible.Suggestion()
	}
	return out
}

// EmitJSON writes response to w as indented JSON.
func EmitJSON(w io.Writer, response any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// EmitJSONError writes a failed envelope carrying errs.
func EmitJSONError(w io.Writer, command string, errs ...error) error {
	type errorResponse struct {
		JSONResponse
		Errors []JSONError `json:"errors"`
	}

	resp := errorResponse{
		JSONResponse: NewJSONResponse(command, false),
		Errors:       make([]JSONError, 0, len(errs)),
	}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, NewJSONError(err))
	}
	return EmitJSON(w, resp)
}
