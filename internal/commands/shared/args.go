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

// ChildArgs returns the arguments that follow the command path. A single
// leading "--" separates them from the path and is dropped, so
// "run sh -- -c 'exit 7'" passes only "-c" and "exit 7" to sh. Pass "-- --"
// to hand the child a literal "--".
func ChildArgs(args []string) []string {
	if len(args) < 2 {
		return nil
	}
	rest := args[1:]
	if rest[0] == "--" {
		return rest[1:]
	}
	return rest
}
