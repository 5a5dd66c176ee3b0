// Copyright 2025 walteh LLC
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

package params

import "strings"

// EscapedKeys are the keys whose values may carry \n, \t and \r notations.
var EscapedKeys = []string{KeyFind, KeyReplace, KeyDelimiter}

// single pass, so a produced control character is never re-scanned
var escapes = strings.NewReplacer(`\r`, "\r", `\n`, "\n", `\t`, "\t")

// 🔤 Unescape turns the literal notations \r, \n and \t into CR, LF and TAB.
func Unescape(s string) string {
	return escapes.Replace(s)
}

// Normalize returns a copy of s with EscapedKeys unescaped.
func Normalize(s Set) Set {
	for _, key := range EscapedKeys {
		if v, ok := s.Lookup(key); ok {
			s = s.With(key, Unescape(v))
		}
	}
	return s
}
