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

// Package params holds the effective parameter set of a run and the rules
// for building it from defaults, a config file and command-line values.
package params

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/failure"
)

// 🔑 Parameter keys
const (
	KeyConfig    = "config"
	KeyInput     = "input"
	KeyOutput    = "output"
	KeyFind      = "find"
	KeyReplace   = "replace"
	KeyNumber    = "number"
	KeyDelimiter = "delimiter"
	KeyEncoding  = "encoding"
	KeyPostfix   = "postfix"
)

// 🎯 Built-in defaults
const (
	DefaultConfig    = "config.cfg"
	DefaultPostfix   = "_result"
	DefaultDelimiter = " ##### "
	DefaultEncoding  = "utf-8"
	DefaultNumber    = "0"
)

// Keys lists every key the tool understands, in display order.
var Keys = []string{
	KeyConfig, KeyInput, KeyOutput, KeyFind, KeyReplace,
	KeyNumber, KeyDelimiter, KeyEncoding, KeyPostfix,
}

// Required lists the keys a non-interactive run cannot do without.
var Required = []string{KeyInput, KeyFind, KeyReplace}

// 📦 Set is an immutable mapping of parameter names to values.
// The zero value is an empty set.
type Set struct {
	values map[string]string
}

// New builds a set from a mapping. Keys are case-folded.
func New(values map[string]string) Set {
	s := Set{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[normalizeKey(k)] = v
	}
	return s
}

// Defaults returns the built-in default layer.
func Defaults() Set {
	return New(map[string]string{
		KeyConfig:    DefaultConfig,
		KeyPostfix:   DefaultPostfix,
		KeyDelimiter: DefaultDelimiter,
		KeyEncoding:  DefaultEncoding,
		KeyNumber:    DefaultNumber,
	})
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// Lookup returns the value of key and whether it is present.
func (s Set) Lookup(key string) (string, bool) {
	v, ok := s.values[normalizeKey(key)]
	return v, ok
}

// Get returns the value of key, or "" if absent.
func (s Set) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// Has reports whether key is present.
func (s Set) Has(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// With returns a copy of s with key set to value.
func (s Set) With(key, value string) Set {
	out := Set{values: make(map[string]string, len(s.values)+1)}
	for k, v := range s.values {
		out.values[k] = v
	}
	out.values[normalizeKey(key)] = value
	return out
}

// Map returns a copy of the underlying mapping.
func (s Set) Map() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Names returns the present keys in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for k := range s.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (s Set) Input() string     { return s.Get(KeyInput) }
func (s Set) Find() string      { return s.Get(KeyFind) }
func (s Set) Replace() string   { return s.Get(KeyReplace) }
func (s Set) Delimiter() string { return s.Get(KeyDelimiter) }
func (s Set) Postfix() string   { return s.Get(KeyPostfix) }

// Encoding returns the configured encoding name, falling back to utf-8.
func (s Set) Encoding() string {
	if v := strings.TrimSpace(s.Get(KeyEncoding)); v != "" {
		return v
	}
	return DefaultEncoding
}

// 🔢 Number returns the block size. Anything that is not a non-negative
// integer means no regrouping.
func (s Set) Number() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.Get(KeyNumber)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// 📁 OutputPath returns the explicit output, or input with the postfix
// inserted before its extension.
func (s Set) OutputPath() string {
	if out := s.Get(KeyOutput); out != "" {
		return out
	}
	return DeriveOutput(s.Input(), s.Postfix())
}

// DeriveOutput inserts postfix before the last extension of the file name in
// input, or appends it when the name has no extension.
func DeriveOutput(input, postfix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + postfix + ext
}

// ✅ Validate checks that every required key is present and find is non-empty.
func (s Set) Validate() error {
	for _, key := range Required {
		if !s.Has(key) {
			return failure.MissingParameter(key)
		}
	}
	if s.Find() == "" {
		return failure.MissingParameter(KeyFind)
	}
	return nil
}

// Missing returns the required keys that are absent, in Required order.
func (s Set) Missing() []string {
	var missing []string
	for _, key := range Required {
		if !s.Has(key) || (key == KeyFind && s.Find() == "") {
			missing = append(missing, key)
		}
	}
	return missing
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s Set) MarshalZerologObject(e *zerolog.Event) {
	for _, k := range s.Names() {
		e.Str(k, s.values[k])
	}
}
