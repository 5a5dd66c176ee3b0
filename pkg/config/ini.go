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

package config

import (
	"context"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/ini.v1"
)

// 🔧 INIParser reads flat `key = value` or `key: value` files with no
// section header. It is the fallback for unrecognised extensions.
type INIParser struct{}

var iniExtensions = []string{".cfg", ".ini", ".conf"}

// 🔍 CanParse checks if this parser can handle the given file
func (p *INIParser) CanParse(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range iniExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// 📝 Parse returns the keys of the implicit default section, lowercased.
// ini.v1 files keys that precede any section header into that section.
func (p *INIParser) Parse(ctx context.Context, data []byte) (map[string]string, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		IgnoreContinuation:  true,
		KeyValueDelimiters:  "=:",
	}, data)
	if err != nil {
		return nil, errors.Errorf("parsing INI: %w", err)
	}

	values := make(map[string]string)
	for k, v := range file.Section(ini.DefaultSection).KeysHash() {
		values[strings.ToLower(k)] = v
	}
	return values, nil
}
