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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/blockreplace/pkg/failure"
	"gitlab.com/tozd/go/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		want        map[string]string
		wantErr     bool
		errContains string
	}{
		{
			name:     "ini_without_section",
			filename: "config.cfg",
			config: `# find and replace settings
input = notes.txt
find: ,
replace = "|"
delimiter = ' ##### '
Number = 3
`,
			want: map[string]string{
				"input":     "notes.txt",
				"find":      ",",
				"replace":   "|",
				"delimiter": " ##### ",
				"number":    "3",
			},
		},
		{
			name:     "ini_keeps_escape_notation",
			filename: "config.cfg",
			config:   "find = \\n\nreplace = \\t\n",
			want: map[string]string{
				"find":    `\n`,
				"replace": `\t`,
			},
		},
		{
			name:     "ini_empty_value",
			filename: "settings.ini",
			config:   "replace =\n",
			want: map[string]string{
				"replace": "",
			},
		},
		{
			name:     "unknown_extension_uses_ini",
			filename: "replace.settings",
			config:   "find = ;\n",
			want: map[string]string{
				"find": ";",
			},
		},
		{
			name:     "yaml",
			filename: "config.yaml",
			config: `input: notes.txt
find: ","
replace: "|"
number: 2
`,
			want: map[string]string{
				"input":   "notes.txt",
				"find":    ",",
				"replace": "|",
				"number":  "2",
			},
		},
		{
			name:     "empty_yaml",
			filename: "config.yml",
			config:   "",
			want:     map[string]string{},
		},
		{
			name:     "json",
			filename: "config.json",
			config:   `{"find": ",", "replace": "-", "number": 4}`,
			want: map[string]string{
				"find":    ",",
				"replace": "-",
				"number":  "4",
			},
		},
		{
			name:     "hcl",
			filename: "config.hcl",
			config: `input   = "notes.txt"
find    = ","
replace = "|"
number  = 2
`,
			want: map[string]string{
				"input":   "notes.txt",
				"find":    ",",
				"replace": "|",
				"number":  "2",
			},
		},
		{
			name:     "toml",
			filename: "config.toml",
			config: `input = "notes.txt"
find = ","
number = 5
`,
			want: map[string]string{
				"input":  "notes.txt",
				"find":   ",",
				"number": "5",
			},
		},
		{
			name:        "nested_yaml",
			filename:    "config.yaml",
			config:      "find:\n  nested: true\n",
			wantErr:     true,
			errContains: "not a scalar",
		},
		{
			name:        "malformed_json",
			filename:    "config.json",
			config:      `{"find": `,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "invalid_utf8",
			filename:    "config.cfg",
			config:      "find = \xff\xfe\n",
			wantErr:     true,
			errContains: "not valid UTF-8",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644), "writing config file")

			got, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, failure.ErrConfig), "error should be a config error")
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.cfg"))
	require.NoError(t, err, "a missing config file is not an error")
	assert.Nil(t, got, "a missing config file contributes no keys")
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrConfig), "an unreadable config is a config error")
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"config.cfg", &INIParser{}},
		{"config", &INIParser{}},
		{"a.yaml", &YAMLParser{}},
		{"a.yml", &YAMLParser{}},
		{"a.JSON", &JSONParser{}},
		{"a.hcl", &HCLParser{}},
		{"a.toml", &TOMLParser{}},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.IsType(t, tt.want, GetParser(tt.filename))
		})
	}
}
