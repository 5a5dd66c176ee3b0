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
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/failure"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse turns the file content into flat key/value pairs
	Parse(ctx context.Context, data []byte) (map[string]string, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser

	// fallback handles every file no registered parser claims
	fallback Parser = &INIParser{}
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return fallback
}

var utf8BOM = []byte("\xef\xbb\xbf")

// 🎯 Load reads the config file at path into a flat mapping.
// A file that does not exist yields a nil mapping and no error; any other
// failure is a failure.ErrConfig.
func Load(ctx context.Context, path string) (map[string]string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", path).Msg("config file not found")
			return nil, nil
		}
		return nil, failure.Config(path, errors.Errorf("reading config file: %w", err))
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, failure.Config(path, errors.New("config file is not valid UTF-8"))
	}

	values, err := GetParser(path).Parse(ctx, data)
	if err != nil {
		return nil, failure.Config(path, errors.Errorf("parsing config: %w", err))
	}

	logger.Debug().Str("path", path).Int("keys", len(values)).Msg("configuration loaded")
	return values, nil
}

// stringify flattens a decoded scalar into its string form.
func stringify(key string, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool, int, int64, uint64, float64, fmt.Stringer:
		return fmt.Sprint(t), nil
	default:
		return "", errors.Errorf("key %q: value of type %T is not a scalar", key, v)
	}
}

// flatten applies stringify to every entry of a decoded document.
func flatten(raw map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		s, err := stringify(k, v)
		if err != nil {
			return nil, err
		}
		out[strings.ToLower(k)] = s
	}
	return out, nil
}
