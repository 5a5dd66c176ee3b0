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

import (
	"context"
	"slices"

	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🧩 Resolve layers defaults, config-file values and command-line values.
// A later layer wins per key. An empty command-line value never overrides an
// earlier layer but still defines a key no earlier layer set; a nil file
// mapping contributes nothing.
func Resolve(defaults Set, file, cli map[string]string) Set {
	merged := defaults.Map()
	for k, v := range file {
		merged[normalizeKey(k)] = v
	}
	for k, v := range cli {
		key := normalizeKey(k)
		if _, ok := merged[key]; ok && v == "" {
			continue
		}
		merged[key] = v
	}
	return New(merged)
}

// 🔧 Options control how Load treats the config file.
type Options struct {
	// Strict turns an unreadable or malformed config file into an error
	// instead of a warning.
	Strict bool
}

// ConfigPath returns the config file named on the command line, or the
// default one.
func ConfigPath(defaults Set, cli map[string]string) string {
	if v := New(cli).Get(KeyConfig); v != "" {
		return v
	}
	return defaults.Get(KeyConfig)
}

// 📥 Load reads the config file named by cli or defaults and resolves the
// three layers. A missing config file is not an error.
func Load(ctx context.Context, defaults Set, cli map[string]string, opts Options) (Set, error) {
	logger := zerolog.Ctx(ctx)
	path := ConfigPath(defaults, cli)

	fileValues, err := config.Load(ctx, path)
	if err != nil {
		if opts.Strict {
			return Set{}, errors.Errorf("loading config: %w", err)
		}
		logger.Warn().Err(err).Str("path", path).Msg("ignoring config file")
		fileValues = nil
	}

	for k := range fileValues {
		if !slices.Contains(Keys, normalizeKey(k)) {
			logger.Debug().Str("key", k).Str("path", path).Msg("unknown config key")
		}
	}

	set := Resolve(defaults, fileValues, cli)
	logger.Debug().Object("params", set).Msg("resolved parameters")
	return set, nil
}
