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

package operation

import (
	"context"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/failure"
	"github.com/walteh/blockreplace/pkg/params"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrAmbiguousOutput is returned when an explicit output is given for a
	// pattern that matches more than one input.
	ErrAmbiguousOutput = errors.New("explicit output given for multiple inputs")

	// ErrDuplicateOutput is returned when two inputs resolve to one output path.
	ErrDuplicateOutput = errors.New("output path shared by multiple inputs")
)

// IsPattern reports whether input contains glob metacharacters.
func IsPattern(input string) bool {
	return strings.ContainsAny(input, "*?[{")
}

// 🔍 ExpandInputs turns a set whose input is a glob into one set per matching
// file. Files that are the derived output of another match are skipped.
func ExpandInputs(ctx context.Context, set params.Set) ([]params.Set, error) {
	logger := zerolog.Ctx(ctx)

	pattern := set.Input()
	if !IsPattern(pattern) {
		return []params.Set{set}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, failure.Input(pattern, errors.Errorf("expanding pattern: %w", err))
	}
	sort.Strings(matches)

	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		seen[m] = true
	}

	derived := make(map[string]bool)
	if !set.Has(params.KeyOutput) && set.Postfix() != "" {
		for _, m := range matches {
			if out := params.DeriveOutput(m, set.Postfix()); seen[out] {
				derived[out] = true
			}
		}
	}

	var sets []params.Set
	for _, m := range matches {
		if derived[m] {
			logger.Debug().Str("file", m).Msg("skipping derived output")
			continue
		}
		sets = append(sets, set.With(params.KeyInput, m))
	}

	if len(sets) == 0 {
		return nil, failure.Input(pattern, errors.New("no files match"))
	}
	if len(sets) > 1 && set.Has(params.KeyOutput) {
		return nil, errors.Errorf("%w: %d files match %q", ErrAmbiguousOutput, len(sets), pattern)
	}

	logger.Debug().Str("pattern", pattern).Int("files", len(sets)).Msg("expanded input pattern")
	return sets, nil
}
