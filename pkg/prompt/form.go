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

package prompt

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/params"
	"gitlab.com/tozd/go/errors"
)

// 📋 Field is one text input of the form
type Field struct {
	Key   string
	Label string
	Trim  bool // surrounding whitespace is not significant
	Empty bool // an empty answer is a value when the key is unset
}

// Fields are asked in order.
var Fields = []Field{
	{Key: params.KeyInput, Label: "Input file", Trim: true},
	{Key: params.KeyOutput, Label: "Output file", Trim: true},
	{Key: params.KeyFind, Label: "Find"},
	{Key: params.KeyReplace, Label: "Replace with", Empty: true},
	{Key: params.KeyDelimiter, Label: "Block delimiter", Empty: true},
	{Key: params.KeyNumber, Label: "Fragments per block (0 = no blocks)", Trim: true},
}

// 📝 Form asks for every field, offering the current value as default, and
// returns the updated set. An empty answer leaves a set key unchanged, and an
// accepted derived output stays derived so it follows a later input change.
// An empty replacement deletes the find text.
func Form(ctx context.Context, d Dialog, set params.Set) (params.Set, error) {
	logger := zerolog.Ctx(ctx)

	for _, f := range Fields {
		def := set.Get(f.Key)
		derived := ""
		if f.Key == params.KeyOutput && def == "" && set.Input() != "" {
			derived = set.OutputPath()
			def = derived
		}

		value, err := d.Text(f.Label, def)
		if err != nil {
			return set, errors.Errorf("reading %s: %w", f.Key, err)
		}
		if f.Trim {
			value = strings.TrimSpace(value)
		}
		if value == "" && f.Empty && !set.Has(f.Key) {
			set = set.With(f.Key, "")
			continue
		}
		if value == "" || value == derived {
			continue
		}
		set = set.With(f.Key, value)
	}

	logger.Debug().Object("params", set).Msg("form submitted")
	return set, nil
}
