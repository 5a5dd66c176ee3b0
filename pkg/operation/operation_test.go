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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/blockreplace/pkg/failure"
	"github.com/walteh/blockreplace/pkg/log"
	"github.com/walteh/blockreplace/pkg/params"
	"github.com/walteh/blockreplace/pkg/testutils"
	"github.com/walteh/blockreplace/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func newSet(input string, kv ...string) params.Set {
	set := params.Defaults().With(params.KeyInput, input)
	for i := 0; i+1 < len(kv); i += 2 {
		set = set.With(kv[i], kv[i+1])
	}
	return set
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		kv         []string
		wantOutput string
	}{
		{
			name:       "simple_replace",
			content:    "a,b,c\n",
			kv:         []string{params.KeyFind, ",", params.KeyReplace, "|"},
			wantOutput: "a|b|c",
		},
		{
			name:       "grouped_with_delimiter",
			content:    "a,b,c,d\n",
			kv:         []string{params.KeyFind, ",", params.KeyReplace, "-", params.KeyNumber, "2", params.KeyDelimiter, `\n`},
			wantOutput: "a-b\nc-d\n",
		},
		{
			name:       "unmatched_lines_pass_through",
			content:    "keep me\nx;y\n",
			kv:         []string{params.KeyFind, ";", params.KeyReplace, "+"},
			wantOutput: "keep me\nx+y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutils.Context(t)
			dir := t.TempDir()
			input := filepath.Join(dir, "data.txt")
			testutils.WriteFile(t, input, tt.content)

			res, err := Execute(ctx, newSet(input, tt.kv...))
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, "data_result.txt"), res.Output)
			assert.Equal(t, status.StatusNew, res.Status)
			assert.NoError(t, res.Err)
			assert.Equal(t, tt.wantOutput, testutils.ReadFile(t, res.Output))
		})
	}
}

func TestExecuteStatusAcrossRuns(t *testing.T) {
	ctx := testutils.Context(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	testutils.WriteFile(t, input, "1,2\n")
	set := newSet(input, params.KeyFind, ",", params.KeyReplace, ";")

	res, err := Execute(ctx, set)
	require.NoError(t, err)
	assert.Equal(t, status.StatusNew, res.Status)

	res, err = Execute(ctx, set)
	require.NoError(t, err)
	assert.Equal(t, status.StatusUnchanged, res.Status)

	res, err = Execute(ctx, set.With(params.KeyReplace, ":"))
	require.NoError(t, err)
	assert.Equal(t, status.StatusModified, res.Status)
	assert.Equal(t, "1:2", testutils.ReadFile(t, res.Output))
}

func TestExecuteMissingParameterWritesNothing(t *testing.T) {
	ctx := testutils.Context(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	testutils.WriteFile(t, input, "a,b\n")

	res, err := Execute(ctx, newSet(input, params.KeyReplace, "|"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrMissingParameter))
	assert.Equal(t, params.KeyFind, failure.SubjectOf(err))
	assert.Equal(t, status.StatusFailed, res.Status)

	assert.Equal(t, []string{"in.txt"}, testutils.Files(t, dir), "no output file should be created")
}

func TestExecuteInputMissing(t *testing.T) {
	ctx := testutils.Context(t)
	dir := t.TempDir()

	_, err := Execute(ctx, newSet(filepath.Join(dir, "nope.txt"), params.KeyFind, ",", params.KeyReplace, "|"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrInput))
}

func TestExecuteRefusesInputAsOutput(t *testing.T) {
	ctx := testutils.Context(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	testutils.WriteFile(t, input, "a,b\n")

	_, err := Execute(ctx, newSet(input, params.KeyFind, ",", params.KeyReplace, "|", params.KeyOutput, input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrOutput))
	assert.Equal(t, "a,b\n", testutils.ReadFile(t, input))
}

func TestRunner(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctx := testutils.Context(t)
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		testutils.WriteFile(t, filepath.Join(dir, name), "x,y\n")
	}

	sets, err := ExpandInputs(ctx, newSet(filepath.Join(dir, "*.txt"), params.KeyFind, ",", params.KeyReplace, "+"))
	require.NoError(t, err)
	require.Len(t, sets, 3)

	var console bytes.Buffer
	logger := zerolog.Ctx(ctx)
	runner := NewRunner(logger, 2, log.New(&console, zerolog.Disabled))

	results, err := runner.Run(ctx, sets)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, filepath.Join(dir, name+".txt"), results[i].Input)
		assert.Equal(t, "x+y", testutils.ReadFile(t, filepath.Join(dir, name+"_result.txt")))
		assert.Equal(t, status.StatusNew, results[i].Status)
	}

	assert.Equal(t, 3, runner.Tracker().Counts()[status.StatusNew])
	assert.Contains(t, console.String(), "[replacing in 3 files]")
	assert.Contains(t, console.String(), "a_result.txt")
}

func TestRunnerContinuesAfterFailure(t *testing.T) {
	ctx := testutils.Context(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	testutils.WriteFile(t, good, "1,2\n")

	sets := []params.Set{
		newSet(filepath.Join(dir, "missing.txt"), params.KeyFind, ",", params.KeyReplace, "|"),
		newSet(good, params.KeyFind, ",", params.KeyReplace, "|"),
	}

	color.NoColor = true
	defer func() { color.NoColor = false }()

	var console bytes.Buffer
	results, err := NewRunner(zerolog.Ctx(ctx), 1, log.New(&console, zerolog.Disabled)).Run(ctx, sets)
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrInput))
	assert.Contains(t, console.String(), "❌ input error")
	assert.Contains(t, console.String(), "missing.txt")

	require.Len(t, results, 2)
	assert.Equal(t, status.StatusFailed, results[0].Status)
	assert.Equal(t, status.StatusNew, results[1].Status)
	assert.Equal(t, "1|2", testutils.ReadFile(t, filepath.Join(dir, "good_result.txt")))
}

func TestRunnerRejectsDuplicateOutputs(t *testing.T) {
	ctx := testutils.Context(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	sets := []params.Set{
		newSet(filepath.Join(dir, "a.txt"), params.KeyOutput, out),
		newSet(filepath.Join(dir, "b.txt"), params.KeyOutput, out),
	}

	_, err := NewRunner(zerolog.Ctx(ctx), 0, nil).Run(ctx, sets)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateOutput))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testutils.Context(t))
	cancel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	testutils.WriteFile(t, input, "a,b\n")

	results, err := NewRunner(zerolog.Ctx(ctx), 1, nil).Run(ctx, []params.Set{newSet(input, params.KeyFind, ",", params.KeyReplace, "|")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, status.StatusFailed, results[0].Status)
}
