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

// Package engine streams input text through the split, regroup and rejoin
// transform into an output file it owns.
package engine

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/failure"
	"github.com/walteh/blockreplace/pkg/params"
	"github.com/walteh/blockreplace/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
)

// 🚦 State is the lifecycle position of an Engine's output file.
type State int

const (
	StateUnopened State = iota
	StateOpened
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpened:
		return "opened"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// 📊 Stats counts what a transform did.
type Stats struct {
	Lines     int   // lines read
	Matched   int   // lines containing the pattern
	Fragments int   // fragments produced by splitting
	Groups    int   // complete groups written with a delimiter
	Written   int64 // bytes of text handed to the output, before encoding
}

// 🔧 Engine owns one output file and runs the transform into it.
// An Engine is not safe for concurrent use.
type Engine struct {
	params   params.Set
	state    State
	encoding encoding.Encoding

	file  *os.File
	encw  io.WriteCloser
	w     *bufio.Writer
	stats Stats
}

// 🏭 New creates an engine for the given parameters.
func New(set params.Set) *Engine {
	return &Engine{params: set}
}

// Params returns the engine's parameters, including the resolved output
// path once CreateOutputFile has succeeded.
func (e *Engine) Params() params.Set { return e.params }

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Stats returns the counters of the last transform.
func (e *Engine) Stats() Stats { return e.stats }

// OutputPath returns the output path the engine writes, or would write.
func (e *Engine) OutputPath() string { return e.params.OutputPath() }

// 📁 CreateOutputFile resolves the output path, truncates or creates the file
// and opens it for writing in the configured encoding.
func (e *Engine) CreateOutputFile(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if e.state != StateUnopened {
		return failure.Write("output file was already created")
	}

	if e.params.Get(params.KeyOutput) == "" && e.params.Input() == "" {
		return failure.MissingParameter(params.KeyInput)
	}
	path := e.params.OutputPath()

	enc, err := text.LookupEncoding(e.params.Encoding())
	if err != nil {
		return failure.Output(path, err)
	}

	if sameFile(path, e.params.Input()) {
		return failure.Output(path, errors.New("output would overwrite the input file"))
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return failure.Output(path, err)
	}

	e.file = file
	e.encoding = enc
	e.encw = text.NewWriter(file, enc)
	e.w = bufio.NewWriter(e.encw)
	e.params = e.params.With(params.KeyOutput, path)
	e.state = StateOpened

	logger.Debug().Str("output", path).Str("encoding", e.params.Encoding()).Msg("output file created")
	return nil
}

// 📥 ParseFile opens the input in the configured encoding and transforms it.
func (e *Engine) ParseFile(ctx context.Context) error {
	if err := e.checkOpened(); err != nil {
		return err
	}

	path := e.params.Input()
	if path == "" {
		return failure.MissingParameter(params.KeyInput)
	}

	file, err := os.Open(path)
	if err != nil {
		return failure.Input(path, err)
	}
	defer file.Close()

	zerolog.Ctx(ctx).Debug().Str("input", path).Msg("reading input file")

	return e.run(ctx, &readerSource{r: bufio.NewReader(text.NewReader(file, e.encoding)), path: path})
}

// 🔄 Parse transforms r line by line, then closes the output.
func (e *Engine) Parse(ctx context.Context, r io.Reader) error {
	if err := e.checkOpened(); err != nil {
		return err
	}
	return e.run(ctx, &readerSource{r: bufio.NewReader(r)})
}

// ParseString transforms s as a single line, then closes the output.
func (e *Engine) ParseString(ctx context.Context, s string) error {
	if err := e.checkOpened(); err != nil {
		return err
	}
	return e.run(ctx, &stringSource{s: s})
}

// Close flushes and closes the output file. Closing an engine that is not
// open does nothing.
func (e *Engine) Close() error {
	if e.state != StateOpened {
		return nil
	}
	e.state = StateClosed

	path := e.params.Get(params.KeyOutput)
	if err := e.w.Flush(); err != nil {
		e.encw.Close()
		e.file.Close()
		return failure.Output(path, errors.Errorf("flushing output: %w", err))
	}
	if err := e.encw.Close(); err != nil {
		e.file.Close()
		return failure.Output(path, errors.Errorf("encoding output: %w", err))
	}
	if err := e.file.Close(); err != nil {
		return failure.Output(path, errors.Errorf("closing output: %w", err))
	}
	return nil
}

func (e *Engine) checkOpened() error {
	switch e.state {
	case StateUnopened:
		return failure.Write("output file has not been created")
	case StateClosed:
		return failure.Write("output file is already closed")
	}
	return nil
}

func (e *Engine) write(s string) error {
	if err := e.checkOpened(); err != nil {
		return err
	}
	n, err := e.w.WriteString(s)
	e.stats.Written += int64(n)
	if err != nil {
		return failure.Output(e.params.Get(params.KeyOutput), errors.Errorf("writing output: %w", err))
	}
	return nil
}

// run is the transform shared by every entry point.
func (e *Engine) run(ctx context.Context, src lineSource) error {
	logger := zerolog.Ctx(ctx)

	p := params.Normalize(e.params)
	find, replace, delimiter := p.Find(), p.Replace(), p.Delimiter()
	if find == "" {
		return failure.MissingParameter(params.KeyFind)
	}
	size := p.Number()
	acc := text.NewAccumulator(size)
	e.stats = Stats{}

	for {
		raw, err := src.next()
		if raw != "" {
			if werr := e.line(raw, find, replace, delimiter, size, acc); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return failure.Input(src.name(), err)
		}
	}

	logger.Trace().Int("pending", acc.Len()).Msg("draining trailing fragments")
	if rest := acc.Drain(); rest != nil {
		if err := e.write(strings.Join(rest, replace)); err != nil {
			return err
		}
	}

	if err := e.Close(); err != nil {
		return err
	}

	logger.Debug().
		Int("lines", e.stats.Lines).
		Int("matched", e.stats.Matched).
		Int("fragments", e.stats.Fragments).
		Int("groups", e.stats.Groups).
		Int64("written", e.stats.Written).
		Int("block_size", size).
		Msg("transform complete")
	return nil
}

// line handles one raw input line, terminator included.
func (e *Engine) line(raw, find, replace, delimiter string, size int, acc *text.Accumulator) error {
	e.stats.Lines++
	if !strings.Contains(raw, find) {
		return e.write(raw)
	}
	e.stats.Matched++

	fragments := text.Split(strings.TrimRightFunc(raw, unicode.IsSpace), find)
	if text.IsBlank(fragments) {
		return nil
	}
	e.stats.Fragments += len(fragments)

	if size == 0 {
		return e.write(text.Regroup(fragments, 0, replace, delimiter))
	}

	for _, f := range fragments {
		group, ok := acc.Push(f)
		if !ok {
			continue
		}
		e.stats.Groups++
		if err := e.write(strings.Join(group, replace) + delimiter); err != nil {
			return err
		}
	}
	return nil
}

// sameFile reports whether a and b name the same existing file, or the same
// cleaned absolute path.
func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
