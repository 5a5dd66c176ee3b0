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

// Package text holds the pure pieces of the transform: splitting, block
// accumulation and text encodings.
package text

import "strings"

// ✂️ Split cuts line on every literal occurrence of find. Fragments may be
// empty. An empty find never splits.
func Split(line, find string) []string {
	if find == "" {
		return []string{line}
	}
	return strings.Split(line, find)
}

// IsBlank reports whether fragments is the result of splitting a line that
// was nothing but the pattern once trimmed: a single empty fragment.
func IsBlank(fragments []string) bool {
	return len(fragments) == 1 && fragments[0] == ""
}

// 📦 Accumulator buffers fragments and releases them in groups of a fixed size.
type Accumulator struct {
	size int
	buf  []string
	n    int
}

// 🏭 NewAccumulator creates an accumulator releasing groups of size fragments.
// A size below one never releases a group; everything waits for Drain.
func NewAccumulator(size int) *Accumulator {
	capacity := size
	if capacity < 1 {
		capacity = 0
	}
	return &Accumulator{size: size, buf: make([]string, capacity)}
}

// Push adds a fragment. When it completes a group the group is returned with
// ok set, and the accumulator starts over.
func (a *Accumulator) Push(fragment string) (group []string, ok bool) {
	if a.size < 1 {
		a.buf = append(a.buf, fragment)
		a.n++
		return nil, false
	}
	a.buf[a.n] = fragment
	a.n++
	if a.n < a.size {
		return nil, false
	}
	group = make([]string, a.size)
	copy(group, a.buf)
	a.n = 0
	return group, true
}

// Drain returns the buffered fragments of the incomplete trailing group and
// empties the accumulator. It returns nil when nothing is buffered.
func (a *Accumulator) Drain() []string {
	if a.n == 0 {
		return nil
	}
	rest := make([]string, a.n)
	copy(rest, a.buf[:a.n])
	a.n = 0
	if a.size < 1 {
		a.buf = a.buf[:0]
	}
	return rest
}

// Len returns the number of buffered fragments.
func (a *Accumulator) Len() int { return a.n }

// 🔁 Regroup joins fragments with replace in groups of size, appending
// delimiter after every complete group. The final short group gets no
// delimiter. A size below one joins everything with replace.
func Regroup(fragments []string, size int, replace, delimiter string) string {
	if size < 1 {
		return strings.Join(fragments, replace)
	}
	var b strings.Builder
	acc := NewAccumulator(size)
	for _, f := range fragments {
		if group, ok := acc.Push(f); ok {
			b.WriteString(strings.Join(group, replace))
			b.WriteString(delimiter)
		}
	}
	if rest := acc.Drain(); rest != nil {
		b.WriteString(strings.Join(rest, replace))
	}
	return b.String()
}
