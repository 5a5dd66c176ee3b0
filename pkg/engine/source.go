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

package engine

import (
	"bufio"
	"io"
)

// lineSource yields raw lines, terminators included, then io.EOF.
// A call may return a final line together with io.EOF.
type lineSource interface {
	next() (string, error)
	name() string
}

type readerSource struct {
	r    *bufio.Reader
	path string
}

func (s *readerSource) next() (string, error) {
	return s.r.ReadString('\n')
}

func (s *readerSource) name() string { return s.path }

// stringSource yields its whole string as one line.
type stringSource struct {
	s    string
	done bool
}

func (s *stringSource) next() (string, error) {
	if s.done {
		return "", io.EOF
	}
	s.done = true
	return s.s, io.EOF
}

func (s *stringSource) name() string { return "" }
