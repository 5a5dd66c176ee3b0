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

package text

import (
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// 🔤 LookupEncoding resolves an encoding by its WHATWG or IANA name.
// An empty name means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return unicode.UTF8, nil
	}
	if enc, err := htmlindex.Get(n); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(n)
	if err != nil || enc == nil {
		return nil, errors.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}

// IsUTF8 reports whether enc is UTF-8, which needs no transcoding.
func IsUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8
}

// NewReader decodes r from enc into UTF-8. UTF-8 input passes through.
func NewReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if IsUTF8(enc) {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// NewWriter encodes UTF-8 written to it into enc. The returned writer must
// be closed to flush any pending bytes; closing does not close w.
func NewWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	if IsUTF8(enc) {
		return nopCloser{w}
	}
	return transform.NewWriter(w, enc.NewEncoder())
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
