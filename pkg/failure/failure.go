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

// Package failure defines the error kinds callers branch on.
package failure

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind identifies a class of failure. Kinds are usable as errors.Is targets.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	ErrConfig           Kind = "config error"      // config file present but unreadable or malformed
	ErrMissingParameter Kind = "missing parameter" // required key absent at run time
	ErrOutput           Kind = "output error"      // destination cannot be created
	ErrInput            Kind = "input error"       // source cannot be opened
	ErrWrite            Kind = "write error"       // engine used outside the opened state
)

// ❌ Error carries a Kind, the parameter or path it concerns and the cause.
type Error struct {
	Kind    Kind
	Subject string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Subject != "" {
		b.WriteString(": ")
		b.WriteString(strconv.Quote(e.Subject))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func Config(path string, err error) error {
	return &Error{Kind: ErrConfig, Subject: path, Err: err}
}

func MissingParameter(key string) error {
	return &Error{Kind: ErrMissingParameter, Subject: key}
}

func Output(path string, err error) error {
	return &Error{Kind: ErrOutput, Subject: path, Err: err}
}

func Input(path string, err error) error {
	return &Error{Kind: ErrInput, Subject: path, Err: err}
}

func Write(reason string) error {
	return &Error{Kind: ErrWrite, Err: errors.New(reason)}
}

// 🔍 KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// 🔍 SubjectOf returns the subject of the first *Error in err's chain.
func SubjectOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Subject
	}
	return ""
}
