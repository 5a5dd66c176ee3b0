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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/failure"
	"github.com/walteh/blockreplace/pkg/operation"
	"github.com/walteh/blockreplace/pkg/params"
	"github.com/walteh/blockreplace/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrCancelled is returned when the user declines to continue.
var ErrCancelled = errors.New("cancelled by user")

// ExecuteFunc runs one resolved parameter set.
type ExecuteFunc func(ctx context.Context, set params.Set) (operation.Result, error)

// 🎮 Session drives the form until a run succeeds or the user gives up
type Session struct {
	dialog  Dialog
	execute ExecuteFunc
}

func NewSession(d Dialog) *Session {
	return &Session{dialog: d, execute: operation.Execute}
}

// WithExecute replaces the function used to run a set.
func (s *Session) WithExecute(fn ExecuteFunc) *Session {
	s.execute = fn
	return s
}

// 🏃 Run shows the form prefilled from set, confirms overwriting an existing
// output, runs the set and reports the result. Input, output and missing
// parameter failures offer another attempt.
func (s *Session) Run(ctx context.Context, set params.Set) (operation.Result, error) {
	logger := zerolog.Ctx(ctx)

	for {
		var err error
		set, err = s.form(ctx, set)
		if err != nil {
			return operation.Result{}, err
		}

		if missing := set.Missing(); len(missing) > 0 {
			err := failure.MissingParameter(missing[0])
			retry, rerr := s.retry("Some required values are empty", err)
			if rerr != nil {
				return operation.Result{}, rerr
			}
			if !retry {
				return operation.Result{}, err
			}
			continue
		}

		out := set.OutputPath()
		exists, err := status.Exists(out)
		if err != nil {
			return operation.Result{}, failure.Output(out, err)
		}
		if exists {
			ok, err := s.dialog.Confirm(fmt.Sprintf("%s already exists. Overwrite it?", out), false)
			if err != nil {
				return operation.Result{}, errors.Errorf("confirming overwrite: %w", err)
			}
			if !ok {
				logger.Debug().Str("output", out).Msg("overwrite declined")
				again, err := s.dialog.Confirm("Change the parameters?", true)
				if err != nil {
					return operation.Result{}, errors.Errorf("confirming retry: %w", err)
				}
				if !again {
					return operation.Result{}, ErrCancelled
				}
				continue
			}
		}

		res, err := s.execute(ctx, set)
		if err == nil {
			s.dialog.Success(fmt.Sprintf("Wrote %s", res.Output))
			s.dialog.Info(fmt.Sprintf("%d of %d lines matched, %d fragments, %d blocks (%s)",
				res.Stats.Matched, res.Stats.Lines, res.Stats.Fragments, res.Stats.Groups, res.Status))
			return res, nil
		}

		switch failure.KindOf(err) {
		case failure.ErrInput, failure.ErrOutput, failure.ErrMissingParameter:
			retry, rerr := s.retry(describe(err), err)
			if rerr != nil {
				return res, rerr
			}
			if retry {
				continue
			}
			return res, err
		default:
			s.dialog.Error("Replacing failed", err)
			return res, err
		}
	}
}

func (s *Session) form(ctx context.Context, set params.Set) (params.Set, error) {
	set, err := Form(ctx, s.dialog, set)
	if err != nil {
		return set, errors.Errorf("collecting parameters: %w", err)
	}
	return set, nil
}

// retry shows err and asks whether to try again.
func (s *Session) retry(msg string, err error) (bool, error) {
	s.dialog.Error(msg, err)
	ok, cerr := s.dialog.Confirm("Try again?", true)
	if cerr != nil {
		return false, errors.Errorf("confirming retry: %w", cerr)
	}
	return ok, nil
}

func describe(err error) string {
	switch failure.KindOf(err) {
	case failure.ErrInput:
		return fmt.Sprintf("Cannot read %s", failure.SubjectOf(err))
	case failure.ErrOutput:
		return fmt.Sprintf("Cannot write %s", failure.SubjectOf(err))
	case failure.ErrMissingParameter:
		return fmt.Sprintf("Missing value for %s", failure.SubjectOf(err))
	}
	return err.Error()
}
