// Package operation runs the replace engine over one or more input files
package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/engine"
	"github.com/walteh/blockreplace/pkg/failure"
	"github.com/walteh/blockreplace/pkg/params"
	"github.com/walteh/blockreplace/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Result is the outcome of running one parameter set
type Result struct {
	Input  string
	Output string
	Stats  engine.Stats
	Status status.FileStatus
	Err    error
}

// FileInfo converts the result for status tracking.
func (r Result) FileInfo() status.FileInfo {
	return status.FileInfo{
		Input:  r.Input,
		Path:   r.Output,
		Status: r.Status,
		Size:   r.Stats.Written,
		Error:  r.Err,
	}
}

// 🏃 Execute validates set, creates its output file and transforms its input
// into it. No file is touched when a required parameter is missing.
func Execute(ctx context.Context, set params.Set) (res Result, err error) {
	logger := zerolog.Ctx(ctx)

	res = Result{Input: set.Input(), Output: set.OutputPath(), Status: status.StatusFailed}
	defer func() {
		if err != nil {
			res.Status = status.StatusFailed
			res.Err = err
		}
	}()

	if err := set.Validate(); err != nil {
		return res, err
	}

	snap, err := status.Take(res.Output)
	if err != nil {
		return res, failure.Output(res.Output, err)
	}

	eng := engine.New(set)
	if err := eng.CreateOutputFile(ctx); err != nil {
		return res, err
	}
	defer eng.Close()

	if err := eng.ParseFile(ctx); err != nil {
		res.Stats = eng.Stats()
		return res, err
	}

	res.Output = eng.OutputPath()
	res.Stats = eng.Stats()

	info, err := snap.Compare()
	if err != nil {
		return res, errors.Errorf("checking output status: %w", err)
	}
	res.Status = info.Status

	logger.Debug().
		Str("input", res.Input).
		Str("output", res.Output).
		Str("status", res.Status.String()).
		Int("fragments", res.Stats.Fragments).
		Msg("file replaced")

	return res, nil
}
