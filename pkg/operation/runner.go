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
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/log"
	"github.com/walteh/blockreplace/pkg/params"
	"github.com/walteh/blockreplace/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes parameter sets, several at a time
type Runner struct {
	logger  *zerolog.Logger
	console *log.Logger
	tracker *status.Tracker
	jobs    int
}

// 🏗️ NewRunner creates a new runner. jobs below one means one per CPU.
// console may be nil.
func NewRunner(logger *zerolog.Logger, jobs int, console *log.Logger) *Runner {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	return &Runner{
		logger:  logger,
		console: console,
		tracker: status.NewTracker(logger, nil),
		jobs:    jobs,
	}
}

// Tracker returns the status of every file the runner has executed.
func (r *Runner) Tracker() *status.Tracker { return r.tracker }

// 🏃 Run executes every set and returns their results in order. All sets run
// even when one fails; the first failure is returned.
func (r *Runner) Run(ctx context.Context, sets []params.Set) ([]Result, error) {
	if err := checkOutputs(sets); err != nil {
		return nil, err
	}

	if r.console != nil && len(sets) > 0 {
		first := params.Normalize(sets[0])
		r.console.StartRunOperation(ctx, log.RunOperation{
			Find:    first.Find(),
			Replace: first.Replace(),
			Number:  first.Number(),
			Files:   len(sets),
		})
		defer r.console.EndRunOperation(ctx)
	}

	r.tracker.Expect(len(sets))
	results := make([]Result, len(sets))

	var g errgroup.Group
	g.SetLimit(r.jobs)

	for i, set := range sets {
		i, set := i, set
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Input: set.Input(), Output: set.OutputPath(), Status: status.StatusFailed, Err: err}
				return errors.Errorf("operation cancelled: %w", err)
			}

			res, err := Execute(ctx, set)
			results[i] = res
			r.tracker.Track(ctx, res.FileInfo())
			r.report(ctx, res)
			return err
		})
	}

	err := g.Wait()
	return results, err
}

func (r *Runner) report(ctx context.Context, res Result) {
	if r.console == nil {
		return
	}
	r.console.LogFileOperation(ctx, log.FileOperation{
		Input:      res.Input,
		Output:     res.Output,
		Status:     res.Status.String(),
		IsNew:      res.Status == status.StatusNew,
		IsModified: res.Status == status.StatusModified,
		IsFailed:   res.Status == status.StatusFailed,
		Fragments:  res.Stats.Fragments,
		Groups:     res.Stats.Groups,
	})
	if res.Err != nil {
		r.console.Error(res.Err.Error())
	}
}

// checkOutputs rejects sets that would write the same output file.
func checkOutputs(sets []params.Set) error {
	owners := make(map[string]string, len(sets))
	for _, set := range sets {
		out := set.OutputPath()
		key, err := filepath.Abs(out)
		if err != nil {
			key = filepath.Clean(out)
		}
		if prev, ok := owners[key]; ok {
			return errors.Errorf("%w: %s is written by %s and %s", ErrDuplicateOutput, out, prev, set.Input())
		}
		owners[key] = set.Input()
	}
	return nil
}
