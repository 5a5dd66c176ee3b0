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

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/blockreplace/pkg/log"
	"github.com/walteh/blockreplace/pkg/operation"
	"github.com/walteh/blockreplace/pkg/params"
	"github.com/walteh/blockreplace/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// run resolves the parameters and replaces in every input, or hands over to
// the interactive front end.
func (o *rootOpts) run(ctx context.Context, cli map[string]string) error {
	logger := zerolog.Ctx(ctx)

	set, err := params.Load(ctx, params.Defaults(), cli, params.Options{Strict: o.strictConfig})
	if err != nil {
		return err
	}

	if o.shouldPrompt(set) {
		logger.Debug().Bool("forced", o.interactive).Strs("missing", set.Missing()).Msg("starting interactive front end")
		return o.runInteractive(ctx, set)
	}

	if err := set.Validate(); err != nil {
		return err
	}

	sets, err := operation.ExpandInputs(ctx, set)
	if err != nil {
		return err
	}

	console := log.FromContext(ctx)
	console.Header(fmt.Sprintf("splitting on %q", params.Normalize(set).Find()))
	runner := operation.NewRunner(logger, o.jobs, console)

	results, err := runner.Run(ctx, sets)
	for _, res := range results {
		if res.Err == nil && res.Status != status.StatusFailed {
			fmt.Fprintln(o.stdout, res.Output)
		}
	}

	summarize(console, runner.Tracker())
	if err != nil {
		return errors.Errorf("replacing: %w", err)
	}
	return nil
}

// summarize prints totals for the tracked files.
func summarize(console *log.Logger, tracker *status.Tracker) {
	var size int64
	files := tracker.List()
	for _, f := range files {
		size += f.Size
	}

	counts := tracker.Counts()
	written := counts[status.StatusNew] + counts[status.StatusModified]
	unchanged := counts[status.StatusUnchanged]

	console.LogNewline()
	console.Infof("%d bytes in %d files", size, written+unchanged)
	if failed := counts[status.StatusFailed]; failed > 0 {
		console.Warningf("%d of %d files failed", failed, len(files))
		return
	}
	console.Successf("%d written, %d unchanged", written, unchanged)
}
