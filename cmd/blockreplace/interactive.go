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
	"io"
	"os"

	"github.com/walteh/blockreplace/pkg/params"
	"github.com/walteh/blockreplace/pkg/prompt"
	"golang.org/x/term"
)

// shouldPrompt decides between the interactive front end and a plain run.
// --interactive always prompts; otherwise a terminal is needed and only
// missing required values trigger it.
func (o *rootOpts) shouldPrompt(set params.Set) bool {
	if o.interactive {
		return true
	}
	if len(set.Missing()) == 0 {
		return false
	}
	return o.isTerminal != nil && o.isTerminal()
}

func (o *rootOpts) runInteractive(ctx context.Context, set params.Set) error {
	res, err := prompt.NewSession(o.dialog).Run(ctx, set)
	if err != nil {
		return err
	}
	fmt.Fprintln(o.stdout, res.Output)
	return nil
}

// stdioIsTerminal reports whether both in and out are terminals.
func stdioIsTerminal(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok {
		return false
	}
	outFile, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(inFile.Fd())) && term.IsTerminal(int(outFile.Fd()))
}
