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
	"os"

	"github.com/fatih/color"
)

func main() {
	os.Exit(execute(context.Background(), newRootOpts(), os.Args[1:]))
}

// execute runs the command tree and returns the process exit code.
func execute(ctx context.Context, o *rootOpts, args []string) int {
	cmd := newRootCmd(o)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(o.stderr, "%s %v\n", color.RedString("❌"), err)
		return 1
	}
	return 0
}
