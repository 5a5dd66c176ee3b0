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
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

type buildStamp struct {
	Release  string `json:"release"`
	Commit   string `json:"commit,omitempty"`
	Dirty    bool   `json:"dirty,omitempty"`
	Built    string `json:"built,omitempty"`
	Toolkit  string `json:"toolkit"`
	Platform string `json:"platform"`
}

func readBuildStamp() buildStamp {
	stamp := buildStamp{
		Release:  "devel",
		Toolkit:  runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return stamp
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		stamp.Release = v
	}
	for _, kv := range bi.Settings {
		switch kv.Key {
		case "vcs.revision":
			stamp.Commit = kv.Value
			if len(stamp.Commit) > 12 {
				stamp.Commit = stamp.Commit[:12]
			}
		case "vcs.time":
			stamp.Built = kv.Value
		case "vcs.modified":
			stamp.Dirty = kv.Value == "true"
		}
	}
	return stamp
}

// String renders the stamp on one line, e.g.
// "blockreplace v1.2.0 (3f2a9c1d0e4b-dirty, 2025-02-01T10:00:00Z) go1.23.5 linux/amd64".
func (s buildStamp) String() string {
	var build []string
	if s.Commit != "" {
		rev := s.Commit
		if s.Dirty {
			rev += "-dirty"
		}
		build = append(build, rev)
	}
	if s.Built != "" {
		build = append(build, s.Built)
	}
	line := "blockreplace " + s.Release
	if len(build) > 0 {
		line += " (" + strings.Join(build, ", ") + ")"
	}
	return line + " " + s.Toolkit + " " + s.Platform
}

func newVersionCmd(o *rootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the release and build stamp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stamp := readBuildStamp()
			if !asJSON {
				fmt.Fprintln(o.stdout, stamp)
				return nil
			}
			if err := json.NewEncoder(o.stdout).Encode(stamp); err != nil {
				return errors.Errorf("encoding build stamp: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stamp as a JSON object")
	return cmd
}
