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
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/blockreplace/pkg/log"
	"github.com/walteh/blockreplace/pkg/params"
	"github.com/walteh/blockreplace/pkg/prompt"
)

// rootOpts holds flag values and the process surfaces the commands use
type rootOpts struct {
	strictConfig bool
	interactive  bool
	debug        bool
	jobs         int

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	dialog     prompt.Dialog
	isTerminal func() bool
}

func newRootOpts() *rootOpts {
	o := &rootOpts{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		dialog: prompt.NewPtermDialog(),
	}
	o.isTerminal = func() bool { return stdioIsTerminal(o.stdin, o.stdout) }
	return o
}

// paramFlags maps flag names to parameter keys
var paramFlags = []struct {
	name, short, key, usage string
}{
	{"config", "c", params.KeyConfig, "config file path"},
	{"input", "i", params.KeyInput, "input file or glob pattern"},
	{"output", "o", params.KeyOutput, "output file (default: input with postfix)"},
	{"find", "f", params.KeyFind, "text to split lines on"},
	{"replace", "r", params.KeyReplace, "text to join fragments with"},
	{"number", "n", params.KeyNumber, "fragments per block, 0 joins whole lines"},
	{"delimiter", "d", params.KeyDelimiter, "text written after every block"},
	{"encoding", "e", params.KeyEncoding, "input and output text encoding"},
	{"postfix", "p", params.KeyPostfix, "suffix added to derived output names"},
}

func newRootCmd(o *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blockreplace [input]",
		Short: "Split lines on a pattern and rejoin the pieces in blocks",
		Long: `blockreplace reads an input file, splits each line containing the find
text into fragments, joins them back with the replace text and optionally
groups them into blocks of --number fragments followed by --delimiter.

Values come from built-in defaults, then the config file, then flags.
The escapes \n, \t and \r are understood in find, replace and delimiter.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd.Context(), o))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context(), cliValues(cmd, args))
		},
	}

	cmd.SetIn(o.stdin)
	cmd.SetOut(o.stdout)
	cmd.SetErr(o.stderr)

	addRootFlags(cmd, o)
	cmd.AddCommand(newVersionCmd(o))

	return cmd
}

// addRootFlags adds the parameter flags and the run flags to the root command
func addRootFlags(cmd *cobra.Command, o *rootOpts) {
	for _, f := range paramFlags {
		cmd.Flags().StringP(f.name, f.short, "", f.usage)
	}
	cmd.Flags().BoolVar(&o.strictConfig, "strict-config", false, "fail when the config file cannot be read")
	cmd.Flags().BoolVar(&o.interactive, "interactive", false, "always ask for parameters in the terminal")
	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", 0, "files processed at once (default: number of CPUs)")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging")
}

// cliValues collects the parameter flags that were set, plus the optional
// positional input.
func cliValues(cmd *cobra.Command, args []string) map[string]string {
	values := make(map[string]string)
	for _, f := range paramFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetString(f.name)
		if err != nil {
			continue
		}
		values[f.key] = v
	}
	if len(args) > 0 && values[params.KeyInput] == "" {
		values[params.KeyInput] = args[0]
	}
	return values
}

// setupLogging attaches a zerolog logger and the console logger to ctx
func setupLogging(ctx context.Context, o *rootOpts) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	level := zerolog.WarnLevel
	if o.debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: o.stderr}).Level(level).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	return log.NewContext(ctx, log.New(o.stderr, level))
}
