// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/mesonast/ast"
	"github.com/bufbuild/mesonast/internal/astx"
	"github.com/bufbuild/mesonast/parser"
	"github.com/bufbuild/mesonast/report"
	"github.com/bufbuild/mesonast/source"
	"github.com/bufbuild/mesonast/source/length"
)

// errParseFailed is returned when at least one file failed to parse. Its
// diagnostics have already been printed.
var errParseFailed = errors.New("some files failed to parse")

var errNoInstructions = errors.New("file contains no instructions")

type parseOptions struct {
	format  string
	offsets bool
	expr    bool
	plus    bool
	columns string
	color   string
	jobs    int
}

// parsed is the outcome of parsing one file: a printable document, unless the
// report has errors.
type parsed struct {
	doc    any
	report report.Report
}

func newParseCmd() *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse build files and print their syntax trees",
		Long: `Parse each file and print its syntax tree. With no files, or when a file
is "-", standard input is read.

Files are parsed concurrently, but their trees are printed in the order the
files were given. Parse errors are printed to standard error, and cause the
command to fail once every file has been processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", "yaml", "output format (yaml, json)")
	flags.BoolVar(&opts.offsets, "offsets", false, "print byte offsets instead of line and column")
	flags.BoolVar(&opts.expr, "expr", false, "parse each file as a single value rather than a list of instructions")
	flags.BoolVar(&opts.plus, "plus-assign", false, "accept 'x += y' instructions")
	flags.StringVar(&opts.columns, "columns", "bytes", "unit for columns (bytes, runes, utf16, width)")
	flags.StringVar(&opts.color, "color", "auto", "colorize diagnostics (auto, always, never)")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "number of files to parse at once (default: number of CPUs)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts parseOptions) error {
	format, err := astx.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	unit, ok := length.Parse(opts.columns)
	if !ok {
		return fmt.Errorf("unknown column unit %q (want bytes, runes, utf16, or width)", opts.columns)
	}
	style, err := diagnosticStyle(opts.color)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	jobs := opts.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	log := commonlog.GetLogger("mesonast.parse")
	log.Infof("parsing %d file(s) with %d job(s)", len(args), jobs)

	// Standard input is read once, up front, no matter how many times it
	// was named.
	var stdin *source.File
	if slices.Contains(args, "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading standard input: %w", err)
		}
		stdin = source.NewFile("<stdin>", string(data))
	}

	results := make([]parsed, len(args))
	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range args {
		group.Go(func() error {
			file, err := readFile(stdin, path)
			if err != nil {
				return err
			}

			start := time.Now()
			results[i], err = parseFile(file, opts, unit)
			log.Debugf("parsed %s in %v", file.Path(), time.Since(start))
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	enc := astx.NewEncoder(cmd.OutOrStdout(), format)
	var failed int
	for _, result := range results {
		if len(result.report) > 0 {
			fmt.Fprint(cmd.ErrOrStderr(), result.report.Render(style))
		}
		if result.report.HasErrors() {
			failed++
			continue
		}
		if err := enc.Encode(result.doc); err != nil {
			return err
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if failed > 0 {
		log.Noticef("%d of %d file(s) failed to parse", failed, len(args))
		return errParseFailed
	}
	return nil
}

func parseFile(file *source.File, opts parseOptions, unit length.Unit) (parsed, error) {
	popts := parser.Options{PlusAssignment: opts.plus}

	var tree ast.Node[int]
	var r report.Report
	var err error
	if opts.expr {
		tree, err = parser.ParseExpr(file, popts)
	} else {
		var block *ast.CodeBlock[int]
		if block, err = parser.Parse(file, popts); err == nil {
			tree = block
			if len(block.Instructions) == 0 {
				r.Warn(errNoInstructions, report.MentionFile(file.Path()))
			}
		}
	}

	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			perr.Diagnose(&r)
		} else {
			r.Error(err, report.MentionFile(file.Path()))
		}
		return parsed{report: r}, nil
	}

	if opts.offsets {
		return parsed{doc: astx.Document[int]{File: file.Path(), Tree: astx.Encode(tree)}, report: r}, nil
	}

	resolved, err := ast.Resolve(file, tree, unit)
	if err != nil {
		return parsed{}, err
	}
	return parsed{doc: astx.Document[source.Location]{File: file.Path(), Tree: astx.Encode(resolved)}, report: r}, nil
}

// readFile loads path, where "-" stands for the already-read stdin.
func readFile(stdin *source.File, path string) (*source.File, error) {
	if path == "-" {
		return stdin, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return source.NewFile(path, string(data)), nil
}

func diagnosticStyle(mode string) (report.Style, error) {
	switch mode {
	case "always":
		return report.Colored, nil
	case "never":
		return report.Monochrome, nil
	case "auto":
		if color.NoColor {
			return report.Monochrome, nil
		}
		return report.Colored, nil
	default:
		return 0, fmt.Errorf("unknown color mode %q (want auto, always, or never)", mode)
	}
}
