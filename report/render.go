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

package report

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"github.com/bufbuild/mesonast/source"
	"github.com/bufbuild/mesonast/source/length"
)

// Render renders this diagnostic report in a format suitable for showing to a user.
func (r *Report) Render(style Style) string {
	var out strings.Builder
	var errors, warnings int
	for i := range *r {
		diagnostic := &(*r)[i]
		out.WriteString(diagnostic.Render(style))
		out.WriteString("\n")
		if style != Simple {
			out.WriteString("\n")
		}
		if diagnostic.Level == Error {
			errors++
		}
		if diagnostic.Level == Warning {
			warnings++
		}
	}
	if style == Simple {
		return out.String()
	}

	p := newPalette(style == Colored)
	pluralize := func(count int, what string) string {
		if count == 1 {
			return "1 " + what
		}
		return fmt.Sprint(count, " ", what, "s")
	}

	if errors > 0 {
		summary := "encountered " + pluralize(errors, "error")
		if warnings > 0 {
			summary += " and " + pluralize(warnings, "warning")
		}
		fmt.Fprintln(&out, p.level(Error, summary))
	} else if warnings > 0 {
		fmt.Fprintln(&out, p.level(Warning, "encountered "+pluralize(warnings, "warning")))
	}

	return out.String()
}

// Render renders this diagnostic in a format suitable for showing to a user.
func (d *Diagnostic) Render(style Style) string {
	level := d.Level.String()

	// For the simple style, we imitate the Go compiler.
	if style == Simple {
		primary := d.Primary()
		if primary.File == nil {
			return fmt.Sprintf("%s: %s: %s", level, d.path(), d.Err.Error())
		}
		start, _, err := primary.Locations(length.Bytes)
		if err != nil {
			return fmt.Sprintf("%s: %s: %s", level, primary.Path(), d.Err.Error())
		}
		return fmt.Sprintf("%s: %s:%v: %s", level, primary.Path(), start, d.Err.Error())
	}

	// For the other styles, we imitate the Rust compiler. See
	// https://github.com/rust-lang/rustc-dev-guide/blob/master/src/diagnostics.md
	p := newPalette(style == Colored)

	var out strings.Builder
	out.WriteString(p.level(d.Level, level+": "+d.Err.Error()))

	// Figure out how wide the line bar needs to be. This is given by
	// the width of the largest line value among the snippets.
	var greatestLine int
	for _, snip := range d.snippets {
		if _, end, err := snip.Locations(length.Bytes); err == nil {
			greatestLine = max(greatestLine, end.Line)
		}
	}
	lineBarWidth := max(2, len(fmt.Sprint(greatestLine)))
	margin := strings.Repeat(" ", lineBarWidth)

	// Render all the diagnostic windows.
	for i, snippets := range partition(d.snippets, func(a, b *snippet) bool { return a.Path() != b.Path() }) {
		arrow := ":::"
		if i == 0 {
			arrow = "-->"
		}
		start, _, err := snippets[0].Locations(length.Bytes)
		if err != nil {
			fmt.Fprintf(&out, "\n%s%s", margin, p.blue(fmt.Sprintf("%s %s:?:?", arrow, snippets[0].Path())))
			continue
		}
		fmt.Fprintf(&out, "\n%s%s", margin, p.blue(fmt.Sprintf("%s %s:%v", arrow, snippets[0].Path(), start)))

		// Add a blank line after the file. This gives the diagnostic window some
		// visual breathing room.
		fmt.Fprintf(&out, "\n%s%s", margin, p.blue(" |"))

		w := buildWindow(d.Level, snippets)
		w.Render(lineBarWidth, p, &out)
	}

	// Render a remedial file name for spanless errors.
	if len(d.snippets) == 0 {
		fmt.Fprintf(&out, "\n%s%s", margin, p.blue(fmt.Sprintf("--> %s:?:?", d.path())))
	}

	// Render the footers. For simplicity we collect them into an array first.
	var footers [][2]string
	for _, note := range d.notes {
		footers = append(footers, [2]string{"note", note})
	}
	for _, help := range d.help {
		footers = append(footers, [2]string{"help", help})
	}
	for i, frame := range d.trace {
		if debugMode < debugFull && i > 0 {
			break
		}
		// Dump the stack trace for the diagnostic if one was included.
		footers = append(footers, [2]string{"debug", fmt.Sprintf("at %s", frame.Function)})
		footers = append(footers, [2]string{"debug", fmt.Sprintf("   %s:%d", frame.File, frame.Line)})
	}
	for _, footer := range footers {
		fmt.Fprintf(&out, "\n%s%s%s%s", margin, p.blue(" = "), p.cyan(footer[0]+": "), footer[1])
	}

	return out.String()
}

func (d *Diagnostic) path() string {
	if d.mention == "" {
		return "<unknown>"
	}
	return d.mention
}

// window is an intermediate structure for rendering an annotated code snippet
// consisting of multiple spans on the same file.
type window struct {
	file       *source.File
	underlines []underline
}

// underline is a snippet laid out on a single line, in terminal columns.
type underline struct {
	line       int
	start, end int
	level      Level
	message    string
}

// buildWindow builds a diagnostic window for the given snippets, which must all have
// the same file.
func buildWindow(level Level, snippets []snippet) *window {
	w := &window{file: snippets[0].File}
	for _, snip := range snippets {
		start, end, err := snip.Locations(length.TermWidth)
		if err != nil {
			continue
		}

		// Spans that cross lines are truncated to the end of their first
		// line.
		if end.Line != start.Line {
			_, lineEnd := w.file.LineOffsets(start.Line)
			text := strings.TrimRight(w.file.Text()[:lineEnd], "\r\n")
			end, _ = w.file.Location(len(text), length.TermWidth)
		}

		ul := underline{
			line:    start.Line,
			start:   start.Column,
			end:     end.Column,
			level:   note,
			message: snip.message,
		}
		if snip.primary {
			ul.level = level
		}

		// Make sure no empty underlines exist.
		if ul.end <= ul.start {
			ul.end = ul.start + 1
		}
		w.underlines = append(w.underlines, ul)
	}

	slices.SortStableFunc(w.underlines, func(a, b underline) int { return a.line - b.line })
	return w
}

func (w *window) Render(lineBarWidth int, p palette, out *strings.Builder) {
	margin := strings.Repeat(" ", lineBarWidth)
	for _, part := range partition(w.underlines, func(a, b *underline) bool { return a.line != b.line }) {
		line := strings.TrimRight(w.file.Line(part[0].line), "\r\n")
		fmt.Fprintf(out, "\n%s %s", p.blue(fmt.Sprintf("%*d |", lineBarWidth, part[0].line)), expandTabs(line))

		for _, ul := range part {
			mark := "^"
			if ul.level == note {
				mark = "-"
			}
			marks := strings.Repeat(mark, ul.end-ul.start)
			if ul.message != "" {
				marks += " " + ul.message
			}
			fmt.Fprintf(out, "\n%s%s %s%s",
				margin, p.blue(" |"),
				strings.Repeat(" ", ul.start-1), p.level(ul.level, marks))
		}
	}
}

// expandTabs replaces each tab in line with enough spaces to reach the next
// tabstop, so that the underlines computed in terminal columns line up.
func expandTabs(line string) string {
	var out strings.Builder
	var column int
	for {
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			out.WriteString(line)
			return out.String()
		}
		out.WriteString(line[:tab])
		column += uniseg.StringWidth(line[:tab])
		spaces := length.TabstopWidth - column%length.TabstopWidth
		out.WriteString(strings.Repeat(" ", spaces))
		column += spaces
		line = line[tab+1:]
	}
}

// palette is the colors used for pretty-rendering diagnostics. The zero
// palette renders without color.
type palette struct {
	enabled bool
}

var (
	boldRed    = newColor(color.FgRed, color.Bold)
	boldYellow = newColor(color.FgYellow, color.Bold)
	boldCyan   = newColor(color.FgCyan, color.Bold)
	boldBlue   = newColor(color.FgBlue, color.Bold)
	blue       = newColor(color.FgBlue)
)

// newColor returns a color that is rendered regardless of whether the
// process's output is a terminal; the caller of Render decides that.
func newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

func newPalette(enabled bool) palette {
	return palette{enabled: enabled}
}

func (p palette) paint(c *color.Color, text string) string {
	if !p.enabled || text == "" {
		return text
	}
	return c.Sprint(text)
}

func (p palette) blue(text string) string { return p.paint(blue, text) }
func (p palette) cyan(text string) string { return p.paint(boldCyan, text) }

func (p palette) level(l Level, text string) string {
	switch l {
	case Error:
		return p.paint(boldRed, text)
	case Warning:
		return p.paint(boldYellow, text)
	case note:
		return p.paint(boldBlue, text)
	default:
		return text
	}
}

// partition returns an iterator of subslices of s such that each yielded
// slice is delimited according to delimit. Also yields the starting index of
// the subslice.
//
// In other words, suppose delimit is !=. Then, the slice [a a a b c c] is yielded
// as the subslices [a a a], [b], and [c c c].
//
// Will never yield an empty slice.
func partition[T any](s []T, delimit func(a, b *T) bool) iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		var start int
		for i := 1; i < len(s); i++ {
			if delimit(&s[i-1], &s[i]) {
				if !yield(start, s[start:i]) {
					break
				}
				start = i
			}
		}
		rest := s[start:]
		if len(rest) > 0 {
			yield(start, rest)
		}
	}
}
