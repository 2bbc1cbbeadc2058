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

package source

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/rivo/uniseg"

	"github.com/bufbuild/mesonast/source/length"
)

// ErrOffsetOutOfRange is returned when an offset that does not lie within a
// file is resolved. Offsets produced by the parser never do this, so seeing
// this error indicates a bug rather than bad input.
var ErrOffsetOutOfRange = errors.New("offset out of range")

// File is a source code file.
//
// It contains additional book-keeping information for resolving offsets into
// locations. Files are immutable once created, and safe to share between
// goroutines.
//
// A nil *File behaves like an empty file with the path name "".
type File struct {
	path, text string

	once sync.Once
	// A prefix sum of the line lengths of text. Given a byte offset, it is possible
	// to recover which line that offset is on by performing a binary search on this
	// list.
	//
	// Alternatively, this slice can be interpreted as the index after each \n in the
	// original file.
	lineIndex []int
}

// Location is a user-displayable location within a source code file.
type Location struct {
	// The line and column for this location, 1-indexed.
	//
	// The units of measurement for column depend on the [length.Unit] used when
	// constructing it.
	//
	// Because these are 1-indexed, a zero Line can be used as a sentinel.
	Line   int `yaml:"line" json:"line"`
	Column int `yaml:"column" json:"column"`
}

// String implements [fmt.Stringer].
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's path.
//
// It doesn't need to be a real path; it is only used when displaying
// locations.
func (f *File) Path() string {
	if f == nil {
		return ""
	}

	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}

	return f.text
}

// Len returns the length of this file's contents, in bytes.
func (f *File) Len() int {
	return len(f.Text())
}

// Lines returns the number of lines in this file. A file that ends in a
// newline has an empty last line.
func (f *File) Lines() int {
	return len(f.lines())
}

// LineByOffset searches this index to find the line number for the line
// containing this byte offset. The result is 1-indexed.
//
// This operation is O(log n).
func (f *File) LineByOffset(offset int) (int, error) {
	if err := f.check(offset); err != nil {
		return 0, err
	}
	return f.lineOf(offset) + 1, nil
}

// Location searches this index to build full Location information for the
// given byte offset.
//
// An offset equal to the length of the file is valid, and resolves to the
// position just past the end of the last line. Any other offset outside of the
// file is an error wrapping [ErrOffsetOutOfRange].
//
// This operation is O(log n).
func (f *File) Location(offset int, unit length.Unit) (Location, error) {
	if err := f.check(offset); err != nil {
		return Location{}, err
	}

	line := f.lineOf(offset)
	chunk := f.Text()[f.lines()[line]:offset]

	var column int
	switch unit {
	case length.Bytes:
		column = len(chunk)
	case length.Runes:
		for range chunk {
			column++
		}
	case length.UTF16:
		for _, r := range chunk {
			column += utf16.RuneLen(r)
		}
	case length.TermWidth:
		column = termWidth(chunk)
	default:
		return Location{}, fmt.Errorf("source: unknown length unit %v", unit)
	}

	return Location{
		Line:   line + 1,
		Column: column + 1,
	}, nil
}

// Span is a shorthand for creating a new Span.
func (f *File) Span(start, end int) Span {
	return Span{f, start, end}
}

// Line returns the given line, including its trailing newline.
//
// line is expected to be 1-indexed.
func (f *File) Line(line int) string {
	start, end := f.LineOffsets(line)
	return f.Text()[start:end]
}

// LineOffsets returns the offsets for the given line, including its trailing
// newline.
//
// line is expected to be 1-indexed.
func (f *File) LineOffsets(line int) (start, end int) {
	lines := f.lines()
	if len(lines) == line {
		return lines[line-1], len(f.Text())
	}
	return lines[line-1], lines[line]
}

func (f *File) check(offset int) error {
	if offset < 0 || offset > f.Len() {
		return fmt.Errorf("%w: %d is not within [0, %d] of %q", ErrOffsetOutOfRange, offset, f.Len(), f.Path())
	}
	return nil
}

// lineOf returns the 0-indexed line containing offset, which must be in range.
func (f *File) lineOf(offset int) int {
	// Find the largest index in lines such that lines[line] <= offset.
	line, exact := slices.BinarySearch(f.lines(), offset)
	if !exact {
		line--
	}
	return line
}

func (f *File) lines() []int {
	if f == nil {
		return []int{0}
	}

	// Compute the prefix sum on-demand.
	f.once.Do(func() {
		var next int

		// We add 1 to the return value of IndexByte because we want to work
		// with the index immediately *after* the newline byte.
		text := f.Text()
		for {
			newline := strings.IndexByte(text, '\n') + 1
			if newline == 0 {
				break
			}

			text = text[newline:]

			f.lineIndex = append(f.lineIndex, next)
			next += newline
		}

		f.lineIndex = append(f.lineIndex, next)
	})
	return f.lineIndex
}

// termWidth measures text in terminal columns, expanding tabs.
func termWidth(text string) int {
	var column int
	for {
		tab := strings.IndexByte(text, '\t')
		if tab < 0 {
			return column + uniseg.StringWidth(text)
		}
		column += uniseg.StringWidth(text[:tab])
		column += length.TabstopWidth - column%length.TabstopWidth
		text = text[tab+1:]
	}
}
