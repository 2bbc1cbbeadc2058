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

package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/mesonast/internal/taxa"
	"github.com/bufbuild/mesonast/report"
	"github.com/bufbuild/mesonast/source"
	"github.com/bufbuild/mesonast/source/length"
)

var (
	// ErrInvalidSource is wrapped by every [*Error].
	ErrInvalidSource = errors.New("invalid build file")

	// ErrInvalidUTF8 is returned when the text of a file is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("file is not valid UTF-8")
)

// Error is returned when a file does not match the grammar.
//
// Offset is the furthest byte offset that any alternative of the grammar
// reached before failing; the expected productions are those that would have
// been accepted at that offset.
type Error struct {
	File   *source.File
	Offset int

	expected taxa.Set
}

// Expected returns the user-visible names of the productions that were
// expected at e.Offset, in a stable order.
func (e *Error) Expected() []string {
	return e.expected.Strings()
}

// Location returns the line and byte column of e.Offset.
func (e *Error) Location() source.Location {
	loc, _ := e.File.Location(e.Offset, length.Bytes)
	return loc
}

// Error implements [error].
func (e *Error) Error() string {
	return fmt.Sprintf("%s:%v: %v", e.File.Path(), e.Location(), e.unexpected())
}

// Unwrap returns [ErrInvalidSource].
func (e *Error) Unwrap() error {
	return ErrInvalidSource
}

// Diagnose appends a diagnostic describing e to r.
func (e *Error) Diagnose(r *report.Report) {
	got, size := e.got()
	opts := []report.DiagnosticOption{
		report.SnippetAt(e.File.Span(e.Offset, e.Offset+size), "expected %s", e.expected.Join("or")),
	}
	if e.expected.Has(taxa.Newline) && got != taxa.EOF.String() {
		opts = append(opts, report.Help("each instruction must be on its own line"))
	}
	if e.expected.Has(taxa.Quote) && got == taxa.Newline.String() {
		opts = append(opts, report.Note("only strings delimited by `'''` may span lines"))
	}
	r.Error(e.unexpected(), opts...)
}

func (e *Error) unexpected() errUnexpected {
	got, _ := e.got()
	return errUnexpected{got: got, want: e.expected}
}

// got describes the text at e.Offset, returning the description and the
// number of bytes it covers.
func (e *Error) got() (string, int) {
	text := e.File.Text()[e.Offset:]
	switch {
	case text == "":
		return taxa.EOF.String(), 0
	case text[0] == '\n' || strings.HasPrefix(text, "\r\n"):
		return taxa.Newline.String(), 0
	}

	n := 0
	for n < len(text) && isIdentPart(text[n]) {
		n++
	}
	if n == 0 {
		_, n = utf8.DecodeRuneInString(text)
	}
	return "`" + text[:n] + "`", n
}

// errUnexpected is the message of an [Error].
type errUnexpected struct {
	got  string
	want taxa.Set
}

func (e errUnexpected) Error() string {
	if e.want.Len() == 0 {
		return "unexpected " + e.got
	}
	return fmt.Sprintf("unexpected %s, expected %s", e.got, e.want.Join("or"))
}

// checkUTF8 returns an error wrapping [ErrInvalidUTF8] if the file's text
// is not valid UTF-8.
func checkUTF8(file *source.File) error {
	text := file.Text()
	if utf8.ValidString(text) {
		return nil
	}
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && n == 1 {
			return fmt.Errorf("%s: %w (offset %d)", file.Path(), ErrInvalidUTF8, i)
		}
		i += n
	}
	return fmt.Errorf("%s: %w", file.Path(), ErrInvalidUTF8)
}
