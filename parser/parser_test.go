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

package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/mesonast/ast"
	"github.com/bufbuild/mesonast/parser"
	"github.com/bufbuild/mesonast/report"
	"github.com/bufbuild/mesonast/source"
	"github.com/bufbuild/mesonast/source/length"
)

func span(start, end int) ast.Range[int] {
	return ast.Range[int]{Start: start, End: end}
}

func ident(name string, start int) *ast.Identifier[int] {
	return &ast.Identifier[int]{Name: name, Loc: span(start, start+len(name))}
}

func str(value string, start, end int) *ast.String[int] {
	return &ast.String[int]{Value: value, Loc: span(start, end)}
}

func num(value float64, start, end int) *ast.Number[int] {
	return &ast.Number[int]{Value: value, Loc: span(start, end)}
}

func parse(t *testing.T, text string, opts parser.Options) *ast.CodeBlock[int] {
	t.Helper()
	block, err := parser.Parse(source.NewFile("test.build", text), opts)
	require.NoError(t, err)
	return block
}

func parseExpr(t *testing.T, text string) ast.Node[int] {
	t.Helper()
	node, err := parser.ParseExpr(source.NewFile("test.build", text), parser.Options{})
	require.NoError(t, err)
	return node
}

func TestCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		want       *ast.Function[int]
	}{
		{
			name: "kwargs",
			text: "func(a, b: 'c')",
			want: &ast.Function[int]{
				Callee: ident("func", 0),
				Args: &ast.Arglist[int]{
					Args: []ast.Node[int]{ident("a", 5)},
					Loc:  span(5, 6),
				},
				Kwargs: &ast.KwargList[int]{
					Pairs: []*ast.KeyValue[int]{{
						Key:   ident("b", 8),
						Value: str("c", 11, 14),
						Loc:   span(8, 14),
					}},
					Loc: span(8, 14),
				},
				Loc: span(0, 15),
			},
		},
		{
			name: "no kwargs",
			text: "func(a)",
			want: &ast.Function[int]{
				Callee: ident("func", 0),
				Args: &ast.Arglist[int]{
					Args: []ast.Node[int]{ident("a", 5)},
					Loc:  span(5, 6),
				},
				Kwargs: &ast.Empty[int]{Loc: span(6, 6)},
				Loc:    span(0, 7),
			},
		},
		{
			name: "no args",
			text: "func()",
			want: &ast.Function[int]{
				Callee: ident("func", 0),
				Args:   &ast.Arglist[int]{Loc: span(5, 5)},
				Kwargs: &ast.Empty[int]{Loc: span(5, 5)},
				Loc:    span(0, 6),
			},
		},
		{
			name: "only kwargs",
			text: "f(a: 1)",
			want: &ast.Function[int]{
				Callee: ident("f", 0),
				Args:   &ast.Arglist[int]{Loc: span(2, 2)},
				Kwargs: &ast.KwargList[int]{
					Pairs: []*ast.KeyValue[int]{{
						Key:   ident("a", 2),
						Value: num(1, 5, 6),
						Loc:   span(2, 6),
					}},
					Loc: span(2, 6),
				},
				Loc: span(0, 7),
			},
		},
		{
			name: "trailing comma",
			text: "f(a,)",
			want: &ast.Function[int]{
				Callee: ident("f", 0),
				Args: &ast.Arglist[int]{
					Args: []ast.Node[int]{ident("a", 2)},
					Loc:  span(2, 3),
				},
				Kwargs: &ast.Empty[int]{Loc: span(4, 4)},
				Loc:    span(0, 5),
			},
		},
		{
			name: "member callee",
			text: "meson.version()",
			want: &ast.Function[int]{
				Callee: ast.NewMemberAccess(span(0, 13), ident("meson", 0), ident("version", 6)),
				Args:   &ast.Arglist[int]{Loc: span(14, 14)},
				Kwargs: &ast.Empty[int]{Loc: span(14, 14)},
				Loc:    span(0, 15),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			block := parse(t, test.text, parser.Options{})
			want := &ast.CodeBlock[int]{
				Instructions: []ast.Node[int]{test.want},
				Loc:          span(0, len(test.text)),
			}
			assert.Empty(t, cmp.Diff(want, block))
		})
	}
}

func TestNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"-42", -42},
		{"0o644", 420},
		{"-0o17", -15},
		{"0x10", 16},
		{"-0x10", -16},
		{"0xfF", 255},
		{"1.5", 1.5},
		{"-0.25", -0.25},
		{"9007199254740993", 9007199254740992},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			node := parseExpr(t, test.text)
			assert.Empty(t, cmp.Diff(num(test.want, 0, len(test.text)), node))
		})
	}

	for _, text := range []string{"1..2", "0x", "-", "9223372036854775808", "0o8"} {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			_, err := parser.ParseExpr(source.NewFile("test.build", text), parser.Options{})
			assert.ErrorIs(t, err, parser.ErrInvalidSource)
		})
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		want       ast.Node[int]
	}{
		{
			name: "identifier",
			text: "  foo_bar1 ",
			want: ident("foo_bar1", 2),
		},
		{
			name: "addition",
			text: "a + b + c",
			want: ast.NewAddition(span(0, 9), ast.Node[int](ident("a", 0)), ident("b", 4), ident("c", 8)),
		},
		{
			name: "member access",
			text: "meson.project_name",
			want: ast.NewMemberAccess(span(0, 18), ident("meson", 0), ident("project_name", 6)),
		},
		{
			name: "escapes",
			text: `'a\nb\tc\\'`,
			want: str("a\nb\tc\\", 0, 11),
		},
		{
			name: "multiline",
			text: "'''a\nb\\tc'''",
			want: str("a\nb\tc", 0, 12),
		},
		{
			name: "multiline quotes",
			text: "'''it's'''",
			want: str("it's", 0, 10),
		},
		{
			name: "empty string",
			text: "''",
			want: str("", 0, 2),
		},
		{
			name: "unicode string",
			text: "'héllo'",
			want: str("héllo", 0, 8),
		},
		{
			name: "empty array",
			text: "[]",
			want: &ast.Array[int]{
				Elems: &ast.Arglist[int]{Loc: span(1, 1)},
				Loc:   span(0, 2),
			},
		},
		{
			name: "array",
			text: "[1, 2,]",
			want: &ast.Array[int]{
				Elems: &ast.Arglist[int]{
					Args: []ast.Node[int]{num(1, 1, 2), num(2, 4, 5)},
					Loc:  span(1, 5),
				},
				Loc: span(0, 7),
			},
		},
		{
			name: "dict",
			text: "{a: 1, b: 'x'}",
			want: &ast.Dict[int]{
				Entries: &ast.KwargList[int]{
					Pairs: []*ast.KeyValue[int]{
						{Key: ident("a", 1), Value: num(1, 4, 5), Loc: span(1, 5)},
						{Key: ident("b", 7), Value: str("x", 10, 13), Loc: span(7, 13)},
					},
					Loc: span(1, 13),
				},
				Loc: span(0, 14),
			},
		},
		{
			name: "nested",
			text: "['a'] + f(x)",
			want: ast.NewAddition(span(0, 12),
				ast.Node[int](&ast.Array[int]{
					Elems: &ast.Arglist[int]{
						Args: []ast.Node[int]{str("a", 1, 4)},
						Loc:  span(1, 4),
					},
					Loc: span(0, 5),
				}),
				&ast.Function[int]{
					Callee: ident("f", 8),
					Args: &ast.Arglist[int]{
						Args: []ast.Node[int]{ident("x", 10)},
						Loc:  span(10, 11),
					},
					Kwargs: &ast.Empty[int]{Loc: span(11, 11)},
					Loc:    span(8, 12),
				},
			),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			node := parseExpr(t, test.text)
			assert.Empty(t, cmp.Diff(test.want, node))
		})
	}
}

func TestInstructions(t *testing.T) {
	t.Parallel()

	block := parse(t, "a = 1\r\n\r\nb.c = 'x'\r\n", parser.Options{})
	assert.Empty(t, cmp.Diff(&ast.CodeBlock[int]{
		Instructions: []ast.Node[int]{
			&ast.Assignment[int]{
				Target: ident("a", 0),
				Value:  num(1, 4, 5),
				Loc:    span(0, 5),
			},
			&ast.Assignment[int]{
				Target: ast.NewMemberAccess(span(9, 12), ident("b", 9), ident("c", 11)),
				Value:  str("x", 15, 18),
				Loc:    span(9, 18),
			},
		},
		Loc: span(0, 20),
	}, block))

	for _, text := range []string{"", "  \n\t\n"} {
		block := parse(t, text, parser.Options{})
		assert.Empty(t, block.Instructions)
		assert.Equal(t, span(0, len(text)), block.Loc)
	}

	block = parse(t, "x += 1", parser.Options{PlusAssignment: true})
	assert.Empty(t, cmp.Diff(&ast.CodeBlock[int]{
		Instructions: []ast.Node[int]{
			&ast.PlusAssignment[int]{
				Target: ident("x", 0),
				Value:  num(1, 5, 6),
				Loc:    span(0, 6),
			},
		},
		Loc: span(0, 6),
	}, block))
}

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		opts       parser.Options
		expr       bool

		offset   int
		expected []string
		message  string
	}{
		{
			name:     "unterminated",
			text:     "'abc",
			expr:     true,
			offset:   4,
			expected: []string{"`'`"},
			message:  "test.build:1:5: unexpected end-of-file, expected `'`",
		},
		{
			name:     "same line",
			text:     "a = b c = d",
			offset:   6,
			expected: []string{"`.`", "`(`", "`+`", "newline", "end-of-file"},
			message:  "test.build:1:7: unexpected `c`, expected `.`, `(`, `+`, newline, or end-of-file",
		},
		{
			name:     "plus assignment disabled",
			text:     "x += 1",
			offset:   2,
			expected: []string{"`.`", "`(`", "`=`"},
			message:  "test.build:1:3: unexpected `+`, expected `.`, `(`, or `=`",
		},
		{
			name:     "newline in string",
			text:     "x = 'a\nb'",
			offset:   6,
			expected: []string{"`'`"},
			message:  "test.build:1:7: unexpected newline, expected `'`",
		},
		{
			name:     "bad escape",
			text:     `x = 'a\qb'`,
			offset:   6,
			expected: []string{"`'`"},
		},
		{
			name:     "lone carriage return",
			text:     "a = 1\rb = 2",
			offset:   5,
			expected: []string{"`+`", "newline", "end-of-file"},
		},
		{
			name:     "missing value",
			text:     "x = ",
			offset:   4,
			expected: []string{"identifier", "string", "number", "array", "dictionary"},
			message:  "test.build:1:5: unexpected end-of-file, expected identifier, string, number, array, or dictionary",
		},
		{
			name:     "identifier with digit",
			text:     "1abc",
			expr:     true,
			offset:   1,
			expected: []string{"`+`", "end-of-file"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			file := source.NewFile("test.build", test.text)
			var err error
			if test.expr {
				_, err = parser.ParseExpr(file, test.opts)
			} else {
				_, err = parser.Parse(file, test.opts)
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, parser.ErrInvalidSource)

			var perr *parser.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, test.offset, perr.Offset)
			assert.Equal(t, test.expected, perr.Expected())
			if test.message != "" {
				assert.Equal(t, test.message, err.Error())
			}
		})
	}
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	_, err := parser.Parse(source.NewFile("meson.build", "a = b c = d\n"), parser.Options{})
	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, source.Location{Line: 1, Column: 7}, perr.Location())

	var r report.Report
	perr.Diagnose(&r)
	assert.Equal(t,
		"error: unexpected `c`, expected `.`, `(`, `+`, newline, or end-of-file\n"+
			"  --> meson.build:1:7\n"+
			"   |\n"+
			" 1 | a = b c = d\n"+
			"   |       ^ expected `.`, `(`, `+`, newline, or end-of-file\n"+
			"   = help: each instruction must be on its own line\n"+
			"\n"+
			"encountered 1 error\n",
		r.Render(report.Monochrome),
	)

	_, err = parser.Parse(source.NewFile("meson.build", "x = 'a\nb'\n"), parser.Options{})
	require.ErrorAs(t, err, &perr)
	r = nil
	perr.Diagnose(&r)
	assert.Contains(t, r.Render(report.Monochrome), "   = note: only strings delimited by `'''` may span lines\n")
}

func TestInvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := parser.Parse(source.NewFile("bad.build", "a = '\xff'"), parser.Options{})
	assert.ErrorIs(t, err, parser.ErrInvalidUTF8)
	assert.NotErrorIs(t, err, parser.ErrInvalidSource)
	assert.Contains(t, err.Error(), "offset 5")

	_, err = parser.ParseExpr(source.NewFile("bad.build", "\xc3"), parser.Options{})
	assert.ErrorIs(t, err, parser.ErrInvalidUTF8)
}

func TestConcurrent(t *testing.T) {
	t.Parallel()

	file := source.NewFile("meson.build", "project('x', 'c',\n  version: '1.0')\nexecutable('x', ['main.c'] + sources)\n")
	want := parse(t, file.Text(), parser.Options{})

	var group errgroup.Group
	for range 16 {
		group.Go(func() error {
			got, err := parser.Parse(file, parser.Options{})
			if err != nil {
				return err
			}
			if !ast.Equal[int](want, got) {
				return errors.New("trees differ")
			}
			return nil
		})
	}
	assert.NoError(t, group.Wait())
}

func TestResolveEmptyLists(t *testing.T) {
	t.Parallel()

	file := source.NewFile("meson.build", "f()")
	block, err := parser.Parse(file, parser.Options{})
	require.NoError(t, err)

	resolved, err := ast.ResolveFile(file, block, length.Bytes)
	require.NoError(t, err)

	at := func(start, end int) ast.Range[source.Location] {
		return ast.Range[source.Location]{
			Start: source.Location{Line: 1, Column: start},
			End:   source.Location{Line: 1, Column: end},
		}
	}
	want := &ast.CodeBlock[source.Location]{
		Instructions: []ast.Node[source.Location]{
			&ast.Function[source.Location]{
				Callee: &ast.Identifier[source.Location]{Name: "f", Loc: at(1, 2)},
				Args:   &ast.Arglist[source.Location]{Loc: at(3, 3)},
				Kwargs: &ast.Empty[source.Location]{Loc: at(3, 3)},
				Loc:    at(1, 4),
			},
		},
		Loc: at(1, 4),
	}
	assert.Empty(t, cmp.Diff(want, resolved))
	assert.True(t, ast.Equal[source.Location](want, resolved))

	// Mapping keeps empty lists nil, so the identity map is a no-op.
	same := ast.Map(ast.Node[int](block), func(offset int) int { return offset })
	assert.True(t, ast.Equal(ast.Node[int](block), same))
}
