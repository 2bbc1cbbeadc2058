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

package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/mesonast/ast"
	"github.com/bufbuild/mesonast/source"
	"github.com/bufbuild/mesonast/source/length"
)

func span(start, end int) ast.Range[int] {
	return ast.Range[int]{Start: start, End: end}
}

func ident(name string, start int) *ast.Identifier[int] {
	return &ast.Identifier[int]{Name: name, Loc: span(start, start+len(name))}
}

// call builds the tree for "f(a, b: 'c')".
func call() *ast.Function[int] {
	return &ast.Function[int]{
		Callee: ident("f", 0),
		Args: &ast.Arglist[int]{
			Args: []ast.Node[int]{ident("a", 2)},
			Loc:  span(2, 3),
		},
		Kwargs: &ast.KwargList[int]{
			Pairs: []*ast.KeyValue[int]{{
				Key:   ident("b", 5),
				Value: &ast.String[int]{Value: "c", Loc: span(8, 11)},
				Loc:   span(5, 11),
			}},
			Loc: span(5, 11),
		},
		Loc: span(0, 12),
	}
}

func TestMapOrder(t *testing.T) {
	t.Parallel()

	var visited []int
	mapped := ast.Map(ast.Node[int](call()), func(offset int) int64 {
		visited = append(visited, offset)
		return int64(offset) * 10
	})

	assert.Equal(t, []int{0, 12, 0, 1, 2, 3, 2, 3, 5, 11, 5, 11, 5, 6, 8, 11}, visited)

	fn, ok := mapped.(*ast.Function[int64])
	require.True(t, ok)
	assert.Equal(t, ast.Range[int64]{Start: 0, End: 120}, fn.Loc)
	assert.Equal(t, ast.Range[int64]{Start: 80, End: 110}, fn.Kwargs.(*ast.KwargList[int64]).Pairs[0].Value.Span())
}

func TestMapIdentity(t *testing.T) {
	t.Parallel()

	tree := &ast.CodeBlock[int]{
		Instructions: []ast.Node[int]{
			call(),
			&ast.Assignment[int]{
				Target: ident("x", 13),
				Value: ast.NewAddition(span(17, 32),
					ast.Node[int](&ast.Number[int]{Value: 1, Loc: span(17, 18)}),
					&ast.Array[int]{
						Elems: &ast.Arglist[int]{Loc: span(22, 22)},
						Loc:   span(21, 23),
					},
					&ast.Dict[int]{
						Entries: &ast.KwargList[int]{Loc: span(27, 27)},
						Loc:     span(26, 28),
					},
					ast.NewMemberAccess(span(31, 32), ident("m", 31), ident("n", 33)),
				),
				Loc: span(13, 32),
			},
			&ast.PlusAssignment[int]{
				Target: ident("y", 35),
				Value:  &ast.Empty[int]{Loc: span(40, 40)},
				Loc:    span(35, 40),
			},
		},
		Loc: span(0, 40),
	}

	mapped := ast.Map(ast.Node[int](tree), func(offset int) int { return offset })
	if diff := cmp.Diff(ast.Node[int](tree), mapped); diff != "" {
		t.Errorf("Map changed the tree (-want +got):\n%s", diff)
	}
	assert.True(t, ast.Equal(ast.Node[int](tree), mapped))
	assert.NotSame(t, tree, mapped)

	moved := ast.Map(ast.Node[int](tree), func(offset int) int { return offset + 1 })
	assert.False(t, ast.Equal(ast.Node[int](tree), moved))
}

func TestInspect(t *testing.T) {
	t.Parallel()

	var kinds []ast.Kind
	ast.Inspect(ast.Node[int](call()), func(n ast.Node[int]) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != ast.KindKwargList
	})
	assert.Equal(t, []ast.Kind{
		ast.KindFunction,
		ast.KindIdentifier,
		ast.KindArglist,
		ast.KindIdentifier,
		ast.KindKwargList,
	}, kinds)
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	add := ast.NewAddition(span(0, 9), ast.Node[int](ident("a", 0)), ident("b", 4), ident("c", 8))
	assert.Len(t, add.Operands, 3)
	assert.Equal(t, "c", add.Operands[2].(*ast.Identifier[int]).Name)

	access := ast.NewMemberAccess(span(0, 3), ident("a", 0), ident("b", 2))
	assert.Len(t, access.Path, 2)
	assert.Equal(t, ast.KindMemberAccess, access.Kind())
	assert.Equal(t, "MemberAccess", access.Kind().String())
	assert.Equal(t, "Kind(99)", ast.Kind(99).String())
}

func TestResolve(t *testing.T) {
	t.Parallel()

	file := source.NewFile("meson.build", "f(a,\n  b: 'c')")
	tree := &ast.Function[int]{
		Callee: ident("f", 0),
		Args: &ast.Arglist[int]{
			Args: []ast.Node[int]{ident("a", 2)},
			Loc:  span(2, 3),
		},
		Kwargs: &ast.KwargList[int]{
			Pairs: []*ast.KeyValue[int]{{
				Key:   ident("b", 7),
				Value: &ast.String[int]{Value: "c", Loc: span(10, 13)},
				Loc:   span(7, 13),
			}},
			Loc: span(7, 13),
		},
		Loc: span(0, 14),
	}

	resolved, err := ast.Resolve(file, tree, length.Bytes)
	require.NoError(t, err)

	loc := func(line, col int) source.Location { return source.Location{Line: line, Column: col} }
	fn := resolved.(*ast.Function[source.Location])
	assert.Equal(t, ast.Range[source.Location]{Start: loc(1, 1), End: loc(2, 10)}, fn.Loc)
	assert.Equal(t, ast.Range[source.Location]{Start: loc(1, 3), End: loc(1, 4)}, fn.Args.Loc)
	kv := fn.Kwargs.(*ast.KwargList[source.Location]).Pairs[0]
	assert.Equal(t, ast.Range[source.Location]{Start: loc(2, 3), End: loc(2, 4)}, kv.Key.Loc)
	assert.Equal(t, ast.Range[source.Location]{Start: loc(2, 6), End: loc(2, 9)}, kv.Value.Span())

	// The offset tree is still usable.
	assert.Equal(t, span(0, 14), tree.Loc)
}

func TestResolveOutOfRange(t *testing.T) {
	t.Parallel()

	file := source.NewFile("short", "ab")
	_, err := ast.Resolve(file, ident("abc", 0), length.Bytes)
	require.ErrorIs(t, err, source.ErrOffsetOutOfRange)

	block := &ast.CodeBlock[int]{Loc: span(0, 2)}
	resolved, err := ast.ResolveFile(file, block, length.Runes)
	require.NoError(t, err)
	assert.Empty(t, resolved.Instructions)
	assert.Equal(t, source.Location{Line: 1, Column: 3}, resolved.Loc.End)
}
