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
	"github.com/bufbuild/mesonast/ast"
	"github.com/bufbuild/mesonast/internal/taxa"
)

// value parses a raw value, or an addition of two or more of them.
//
// This is the same as trying an addition first and falling back to a single
// raw value, except that the first operand is only parsed once.
func (p *parser) value(pos int) (ast.Node[int], int, bool) {
	operands, end, ok := delimited[ast.Node[int]]{
		p:     p,
		delim: "+", what: taxa.Plus,
		min:   1,
		parse: p.rawValue,
	}.run(pos)
	if !ok {
		return nil, pos, false
	}
	if len(operands) == 1 {
		return operands[0], end, true
	}

	loc := ast.Range[int]{Start: operands[0].Span().Start, End: end}
	return ast.NewAddition(loc, operands[0], operands[1], operands[2:]...), end, true
}

// rawValue parses any value other than an addition.
//
// Calls and member accesses begin with an identifier, so they must be tried
// before a bare identifier.
func (p *parser) rawValue(pos int) (ast.Node[int], int, bool) {
	if n, end, ok := p.str(pos); ok {
		return n, end, true
	}
	if n, end, ok := p.call(pos); ok {
		return n, end, true
	}
	if n, end, ok := p.memberAccess(pos); ok {
		return n, end, true
	}
	if n, end, ok := p.ident(pos); ok {
		return n, end, true
	}
	if n, end, ok := p.array(pos); ok {
		return n, end, true
	}
	if n, end, ok := p.dict(pos); ok {
		return n, end, true
	}
	if n, end, ok := p.number(pos); ok {
		return n, end, true
	}
	return nil, pos, false
}

// memberAccess parses two or more identifiers separated by periods.
func (p *parser) memberAccess(pos int) (*ast.MemberAccess[int], int, bool) {
	if m, ok := p.members[pos]; ok {
		return m.node, m.end, m.ok
	}

	m := memo[*ast.MemberAccess[int]]{end: pos}
	path, end, ok := delimited[*ast.Identifier[int]]{
		p:     p,
		delim: ".", what: taxa.Period,
		min:   2,
		parse: p.ident,
	}.run(pos)
	if ok {
		loc := ast.Range[int]{Start: path[0].Loc.Start, End: end}
		m = memo[*ast.MemberAccess[int]]{
			node: ast.NewMemberAccess(loc, path[0], path[1], path[2:]...),
			end:  end,
			ok:   true,
		}
	}

	p.members[pos] = m
	return m.node, m.end, m.ok
}

// array parses `[` positional arguments `]`.
func (p *parser) array(pos int) (*ast.Array[int], int, bool) {
	start, end, ok := p.punct(pos, "[", taxa.Array)
	if !ok {
		return nil, pos, false
	}

	elems, end := p.arglist(end)
	if len(elems.Args) > 0 {
		_, end, _ = p.punct(end, ",", taxa.Comma)
	}

	if _, end, ok = p.punct(end, "]", taxa.RBracket); !ok {
		return nil, pos, false
	}
	return &ast.Array[int]{Elems: elems, Loc: ast.Range[int]{Start: start, End: end}}, end, true
}

// dict parses `{` key-value pairs `}`.
func (p *parser) dict(pos int) (*ast.Dict[int], int, bool) {
	start, end, ok := p.punct(pos, "{", taxa.Dict)
	if !ok {
		return nil, pos, false
	}

	entries, end := p.kwargList(end)
	if len(entries.Pairs) > 0 {
		_, end, _ = p.punct(end, ",", taxa.Comma)
	}

	if _, end, ok = p.punct(end, "}", taxa.RBrace); !ok {
		return nil, pos, false
	}
	return &ast.Dict[int]{Entries: entries, Loc: ast.Range[int]{Start: start, End: end}}, end, true
}
