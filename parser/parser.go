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
	"strings"

	"github.com/bufbuild/mesonast/ast"
	"github.com/bufbuild/mesonast/internal/taxa"
	"github.com/bufbuild/mesonast/source"
)

// Parse parses an entire build file.
//
// The returned code block spans the whole file, including leading and
// trailing whitespace. On failure, the returned error is either an [*Error]
// or wraps [ErrInvalidUTF8].
func Parse(file *source.File, opts Options) (*ast.CodeBlock[int], error) {
	if err := checkUTF8(file); err != nil {
		return nil, err
	}

	p := newParser(file, opts)
	block, end := p.codeBlock(0)
	if end = p.skip(end); end < len(p.text) {
		p.expect(end, taxa.EOF)
		return nil, p.error()
	}
	block.Loc = ast.Range[int]{Start: 0, End: len(p.text)}
	return block, nil
}

// ParseExpr parses a file consisting of a single value, optionally surrounded
// by whitespace.
func ParseExpr(file *source.File, opts Options) (ast.Node[int], error) {
	if err := checkUTF8(file); err != nil {
		return nil, err
	}

	p := newParser(file, opts)
	v, end, ok := p.value(0)
	if !ok {
		return nil, p.error()
	}
	if end = p.skip(end); end < len(p.text) {
		p.expect(end, taxa.EOF)
		return nil, p.error()
	}
	return v, nil
}

// parser holds the state of a single parse. It is not safe for concurrent
// use, but separate parsers share nothing.
//
// Every rule takes the offset to start at and returns the offset just past
// what it matched; on failure, it returns the offset it was given. Rules skip
// whitespace before each token, so returned offsets never include trailing
// whitespace.
type parser struct {
	Options
	file *source.File
	text string

	// The furthest offset at which a token was expected, and every production
	// that was expected there.
	furthest int
	expected taxa.Set

	// Memoized results for the rules most frequently retried at the same
	// offset, keyed by the offset the rule was invoked at.
	idents  map[int]memo[*ast.Identifier[int]]
	members map[int]memo[*ast.MemberAccess[int]]
}

type memo[T any] struct {
	node T
	end  int
	ok   bool
}

func newParser(file *source.File, opts Options) *parser {
	return &parser{
		Options: opts,
		file:    file,
		text:    file.Text(),
		idents:  make(map[int]memo[*ast.Identifier[int]]),
		members: make(map[int]memo[*ast.MemberAccess[int]]),
	}
}

func (p *parser) error() *Error {
	return &Error{File: p.file, Offset: p.furthest, expected: p.expected}
}

// expect records that one of what was expected at offset.
func (p *parser) expect(offset int, what ...taxa.Noun) {
	switch {
	case offset > p.furthest:
		p.furthest = offset
		p.expected = taxa.NewSet(what...)
	case offset == p.furthest:
		p.expected = p.expected.With(what...)
	}
}

// skip returns the first offset at or after pos that is not whitespace.
//
// A lone \r is not whitespace.
func (p *parser) skip(pos int) int {
	for pos < len(p.text) {
		switch p.text[pos] {
		case ' ', '\t', '\n':
			pos++
		case '\r':
			if !strings.HasPrefix(p.text[pos:], "\r\n") {
				return pos
			}
			pos += 2
		default:
			return pos
		}
	}
	return pos
}

// newlines skips whitespace, which must contain at least one line ending.
func (p *parser) newlines(pos int) (int, bool) {
	end := p.skip(pos)
	if !strings.Contains(p.text[pos:end], "\n") {
		p.expect(end, taxa.Newline)
		return pos, false
	}
	return end, true
}

// punct matches the literal tok after any whitespace, returning its range.
func (p *parser) punct(pos int, tok string, what taxa.Noun) (start, end int, ok bool) {
	start = p.skip(pos)
	if !strings.HasPrefix(p.text[start:], tok) {
		p.expect(start, what)
		return pos, pos, false
	}
	return start, start + len(tok), true
}

// codeBlock parses a sequence of line-separated instructions. It never
// fails; an empty sequence is a valid code block.
func (p *parser) codeBlock(pos int) (*ast.CodeBlock[int], int) {
	block := new(ast.CodeBlock[int])
	end := pos
	for {
		next := end
		if len(block.Instructions) > 0 {
			var ok bool
			if next, ok = p.newlines(end); !ok {
				break
			}
		}
		instr, e, ok := p.instruction(next)
		if !ok {
			break
		}
		block.Instructions = append(block.Instructions, instr)
		end = e
	}
	block.Loc = ast.Range[int]{Start: pos, End: end}
	return block, end
}

func (p *parser) instruction(pos int) (ast.Node[int], int, bool) {
	if n, end, ok := p.call(pos); ok {
		return n, end, true
	}
	if n, end, ok := p.assignment(pos, "=", taxa.Equals); ok {
		return n, end, true
	}
	if p.PlusAssignment {
		if n, end, ok := p.assignment(pos, "+=", taxa.PlusEquals); ok {
			return n, end, true
		}
	}
	return nil, pos, false
}

// assignment parses `target op value`, where op is either = or +=.
func (p *parser) assignment(pos int, op string, what taxa.Noun) (ast.Node[int], int, bool) {
	target, end, ok := p.lvalue(pos)
	if !ok {
		return nil, pos, false
	}
	if _, end, ok = p.punct(end, op, what); !ok {
		return nil, pos, false
	}
	value, end, ok := p.value(end)
	if !ok {
		return nil, pos, false
	}

	loc := ast.Range[int]{Start: target.Span().Start, End: end}
	if what == taxa.PlusEquals {
		return &ast.PlusAssignment[int]{Target: target, Value: value, Loc: loc}, end, true
	}
	return &ast.Assignment[int]{Target: target, Value: value, Loc: loc}, end, true
}

// lvalue parses a member access or, failing that, an identifier.
func (p *parser) lvalue(pos int) (ast.Node[int], int, bool) {
	if m, end, ok := p.memberAccess(pos); ok {
		return m, end, true
	}
	if id, end, ok := p.ident(pos); ok {
		return id, end, true
	}
	return nil, pos, false
}

// call parses a function call, such as `project('foo', version: '1.0')`.
func (p *parser) call(pos int) (*ast.Function[int], int, bool) {
	callee, end, ok := p.lvalue(pos)
	if !ok {
		return nil, pos, false
	}
	if _, end, ok = p.punct(end, "(", taxa.LParen); !ok {
		return nil, pos, false
	}

	args, end := p.arglist(end)

	var kwargs ast.Node[int]
	if len(args.Args) > 0 {
		if _, comma, ok := p.punct(end, ",", taxa.Comma); ok {
			kv, e := p.kwargList(comma)
			end = e
			if len(kv.Pairs) > 0 {
				kwargs = kv
				_, end, _ = p.punct(end, ",", taxa.Comma)
			}
		}
	} else {
		kv, e := p.kwargList(end)
		if len(kv.Pairs) > 0 {
			kwargs, end = kv, e
			_, end, _ = p.punct(end, ",", taxa.Comma)
		}
	}

	rparen, end, ok := p.punct(end, ")", taxa.RParen)
	if !ok {
		return nil, pos, false
	}
	if kwargs == nil {
		kwargs = &ast.Empty[int]{Loc: ast.Range[int]{Start: rparen, End: rparen}}
	}

	return &ast.Function[int]{
		Callee: callee,
		Args:   args,
		Kwargs: kwargs,
		Loc:    ast.Range[int]{Start: callee.Span().Start, End: end},
	}, end, true
}

// arglist parses comma-separated positional arguments. It never fails.
//
// An argument followed by a colon is the key of a keyword argument, so it
// ends the list.
func (p *parser) arglist(pos int) (*ast.Arglist[int], int) {
	args, end, _ := delimited[ast.Node[int]]{
		p:     p,
		delim: ",", what: taxa.Comma,
		parse: p.arg,
	}.run(pos)

	return &ast.Arglist[int]{Args: args, Loc: listRange(p, pos, end, args)}, end
}

func (p *parser) arg(pos int) (ast.Node[int], int, bool) {
	v, end, ok := p.value(pos)
	if !ok {
		return nil, pos, false
	}
	if next := p.skip(end); next < len(p.text) && p.text[next] == ':' {
		return nil, pos, false
	}
	return v, end, true
}

// kwargList parses comma-separated key-value pairs. It never fails.
func (p *parser) kwargList(pos int) (*ast.KwargList[int], int) {
	pairs, end, _ := delimited[*ast.KeyValue[int]]{
		p:     p,
		delim: ",", what: taxa.Comma,
		parse: p.keyValue,
	}.run(pos)

	return &ast.KwargList[int]{Pairs: pairs, Loc: listRange(p, pos, end, pairs)}, end
}

func (p *parser) keyValue(pos int) (*ast.KeyValue[int], int, bool) {
	if start := p.skip(pos); start == len(p.text) || !isIdentStart(p.text[start]) {
		p.expect(start, taxa.KeyValue)
		return nil, pos, false
	}

	key, end, ok := p.ident(pos)
	if !ok {
		return nil, pos, false
	}
	if _, end, ok = p.punct(end, ":", taxa.Colon); !ok {
		return nil, pos, false
	}
	value, end, ok := p.value(end)
	if !ok {
		return nil, pos, false
	}

	return &ast.KeyValue[int]{
		Key:   key,
		Value: value,
		Loc:   ast.Range[int]{Start: key.Loc.Start, End: end},
	}, end, true
}

// listRange computes the range of a possibly-empty list parsed starting at
// pos. An empty list occupies the empty range where it would have started.
func listRange[T ast.Node[int]](p *parser, pos, end int, elems []T) ast.Range[int] {
	if len(elems) == 0 {
		start := p.skip(pos)
		return ast.Range[int]{Start: start, End: start}
	}
	return ast.Range[int]{Start: elems[0].Span().Start, End: end}
}
