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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/mesonast/ast"
	"github.com/bufbuild/mesonast/internal/taxa"
)

// ident parses an identifier.
func (p *parser) ident(pos int) (*ast.Identifier[int], int, bool) {
	if m, ok := p.idents[pos]; ok {
		return m.node, m.end, m.ok
	}

	m := memo[*ast.Identifier[int]]{end: pos}
	start := p.skip(pos)
	end := start
	if end < len(p.text) && isIdentStart(p.text[end]) {
		end++
		for end < len(p.text) && isIdentPart(p.text[end]) {
			end++
		}
	}

	if end > start {
		m = memo[*ast.Identifier[int]]{
			node: &ast.Identifier[int]{
				Name: strings.Clone(p.text[start:end]),
				Loc:  ast.Range[int]{Start: start, End: end},
			},
			end: end,
			ok:  true,
		}
	} else {
		p.expect(start, taxa.Ident)
	}

	p.idents[pos] = m
	return m.node, m.end, m.ok
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isOctDigit(c byte) bool { return c >= '0' && c <= '7' }
func isHexDigit(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }

// str parses a multiline string or, failing that, an inline string.
func (p *parser) str(pos int) (*ast.String[int], int, bool) {
	start := p.skip(pos)
	if !strings.HasPrefix(p.text[start:], "'") {
		p.expect(start, taxa.String)
		return nil, pos, false
	}

	if n, end, ok := p.quoted(start, "'''", taxa.TripleQuote); ok {
		return n, end, true
	}
	if n, end, ok := p.quoted(start, "'", taxa.Quote); ok {
		return n, end, true
	}
	return nil, pos, false
}

// quoted parses a string delimited by quote, starting exactly at start.
//
// Only strings delimited by a single quote are forbidden from containing line
// endings.
func (p *parser) quoted(start int, quote string, what taxa.Noun) (*ast.String[int], int, bool) {
	if !strings.HasPrefix(p.text[start:], quote) {
		return nil, start, false
	}
	multiline := len(quote) > 1

	var buf strings.Builder
	i := start + len(quote)
	for {
		rest := p.text[i:]
		switch {
		case strings.HasPrefix(rest, quote):
			end := i + len(quote)
			return &ast.String[int]{
				Value: buf.String(),
				Loc:   ast.Range[int]{Start: start, End: end},
			}, end, true

		case rest == "",
			!multiline && (rest[0] == '\n' || rest[0] == '\r'):
			p.expect(i, what)
			return nil, start, false

		case rest[0] == '\\':
			esc, ok := unescape(rest)
			if !ok {
				p.expect(i, what)
				return nil, start, false
			}
			buf.WriteByte(esc)
			i += 2

		default:
			_, n := utf8.DecodeRuneInString(rest)
			buf.WriteString(rest[:n])
			i += n
		}
	}
}

// unescape decodes the escape sequence at the start of text.
func unescape(text string) (byte, bool) {
	if len(text) < 2 {
		return 0, false
	}
	switch text[1] {
	case 't':
		return '\t', true
	case 'n':
		return '\n', true
	case '\\':
		return '\\', true
	default:
		return 0, false
	}
}

// number parses a number literal: a float, an octal, hexadecimal, or decimal
// integer, each with an optional leading minus sign.
//
// A literal whose value does not fit in 64 bits does not match.
func (p *parser) number(pos int) (*ast.Number[int], int, bool) {
	start := p.skip(pos)
	digits := start
	if digits < len(p.text) && p.text[digits] == '-' {
		digits++
	}
	neg := digits > start
	whole := p.scan(digits, isDigit)

	value, end, ok := func() (float64, int, bool) {
		if whole > digits && strings.HasPrefix(p.text[whole:], ".") && !strings.HasPrefix(p.text[whole:], "..") {
			if frac := p.scan(whole+1, isDigit); frac > whole+1 {
				v, err := strconv.ParseFloat(p.text[start:frac], 64)
				if err == nil {
					return v, frac, true
				}
			}
		}
		if v, end, ok := p.radix(digits, "0o", 8, isOctDigit, neg); ok {
			return v, end, true
		}
		if v, end, ok := p.radix(digits, "0x", 16, isHexDigit, neg); ok {
			return v, end, true
		}
		if whole > digits {
			if v, err := strconv.ParseInt(p.text[start:whole], 10, 64); err == nil {
				return float64(v), whole, true
			}
		}
		return 0, 0, false
	}()
	if !ok {
		p.expect(start, taxa.Number)
		return nil, pos, false
	}

	return &ast.Number[int]{
		Value: value,
		Loc:   ast.Range[int]{Start: start, End: end},
	}, end, true
}

// radix parses prefix followed by digits in the given base. The sign is applied
// after parsing.
func (p *parser) radix(pos int, prefix string, base int, digit func(byte) bool, neg bool) (float64, int, bool) {
	if !strings.HasPrefix(p.text[pos:], prefix) {
		return 0, 0, false
	}
	start := pos + len(prefix)
	end := p.scan(start, digit)
	if end == start {
		return 0, 0, false
	}

	v, err := strconv.ParseInt(p.text[start:end], base, 64)
	if err != nil {
		return 0, 0, false
	}
	if neg {
		v = -v
	}
	return float64(v), end, true
}

// scan returns the end of the run of bytes matching accept starting at pos.
func (p *parser) scan(pos int, accept func(byte) bool) int {
	for pos < len(p.text) && accept(p.text[pos]) {
		pos++
	}
	return pos
}
