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

import "github.com/bufbuild/mesonast/internal/taxa"

// delimited is a mechanism for parsing a punctuation-delimited list.
type delimited[T any] struct {
	p *parser

	// The delimiter, and the production it is reported as when missing.
	delim string
	what  taxa.Noun

	// The minimum number of elements for the list to match.
	min int

	// A function for parsing elements as they come.
	parse func(pos int) (T, int, bool)
}

// run parses as many delimited elements as possible starting at pos.
//
// A delimiter that is not followed by an element is not consumed, so the
// returned offset is always the end of the last element.
func (d delimited[T]) run(pos int) ([]T, int, bool) {
	var elems []T
	end := pos
	for {
		next := end
		if len(elems) > 0 {
			var ok bool
			if _, next, ok = d.p.punct(end, d.delim, d.what); !ok {
				break
			}
		}

		v, e, ok := d.parse(next)
		if !ok {
			break
		}
		elems = append(elems, v)
		end = e
	}

	if len(elems) < d.min {
		return nil, pos, false
	}
	return elems, end, true
}
