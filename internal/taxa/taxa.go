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

// package taxa (plural of taxon, an element of a taxonomy) provides support for
// classifying syntax productions of the build language for use in the parser
// and in diagnostics.
package taxa

// Noun is a syntactic element within the grammar that can be referred to
// within a diagnostic.
type Noun int

const (
	Unknown Noun = iota

	Ident
	String
	Number
	Array
	Dict
	KeyValue

	Period
	LParen
	Plus
	Comma
	Colon
	Equals
	PlusEquals

	RParen
	RBracket
	RBrace
	Quote
	TripleQuote

	Newline
	EOF

	// total is the total number of known [Noun] values.
	total int = iota
)

// String implements [fmt.Stringer].
func (s Noun) String() string {
	if s < 0 || int(s) >= total {
		return names[Unknown]
	}
	return names[s]
}

// AsSet returns a singleton set containing this Noun.
func (s Noun) AsSet() Set {
	return NewSet(s)
}
