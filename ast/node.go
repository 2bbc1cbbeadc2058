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

package ast

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Range is a pair of positions delimiting a node in its source.
//
// With L = int these are byte offsets, and End is exclusive.
type Range[L any] struct {
	Start, End L
}

// Node is a node in the syntax tree.
//
// This interface is sealed; user code should not attempt to implement it.
type Node[L any] interface {
	// Kind returns which kind of node this is.
	Kind() Kind
	// Span returns the source range this node covers, excluding any
	// surrounding whitespace.
	Span() Range[L]

	node()
}

// Kind identifies the concrete type of a [Node].
type Kind int8

const (
	KindUnknown Kind = iota
	KindIdentifier
	KindString
	KindNumber
	KindArglist
	KindArray
	KindKeyValue
	KindKwargList
	KindDict
	KindAddition
	KindMemberAccess
	KindFunction
	KindAssignment
	KindPlusAssignment
	KindEmpty
	KindCodeBlock
)

var kindNames = [...]string{
	KindUnknown:        "Unknown",
	KindIdentifier:     "Identifier",
	KindString:         "String",
	KindNumber:         "Number",
	KindArglist:        "Arglist",
	KindArray:          "Array",
	KindKeyValue:       "KeyValue",
	KindKwargList:      "KwargList",
	KindDict:           "Dict",
	KindAddition:       "Addition",
	KindMemberAccess:   "MemberAccess",
	KindFunction:       "Function",
	KindAssignment:     "Assignment",
	KindPlusAssignment: "PlusAssignment",
	KindEmpty:          "Empty",
	KindCodeBlock:      "CodeBlock",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Equal reports whether two trees have the same shape, payloads, and ranges.
func Equal[L any](a, b Node[L]) bool {
	return cmp.Equal(a, b)
}
