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

// Identifier is a bare name, such as `project` or `meson`.
type Identifier[L any] struct {
	Name string
	Loc  Range[L]
}

// String is a string literal. Value holds the literal's contents with escapes
// already decoded.
type String[L any] struct {
	Value string
	Loc   Range[L]
}

// Number is a numeric literal.
//
// Integer and floating-point literals are both stored as a float64, so
// integers beyond 2^53 lose precision.
type Number[L any] struct {
	Value float64
	Loc   Range[L]
}

// Arglist is a sequence of positional arguments, as found in a call or an
// array literal.
type Arglist[L any] struct {
	Args []Node[L]
	Loc  Range[L]
}

// Array is an array literal: `[a, b]`.
type Array[L any] struct {
	Elems *Arglist[L]
	Loc   Range[L]
}

// KeyValue is a `key: value` pair.
type KeyValue[L any] struct {
	Key   *Identifier[L]
	Value Node[L]
	Loc   Range[L]
}

// KwargList is a sequence of keyword arguments, as found in a call or a
// dictionary literal.
type KwargList[L any] struct {
	Pairs []*KeyValue[L]
	Loc   Range[L]
}

// Dict is a dictionary literal: `{a: b}`.
type Dict[L any] struct {
	Entries *KwargList[L]
	Loc     Range[L]
}

// Addition is a chain of `+` operations, flattened: `a + b + c` holds three
// operands.
//
// Construct with [NewAddition].
type Addition[L any] struct {
	Operands []Node[L]
	Loc      Range[L]
}

// MemberAccess is a chain of `.` accesses, flattened: `a.b.c` holds three
// identifiers.
//
// Construct with [NewMemberAccess].
type MemberAccess[L any] struct {
	Path []*Identifier[L]
	Loc  Range[L]
}

// Function is a call expression.
//
// Callee is an [*Identifier] or a [*MemberAccess]. Kwargs is a [*KwargList],
// or an [*Empty] when the call has no keyword arguments.
type Function[L any] struct {
	Callee Node[L]
	Args   *Arglist[L]
	Kwargs Node[L]
	Loc    Range[L]
}

// Assignment is `target = value`.
type Assignment[L any] struct {
	Target Node[L]
	Value  Node[L]
	Loc    Range[L]
}

// PlusAssignment is `target += value`.
type PlusAssignment[L any] struct {
	Target Node[L]
	Value  Node[L]
	Loc    Range[L]
}

// Empty stands in for an optional sub-tree that is absent, so that consumers
// always have a concrete node to match on. Its range is empty.
type Empty[L any] struct {
	Loc Range[L]
}

// CodeBlock is a sequence of instructions, one per line. It is the root of a
// parsed file.
type CodeBlock[L any] struct {
	Instructions []Node[L]
	Loc          Range[L]
}

// NewAddition constructs an [Addition] from two or more operands.
func NewAddition[L any](loc Range[L], first, second Node[L], rest ...Node[L]) *Addition[L] {
	operands := make([]Node[L], 0, 2+len(rest))
	operands = append(operands, first, second)
	operands = append(operands, rest...)
	return &Addition[L]{Operands: operands, Loc: loc}
}

// NewMemberAccess constructs a [MemberAccess] from two or more identifiers.
func NewMemberAccess[L any](loc Range[L], first, second *Identifier[L], rest ...*Identifier[L]) *MemberAccess[L] {
	path := make([]*Identifier[L], 0, 2+len(rest))
	path = append(path, first, second)
	path = append(path, rest...)
	return &MemberAccess[L]{Path: path, Loc: loc}
}

func (n *Identifier[L]) Kind() Kind     { return KindIdentifier }
func (n *String[L]) Kind() Kind         { return KindString }
func (n *Number[L]) Kind() Kind         { return KindNumber }
func (n *Arglist[L]) Kind() Kind        { return KindArglist }
func (n *Array[L]) Kind() Kind          { return KindArray }
func (n *KeyValue[L]) Kind() Kind       { return KindKeyValue }
func (n *KwargList[L]) Kind() Kind      { return KindKwargList }
func (n *Dict[L]) Kind() Kind           { return KindDict }
func (n *Addition[L]) Kind() Kind       { return KindAddition }
func (n *MemberAccess[L]) Kind() Kind   { return KindMemberAccess }
func (n *Function[L]) Kind() Kind       { return KindFunction }
func (n *Assignment[L]) Kind() Kind     { return KindAssignment }
func (n *PlusAssignment[L]) Kind() Kind { return KindPlusAssignment }
func (n *Empty[L]) Kind() Kind          { return KindEmpty }
func (n *CodeBlock[L]) Kind() Kind      { return KindCodeBlock }

func (n *Identifier[L]) Span() Range[L]     { return n.Loc }
func (n *String[L]) Span() Range[L]         { return n.Loc }
func (n *Number[L]) Span() Range[L]         { return n.Loc }
func (n *Arglist[L]) Span() Range[L]        { return n.Loc }
func (n *Array[L]) Span() Range[L]          { return n.Loc }
func (n *KeyValue[L]) Span() Range[L]       { return n.Loc }
func (n *KwargList[L]) Span() Range[L]      { return n.Loc }
func (n *Dict[L]) Span() Range[L]           { return n.Loc }
func (n *Addition[L]) Span() Range[L]       { return n.Loc }
func (n *MemberAccess[L]) Span() Range[L]   { return n.Loc }
func (n *Function[L]) Span() Range[L]       { return n.Loc }
func (n *Assignment[L]) Span() Range[L]     { return n.Loc }
func (n *PlusAssignment[L]) Span() Range[L] { return n.Loc }
func (n *Empty[L]) Span() Range[L]          { return n.Loc }
func (n *CodeBlock[L]) Span() Range[L]      { return n.Loc }

func (*Identifier[L]) node()     {}
func (*String[L]) node()         {}
func (*Number[L]) node()         {}
func (*Arglist[L]) node()        {}
func (*Array[L]) node()          {}
func (*KeyValue[L]) node()       {}
func (*KwargList[L]) node()      {}
func (*Dict[L]) node()           {}
func (*Addition[L]) node()       {}
func (*MemberAccess[L]) node()   {}
func (*Function[L]) node()       {}
func (*Assignment[L]) node()     {}
func (*PlusAssignment[L]) node() {}
func (*Empty[L]) node()          {}
func (*CodeBlock[L]) node()      {}
