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

import "fmt"

// Children returns the direct children of n, in source order.
func Children[L any](n Node[L]) []Node[L] {
	switch n := n.(type) {
	case *Identifier[L], *String[L], *Number[L], *Empty[L]:
		return nil
	case *Arglist[L]:
		return n.Args
	case *Array[L]:
		return []Node[L]{n.Elems}
	case *KeyValue[L]:
		return []Node[L]{n.Key, n.Value}
	case *KwargList[L]:
		children := make([]Node[L], len(n.Pairs))
		for i, kv := range n.Pairs {
			children[i] = kv
		}
		return children
	case *Dict[L]:
		return []Node[L]{n.Entries}
	case *Addition[L]:
		return n.Operands
	case *MemberAccess[L]:
		children := make([]Node[L], len(n.Path))
		for i, ident := range n.Path {
			children[i] = ident
		}
		return children
	case *Function[L]:
		return []Node[L]{n.Callee, n.Args, n.Kwargs}
	case *Assignment[L]:
		return []Node[L]{n.Target, n.Value}
	case *PlusAssignment[L]:
		return []Node[L]{n.Target, n.Value}
	case *CodeBlock[L]:
		return n.Instructions
	}
	panic(fmt.Sprintf("ast: unknown node type %T", n))
}

// Inspect traverses the tree rooted at n in depth-first pre-order, visiting
// children from left to right. If visit returns false, the children of the
// node it was called with are skipped.
func Inspect[L any](n Node[L], visit func(Node[L]) bool) {
	if !visit(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, visit)
	}
}

// Map rebuilds the tree rooted at n with every position passed through f.
//
// The result has exactly the shape of n. f is called on ranges in the order
// [Inspect] would visit their nodes, start before end; n is not modified.
func Map[L, M any](n Node[L], f func(L) M) Node[M] {
	switch n := n.(type) {
	case *Identifier[L]:
		return mapIdent(n, f)
	case *String[L]:
		return &String[M]{Value: n.Value, Loc: mapRange(n.Loc, f)}
	case *Number[L]:
		return &Number[M]{Value: n.Value, Loc: mapRange(n.Loc, f)}
	case *Arglist[L]:
		return mapArglist(n, f)
	case *Array[L]:
		loc := mapRange(n.Loc, f)
		return &Array[M]{Elems: mapArglist(n.Elems, f), Loc: loc}
	case *KeyValue[L]:
		return mapKeyValue(n, f)
	case *KwargList[L]:
		return mapKwargList(n, f)
	case *Dict[L]:
		loc := mapRange(n.Loc, f)
		return &Dict[M]{Entries: mapKwargList(n.Entries, f), Loc: loc}
	case *Addition[L]:
		loc := mapRange(n.Loc, f)
		return &Addition[M]{Operands: mapNodes(n.Operands, f), Loc: loc}
	case *MemberAccess[L]:
		loc := mapRange(n.Loc, f)
		var path []*Identifier[M]
		if n.Path != nil {
			path = make([]*Identifier[M], len(n.Path))
			for i, ident := range n.Path {
				path[i] = mapIdent(ident, f)
			}
		}
		return &MemberAccess[M]{Path: path, Loc: loc}
	case *Function[L]:
		loc := mapRange(n.Loc, f)
		callee := Map(n.Callee, f)
		args := mapArglist(n.Args, f)
		return &Function[M]{Callee: callee, Args: args, Kwargs: Map(n.Kwargs, f), Loc: loc}
	case *Assignment[L]:
		loc := mapRange(n.Loc, f)
		target := Map(n.Target, f)
		return &Assignment[M]{Target: target, Value: Map(n.Value, f), Loc: loc}
	case *PlusAssignment[L]:
		loc := mapRange(n.Loc, f)
		target := Map(n.Target, f)
		return &PlusAssignment[M]{Target: target, Value: Map(n.Value, f), Loc: loc}
	case *Empty[L]:
		return &Empty[M]{Loc: mapRange(n.Loc, f)}
	case *CodeBlock[L]:
		loc := mapRange(n.Loc, f)
		return &CodeBlock[M]{Instructions: mapNodes(n.Instructions, f), Loc: loc}
	}
	panic(fmt.Sprintf("ast: unknown node type %T", n))
}

func mapRange[L, M any](r Range[L], f func(L) M) Range[M] {
	start := f(r.Start)
	return Range[M]{Start: start, End: f(r.End)}
}

// mapNodes maps each of nodes, keeping a nil slice nil.
func mapNodes[L, M any](nodes []Node[L], f func(L) M) []Node[M] {
	if nodes == nil {
		return nil
	}
	out := make([]Node[M], len(nodes))
	for i, n := range nodes {
		out[i] = Map(n, f)
	}
	return out
}

func mapIdent[L, M any](n *Identifier[L], f func(L) M) *Identifier[M] {
	return &Identifier[M]{Name: n.Name, Loc: mapRange(n.Loc, f)}
}

func mapArglist[L, M any](n *Arglist[L], f func(L) M) *Arglist[M] {
	loc := mapRange(n.Loc, f)
	return &Arglist[M]{Args: mapNodes(n.Args, f), Loc: loc}
}

func mapKeyValue[L, M any](n *KeyValue[L], f func(L) M) *KeyValue[M] {
	loc := mapRange(n.Loc, f)
	key := mapIdent(n.Key, f)
	return &KeyValue[M]{Key: key, Value: Map(n.Value, f), Loc: loc}
}

func mapKwargList[L, M any](n *KwargList[L], f func(L) M) *KwargList[M] {
	loc := mapRange(n.Loc, f)
	var pairs []*KeyValue[M]
	if n.Pairs != nil {
		pairs = make([]*KeyValue[M], len(n.Pairs))
		for i, kv := range n.Pairs {
			pairs[i] = mapKeyValue(kv, f)
		}
	}
	return &KwargList[M]{Pairs: pairs, Loc: loc}
}
