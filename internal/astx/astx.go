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

// Package astx converts syntax trees into plain structures for printing as
// YAML or JSON.
package astx

import (
	"github.com/bufbuild/mesonast/ast"
)

// Node is an [ast.Node] laid out for serialization.
//
// Only the fields that apply to Kind are set.
type Node[L any] struct {
	Kind  string `yaml:"kind" json:"kind"`
	Start L      `yaml:"start,flow" json:"start"`
	End   L      `yaml:"end,flow" json:"end"`

	Name string   `yaml:"name,omitempty" json:"name,omitempty"`
	Str  *string  `yaml:"string,omitempty" json:"string,omitempty"`
	Num  *float64 `yaml:"number,omitempty" json:"number,omitempty"`

	Callee *Node[L] `yaml:"callee,omitempty" json:"callee,omitempty"`
	Target *Node[L] `yaml:"target,omitempty" json:"target,omitempty"`
	Key    *Node[L] `yaml:"key,omitempty" json:"key,omitempty"`
	Value  *Node[L] `yaml:"value,omitempty" json:"value,omitempty"`
	Args   *Node[L] `yaml:"args,omitempty" json:"args,omitempty"`
	Kwargs *Node[L] `yaml:"kwargs,omitempty" json:"kwargs,omitempty"`

	Items []*Node[L] `yaml:"items,omitempty" json:"items,omitempty"`
}

// Document is the printed form of one parsed file.
type Document[L any] struct {
	File string   `yaml:"file" json:"file"`
	Tree *Node[L] `yaml:"tree" json:"tree"`
}

// Encode converts a tree into its printable form.
func Encode[L any](n ast.Node[L]) *Node[L] {
	if n == nil {
		return nil
	}

	span := n.Span()
	out := &Node[L]{Kind: n.Kind().String(), Start: span.Start, End: span.End}
	switch n := n.(type) {
	case *ast.Identifier[L]:
		out.Name = n.Name
	case *ast.String[L]:
		v := n.Value
		out.Str = &v
	case *ast.Number[L]:
		v := n.Value
		out.Num = &v
	case *ast.Arglist[L]:
		out.Items = encodeAll[L](n.Args)
	case *ast.Array[L]:
		out.Args = Encode[L](n.Elems)
	case *ast.KeyValue[L]:
		out.Key = Encode[L](n.Key)
		out.Value = Encode(n.Value)
	case *ast.KwargList[L]:
		out.Items = encodeAll[L](n.Pairs)
	case *ast.Dict[L]:
		out.Kwargs = Encode[L](n.Entries)
	case *ast.Addition[L]:
		out.Items = encodeAll[L](n.Operands)
	case *ast.MemberAccess[L]:
		out.Items = encodeAll[L](n.Path)
	case *ast.Function[L]:
		out.Callee = Encode(n.Callee)
		out.Args = Encode[L](n.Args)
		out.Kwargs = Encode(n.Kwargs)
	case *ast.Assignment[L]:
		out.Target = Encode(n.Target)
		out.Value = Encode(n.Value)
	case *ast.PlusAssignment[L]:
		out.Target = Encode(n.Target)
		out.Value = Encode(n.Value)
	case *ast.CodeBlock[L]:
		out.Items = encodeAll[L](n.Instructions)
	}
	return out
}

func encodeAll[L any, N ast.Node[L]](nodes []N) []*Node[L] {
	out := make([]*Node[L], len(nodes))
	for i, n := range nodes {
		out[i] = Encode[L](n)
	}
	return out
}
