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

// Package ast defines types for modeling the AST (Abstract Syntax Tree) of
// the build description language: the small, declarative language in which
// build targets, options, and project metadata are written.
//
// All nodes of the tree implement the [Node] interface. The set of node types
// is closed: the concrete types in this package are the only implementations,
// and consumers are expected to switch over them. The root of a parsed file
// is a [*CodeBlock].
//
// Every node carries a [Range] over a position type L. The parser produces
// trees with L = int, where positions are byte offsets into the parsed text
// and ranges are half-open. [Resolve] turns such a tree into an identical one
// with L = [source.Location], for showing positions to users. Both trees stay
// valid after resolution, so a tool may keep offsets for editing while
// reporting line and column numbers.
//
// Chains of the associative operators `+` and `.` are flattened into a
// single [Addition] or [MemberAccess] node holding every operand in source
// order. Such nodes always hold at least two operands; a lone operand is
// represented by the operand itself. Creation of these nodes should use
// [NewAddition] and [NewMemberAccess], whose signatures enforce this.
//
// Trees are immutable once built. A node owns all of its children, and text
// payloads are copied out of the source, so a tree outlives the buffer it was
// parsed from.
package ast
