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

// Package parser implements the grammar of the build language.
//
// The grammar is an ordered-choice (PEG) grammar evaluated directly over the
// source text: there is no separate lexer. Alternatives are tried in a fixed
// order and the first one to succeed wins; failed alternatives backtrack to
// where they started. Whitespace, including line endings, is skipped before
// every token, except that consecutive instructions must be separated by at
// least one line ending.
//
// On failure, the parser reports the furthest offset that any alternative
// reached, together with every production that would have been accepted
// there. See [Error].
//
// All offsets produced by this package are byte offsets into the text of the
// [source.File] being parsed.
package parser
