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

// Package source provides the source files that the parser reads, and the
// means for turning byte offsets into the files into user-displayable
// positions.
//
// A [File] indexes the starts of its lines once, the first time a position is
// requested, after which every offset resolves in O(log n) by binary search.
// Lines end at '\n'; a '\r' that precedes it belongs to the line it ends, and
// counts towards that line's columns.
package source
