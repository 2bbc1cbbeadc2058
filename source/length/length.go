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

// Package length defines the units in which a column within a line of source
// text can be measured.
package length

import "fmt"

// Unit is a unit of measurement for the length of a piece of text.
//
// The zero value is [Bytes].
type Unit int

const (
	// Bytes measures text in UTF-8 code units. A column measured in bytes is
	// the offset from the start of its line, plus one.
	Bytes Unit = iota
	// Runes measures text in Unicode code points.
	Runes
	// UTF16 measures text in UTF-16 code units, as the Language Server Protocol
	// does.
	UTF16
	// TermWidth measures text in terminal columns: grapheme clusters are as
	// wide as a terminal would render them, and tabs advance to the next
	// tabstop.
	TermWidth
)

// TabstopWidth is the width of a tabstop when measuring in [TermWidth].
const TabstopWidth = 4

var names = [...]string{
	Bytes:     "bytes",
	Runes:     "runes",
	UTF16:     "utf16",
	TermWidth: "width",
}

// String implements [fmt.Stringer].
func (u Unit) String() string {
	if u < 0 || int(u) >= len(names) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return names[u]
}

// Parse looks up a unit by its [Unit.String] name.
func Parse(name string) (Unit, bool) {
	for u, n := range names {
		if n == name {
			return Unit(u), true
		}
	}
	return 0, false
}
