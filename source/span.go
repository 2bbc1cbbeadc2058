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

package source

import (
	"fmt"

	"github.com/bufbuild/mesonast/source/length"
)

// Span is a half-open range of bytes within a [File].
type Span struct {
	// The file this span refers to.
	*File

	// The start and end byte offsets for this span.
	Start, End int
}

// IsZero returns whether or not this is the zero span.
func (s Span) IsZero() bool {
	return s.File == nil
}

// Text returns the text corresponding to this span.
func (s Span) Text() string {
	return s.File.Text()[s.Start:s.End]
}

// Len returns the length of this span, in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Locations resolves both ends of this span.
func (s Span) Locations(unit length.Unit) (start, end Location, err error) {
	start, err = s.Location(s.Start, unit)
	if err != nil {
		return start, end, err
	}
	end, err = s.Location(s.End, unit)
	return start, end, err
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	start, end, err := s.Locations(length.Bytes)
	if err != nil {
		return fmt.Sprintf("%s[%d:%d]", s.Path(), s.Start, s.End)
	}
	return fmt.Sprintf("%s:%v-%v", s.Path(), start, end)
}
