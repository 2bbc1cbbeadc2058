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

	"github.com/bufbuild/mesonast/source"
	"github.com/bufbuild/mesonast/source/length"
)

// Resolve converts a tree whose ranges are byte offsets into file into an
// identical tree whose ranges are line and column locations, with columns
// measured in unit.
//
// The input tree is left untouched. An offset outside of file produces an
// error wrapping [source.ErrOffsetOutOfRange]; this only happens when n was
// not parsed from file.
func Resolve(file *source.File, n Node[int], unit length.Unit) (Node[source.Location], error) {
	var err error
	resolved := Map(n, func(offset int) source.Location {
		if err != nil {
			return source.Location{}
		}
		var loc source.Location
		loc, err = file.Location(offset, unit)
		return loc
	})
	if err != nil {
		return nil, fmt.Errorf("ast: resolving %s: %w", n.Kind(), err)
	}
	return resolved, nil
}

// ResolveFile is like [Resolve], but for the root of a parsed file.
func ResolveFile(file *source.File, block *CodeBlock[int], unit length.Unit) (*CodeBlock[source.Location], error) {
	resolved, err := Resolve(file, block, unit)
	if err != nil {
		return nil, err
	}
	return resolved.(*CodeBlock[source.Location]), nil
}
