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

package taxa_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/mesonast/internal/taxa"
)

func TestAllStringify(t *testing.T) {
	t.Parallel()

	for s := taxa.Unknown; s <= taxa.EOF; s++ {
		assert.NotEqual(t, "", s.String())
	}
	assert.Equal(t, "<unknown>", taxa.Noun(-1).String())
}

func TestSet(t *testing.T) {
	t.Parallel()

	set := taxa.NewSet(taxa.Array, taxa.String, taxa.Ident, taxa.EOF)
	assert.True(t, set.Has(taxa.Array))
	assert.True(t, set.Has(taxa.Ident))
	assert.False(t, set.Has(taxa.Dict))
	assert.Equal(t, 4, set.Len())

	set = set.With(taxa.Dict)
	assert.True(t, set.Has(taxa.Array))
	assert.True(t, set.Has(taxa.Dict))

	assert.Equal(t,
		[]taxa.Noun{taxa.Ident, taxa.String, taxa.Array, taxa.Dict, taxa.EOF},
		slices.Collect(set.All()),
	)

	union := taxa.NewSet(taxa.Comma).With(taxa.RParen)
	assert.Equal(t, []string{"`,`", "`)`"}, union.Strings())
	assert.Equal(t, 0, taxa.Set{}.Len())

	assert.Panics(t, func() { taxa.NewSet(taxa.Noun(1 << 10)) })
}

func TestJoin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", taxa.NewSet().Join("or"))
	assert.Equal(t, "`(`", taxa.NewSet(taxa.LParen).Join("or"))
	assert.Equal(t, "`.` or `(`", taxa.NewSet(taxa.LParen, taxa.Period).Join("or"))
	assert.Equal(t, "identifier, string, or number",
		taxa.NewSet(taxa.Number, taxa.Ident, taxa.String).Join("or"))
	assert.Equal(t, "identifier, number, array, and dictionary",
		taxa.NewSet(taxa.Number, taxa.Ident, taxa.Dict, taxa.Array).Join("and"))
}
