// This file is part of Pep9.
//
// Pep9 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pep9 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pep9.  If not, see <https://www.gnu.org/licenses/>.

package trace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pep9sim/pep9/trace"
)

func TestPrimitiveSize(t *testing.T) {
	assert.Equal(t, uint16(1), trace.Primitive("x", trace.Format1C).Size())
	assert.Equal(t, uint16(2), trace.Primitive("x", trace.Format2H).Size())
}

func TestArraySize(t *testing.T) {
	arr := trace.Array("buf", trace.Format1D, 10)
	assert.Equal(t, uint16(10), arr.Size())
}

func TestStructSize(t *testing.T) {
	st := trace.Struct("point", []trace.Type{
		trace.Primitive("x", trace.Format2D),
		trace.Primitive("y", trace.Format2D),
	})
	assert.Equal(t, uint16(4), st.Size())
}

func TestStructOfArraySize(t *testing.T) {
	st := trace.Struct("line", []trace.Type{
		trace.Array("pts", trace.Format2D, 2),
		trace.Primitive("color", trace.Format1H),
	})
	assert.Equal(t, uint16(5), st.Size())
}

func TestParseFormat(t *testing.T) {
	for _, f := range []string{"1c", "1d", "1h", "2d", "2h"} {
		_, ok := trace.ParseFormat(f)
		assert.True(t, ok, f)
	}
	_, ok := trace.ParseFormat("3x")
	assert.False(t, ok)
}

func TestPrimitivesFlattening(t *testing.T) {
	st := trace.Struct("point", []trace.Type{
		trace.Primitive("x", trace.Format2D),
		trace.Array("tags", trace.Format1C, 2),
	})
	leaves := st.Primitives("")
	assert.Len(t, leaves, 3)
	assert.Equal(t, "point.x", leaves[0].Name)
	assert.Equal(t, "point.tags[0]", leaves[1].Name)
	assert.Equal(t, "point.tags[1]", leaves[2].Name)
}

func TestStaticInfoStackEffect(t *testing.T) {
	info := trace.NewStaticInfo()
	info.AddStackEffect(0x1000, []trace.Type{
		trace.LiteralPrimitive(trace.Format2D),
		trace.LiteralPrimitive(trace.Format1C),
	})
	assert.Equal(t, uint16(3), info.StackEffectSize(0x1000))
}

func TestStaticInfoMalloc(t *testing.T) {
	info := trace.NewStaticInfo()
	assert.False(t, info.HasHeapMalloc)
	info.AddDynamic("node", trace.Struct("node", []trace.Type{
		trace.Primitive("next", trace.Format2H),
		trace.Primitive("value", trace.Format2D),
	}))
	assert.True(t, info.HasHeapMalloc)
}
