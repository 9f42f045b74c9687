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

package asm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pep9sim/pep9/asm"
)

func TestASLAAlone(t *testing.T) {
	r := asm.Assemble("ASLA\n.END\n")
	require.True(t, r.Success(), "%v", r.Diagnostics)

	obj := asm.ObjectImage(r.Codes)
	assert.Equal(t, []byte{0x0A}, obj)
	assert.Equal(t, "0A zz\n", asm.FormatObjectCode(obj))
}

func TestLDWAImmediate(t *testing.T) {
	r := asm.Assemble("LDWA 0x1234,i\n.END\n")
	require.True(t, r.Success(), "%v", r.Diagnostics)

	obj := asm.ObjectImage(r.Codes)
	assert.Equal(t, []byte{0xC0, 0x12, 0x34}, obj)
}

func TestDECIWithEquate(t *testing.T) {
	r := asm.Assemble("num:.EQUATE 5\nDECI num,d\n.END\n")
	require.True(t, r.Success(), "%v", r.Diagnostics)

	sym, ok := r.Symbols.Get("num")
	require.True(t, ok)
	assert.Equal(t, int32(5), sym.Value.Int())

	var deci *asm.Code
	for i := range r.Codes {
		if r.Codes[i].Kind == asm.KindNonUnary && r.Codes[i].Mnemonic == "DECI" {
			deci = &r.Codes[i]
		}
	}
	require.NotNil(t, deci)
	bytes := deci.Bytes()
	require.Len(t, bytes, 3)
	assert.Equal(t, []byte{0x00, 0x05}, bytes[1:])
}

func TestObjectImageMatchesCodeByteOffsets(t *testing.T) {
	r := asm.Assemble("LDWA 0x1234,i\nASLA\n.END\n")
	require.True(t, r.Success(), "%v", r.Diagnostics)

	obj := asm.ObjectImage(r.Codes)
	var total int
	for _, c := range r.Codes {
		if c.Address < 0 {
			continue
		}
		total += c.ObjectCodeLength()
		assert.Equal(t, c.Bytes(), obj[c.Address:c.Address+int32(c.ObjectCodeLength())])
	}
	assert.Equal(t, r.ProgramByteLength, int32(total))
}

func TestMissingEndFails(t *testing.T) {
	r := asm.Assemble("ASLA\n")
	assert.False(t, r.Success())
}

func TestUndefinedSymbolFails(t *testing.T) {
	r := asm.Assemble("LDWA missing,d\n.END\n")
	assert.False(t, r.Success())
}

func TestIllegalAddressingModeFails(t *testing.T) {
	r := asm.Assemble("STWA 5,n\n.END\n")
	assert.False(t, r.Success())
}

func TestBurnRelocation(t *testing.T) {
	r := asm.Assemble("ASLA\n.BURN 0xFFFF\n.END\n")
	require.True(t, r.Success(), "%v", r.Diagnostics)
	require.Equal(t, 1, r.BurnCount)

	delta := asm.RelocateOS(r)
	assert.Equal(t, r.LastAddress, int32(0xFFFF))
	_ = delta
}

func TestBurnRelocationRefreshesADDRSSVector(t *testing.T) {
	r := asm.Assemble("loader:ASLA\n.ADDRSS loader\n.BURN 0xFFFF\n.END\n")
	require.True(t, r.Success(), "%v", r.Diagnostics)

	var before int32
	for _, c := range r.Codes {
		before += int32(c.ObjectCodeLength())
	}
	require.Equal(t, r.ProgramByteLength, before)

	delta := asm.RelocateOS(r)

	var addrss *asm.Code
	for i := range r.Codes {
		if r.Codes[i].Kind == asm.KindDotADDRSS {
			addrss = &r.Codes[i]
		}
	}
	require.NotNil(t, addrss)

	sym, ok := r.Symbols.Get("loader")
	require.True(t, ok)
	assert.Equal(t, sym.Value.Int(), int32(addrss.Arg.Value()),
		"relocated .ADDRSS operand must track the relocated symbol, not its pre-relocation snapshot")
	assert.Equal(t, []byte{byte(sym.Value.Int() >> 8), byte(sym.Value.Int())}, addrss.Bytes())

	// relocation shifts addresses only; it must not inflate the total
	// object-code byte count.
	assert.Equal(t, before, r.ProgramByteLength)
	_ = delta
}

func TestTraceTagPrimitive(t *testing.T) {
	r := asm.Assemble("x:.BLOCK 2 ;#2h\n.END\n")
	require.True(t, r.Success(), "%v", r.Diagnostics)
	typ, ok := r.Static.StaticTypes["x"]
	require.True(t, ok)
	assert.Equal(t, uint16(2), typ.Size())
}
