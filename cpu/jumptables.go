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

package cpu

import (
	"github.com/pep9sim/pep9/asm"
	"github.com/pep9sim/pep9/micro"
)

// noTarget marks a jump-table slot with no resolved microcode entry
// point; decoding an instruction that lands on it raises DecoderUndefined.
const noTarget = -1

// JumpTables holds the resolved 256-entry instruction-specifier decoder
// and the addressing-mode decoder, per spec.md §4.5's "jump tables"
// driving AMD/ISD branch functions.
//
// Entries are resolved once, when microcode is loaded, by a label
// convention: the instruction-specifier entry for opcode 0xNN is the
// microcode symbol "ISD_<mnemonic>" (shared across every addressing mode
// of a non-unary mnemonic, since AMD has already normalised the operand
// by the time ISD dispatches); the addressing-mode entry for mode m is
// the symbol "AMD_<m>". This label convention is a simplification
// invented for this engine (see DESIGN.md) rather than a reproduction of
// the historical Pep/9 microcode's literal entry-point names.
type JumpTables struct {
	ISD [256]int
	AMD map[asm.AddrMode]int
}

// BuildJumpTables resolves every ISD/AMD label against mp's symbol
// table. Unresolved entries are left as noTarget rather than reported as
// a build-time error, matching the original's "undefined decoder entry"
// being a runtime condition rather than a load-time one.
func BuildJumpTables(mp *micro.Program) JumpTables {
	jt := JumpTables{AMD: map[asm.AddrMode]int{}}
	for i := range jt.ISD {
		jt.ISD[i] = noTarget
	}

	for opcode := 0; opcode < 256; opcode++ {
		mnemonic, _, ok := asm.DecodeOpcode(uint8(opcode))
		if !ok {
			continue
		}
		if addr, ok := mp.AddressOf("ISD_" + mnemonic); ok {
			jt.ISD[opcode] = addr
		}
	}

	for _, mode := range []asm.AddrMode{
		asm.ModeImmediate, asm.ModeDirect, asm.ModeIndirect, asm.ModeIndexed,
		asm.ModeStack, asm.ModeStackFrame, asm.ModeStackIndexed, asm.ModeStackFrameIndexed,
	} {
		if addr, ok := mp.AddressOf("AMD_" + mode.String()); ok {
			jt.AMD[mode] = addr
		} else {
			jt.AMD[mode] = noTarget
		}
	}

	return jt
}
