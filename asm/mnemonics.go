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

package asm

// AddrMode is an addressing-mode suffix, as lexed after a comma.
type AddrMode int

const (
	ModeNone AddrMode = iota
	ModeImmediate
	ModeDirect
	ModeIndirect
	ModeIndexed
	ModeStack
	ModeStackFrame
	ModeStackIndexed
	ModeStackFrameIndexed
)

func (m AddrMode) String() string {
	switch m {
	case ModeImmediate:
		return "i"
	case ModeDirect:
		return "d"
	case ModeIndirect:
		return "n"
	case ModeIndexed:
		return "x"
	case ModeStack:
		return "s"
	case ModeStackFrame:
		return "sf"
	case ModeStackIndexed:
		return "sx"
	case ModeStackFrameIndexed:
		return "sfx"
	}
	return ""
}

// modeSuffix maps the lexed suffix text (lower-cased) to its AddrMode.
var modeSuffix = map[string]AddrMode{
	"i":   ModeImmediate,
	"d":   ModeDirect,
	"n":   ModeIndirect,
	"x":   ModeIndexed,
	"s":   ModeStack,
	"sf":  ModeStackFrame,
	"sx":  ModeStackIndexed,
	"sfx": ModeStackFrameIndexed,
}

// modeMask is a bitmask of legal AddrModes for a mnemonic; bit i is set for
// AddrMode(i).
type modeMask uint16

func maskOf(modes ...AddrMode) modeMask {
	var m modeMask
	for _, mode := range modes {
		m |= 1 << uint(mode)
	}
	return m
}

func (m modeMask) allows(mode AddrMode) bool {
	return m&(1<<uint(mode)) != 0
}

func (m modeMask) count() int {
	n := 0
	for i := 0; i < 16; i++ {
		if m&(1<<uint(i)) != 0 {
			n++
		}
	}
	return n
}

var allAddressingModes = maskOf(ModeImmediate, ModeDirect, ModeIndirect, ModeIndexed,
	ModeStack, ModeStackFrame, ModeStackIndexed, ModeStackFrameIndexed)

var noIndirectModes = maskOf(ModeImmediate, ModeDirect, ModeIndexed,
	ModeStack, ModeStackFrame, ModeStackIndexed, ModeStackFrameIndexed)

var branchModes = maskOf(ModeImmediate, ModeIndirect)

// addrModeOrder is the fixed order in which a mnemonic's legal addressing
// modes are packed into consecutive opcodes starting at its baseOpcode:
// only the modes actually legal for that mnemonic consume a slot, so two
// mnemonics with different legal-mode counts never overlap. This is an
// invented but self-consistent numbering, not a byte-for-byte reproduction
// of the historical Pep/9 instruction specifier layout (see DESIGN.md).
var addrModeOrder = []AddrMode{
	ModeImmediate, ModeDirect, ModeIndirect, ModeIndexed,
	ModeStack, ModeStackFrame, ModeStackIndexed, ModeStackFrameIndexed,
}

// mnemonicInfo describes one mnemonic's opcode assignment.
type mnemonicInfo struct {
	unary       bool
	unaryOpcode uint8

	// baseOpcode is the opcode assigned to the first (in addrModeOrder)
	// legal addressing mode; subsequent legal modes take baseOpcode+1,
	// +2, and so on.
	baseOpcode uint8
	legal      modeMask

	isTrap   bool
	isBranch bool
}

func (info mnemonicInfo) opcodeFor(mode AddrMode) (uint8, bool) {
	if info.unary {
		return info.unaryOpcode, mode == ModeNone
	}
	if !info.legal.allows(mode) {
		return 0, false
	}
	slot := 0
	for _, m := range addrModeOrder {
		if !info.legal.allows(m) {
			continue
		}
		if m == mode {
			return info.baseOpcode + uint8(slot), true
		}
		slot++
	}
	return 0, false
}

// mnemonicSpec is the declarative row used to build Mnemonics; bases are
// assigned automatically in declaration order so that ranges never
// overlap regardless of how many addressing modes each entry has.
type mnemonicSpec struct {
	name        string
	unary       bool
	unaryOpcode uint8
	legal       modeMask
	isTrap      bool
	isBranch    bool

	// reservedSlots, when name is empty, advances the opcode cursor
	// without assigning a mnemonic -- an intentional gap, used here only
	// to pin LDWA's immediate opcode at the fixed value 0xC0.
	reservedSlots uint8
}

// Mnemonics is the immutable, process-wide table of mnemonic -> opcode
// assignment, built once in init(). It stands in for the original's
// global mnemonic/opcode maps (see spec.md §9's "module-level mnemonic
// maps" design note).
var Mnemonics map[string]mnemonicInfo

func init() {
	specs := []mnemonicSpec{
		{name: "STOP", unary: true, unaryOpcode: 0x00},
		{name: "RET", unary: true, unaryOpcode: 0x01},
		{name: "RETTR", unary: true, unaryOpcode: 0x02},
		{name: "MOVSPA", unary: true, unaryOpcode: 0x03},
		{name: "MOVFLGA", unary: true, unaryOpcode: 0x04},
		{name: "MOVAFLG", unary: true, unaryOpcode: 0x05},
		{name: "MOVTA", unary: true, unaryOpcode: 0x06},
		{name: "NOTA", unary: true, unaryOpcode: 0x07},
		{name: "NOTX", unary: true, unaryOpcode: 0x08},
		{name: "NEGA", unary: true, unaryOpcode: 0x09},
		{name: "ASLA", unary: true, unaryOpcode: 0x0A},
		{name: "ASLX", unary: true, unaryOpcode: 0x0B},
		{name: "ASRA", unary: true, unaryOpcode: 0x0C},
		{name: "ASRX", unary: true, unaryOpcode: 0x0D},
		{name: "ROLA", unary: true, unaryOpcode: 0x0E},
		{name: "ROLX", unary: true, unaryOpcode: 0x0F},
		{name: "RORA", unary: true, unaryOpcode: 0x10},
		{name: "RORX", unary: true, unaryOpcode: 0x11},
		{name: "NEGX", unary: true, unaryOpcode: 0x12},
		{name: "NOP0", unary: true, unaryOpcode: 0x13},

		{name: "NOP", legal: maskOf(ModeImmediate), isTrap: true},
		{name: "DECI", legal: allAddressingModes, isTrap: true},
		{name: "DECO", legal: allAddressingModes, isTrap: true},
		{name: "HEXO", legal: allAddressingModes, isTrap: true},
		{name: "STRO", legal: noIndirectModes, isTrap: true},

		{name: "BR", legal: branchModes, isBranch: true},
		{name: "BRLE", legal: branchModes, isBranch: true},
		{name: "BRLT", legal: branchModes, isBranch: true},
		{name: "BREQ", legal: branchModes, isBranch: true},
		{name: "BRNE", legal: branchModes, isBranch: true},
		{name: "BRGE", legal: branchModes, isBranch: true},
		{name: "BRGT", legal: branchModes, isBranch: true},
		{name: "BRV", legal: branchModes, isBranch: true},
		{name: "BRC", legal: branchModes, isBranch: true},
		{name: "CALL", legal: branchModes, isBranch: true},

		{name: "ADDSP", legal: allAddressingModes},
		{name: "SUBSP", legal: allAddressingModes},
		{name: "ADDA", legal: allAddressingModes},
		{name: "ADDX", legal: allAddressingModes},
		{name: "SUBA", legal: allAddressingModes},
		{name: "SUBX", legal: allAddressingModes},
		{name: "ANDA", legal: allAddressingModes},
		{name: "ANDX", legal: allAddressingModes},
		{name: "ORA", legal: allAddressingModes},
		{name: "ORX", legal: allAddressingModes},
		{name: "CPWA", legal: allAddressingModes},
		{name: "CPWX", legal: allAddressingModes},
		{reservedSlots: 0x0C},
		{name: "LDWA", legal: allAddressingModes},
		{name: "LDWX", legal: allAddressingModes},
		{name: "LDBA", legal: noIndirectModes},
		{name: "LDBX", legal: noIndirectModes},
		{name: "STWA", legal: noIndirectModes},
		{name: "STWX", legal: noIndirectModes},
		{name: "STBA", legal: noIndirectModes},
		{name: "STBX", legal: noIndirectModes},
	}

	Mnemonics = make(map[string]mnemonicInfo, len(specs))
	cursor := uint8(0x20)
	for _, s := range specs {
		if s.name == "" {
			cursor += s.reservedSlots
			continue
		}
		if s.unary {
			Mnemonics[s.name] = mnemonicInfo{unary: true, unaryOpcode: s.unaryOpcode}
			continue
		}
		Mnemonics[s.name] = mnemonicInfo{
			baseOpcode: cursor,
			legal:      s.legal,
			isTrap:     s.isTrap,
			isBranch:   s.isBranch,
		}
		cursor += uint8(s.legal.count())
	}
}

// IsUnary reports whether mnemonic is an argument-less instruction.
func IsUnary(mnemonic string) bool {
	info, ok := Mnemonics[mnemonic]
	return ok && info.unary
}

// IsTrap reports whether mnemonic is an OS-trap instruction.
func IsTrap(mnemonic string) bool {
	info, ok := Mnemonics[mnemonic]
	return ok && info.isTrap
}

// IsBranch reports whether mnemonic is a branch-style instruction.
func IsBranch(mnemonic string) bool {
	info, ok := Mnemonics[mnemonic]
	return ok && info.isBranch
}

// DecodeOpcode reverse-looks-up an instruction specifier byte to the
// mnemonic and addressing mode that produced it, for use by the CPU
// engine's instruction-specifier decoder jump table.
func DecodeOpcode(opcode uint8) (mnemonic string, mode AddrMode, ok bool) {
	for name, info := range Mnemonics {
		if info.unary {
			if info.unaryOpcode == opcode {
				return name, ModeNone, true
			}
			continue
		}
		for _, m := range addrModeOrder {
			if !info.legal.allows(m) {
				continue
			}
			got, _ := info.opcodeFor(m)
			if got == opcode {
				return name, m, true
			}
		}
	}
	return "", ModeNone, false
}
