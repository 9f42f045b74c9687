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

import (
	"fmt"

	"github.com/pep9sim/pep9/symbols"
)

// CodeKind tags the variant of an AsmCode line. Replaces the original's
// AsmCode class hierarchy with a single tagged struct dispatched by
// switch, per spec.md §9.
type CodeKind int

const (
	KindUnary CodeKind = iota
	KindNonUnary
	KindDotADDRSS
	KindDotALIGN
	KindDotASCII
	KindDotBLOCK
	KindDotBURN
	KindDotBYTE
	KindDotEND
	KindDotEQUATE
	KindDotWORD
	KindCommentOnly
	KindBlank
)

// Code is one assembled source line. Attributes shared by every variant
// are the struct's top-level fields; variant-specific data lives in the
// Kind-tagged fields below it.
type Code struct {
	Kind CodeKind

	SourceLine int
	// Address is -1 when the line has no memory address (comments,
	// blanks, .EQUATE).
	Address int32
	Symbol  symbols.ID
	HasSymbol bool
	Comment string

	EmitObjectCode bool
	Breakpoint     bool

	// Instruction fields (KindUnary, KindNonUnary).
	Mnemonic string
	Mode     AddrMode
	Arg      Argument

	// Dot-command fields.
	ADDRSSSymbol string
	AlignN       int32
	AlignBytes   int32
	ASCIIBytes   []byte
	BlockN       int32
	BurnAddr     uint16
	ByteValue    uint8
	EquateValue  int32
	WordValue    uint16

	// TraceTag is the parsed #tag annotation on this line's comment, if
	// any; nil when the comment carries no trace tag.
	TraceTag *TraceTagAnnotation
}

// ObjectCodeLength returns the number of object-code bytes c contributes,
// matching §4.2's per-directive byte table.
func (c Code) ObjectCodeLength() int {
	switch c.Kind {
	case KindUnary:
		return 1
	case KindNonUnary:
		return 3
	case KindDotADDRSS:
		return 2
	case KindDotALIGN:
		return int(c.AlignBytes)
	case KindDotASCII:
		return len(c.ASCIIBytes)
	case KindDotBLOCK:
		return int(c.BlockN)
	case KindDotBYTE:
		return 1
	case KindDotWORD:
		return 2
	default:
		return 0
	}
}

// Bytes renders c's object-code contribution in address order.
func (c Code) Bytes() []byte {
	switch c.Kind {
	case KindUnary:
		info := Mnemonics[c.Mnemonic]
		return []byte{info.unaryOpcode}
	case KindNonUnary:
		info := Mnemonics[c.Mnemonic]
		op, _ := info.opcodeFor(c.Mode)
		v := uint16(c.Arg.Value())
		return []byte{op, byte(v >> 8), byte(v)}
	case KindDotADDRSS:
		v := uint16(c.Arg.Value())
		return []byte{byte(v >> 8), byte(v)}
	case KindDotALIGN:
		return make([]byte, c.AlignBytes)
	case KindDotASCII:
		out := make([]byte, len(c.ASCIIBytes))
		copy(out, c.ASCIIBytes)
		return out
	case KindDotBLOCK:
		return make([]byte, c.BlockN)
	case KindDotBYTE:
		return []byte{c.ByteValue}
	case KindDotWORD:
		return []byte{byte(c.WordValue >> 8), byte(c.WordValue)}
	default:
		return []byte{}
	}
}

// IsInstruction reports whether c is KindUnary or KindNonUnary.
func (c Code) IsInstruction() bool {
	return c.Kind == KindUnary || c.Kind == KindNonUnary
}

// attachTraceTag parses c.Comment for a #tag annotation and stores it in
// c.TraceTag, leaving it nil when the comment carries none.
func (c *Code) attachTraceTag() {
	if tag, ok := parseTraceTag(c.Comment); ok {
		c.TraceTag = &tag
	}
}

// mnemonicText renders the mnemonic plus mode suffix the way the listing
// does, eg. "LDWA" or "LDWA,i".
func (c Code) mnemonicText() string {
	if c.Kind != KindNonUnary || c.Mode == ModeNone {
		return c.Mnemonic
	}
	return fmt.Sprintf("%s,%s", c.Mnemonic, c.Mode)
}
