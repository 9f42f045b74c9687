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

import "fmt"

// ArgKind tags the variant of an AsmArgument. Replaces the original's
// polymorphic AsmArgument hierarchy with a single tagged struct, per
// spec.md §9's "Polymorphic hierarchies" design note.
type ArgKind int

const (
	ArgDecimal ArgKind = iota
	ArgUnsignedDecimal
	ArgHex
	ArgChar
	ArgString
	ArgSymbolRef
)

// Argument is the operand of a non-unary instruction or dot-command.
type Argument struct {
	Kind ArgKind

	// numeric holds the resolved value for Decimal/UnsignedDecimal/Hex/
	// Char/String kinds. For SymbolRef it is populated only once the
	// symbol is resolved to a value.
	numeric int32

	// raw is the literal source text, used for Char/String rendering and
	// for SymbolRef's symbol name.
	raw string
}

// Decimal constructs a signed decimal literal argument.
func Decimal(v int32) Argument { return Argument{Kind: ArgDecimal, numeric: v} }

// UnsignedDecimal constructs an unsigned decimal literal argument.
func UnsignedDecimal(v int32) Argument { return Argument{Kind: ArgUnsignedDecimal, numeric: v} }

// Hex constructs a hex literal argument.
func Hex(v int32) Argument { return Argument{Kind: ArgHex, numeric: v} }

// Char constructs a character-literal argument; v is its byte value and
// raw is the original escaped source text (for Text()).
func Char(v int32, raw string) Argument { return Argument{Kind: ArgChar, numeric: v, raw: raw} }

// String constructs a string-literal argument. value is the big-endian
// pack of up to 2 bytes (1-byte strings pack into the low byte).
func String(value int32, raw string) Argument {
	return Argument{Kind: ArgString, numeric: value, raw: raw}
}

// SymbolRef constructs a reference to a not-yet-necessarily-resolved
// symbol by name.
func SymbolRef(name string) Argument { return Argument{Kind: ArgSymbolRef, raw: name} }

// Value returns the argument's resolved integer value. For SymbolRef,
// callers must have already set it via ResolveSymbol.
func (a Argument) Value() int32 { return a.numeric }

// SymbolName returns the referenced symbol's name; valid only for
// ArgSymbolRef.
func (a Argument) SymbolName() string { return a.raw }

// ResolveSymbol returns a copy of a with its numeric value set, used once
// the assembler's symbol table has resolved the reference.
func (a Argument) ResolveSymbol(value int32) Argument {
	a.numeric = value
	return a
}

// Text renders the argument the way the listing does.
func (a Argument) Text() string {
	switch a.Kind {
	case ArgDecimal:
		return fmt.Sprintf("%d", a.numeric)
	case ArgUnsignedDecimal:
		return fmt.Sprintf("%d", uint32(a.numeric))
	case ArgHex:
		return fmt.Sprintf("0x%X", uint32(a.numeric))
	case ArgChar:
		return a.raw
	case ArgString:
		return a.raw
	case ArgSymbolRef:
		return a.raw
	}
	return ""
}

// byteWidth returns how many bytes of object code this argument
// contributes when used as a non-unary instruction's operand (always 2)
// or as a .BYTE/.WORD argument (1 or 2, governed by the caller).
func (a Argument) byteWidth() int {
	if a.Kind == ArgString && len(a.raw) >= 2 && a.raw[0] == '"' {
		// multi-character string packed into one word: caller decides
		// whether 1 or 2 bytes were requested; default word-width here.
		return 2
	}
	return 2
}
