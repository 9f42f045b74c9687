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

package trace

import (
	"fmt"
	"strings"
)

// Format is one of the five display formats a primitive trace tag may
// declare: 1-byte character, 1-byte decimal, 1-byte hex, 2-byte decimal,
// 2-byte hex.
type Format int

const (
	Format1C Format = iota
	Format1D
	Format1H
	Format2D
	Format2H
)

// ParseFormat maps a #fmt token (without the leading '#') to a Format.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "1c":
		return Format1C, true
	case "1d":
		return Format1D, true
	case "1h":
		return Format1H, true
	case "2d":
		return Format2D, true
	case "2h":
		return Format2H, true
	default:
		return 0, false
	}
}

func (f Format) String() string {
	switch f {
	case Format1C:
		return "1c"
	case Format1D:
		return "1d"
	case Format1H:
		return "1h"
	case Format2D:
		return "2d"
	case Format2H:
		return "2h"
	default:
		return "?"
	}
}

// Size is the number of bytes a single value of this format occupies.
func (f Format) Size() uint16 {
	switch f {
	case Format1C, Format1D, Format1H:
		return 1
	case Format2D, Format2H:
		return 2
	default:
		return 0
	}
}

// Kind distinguishes the five members of the Type tagged variant.
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindStruct
	KindLiteralPrimitive
	KindLiteralArray
)

// Type is the tagged variant over Primitive, Array, Struct,
// LiteralPrimitive and LiteralArray descriptors from spec.md §3. Structs
// may contain any other Type but never appear as an array element, per
// the invariant named in typetags.h's doc comment ("Symbols may not be
// arrays of structs").
type Type struct {
	Kind    Kind
	Symbol  string // owning symbol name; empty for literal kinds
	Format  Format // meaningful for Primitive, Array, LiteralPrimitive, LiteralArray
	Len     uint16 // meaningful for Array, LiteralArray
	Members []Type // meaningful for Struct
}

// Primitive builds a named primitive type descriptor.
func Primitive(symbol string, format Format) Type {
	return Type{Kind: KindPrimitive, Symbol: symbol, Format: format}
}

// Array builds a named array type descriptor.
func Array(symbol string, format Format, length uint16) Type {
	return Type{Kind: KindArray, Symbol: symbol, Format: format, Len: length}
}

// Struct builds a named struct type descriptor from member descriptors.
// Constructing a Struct whose Members contains an Array or another
// Struct is legal; constructing one where a member is itself used as an
// array element elsewhere is rejected by the assembler, not by this
// constructor.
func Struct(symbol string, members []Type) Type {
	return Type{Kind: KindStruct, Symbol: symbol, Members: members}
}

// LiteralPrimitive builds an anonymous primitive descriptor, eg. for an
// ADDSP/SUBSP stack-effect tag that names no backing symbol.
func LiteralPrimitive(format Format) Type {
	return Type{Kind: KindLiteralPrimitive, Format: format}
}

// LiteralArray builds an anonymous array descriptor.
func LiteralArray(format Format, length uint16) Type {
	return Type{Kind: KindLiteralArray, Format: format, Len: length}
}

// Size returns the number of bytes the described object occupies: fixed
// per format for primitives, multiplied by length for arrays, summed
// over members for structs.
func (t Type) Size() uint16 {
	switch t.Kind {
	case KindPrimitive, KindLiteralPrimitive:
		return t.Format.Size()
	case KindArray, KindLiteralArray:
		return t.Format.Size() * t.Len
	case KindStruct:
		var total uint16
		for _, m := range t.Members {
			total += m.Size()
		}
		return total
	default:
		return 0
	}
}

// String renders the type the way the assembler listing would, eg.
// "foo: 2h" or "bar: 1d<10>a" for an array, matching the spirit of
// AType::toString in the original.
func (t Type) String() string {
	switch t.Kind {
	case KindPrimitive:
		return fmt.Sprintf("%s: %s", t.Symbol, t.Format)
	case KindLiteralPrimitive:
		return t.Format.String()
	case KindArray:
		return fmt.Sprintf("%s: %s<%d>a", t.Symbol, t.Format, t.Len)
	case KindLiteralArray:
		return fmt.Sprintf("%s<%d>a", t.Format, t.Len)
	case KindStruct:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		return fmt.Sprintf("%s: struct{%s}", t.Symbol, strings.Join(parts, ", "))
	default:
		return "?"
	}
}

// Primitives flattens the type into its leaf (format, name) pairs, in
// the order toPrimitives() would for the original struct-unrolling
// stack-frame renderer.
func (t Type) Primitives(prefix string) []PrimitiveRef {
	name := t.Symbol
	if prefix != "" {
		if name != "" {
			name = prefix + "." + name
		} else {
			name = prefix
		}
	}

	switch t.Kind {
	case KindPrimitive, KindLiteralPrimitive:
		return []PrimitiveRef{{Format: t.Format, Name: name}}
	case KindArray, KindLiteralArray:
		out := make([]PrimitiveRef, 0, t.Len)
		for i := uint16(0); i < t.Len; i++ {
			out = append(out, PrimitiveRef{Format: t.Format, Name: fmt.Sprintf("%s[%d]", name, i)})
		}
		return out
	case KindStruct:
		var out []PrimitiveRef
		for _, m := range t.Members {
			out = append(out, m.Primitives(name)...)
		}
		return out
	default:
		return nil
	}
}

// PrimitiveRef is one leaf of a flattened Type tree.
type PrimitiveRef struct {
	Format Format
	Name   string
}
