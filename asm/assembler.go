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

// Package asm is the two-pass Pep/9 assembler: lexer, per-line parser
// FSM, byte-count/address assignment, trace-tag analysis, OS relocation,
// object-image emission, and listing rendering. Grounded on
// disassembly/parse.go's line-oriented parsing style and on
// original_source's asmparser.cpp/.h for the two-pass semantics (see
// DESIGN.md).
package asm

import (
	"strings"

	"github.com/pep9sim/pep9/errors"
	"github.com/pep9sim/pep9/symbols"
	"github.com/pep9sim/pep9/trace"
)

// Diagnostic is one collected error or warning, matching §7's
// "(line, message)" error model.
type Diagnostic struct {
	Line    int
	Message string
	Warning bool
}

// Result is everything produced by Assemble.
type Result struct {
	Codes       []Code
	Symbols     *symbols.Table
	Diagnostics []Diagnostic
	Static      *trace.StaticInfo

	ProgramByteLength int32
	FirstAddress      int32
	LastAddress       int32

	BurnAddr  uint16
	BurnCount int
}

// Success reports whether assembly produced no fatal (non-warning)
// diagnostics.
func (r *Result) Success() bool {
	for _, d := range r.Diagnostics {
		if !d.Warning {
			return false
		}
	}
	return true
}

func (r *Result) fail(line int, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Line: line, Message: message})
}

func (r *Result) warn(line int, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Line: line, Message: message, Warning: true})
}

// Assemble runs the full two-pass pipeline over source text: lex+parse
// every line, assign addresses and byte counts while inserting symbol
// definitions, resolve symbol references, run trace-tag analysis, and
// validate end-of-program invariants (see spec.md §4.2).
func Assemble(source string) *Result {
	r := &Result{Symbols: symbols.New(), Static: trace.NewStaticInfo()}

	lines := strings.Split(source, "\n")
	codes := make([]Code, 0, len(lines))

	// Pass 1: lex/parse each line independently, track byte count, bind
	// location symbols at their defining line.
	var byteCount int32
	endSeen := false
	for i, raw := range lines {
		lineNo := i + 1
		toks, err := lexLine(raw, lineNo)
		if err != nil {
			r.fail(lineNo, err.Error())
			continue
		}
		code, err := parseLine(toks, lineNo)
		if err != nil {
			r.fail(lineNo, err.Error())
			continue
		}

		if code.HasSymbol && code.Kind != KindDotEQUATE {
			name := code.ADDRSSSymbol
			code.ADDRSSSymbol = ""
			r.Symbols.Insert(name)
			sym, _ := r.Symbols.SetValue(name, symbols.LocationValue(uint16(byteCount)))
			code.Symbol = sym.ID
			code.HasSymbol = true
		} else if code.Kind == KindDotEQUATE {
			name := nameFromSymbolDef(toks)
			r.Symbols.Insert(name)
			sym, _ := r.Symbols.SetValue(name, symbols.NumericValue(code.EquateValue))
			code.Symbol = sym.ID
			code.HasSymbol = true
		}

		switch code.Kind {
		case KindDotEND:
			endSeen = true
		case KindDotBURN:
			r.BurnCount++
			r.BurnAddr = code.BurnAddr
		}

		if code.Kind != KindDotEQUATE && code.Kind != KindCommentOnly && code.Kind != KindBlank {
			code.Address = byteCount
		}

		if code.Kind == KindDotALIGN {
			n := code.AlignN
			pad := (n - byteCount%n) % n
			code.AlignBytes = pad
			byteCount += pad
		} else {
			byteCount += int32(code.ObjectCodeLength())
		}

		codes = append(codes, code)
	}

	// Pass 2: resolve symbol references now that every definition has a
	// binding; struct fixed-point resolution would run here, immediately
	// after reference resolution and before static analysis.
	for i := range codes {
		c := &codes[i]
		if c.Kind == KindNonUnary && c.Arg.Kind == ArgSymbolRef {
			sym, ok := r.Symbols.Get(c.Arg.SymbolName())
			if !ok || sym.IsUndefined() {
				r.fail(c.SourceLine, errors.Errorf(errors.UndefinedSymbol, c.Arg.SymbolName()).Error())
				continue
			}
			c.Arg = c.Arg.ResolveSymbol(sym.Value.Int())
		}
		if c.Kind == KindDotADDRSS && c.Arg.Kind == ArgSymbolRef {
			sym, ok := r.Symbols.Get(c.Arg.SymbolName())
			if !ok || sym.IsUndefined() {
				r.fail(c.SourceLine, errors.Errorf(errors.UndefinedSymbol, c.Arg.SymbolName()).Error())
				continue
			}
			c.Arg = c.Arg.ResolveSymbol(sym.Value.Int())
		}
	}

	analyzeTraceTags(codes, r)

	if !endSeen {
		r.fail(len(lines), errors.Errorf(errors.MissingEnd).Error())
	}
	if byteCount > 65535 {
		r.fail(len(lines), errors.Errorf(errors.ProgramTooLarge, byteCount).Error())
	}
	if r.Symbols.UndefinedCount() > 0 {
		for _, s := range r.Symbols.Symbols() {
			if s.IsUndefined() {
				r.fail(0, errors.Errorf(errors.UndefinedSymbol, s.Name).Error())
			}
		}
	}

	r.Codes = codes
	r.ProgramByteLength = byteCount
	if len(codes) > 0 {
		r.FirstAddress = firstAddress(codes)
		r.LastAddress = byteCount - 1
	}
	return r
}

func firstAddress(codes []Code) int32 {
	for _, c := range codes {
		if c.Address >= 0 {
			return c.Address
		}
	}
	return 0
}

// nameFromSymbolDef extracts the defining symbol name from the leading
// TokSymbolDef token, used for .EQUATE lines where parseDotCommand
// doesn't itself see the symbol-def token (parseLine consumed it first).
func nameFromSymbolDef(toks []Token) string {
	if len(toks) > 0 && toks[0].Kind == TokSymbolDef {
		return toks[0].Text
	}
	return ""
}

// ObjectImage concatenates every code's bytes in address order, skipping
// lines with EmitObjectCode=false, per spec.md §4.2's "Object image".
func ObjectImage(codes []Code) []byte {
	var out []byte
	for _, c := range codes {
		if !c.EmitObjectCode || c.Address < 0 {
			continue
		}
		out = append(out, c.Bytes()...)
	}
	return out
}

// FormatObjectCode renders obj as the external object-code format: ASCII
// hex bytes separated by spaces, 16 per line, terminated by "zz\n".
func FormatObjectCode(obj []byte) string {
	var b strings.Builder
	for i, by := range obj {
		if i > 0 {
			if i%16 == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(hexByte(by))
	}
	if len(obj) > 0 {
		if len(obj)%16 == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("zz\n")
	return b.String()
}

func hexByte(b byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0xF]})
}
