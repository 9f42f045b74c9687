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
	"github.com/pep9sim/pep9/errors"
	"github.com/pep9sim/pep9/symbols"
	"github.com/pep9sim/pep9/trace"
)

// analyzeTraceTags walks codes, classifying each #tag-annotated line as
// primitive, array, struct-member-list, or stack-effect annotation, per
// spec.md §4.2's "Trace-tag parsing". Struct member lists are resolved in
// a fixed-point pass: a pending struct whose every member symbol is
// already resolved binds on this pass; a pass that resolves nothing ends
// resolution and reports the remainder as errors.
func analyzeTraceTags(codes []Code, r *Result) {
	var pendingStructs []int // indices into codes whose TraceTag is a struct-member list

	for i, c := range codes {
		if c.TraceTag == nil {
			continue
		}
		name := symbolNameAt(r.Symbols, c)

		switch c.TraceTag.Kind {
		case TagPrimitive:
			if name != "" {
				r.Static.AddStatic(name, trace.Primitive(name, c.TraceTag.Format))
			}
		case TagArray:
			if name != "" {
				r.Static.AddStatic(name, trace.Array(name, c.TraceTag.Format, c.TraceTag.Length))
			}
		case TagSymbol:
			pendingStructs = append(pendingStructs, i)
		}

		if c.Kind == KindNonUnary && c.Mnemonic == "CALL" && c.Arg.SymbolName() == "malloc" {
			r.Static.HasHeapMalloc = true
		}
	}

	resolveStructs(codes, pendingStructs, r)

	for _, c := range codes {
		if c.TraceTag != nil && c.Kind == KindNonUnary && (c.Mnemonic == "ADDSP" || c.Mnemonic == "SUBSP") {
			analyzeStackEffect(c, r)
		}
	}
}

func symbolNameAt(table *symbols.Table, c Code) string {
	if !c.HasSymbol {
		return ""
	}
	sym, ok := table.GetByID(c.Symbol)
	if !ok {
		return ""
	}
	return sym.Name
}

// analyzeStackEffect reads the trailing struct-member-list tag (if
// present on the instruction's own comment) and records it against the
// instruction's own address for later diffing, per the StackEffects map in
// spec.md's StaticTraceInfo.
func analyzeStackEffect(c Code, r *Result) {
	if c.TraceTag == nil || c.TraceTag.Kind != TagSymbol {
		return
	}
	members, ok := structMembersByTag(c.TraceTag.Symbol, r)
	if !ok {
		return
	}
	var total uint16
	for _, m := range members {
		total += m.Size()
	}
	operand := uint16(c.Arg.Value())
	if total != operand {
		r.warn(c.SourceLine, errors.Errorf(errors.StackEffectMismatch, total, operand).Error())
	}
	r.Static.AddStackEffect(uint16(c.Address), members)
}

// structMembersByTag looks up a named struct type previously resolved
// into r.Static's dynamic/static type maps.
func structMembersByTag(name string, r *Result) ([]trace.Type, bool) {
	if t, ok := r.Static.StaticTypes[name]; ok && t.Kind == trace.KindStruct {
		return t.Members, true
	}
	if t, ok := r.Static.DynamicTypes[name]; ok && t.Kind == trace.KindStruct {
		return t.Members, true
	}
	return nil, false
}

// resolveStructs runs the fixed-point struct-member-list resolution pass
// named in spec.md §4.2.
func resolveStructs(codes []Code, pending []int, r *Result) {
	remaining := pending
	for {
		progressed := false
		var stillPending []int
		for _, idx := range remaining {
			c := codes[idx]
			members, ok := tryResolveStruct(c, codes, r)
			if !ok {
				stillPending = append(stillPending, idx)
				continue
			}
			name := symbolNameAt(r.Symbols, c)
			if name != "" {
				r.Static.AddStatic(name, trace.Struct(name, members))
			}
			progressed = true
		}
		remaining = stillPending
		if !progressed || len(remaining) == 0 {
			break
		}
	}
	for _, idx := range remaining {
		c := codes[idx]
		r.fail(c.SourceLine, errors.Errorf(errors.StructUnresolved, c.TraceTag.Symbol).Error())
	}
}

// tryResolveStruct attempts to bind a struct tag's member list; in this
// port, a struct tag names a single member symbol already resolved as a
// primitive or array, since full multi-member list syntax lives only in
// the comment grammar original_source's traceparser.cpp parses in more
// generality than this port's #tag lexer; see DESIGN.md.
func tryResolveStruct(c Code, codes []Code, r *Result) ([]trace.Type, bool) {
	memberName := c.TraceTag.Symbol
	if t, ok := r.Static.StaticTypes[memberName]; ok {
		return []trace.Type{t}, true
	}
	return nil, false
}
