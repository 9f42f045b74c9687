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

// StaticInfo is the per-program record of trace-tag analysis described
// in spec.md §3: per-symbol type descriptors for dynamically vs
// statically allocated objects, a PC-to-stack-effect-types map, malloc
// and heap presence flags, and an error indicator.
type StaticInfo struct {
	// StaticTypes holds the type descriptor for every symbol tagged in a
	// comment on a .BLOCK/.WORD/.BYTE/.EQUATE line, keyed by symbol name.
	StaticTypes map[string]Type

	// DynamicTypes holds the type descriptor associated with each
	// CALL malloc site, keyed by the symbol name given in the call's
	// trace-tag comment (there is no statically allocated symbol to key
	// on for heap objects).
	DynamicTypes map[string]Type

	// StackEffects maps a program counter value (the address of an
	// ADDSP/SUBSP/CALL-malloc instruction) to the list of types
	// participating in that instruction's stack effect.
	StackEffects map[uint16][]Type

	// HasHeapMalloc is set if any CALL malloc site carries trace tags.
	HasHeapMalloc bool

	// HasError is set if trace-tag analysis encountered a problem that
	// falls short of aborting assembly (eg. an unresolved struct member
	// list, or a stack-effect byte mismatch): the stack/heap trace model
	// is then unreliable and should not be rendered.
	HasError bool
}

// NewStaticInfo returns a StaticInfo with all maps initialised empty.
func NewStaticInfo() *StaticInfo {
	return &StaticInfo{
		StaticTypes:  make(map[string]Type),
		DynamicTypes: make(map[string]Type),
		StackEffects: make(map[uint16][]Type),
	}
}

// AddStatic records the type descriptor for a statically allocated
// symbol.
func (s *StaticInfo) AddStatic(name string, t Type) {
	s.StaticTypes[name] = t
}

// AddDynamic records the type descriptor for a CALL malloc site and
// flips HasHeapMalloc.
func (s *StaticInfo) AddDynamic(name string, t Type) {
	s.DynamicTypes[name] = t
	s.HasHeapMalloc = true
}

// AddStackEffect records the types participating in the stack effect of
// the instruction at pc (an ADDSP, SUBSP, or CALL malloc).
func (s *StaticInfo) AddStackEffect(pc uint16, types []Type) {
	s.StackEffects[pc] = types
}

// StackEffectSize sums the sizes of the types recorded for pc.
func (s *StaticInfo) StackEffectSize(pc uint16) uint16 {
	var total uint16
	for _, t := range s.StackEffects[pc] {
		total += t.Size()
	}
	return total
}
