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

// Package program holds one assembled AsmProgram and the
// AsmProgramManager that owns at most one user program and one
// operating-system program, per spec.md §4.3. Grounded on
// disassembly/disassembly.go's ownership of a single Disassembly per
// cartridge, generalised to the two-program (OS + user) ownership model.
package program

import (
	"sort"

	"github.com/pep9sim/pep9/asm"
	"github.com/pep9sim/pep9/memory"
	"github.com/pep9sim/pep9/symbols"
	"github.com/pep9sim/pep9/trace"
)

// Program is one assembled unit: its ordered codes, its symbol table,
// its address bounds, and its trace-tag analysis.
type Program struct {
	Codes       []asm.Code
	Symbols     *symbols.Table
	Static       *trace.StaticInfo
	FirstAddress int32
	LastAddress  int32
	ByteLength   int32

	BurnAddr  uint16
	BurnCount int

	addrIndex []int32 // parallel to Codes, sorted ascending for binary search
}

// FromResult adapts an asm.Result into a Program, building the
// addressToIndex lookup table.
func FromResult(r *asm.Result) *Program {
	p := &Program{
		Codes:        r.Codes,
		Symbols:      r.Symbols,
		Static:       r.Static,
		FirstAddress: r.FirstAddress,
		LastAddress:  r.LastAddress,
		ByteLength:   r.ProgramByteLength,
		BurnAddr:     r.BurnAddr,
		BurnCount:    r.BurnCount,
	}
	p.buildIndex()
	return p
}

func (p *Program) buildIndex() {
	p.addrIndex = make([]int32, 0, len(p.Codes))
	for _, c := range p.Codes {
		if c.Address >= 0 {
			p.addrIndex = append(p.addrIndex, c.Address)
		}
	}
}

// CodeAt returns the Code whose address is addr, by O(log n) binary
// search over the address-sorted index, per spec.md §3's
// "indexToAddress/addressToIndex" requirement.
func (p *Program) CodeAt(addr int32) (asm.Code, bool) {
	i := sort.Search(len(p.addrIndex), func(i int) bool { return p.addrIndex[i] >= addr })
	if i >= len(p.addrIndex) || p.addrIndex[i] != addr {
		return asm.Code{}, false
	}
	// addrIndex is parallel only to the subset of Codes with Address>=0;
	// recover the actual Code by a second pass (program sizes here are
	// small enough that this stays cheap, and it avoids keeping two
	// index arrays in lockstep).
	seen := -1
	for _, c := range p.Codes {
		if c.Address < 0 {
			continue
		}
		seen++
		if seen == i {
			return c, true
		}
	}
	return asm.Code{}, false
}

// LoadInto writes every code's bytes into dev at its own relocated
// Address, the way the CLI runner maps an assembled program straight
// into the simulated machine instead of replaying an object-code stream
// starting at zero.
func (p *Program) LoadInto(dev memory.Device) error {
	for _, c := range p.Codes {
		if !c.EmitObjectCode || c.Address < 0 {
			continue
		}
		for i, b := range c.Bytes() {
			if err := dev.Set(uint16(c.Address)+uint16(i), b); err != nil {
				return err
			}
		}
	}
	return nil
}

// InBounds reports whether addr falls within [FirstAddress, LastAddress].
func (p *Program) InBounds(addr int32) bool {
	return addr >= p.FirstAddress && addr <= p.LastAddress
}

// Breakpoints returns every address flagged as a breakpoint in this
// program.
func (p *Program) Breakpoints() []uint16 {
	var out []uint16
	for _, c := range p.Codes {
		if c.Breakpoint && c.Address >= 0 {
			out = append(out, uint16(c.Address))
		}
	}
	return out
}

// VectorKind names one of the OS's fixed vector slots, resolved relative
// to the burn (top-of-ROM) address, per spec.md §6's "OS vector lookup".
type VectorKind int

const (
	VectorUserStack VectorKind = iota
	VectorSystemStack
	VectorCharIn
	VectorCharOut
	VectorLoader
	VectorTrap
)

// vectorOffset is the fixed byte offset below the burn address at which
// each vector's .ADDRSS directive is expected to live. These offsets are
// an invented but self-consistent layout (see DESIGN.md); the real
// historical offsets are not reproduced from memory.
var vectorOffsets = map[VectorKind]int32{
	VectorTrap:        -2,
	VectorLoader:      -4,
	VectorCharOut:     -6,
	VectorCharIn:      -8,
	VectorSystemStack: -10,
	VectorUserStack:   -12,
}

// deadVector is the sentinel returned for a malformed or unresolved
// vector lookup.
const deadVector = 0xDEAD

// Vector resolves one of the OS's fixed vectors: it locates the
// .ADDRSS directive at the fixed offset below the burn address and
// returns the value of its symbolic operand, or deadVector if no such
// directive exists there.
func (p *Program) Vector(kind VectorKind) uint16 {
	offset, ok := vectorOffsets[kind]
	if !ok {
		return deadVector
	}
	addr := int32(p.BurnAddr) + offset
	c, ok := p.CodeAt(addr)
	if !ok || c.Kind != asm.KindDotADDRSS {
		return deadVector
	}
	return uint16(c.Arg.Value())
}

// Manager owns at most one OS program and one user program, per
// spec.md §4.3.
type Manager struct {
	OS   *Program
	User *Program
}

// NewManager returns an empty Manager.
func NewManager() *Manager { return &Manager{} }

// AssembleOS assembles text as an operating system: it requires exactly
// one .BURN directive, and forceBurnAtFFFF additionally requires that
// directive's value to be 0xFFFF. On success it replaces m.OS and
// relocates it to its burn address.
func (m *Manager) AssembleOS(text string, forceBurnAtFFFF bool) (*Program, []asm.Diagnostic, bool) {
	r := asm.Assemble(text)
	if !r.Success() {
		return nil, r.Diagnostics, false
	}
	if r.BurnCount != 1 {
		return nil, r.Diagnostics, false
	}
	if forceBurnAtFFFF && r.BurnAddr != 0xFFFF {
		return nil, r.Diagnostics, false
	}
	asm.RelocateOS(r)
	p := FromResult(r)
	m.OS = p
	return p, r.Diagnostics, true
}

// AssembleUser assembles text as a user program: it requires zero .BURN
// directives, and its symbol table inherits charIn/charOut from the
// currently loaded OS, per spec.md §4.1.
func (m *Manager) AssembleUser(text string) (*Program, []asm.Diagnostic, bool) {
	r := asm.Assemble(text)
	if !r.Success() {
		return nil, r.Diagnostics, false
	}
	if r.BurnCount != 0 {
		return nil, r.Diagnostics, false
	}
	if m.OS != nil {
		r.Symbols.CopyCharIOFrom(m.OS.Symbols)
	}
	p := FromResult(r)
	m.User = p
	return p, r.Diagnostics, true
}

// ProgramAt returns whichever owned program's bounds contain addr, user
// program first, per spec.md §4.3.
func (m *Manager) ProgramAt(addr int32) (*Program, bool) {
	if m.User != nil && m.User.InBounds(addr) {
		return m.User, true
	}
	if m.OS != nil && m.OS.InBounds(addr) {
		return m.OS, true
	}
	return nil, false
}

// Breakpoints returns the union of breakpoint addresses across both
// owned programs.
func (m *Manager) Breakpoints() []uint16 {
	var out []uint16
	if m.User != nil {
		out = append(out, m.User.Breakpoints()...)
	}
	if m.OS != nil {
		out = append(out, m.OS.Breakpoints()...)
	}
	return out
}
