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

package micro

import "fmt"

// Program is a vector of microcode Lines plus the derived indices and
// local symbol table described by spec.md §3's "MicrocodeProgram".
type Program struct {
	Lines []Line

	// PreIndices / PostIndices / CodeIndices are indices into Lines for
	// each corresponding LineKind, in source order.
	PreIndices  []int
	PostIndices []int
	CodeIndices []int

	// Symbols maps a code line's symbol (user-given or generated) to its
	// numeric address: its position among code-only lines.
	Symbols map[string]int
}

// NewProgram builds a Program from parsed Lines, applying the
// post-construction linking pass described by spec.md §4.4:
//   - every code line without a user symbol receives a generated "_asN"
//   - AssemblerAssigned branches are retargeted to the next code line,
//     or Stop if there is none
//   - any missing true/false target is replaced by the line's own symbol
func NewProgram(lines []Line) *Program {
	p := &Program{Lines: lines, Symbols: map[string]int{}}

	gen := 0
	for i := range p.Lines {
		l := &p.Lines[i]
		switch l.Kind {
		case LinePreCondition:
			p.PreIndices = append(p.PreIndices, i)
		case LinePostCondition:
			p.PostIndices = append(p.PostIndices, i)
		case LineCode:
			if l.Symbol == "" {
				l.Symbol = fmt.Sprintf("_as%d", gen)
				gen++
			}
			p.Symbols[l.Symbol] = len(p.CodeIndices)
			p.CodeIndices = append(p.CodeIndices, i)
		}
	}

	for codePos, lineIdx := range p.CodeIndices {
		l := &p.Lines[lineIdx]
		if l.BranchFn == BranchAssemblerAssigned {
			if codePos+1 < len(p.CodeIndices) {
				next := p.Lines[p.CodeIndices[codePos+1]]
				l.BranchFn = BranchUnconditional
				l.TrueTarget = next.Symbol
				l.FalseTarget = next.Symbol
			} else {
				l.BranchFn = BranchStop
			}
		}
		if l.TrueTarget == "" {
			l.TrueTarget = l.Symbol
		}
		if l.FalseTarget == "" {
			l.FalseTarget = l.Symbol
		}
	}

	return p
}

// AddressOf returns the numeric address (index among code-only lines) of
// the code line carrying symbol name.
func (p *Program) AddressOf(name string) (int, bool) {
	addr, ok := p.Symbols[name]
	return addr, ok
}

// CodeLineAt returns the code Line at numeric address addr.
func (p *Program) CodeLineAt(addr int) (Line, bool) {
	if addr < 0 || addr >= len(p.CodeIndices) {
		return Line{}, false
	}
	return p.Lines[p.CodeIndices[addr]], true
}

// NumCodeLines reports how many code lines the program contains.
func (p *Program) NumCodeLines() int {
	return len(p.CodeIndices)
}
