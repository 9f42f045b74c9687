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

// RelocateOS shifts every code address and every location symbol in r by
// Δ = burnAddr - programByteLength + 1, so that the program's final
// emitted byte lands at burnAddr, per spec.md §4.2's "OS relocation".
// No line's object-code emission is suppressed: lines before the .BURN
// line are relocated and emitted like every other line. .ALIGN lines that appear before .BURN are walked from the
// burn line upward, recomputing each one's padding so that its end stays
// aligned under the cumulative shift.
func RelocateOS(r *Result) int32 {
	delta := int32(r.BurnAddr) - r.ProgramByteLength + 1

	burnIndex := -1
	for i, c := range r.Codes {
		if c.Kind == KindDotBURN {
			burnIndex = i
			break
		}
	}

	r.Symbols.ApplyOffset(delta)

	for i := range r.Codes {
		c := &r.Codes[i]
		if c.Address >= 0 {
			c.Address += delta
		}
		if (c.Kind == KindNonUnary || c.Kind == KindDotADDRSS) && c.Arg.Kind == ArgSymbolRef {
			// already resolved to a concrete value by pass 2; relocation
			// of the referenced symbol's value was applied above via
			// ApplyOffset, but the argument snapshot must be refreshed.
			// .WORD/.BYTE store a plain numeric value captured at parse
			// time, never a resolved symbol reference, so they need no
			// equivalent refresh here.
			if sym, ok := r.Symbols.Get(c.Arg.SymbolName()); ok {
				c.Arg = c.Arg.ResolveSymbol(sym.Value.Int())
			}
		}
	}

	if burnIndex >= 0 {
		cumulative := int32(0)
		for i := burnIndex - 1; i >= 0; i-- {
			c := &r.Codes[i]
			if c.Kind == KindDotALIGN {
				n := c.AlignN
				end := c.Address + c.AlignBytes
				newEnd := end + cumulative
				newPad := ((n - newEnd%n) % n)
				shift := newPad - c.AlignBytes
				c.AlignBytes = newPad
				cumulative += shift
			}
			c.Address += cumulative
		}
	}

	// relocation shifts addresses only; it emits no extra object bytes, so
	// ProgramByteLength (Σ c.ObjectCodeLength()) is left untouched.
	r.FirstAddress += delta
	r.LastAddress += delta
	return delta
}
