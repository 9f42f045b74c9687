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

package cpu

// Snapshot is a point-in-time copy of the register file and status
// register, per spec.md §3's "Two snapshots: start-of-instruction and
// current".
type Snapshot struct {
	Regs   RegisterFile
	Status StatusRegister
}

// Flatten copies the current snapshot over the start snapshot, marking
// the beginning of a new ISA instruction.
func (e *Engine) flatten() {
	e.Start = e.Current
}
