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

import "github.com/davecgh/go-spew/spew"

// DumpSnapshots renders the engine's start and current register/status
// snapshots for debugging, the way a debugger session inspects machine
// state between microcode steps.
func (e *Engine) DumpSnapshots() string {
	return "start:\n" + spew.Sdump(e.Start) + "current:\n" + spew.Sdump(e.Current)
}
