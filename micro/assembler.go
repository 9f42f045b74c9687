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

// Diagnostic is one assembly-time error attached to a source line.
type Diagnostic struct {
	Line    int
	Message string
}

// Result is the outcome of assembling one microcode source text.
type Result struct {
	Program     *Program
	Diagnostics []Diagnostic
}

// Success reports whether assembly produced no diagnostics.
func (r *Result) Success() bool {
	return len(r.Diagnostics) == 0
}

// Assemble lexes and parses text line by line, then runs the
// post-construction linking pass to build a Program. extended gates the
// symbolic if/goto/AMD/ISD syntax, mirroring config.ExtendedMicrocode.
func Assemble(text string, extended bool) *Result {
	lines, diags := ParseSource(text, extended)
	r := &Result{Diagnostics: diags}
	if len(diags) > 0 {
		return r
	}
	r.Program = NewProgram(lines)
	return r
}
