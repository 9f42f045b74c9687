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

// Package logger implements a small ring-buffer logger used by the
// cmd/pep9asm and cmd/pep9term commands to record non-fatal diagnostics
// around calls into the assembler, microassembler and CPU engine, which
// do not log themselves. It does not depend on a third-party
// structured-logging library. Logging is gated by a Permission interface rather than a
// global severity level, so a component can be logged from in tests
// without polluting unrelated test output.
package logger
