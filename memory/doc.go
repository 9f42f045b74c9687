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

// Package memory defines the Device abstraction (spec.md §3/§4 MemoryDevice)
// and its flat-array implementation, Main. The interface split mirrors the
// teacher's hardware/memory/bus package: CPUBus-like Read/Write for
// simulated traffic (cache/tracking participate) versus DebuggerBus-like
// Get/Set for introspective access that bypasses both.
package memory
