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

package memory

// MaxAddress is the highest addressable byte: the device is a flat
// 64 KiB (0x0000-0xFFFF) store, per spec.md §3.
const MaxAddress = 0xFFFF

// AccessType distinguishes the kind of access within a transaction, used
// by the cache layer's telemetry.
type AccessType int

const (
	AccessRead AccessType = iota
	AccessWrite
)

// Device is the byte-addressable memory abstraction described in
// spec.md §3. Read/Write simulate real CPU traffic (a cache wrapping the
// device observes these and updates hit/miss telemetry); Get/Set are
// introspective and bypass both the cache and the read-tracking set.
type Device interface {
	// Read simulates a CPU read: it participates in caching and adds
	// address to the read-tracking set.
	Read(address uint16) (uint8, error)
	// Write simulates a CPU write: it participates in caching and adds
	// address to the written-tracking set.
	Write(address uint16, value uint8) error
	// Get bypasses cache and tracking; used by visualisers and the
	// assembler's object-code loader.
	Get(address uint16) (uint8, error)
	// Set bypasses cache and tracking.
	Set(address uint16, value uint8) error

	// BytesRead, BytesWritten and BytesSet return the set of addresses
	// touched by Read, Write and Set respectively since the last Clear.
	BytesRead() map[uint16]bool
	BytesWritten() map[uint16]bool
	BytesSet() map[uint16]bool

	// Clear empties the device back to all zero bytes and clears every
	// tracking set.
	Clear()

	// ClearTracking empties the read/written/set tracking sets without
	// touching the underlying bytes.
	ClearTracking()

	// HadError reports whether an access has raised an error since the
	// device was created or last cleared, along with its message.
	HadError() (bool, string)
}
