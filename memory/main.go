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

import (
	"github.com/pep9sim/pep9/errors"
)

// Main is the flat-array Device implementation: no caching, no
// indirection. CacheMemory wraps a Main (or any Device) to add
// set-associative caching on top.
type Main struct {
	bytes [MaxAddress + 1]uint8

	read    map[uint16]bool
	written map[uint16]bool
	set     map[uint16]bool

	hadError bool
	errorMsg string
}

// NewMain returns a Main with every byte zeroed.
func NewMain() *Main {
	m := &Main{}
	m.ClearTracking()
	return m
}

func (m *Main) Read(address uint16) (uint8, error) {
	v := m.bytes[address]
	if m.read == nil {
		m.read = make(map[uint16]bool)
	}
	m.read[address] = true
	return v, nil
}

func (m *Main) Write(address uint16, value uint8) error {
	m.bytes[address] = value
	if m.written == nil {
		m.written = make(map[uint16]bool)
	}
	m.written[address] = true
	return nil
}

func (m *Main) Get(address uint16) (uint8, error) {
	return m.bytes[address], nil
}

func (m *Main) Set(address uint16, value uint8) error {
	m.bytes[address] = value
	if m.set == nil {
		m.set = make(map[uint16]bool)
	}
	m.set[address] = true
	return nil
}

func (m *Main) BytesRead() map[uint16]bool    { return m.read }
func (m *Main) BytesWritten() map[uint16]bool { return m.written }
func (m *Main) BytesSet() map[uint16]bool     { return m.set }

func (m *Main) Clear() {
	for i := range m.bytes {
		m.bytes[i] = 0
	}
	m.ClearTracking()
	m.hadError = false
	m.errorMsg = ""
}

func (m *Main) ClearTracking() {
	m.read = make(map[uint16]bool)
	m.written = make(map[uint16]bool)
	m.set = make(map[uint16]bool)
}

func (m *Main) HadError() (bool, string) {
	return m.hadError, m.errorMsg
}

// RaiseError latches an error message on the device, so that a problem
// can be surfaced through the memory device's HadError() protocol rather
// than only a returned error, matching the "latched" runtime-error model
// of spec.md §7. No device in this module calls it.
func (m *Main) RaiseError(address uint16, cause error) error {
	err := errors.Errorf(errors.MemoryRefused, address, cause)
	m.hadError = true
	m.errorMsg = err.Error()
	return err
}

// LoadImage copies obj into memory starting at address 0, as the
// assembler's object-code loader does.
func (m *Main) LoadImage(obj []byte) {
	for i, b := range obj {
		m.bytes[i] = b
	}
}
