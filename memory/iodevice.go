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

// IODevice wraps a Device and maps two single-byte memory-mapped ports
// onto it: CharIn, which a CPU read drains one byte at a time from a
// pre-buffered input source, and CharOut, which a CPU write appends to
// an output sink. Grounded on the historical "memory-mapped I/O chip"
// idiom rather than on any callback/signal mechanism, since this module
// has no GUI event loop to connect to.
type IODevice struct {
	Device

	CharIn  uint16
	CharOut uint16

	input  []byte
	cursor int
	output []byte
}

// NewIODevice wraps dev, buffering all of input for CharIn reads ahead
// of time, the way the CLI runner loads an entire input file into
// memory before starting the simulation.
func NewIODevice(dev Device, charIn, charOut uint16, input []byte) *IODevice {
	return &IODevice{Device: dev, CharIn: charIn, CharOut: charOut, input: input}
}

// Read intercepts CharIn, returning the next buffered input byte (or 0
// once the buffer is exhausted); every other address is passed through.
func (d *IODevice) Read(address uint16) (uint8, error) {
	if address == d.CharIn {
		if d.cursor >= len(d.input) {
			return 0, nil
		}
		b := d.input[d.cursor]
		d.cursor++
		return b, nil
	}
	return d.Device.Read(address)
}

// Write intercepts CharOut, appending to the output buffer instead of
// writing to the wrapped device; every other address is passed through.
func (d *IODevice) Write(address uint16, value uint8) error {
	if address == d.CharOut {
		d.output = append(d.output, value)
		return nil
	}
	return d.Device.Write(address, value)
}

// Output returns the bytes written to CharOut so far.
func (d *IODevice) Output() []byte {
	return d.output
}
