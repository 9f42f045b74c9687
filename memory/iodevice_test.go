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

import "testing"

func TestIODeviceReadsBufferedInput(t *testing.T) {
	dev := NewIODevice(NewMain(), 0x00FC, 0x00FD, []byte("ab"))

	got, err := dev.Read(0x00FC)
	if err != nil || got != 'a' {
		t.Fatalf("Read(charIn) = %v, %v; want 'a', nil", got, err)
	}
	got, _ = dev.Read(0x00FC)
	if got != 'b' {
		t.Fatalf("Read(charIn) = %v; want 'b'", got)
	}
	got, _ = dev.Read(0x00FC)
	if got != 0 {
		t.Fatalf("Read(charIn) past exhaustion = %v; want 0", got)
	}
}

func TestIODeviceBuffersOutput(t *testing.T) {
	dev := NewIODevice(NewMain(), 0x00FC, 0x00FD, nil)

	if err := dev.Write(0x00FD, 'x'); err != nil {
		t.Fatalf("Write(charOut): %v", err)
	}
	if err := dev.Write(0x00FD, 'y'); err != nil {
		t.Fatalf("Write(charOut): %v", err)
	}
	if got := string(dev.Output()); got != "xy" {
		t.Fatalf("Output() = %q; want %q", got, "xy")
	}
}

func TestIODevicePassesThroughOtherAddresses(t *testing.T) {
	dev := NewIODevice(NewMain(), 0x00FC, 0x00FD, nil)

	if err := dev.Write(0x0010, 0x42); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := dev.Read(0x0010)
	if err != nil || got != 0x42 {
		t.Fatalf("Read(0x0010) = %v, %v; want 0x42, nil", got, err)
	}
}
