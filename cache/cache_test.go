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

package cache

import (
	"testing"

	"github.com/pep9sim/pep9/memory"
)

func TestDirectMappedThrash(t *testing.T) {
	c, err := New(memory.NewMain(), 8, 4, 4, 1, LRU, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const addr1, addr2 = 0x0010, 0x1010 // same index (1), different tags

	if _, err := c.Read(addr1); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := c.Read(addr1); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := c.Read(addr2); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := c.Read(addr1); err != nil {
		t.Fatalf("Read: %v", err)
	}

	got := c.Stats()
	if got.Misses != 3 || got.Hits != 1 || got.Evictions != 2 {
		t.Fatalf("Stats() = %+v; want {Hits:1 Misses:3 Evictions:2}", got)
	}
}

func TestFIFOIgnoresHits(t *testing.T) {
	c, err := New(memory.NewMain(), 9, 3, 4, 2, FIFO, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const addr1, addr2, addr3 = 0x0020, 0x00A0, 0x0120 // same index (2), tags 0,1,2

	mustRead(t, c, addr1)  // miss, fills way0 (tag 0)
	mustRead(t, c, addr2)  // miss, fills way1 (tag 1)
	mustRead(t, c, addr1)  // hit, way0; FIFO order unaffected
	mustRead(t, c, addr3)  // miss, evicts way0 (oldest insertion, tag 0) even though just hit

	stats := c.Stats()
	if stats.Misses != 3 || stats.Hits != 1 || stats.Evictions != 1 {
		t.Fatalf("Stats() = %+v; want {Hits:1 Misses:3 Evictions:1}", stats)
	}

	lines := c.Lines()
	index := uint16(2)
	if !lines[index][0].Present || lines[index][0].Tag != 2 {
		t.Fatalf("way0 = %+v; want tag 2 (addr3) after FIFO eviction", lines[index][0])
	}
	if !lines[index][1].Present || lines[index][1].Tag != 1 {
		t.Fatalf("way1 = %+v; want tag 1 (addr2), untouched", lines[index][1])
	}
}

func mustRead(t *testing.T, c *CacheMemory, addr uint16) {
	t.Helper()
	if _, err := c.Read(addr); err != nil {
		t.Fatalf("Read(0x%04X): %v", addr, err)
	}
}

func TestWriteDoesNotAllocate(t *testing.T) {
	c, err := New(memory.NewMain(), 8, 4, 4, 1, LRU, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.Write(0x0010, 0x42); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if c.Stats().Misses != 1 {
		t.Fatalf("Misses = %d; want 1", c.Stats().Misses)
	}
	if c.Lines()[1][0].Present {
		t.Fatalf("write-miss must not allocate a cache entry")
	}
}

func TestResizeRejectsBadGeometry(t *testing.T) {
	c, err := New(memory.NewMain(), 8, 4, 4, 1, LRU, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.Resize(8, 4, 5, 1, LRU, 0); err == nil {
		t.Fatalf("Resize: want error for widths summing to 17")
	}
	if err := c.Resize(8, 1, 7, 4, LRU, 0); err == nil {
		t.Fatalf("Resize: want error for associativity 4 > 2^indexBits(1)=2")
	}
}

func TestLFUDAHitCountsOnWay(t *testing.T) {
	c, err := New(memory.NewMain(), 8, 4, 4, 2, LFUDA, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const addr1, addr2 = 0x0010, 0x1010 // same index, distinct tags, both fit (associativity 2)
	mustRead(t, c, addr1)
	mustRead(t, c, addr2)
	mustRead(t, c, addr1) // first hit on way0; one reference is below aging period 2

	lines := c.Lines()
	if lines[1][0].Hits != 1 {
		t.Fatalf("way0 hits = %d; want 1", lines[1][0].Hits)
	}
}
