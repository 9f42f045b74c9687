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

// Package cache wraps a memory.Device with a set-associative cache
// simulation, per spec.md §4.6. It does not hold a second copy of any
// byte: every Read/Write still goes straight through to the wrapped
// device. What it tracks is which (tag, index) pairs would have hit or
// missed in a cache of the configured geometry, and which replacement
// policy would have evicted which entry, the way the original
// cacheview.cpp visualises cache behavior alongside a real memory trace
// rather than actually interposing on the data path.
package cache

import (
	"github.com/pep9sim/pep9/errors"
	"github.com/pep9sim/pep9/memory"
)

// Entry is one way within one cache line.
type Entry struct {
	Tag     uint16
	Present bool
	Hits    uint32
}

type line struct {
	entries []Entry
	policy  Policy
}

// Stats is the hit/miss/eviction telemetry spec.md §4.6 requires.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// CacheMemory decorates a memory.Device with cache telemetry. It
// implements memory.Device itself, so it can be used anywhere a plain
// device is expected.
type CacheMemory struct {
	memory.Device

	tagBits, indexBits, offsetBits uint16
	associativity                  uint16
	kind                           Kind
	agingPeriod                    uint32

	lines []line
	stats Stats
}

// New builds a CacheMemory wrapping dev with the given geometry. The
// widths must sum to 16 and 2^indexBits must be at least associativity,
// mirroring config.Config's own validation (see config.Validate).
func New(dev memory.Device, tagBits, indexBits, offsetBits, associativity uint16, kind Kind, agingPeriod uint32) (*CacheMemory, error) {
	c := &CacheMemory{Device: dev}
	if err := c.Resize(tagBits, indexBits, offsetBits, associativity, kind, agingPeriod); err != nil {
		return nil, err
	}
	return c, nil
}

// Resize reconfigures the cache's geometry and replacement policy,
// rejecting any combination that doesn't satisfy spec.md §4.6's
// "tag+index+offset = 16, 2^index >= associativity" constraint, and
// clearing all cache state the way changing geometry invalidates every
// existing line in the original.
func (c *CacheMemory) Resize(tagBits, indexBits, offsetBits, associativity uint16, kind Kind, agingPeriod uint32) error {
	if int(tagBits)+int(indexBits)+int(offsetBits) != 16 {
		return errors.Errorf(errors.ArgumentOutOfRange, tagBits+indexBits+offsetBits, "cache address width")
	}
	if (uint32(1) << indexBits) < uint32(associativity) {
		return errors.Errorf(errors.ArgumentOutOfRange, associativity, "cache associativity")
	}

	c.tagBits, c.indexBits, c.offsetBits = tagBits, indexBits, offsetBits
	c.associativity = associativity
	c.kind = kind
	c.agingPeriod = agingPeriod

	numLines := 1 << indexBits
	c.lines = make([]line, numLines)
	for i := range c.lines {
		c.lines[i] = line{
			entries: make([]Entry, associativity),
			policy:  NewPolicy(kind, int(associativity), agingPeriod),
		}
	}
	c.stats = Stats{}
	return nil
}

// decompose splits addr into (tag, index) per the configured bit widths.
// The low offsetBits are dropped before the index is taken, so every
// address within one 2^offsetBits-byte block maps to the same tag and
// index.
func (c *CacheMemory) decompose(addr uint16) (tag, index uint16) {
	index = (addr >> c.offsetBits) & ((1 << c.indexBits) - 1)
	tag = addr >> (c.offsetBits + c.indexBits)
	return tag, index
}

// access records a simulated hit or miss for one byte access, per
// spec.md §4.6: on hit the policy is notified and the entry's hit count
// increments; on miss, an empty way is preferred, otherwise the policy
// selects a victim; writes never allocate on a miss.
func (c *CacheMemory) access(addr uint16, kind memory.AccessType) {
	tag, index := c.decompose(addr)
	ln := &c.lines[index]

	for i := range ln.entries {
		if ln.entries[i].Present && ln.entries[i].Tag == tag {
			ln.entries[i].Hits++
			ln.policy.Reference(i)
			c.stats.Hits++
			return
		}
	}

	c.stats.Misses++
	if kind == memory.AccessWrite {
		return
	}

	way := -1
	for i := range ln.entries {
		if !ln.entries[i].Present {
			way = i
			break
		}
	}
	if way == -1 {
		way = ln.policy.Evict()
		c.stats.Evictions++
	}
	ln.entries[way] = Entry{Tag: tag, Present: true}
	ln.policy.Insert(way)
}

// Read records cache telemetry for the access and then reads through to
// the wrapped device.
func (c *CacheMemory) Read(address uint16) (uint8, error) {
	c.access(address, memory.AccessRead)
	return c.Device.Read(address)
}

// Write records cache telemetry for the access and then writes through
// to the wrapped device.
func (c *CacheMemory) Write(address uint16, value uint8) error {
	c.access(address, memory.AccessWrite)
	return c.Device.Write(address, value)
}

// Stats returns the cache's cumulative hit/miss/eviction telemetry.
func (c *CacheMemory) Stats() Stats { return c.stats }

// Lines returns a snapshot of every line's entries, for a visualiser or
// test to inspect without mutating cache state.
func (c *CacheMemory) Lines() [][]Entry {
	out := make([][]Entry, len(c.lines))
	for i, ln := range c.lines {
		out[i] = append([]Entry(nil), ln.entries...)
	}
	return out
}

// Lookahead previews the next n eviction choices for the line addr maps
// to, without mutating any cache state.
func (c *CacheMemory) Lookahead(addr uint16, n int) []int {
	_, index := c.decompose(addr)
	return c.lines[index].policy.Lookahead(n)
}

// ClearCache empties every line and resets telemetry, without touching
// the wrapped device's bytes.
func (c *CacheMemory) ClearCache() {
	for i := range c.lines {
		for j := range c.lines[i].entries {
			c.lines[i].entries[j] = Entry{}
		}
		c.lines[i].policy.Clear()
	}
	c.stats = Stats{}
}
