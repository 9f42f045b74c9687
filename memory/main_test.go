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

package memory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pep9sim/pep9/memory"
)

func TestReadWriteRoundTrip(t *testing.T) {
	m := memory.NewMain()
	assert.NoError(t, m.Write(0x10, 0x42))
	v, err := m.Read(0x10)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x42), v)
}

func TestGetSetBypassesReadTracking(t *testing.T) {
	m := memory.NewMain()
	m.Set(0x20, 0x99)
	v, _ := m.Get(0x20)
	assert.Equal(t, uint8(0x99), v)

	assert.True(t, m.BytesSet()[0x20])
	assert.False(t, m.BytesRead()[0x20])
}

func TestTrackingSets(t *testing.T) {
	m := memory.NewMain()
	m.Read(1)
	m.Write(2, 0)
	m.Set(3, 0)

	assert.True(t, m.BytesRead()[1])
	assert.True(t, m.BytesWritten()[2])
	assert.True(t, m.BytesSet()[3])

	m.ClearTracking()
	assert.False(t, m.BytesRead()[1])
	assert.False(t, m.BytesWritten()[2])
	assert.False(t, m.BytesSet()[3])
}

func TestClearZeroesBytes(t *testing.T) {
	m := memory.NewMain()
	m.Write(5, 0xFF)
	m.Clear()
	v, _ := m.Get(5)
	assert.Equal(t, uint8(0), v)
}

func TestLoadImage(t *testing.T) {
	m := memory.NewMain()
	m.LoadImage([]byte{0x0A, 0x0B, 0x0C})
	v0, _ := m.Get(0)
	v2, _ := m.Get(2)
	assert.Equal(t, uint8(0x0A), v0)
	assert.Equal(t, uint8(0x0C), v2)
}

func TestRaiseError(t *testing.T) {
	m := memory.NewMain()
	had, _ := m.HadError()
	assert.False(t, had)

	m.RaiseError(0x100, errors.New("chip refused"))
	had, msg := m.HadError()
	assert.True(t, had)
	assert.Contains(t, msg, "0100")
}
