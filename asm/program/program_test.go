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

package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pep9sim/pep9/asm/program"
)

func TestAssembleOSRequiresOneBurn(t *testing.T) {
	m := program.NewManager()
	_, _, ok := m.AssembleOS("ASLA\n.END\n", false)
	assert.False(t, ok)
}

func TestAssembleOSForcesFFFF(t *testing.T) {
	m := program.NewManager()
	_, _, ok := m.AssembleOS("ASLA\n.BURN 0x8000\n.END\n", true)
	assert.False(t, ok)

	p, _, ok := m.AssembleOS("ASLA\n.BURN 0xFFFF\n.END\n", true)
	require.True(t, ok)
	assert.Equal(t, int32(0xFFFF), p.LastAddress)
}

func TestAssembleUserRejectsBurn(t *testing.T) {
	m := program.NewManager()
	_, _, ok := m.AssembleUser("ASLA\n.BURN 0x8000\n.END\n")
	assert.False(t, ok)
}

func TestProgramAtPrefersUser(t *testing.T) {
	m := program.NewManager()
	_, _, ok := m.AssembleOS("ASLA\n.BURN 0xFFFF\n.END\n", true)
	require.True(t, ok)
	_, _, ok = m.AssembleUser("ASLA\n.END\n")
	require.True(t, ok)

	p, ok := m.ProgramAt(0)
	require.True(t, ok)
	assert.Same(t, m.User, p)
}

func TestCodeAtBinarySearch(t *testing.T) {
	m := program.NewManager()
	p, _, ok := m.AssembleUser("LDWA 0x1234,i\nASLA\n.END\n")
	require.True(t, ok)

	c, ok := p.CodeAt(0)
	require.True(t, ok)
	assert.Equal(t, "LDWA", c.Mnemonic)

	c, ok = p.CodeAt(3)
	require.True(t, ok)
	assert.Equal(t, "ASLA", c.Mnemonic)

	_, ok = p.CodeAt(99)
	assert.False(t, ok)
}
