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

package micro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pep9sim/pep9/micro"
)

func TestAssemblerAssignedRetargetsToNextLine(t *testing.T) {
	src := "A=0x12,B=0x34;LoadCk\nend: C=0x01;LoadCk stop\n"
	r := micro.Assemble(src, true)
	require.True(t, r.Success(), "%v", r.Diagnostics)
	require.Equal(t, 2, r.Program.NumCodeLines())

	first, ok := r.Program.CodeLineAt(0)
	require.True(t, ok)
	assert.Equal(t, micro.BranchUnconditional, first.BranchFn)
	assert.Equal(t, "end", first.TrueTarget)
	assert.Equal(t, "end", first.FalseTarget)

	last, ok := r.Program.CodeLineAt(1)
	require.True(t, ok)
	assert.Equal(t, micro.BranchStop, last.BranchFn)
	assert.Equal(t, "end", last.TrueTarget)
	assert.Equal(t, "end", last.FalseTarget)

	addr, ok := r.Program.AddressOf("end")
	require.True(t, ok)
	assert.Equal(t, 1, addr)
}

func TestLastLineAssemblerAssignedBecomesStop(t *testing.T) {
	src := "A=0x01;LoadCk\n"
	r := micro.Assemble(src, true)
	require.True(t, r.Success(), "%v", r.Diagnostics)

	only, ok := r.Program.CodeLineAt(0)
	require.True(t, ok)
	assert.Equal(t, micro.BranchStop, only.BranchFn)
}

func TestExtendedSyntaxRequiredForGoto(t *testing.T) {
	src := "loop: A=0x01;LoadCk goto loop\n"
	r := micro.Assemble(src, false)
	assert.False(t, r.Success())
}

func TestGotoBuildsUnconditionalBranch(t *testing.T) {
	src := "loop: A=0x01;LoadCk goto loop\n"
	r := micro.Assemble(src, true)
	require.True(t, r.Success(), "%v", r.Diagnostics)

	l, ok := r.Program.CodeLineAt(0)
	require.True(t, ok)
	assert.Equal(t, micro.BranchUnconditional, l.BranchFn)
	assert.Equal(t, "loop", l.TrueTarget)
}

func TestIfElseBranch(t *testing.T) {
	src := "t: A=0x01;LoadCk if uBRGT t else f\nf: B=0x02;LoadCk stop\n"
	r := micro.Assemble(src, true)
	require.True(t, r.Success(), "%v", r.Diagnostics)

	l, ok := r.Program.CodeLineAt(0)
	require.True(t, ok)
	assert.Equal(t, micro.BranchGT, l.BranchFn)
	assert.Equal(t, "t", l.TrueTarget)
	assert.Equal(t, "f", l.FalseTarget)
}

func TestDuplicateSignalFails(t *testing.T) {
	src := "A=0x01,A=0x02;LoadCk\n"
	r := micro.Assemble(src, true)
	assert.False(t, r.Success())
}

func TestMemReadAndWriteTogetherFails(t *testing.T) {
	src := "MemRead=1,MemWrite=1;LoadCk\n"
	r := micro.Assemble(src, true)
	assert.False(t, r.Success())
}

func TestSignalOutOfRangeFails(t *testing.T) {
	src := "A=0x100;LoadCk\n"
	r := micro.Assemble(src, true)
	assert.False(t, r.Success())
}

func TestUnknownSignalFails(t *testing.T) {
	src := "Bogus=0x01;LoadCk\n"
	r := micro.Assemble(src, true)
	assert.False(t, r.Success())
}

func TestUnitPreAndPostSpecsParse(t *testing.T) {
	src := "UnitPre: Mem[0x0010]=0xFF, A=0x0000\n" +
		"A=0x01;LoadCk stop\n" +
		"UnitPost: A=0x00FF\n"
	r := micro.Assemble(src, true)
	require.True(t, r.Success(), "%v", r.Diagnostics)

	ut := micro.NewUnitTest(r.Program)
	require.Len(t, ut.Pre, 2)
	assert.Equal(t, micro.SpecMemory, ut.Pre[0].Kind)
	assert.Equal(t, uint16(0x0010), ut.Pre[0].Address)
	assert.Equal(t, uint16(0xFF), ut.Pre[0].Value)
	assert.Equal(t, micro.SpecRegister, ut.Pre[1].Kind)

	require.Len(t, ut.Post, 1)
	assert.Equal(t, "A", ut.Post[0].Reg)
	assert.Equal(t, uint16(0x00FF), ut.Post[0].Value)
}
