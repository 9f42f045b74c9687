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

package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pep9sim/pep9/config"
	"github.com/pep9sim/pep9/cpu"
	"github.com/pep9sim/pep9/memory"
	"github.com/pep9sim/pep9/micro"
)

func newEngine(t *testing.T, microSrc string) (*cpu.Engine, *memory.Main) {
	t.Helper()
	mr := micro.Assemble(microSrc, true)
	require.True(t, mr.Success(), "%v", mr.Diagnostics)

	mem := memory.NewMain()
	e := cpu.NewEngine(mem, config.Default())
	e.LoadMicrocode(mr.Program)
	e.Reset()
	return e, mem
}

func TestLoadByteFromMemoryIntoALo(t *testing.T) {
	src := "MARA=6,MARB=7;MARCk\n" +
		"MemRead=1;\n" +
		"AMux=1,C=1;LoadCk stop\n"
	e, mem := newEngine(t, src)

	mem.Set(0x0010, 0x42)
	e.Current.Regs.PC = 0x0010

	res, err := e.OneISAStep()
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Equal(t, uint16(0x0042), e.Current.Regs.A)
}

func TestMemoryWriteFromRegister(t *testing.T) {
	src := "MARA=6,MARB=7;MARCk\n" +
		"A=1,MemWrite=1;\n" +
		"C=0;LoadCk stop\n"
	e, mem := newEngine(t, src)

	e.Current.Regs.PC = 0x0020
	e.Current.Regs.A = 0x0099

	_, err := e.OneISAStep()
	require.NoError(t, err)

	got, err := mem.Get(0x0020)
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), got)
}

func TestConditionalBranchOnZero(t *testing.T) {
	src := "top: A=1,ALU=14,CSMux=1,C=1;LoadCk,ZCk if uBREQ yes else no\n" +
		"yes: A=1,ALU=9,CSMux=1,C=1;LoadCk stop\n" +
		"no: A=1,ALU=14,CSMux=1,C=1;LoadCk stop\n"
	e, _ := newEngine(t, src)

	_, err := e.OneISAStep()
	require.NoError(t, err)
	// Z is true after the first line clocks A-lo to zero, so the branch
	// takes "yes", which complements zero into 0xFF.
	assert.Equal(t, uint16(0x00FF), e.Current.Regs.A)
}

func TestControlSelfBranchErrors(t *testing.T) {
	src := "loop: A=1;LoadCk goto loop\n"
	e, _ := newEngine(t, src)

	_, err := e.OneMCStep()
	assert.Error(t, err)
}

func TestStepOverReturnsWhenFinished(t *testing.T) {
	src := "A=1;LoadCk stop\n"
	e, _ := newEngine(t, src)
	res, err := e.StepOver()
	require.NoError(t, err)
	assert.True(t, res.Finished)
}
