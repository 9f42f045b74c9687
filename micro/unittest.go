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

package micro

import (
	"fmt"

	"github.com/pep9sim/pep9/errors"
)

// Machine is the minimal surface a microcoded engine must expose for
// UnitTest to apply pre-conditions, drive execution, and check
// post-conditions. cpu.Engine implements this interface; keeping it here
// (rather than importing cpu) avoids a package cycle, since cpu imports
// micro for Program and Line.
type Machine interface {
	SetMemoryByte(addr uint16, value byte)
	MemoryByte(addr uint16) byte
	SetRegister(name string, value uint16)
	Register(name string) (uint16, bool)
	SetStatusBit(name string, value bool)
	StatusBit(name string) (bool, bool)
	RunToCompletion() error
}

// UnitTest pairs a program's pre/post-condition lines with the machine
// operations needed to apply and verify them, per spec.md §3's
// "PreCondition(spec list)" / "PostCondition(spec list)" variants.
type UnitTest struct {
	Pre  []Spec
	Post []Spec
}

// NewUnitTest collects every pre/post-condition line's specs from p into
// a single UnitTest.
func NewUnitTest(p *Program) UnitTest {
	var ut UnitTest
	for _, idx := range p.PreIndices {
		ut.Pre = append(ut.Pre, p.Lines[idx].Specs...)
	}
	for _, idx := range p.PostIndices {
		ut.Post = append(ut.Post, p.Lines[idx].Specs...)
	}
	return ut
}

// applySpec pushes one spec's value into m.
func applySpec(m Machine, s Spec) {
	switch s.Kind {
	case SpecMemory:
		m.SetMemoryByte(s.Address, byte(s.Value))
		if s.Width == 2 {
			m.SetMemoryByte(s.Address+1, byte(s.Value>>8))
		}
	case SpecRegister:
		m.SetRegister(s.Reg, s.Value)
	case SpecStatusBit:
		m.SetStatusBit(s.Bit, s.Value != 0)
	}
}

// checkSpec reports whether m currently satisfies s.
func checkSpec(m Machine, s Spec) (bool, string) {
	switch s.Kind {
	case SpecMemory:
		got := uint16(m.MemoryByte(s.Address))
		if s.Width == 2 {
			got |= uint16(m.MemoryByte(s.Address+1)) << 8
		}
		if got != s.Value {
			return false, specMismatch("Mem", s.Value, got)
		}
	case SpecRegister:
		got, ok := m.Register(s.Reg)
		if !ok || got != s.Value {
			return false, specMismatch(s.Reg, s.Value, got)
		}
	case SpecStatusBit:
		got, ok := m.StatusBit(s.Bit)
		gotVal := uint16(0)
		if got {
			gotVal = 1
		}
		if !ok || gotVal != s.Value {
			return false, specMismatch(s.Bit, s.Value, gotVal)
		}
	}
	return true, ""
}

func specMismatch(name string, want, got uint16) string {
	return fmt.Sprintf("%s expected 0x%04X, got 0x%04X", name, want, got)
}

// Run applies every pre-condition to m, runs m to completion, then
// verifies every post-condition, returning the first violation found.
func (ut UnitTest) Run(m Machine) error {
	for _, s := range ut.Pre {
		applySpec(m, s)
	}
	if err := m.RunToCompletion(); err != nil {
		return err
	}
	for _, s := range ut.Post {
		if ok, name := checkSpec(m, s); !ok {
			return errors.Errorf(errors.UnitPostViolation, name)
		}
	}
	return nil
}
