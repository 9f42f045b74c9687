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

package cpu

import "github.com/pep9sim/pep9/micro"

// halfIndex names one addressable 8-bit half of the register file, the
// unit that microcode signals A/B/C/MARA/MARB select between. This
// half-selector scheme is an invented but self-consistent simplification
// of Pep/9's real control-signal wiring (see DESIGN.md): it keeps every
// register individually addressable a byte at a time without modelling
// the literal bus topology of the historical hardware.
type halfIndex int

const (
	halfAHi halfIndex = iota
	halfALo
	halfXHi
	halfXLo
	halfSPHi
	halfSPLo
	halfPCHi
	halfPCLo
	halfT1
	halfOSHi
	halfOSLo
	halfCount
)

func (r RegisterFile) half(i halfIndex) byte {
	switch i {
	case halfAHi:
		return byte(r.A >> 8)
	case halfALo:
		return byte(r.A)
	case halfXHi:
		return byte(r.X >> 8)
	case halfXLo:
		return byte(r.X)
	case halfSPHi:
		return byte(r.SP >> 8)
	case halfSPLo:
		return byte(r.SP)
	case halfPCHi:
		return byte(r.PC >> 8)
	case halfPCLo:
		return byte(r.PC)
	case halfT1:
		return r.T1
	case halfOSHi:
		return byte(r.OS >> 8)
	case halfOSLo:
		return byte(r.OS)
	}
	return 0
}

func (r *RegisterFile) setHalf(i halfIndex, v byte) {
	switch i {
	case halfAHi:
		r.A = uint16(v)<<8 | r.A&0x00FF
	case halfALo:
		r.A = r.A&0xFF00 | uint16(v)
	case halfXHi:
		r.X = uint16(v)<<8 | r.X&0x00FF
	case halfXLo:
		r.X = r.X&0xFF00 | uint16(v)
	case halfSPHi:
		r.SP = uint16(v)<<8 | r.SP&0x00FF
	case halfSPLo:
		r.SP = r.SP&0xFF00 | uint16(v)
	case halfPCHi:
		r.PC = uint16(v)<<8 | r.PC&0x00FF
	case halfPCLo:
		r.PC = r.PC&0xFF00 | uint16(v)
	case halfT1:
		r.T1 = v
	case halfOSHi:
		r.OS = uint16(v)<<8 | r.OS&0x00FF
	case halfOSLo:
		r.OS = r.OS&0xFF00 | uint16(v)
	}
}

// aluResult is the output of one ALU function application: the result
// byte plus the four flags it affects.
type aluResult struct {
	value byte
	n, z, v, c bool
}

// applyALU implements the sixteen ALU functions addressable by the ALU
// control signal. Functions 0-1 pass an operand through unchanged;
// 2-5 are adder variants; 6-9 are bitwise; 10-13 are shift/rotate; 14 is
// the constant zero; 15 complements b. This table is an invented but
// self-consistent simplification of Pep/9's real ALU function table (see
// DESIGN.md).
func applyALU(fn int, a, b byte, carryIn bool) aluResult {
	flags := func(v byte, c bool) aluResult {
		return aluResult{value: v, n: v&0x80 != 0, z: v == 0, c: c}
	}
	switch fn {
	case 0:
		return flags(a, false)
	case 1:
		return flags(b, false)
	case 2:
		sum := uint16(a) + uint16(b)
		r := flags(byte(sum), sum > 0xFF)
		r.v = (a^b)&0x80 == 0 && (a^r.value)&0x80 != 0
		return r
	case 3:
		cin := uint16(0)
		if carryIn {
			cin = 1
		}
		sum := uint16(a) + uint16(b) + cin
		r := flags(byte(sum), sum > 0xFF)
		r.v = (a^b)&0x80 == 0 && (a^r.value)&0x80 != 0
		return r
	case 4:
		diff := int(a) - int(b)
		r := flags(byte(diff), diff >= 0)
		r.v = (a^b)&0x80 != 0 && (a^r.value)&0x80 != 0
		return r
	case 5:
		borrow := 0
		if !carryIn {
			borrow = 1
		}
		diff := int(a) - int(b) - borrow
		r := flags(byte(diff), diff >= 0)
		r.v = (a^b)&0x80 != 0 && (a^r.value)&0x80 != 0
		return r
	case 6:
		return flags(a&b, false)
	case 7:
		return flags(a|b, false)
	case 8:
		return flags(a^b, false)
	case 9:
		return flags(^a, false)
	case 10:
		c := a&0x80 != 0
		return flags(a<<1, c)
	case 11:
		c := a&0x01 != 0
		return flags((a&0x80)|(a>>1), c)
	case 12:
		c := a&0x80 != 0
		v := a << 1
		if carryIn {
			v |= 0x01
		}
		return flags(v, c)
	case 13:
		c := a&0x01 != 0
		v := a >> 1
		if carryIn {
			v |= 0x80
		}
		return flags(v, c)
	case 14:
		return flags(0, false)
	case 15:
		return flags(^b, false)
	}
	return flags(a, false)
}

// applyLine clocks one microcode code line's signals through the
// simulated data path, per spec.md §4.5 step 2: "copy its signals/clocks
// into the data section; clock the data section". Returns an error if a
// memory access fails.
func (e *Engine) applyLine(line micro.Line) error {
	get := func(s micro.Signal) int {
		v, _ := line.SignalValue(s)
		return v
	}
	asserted := func(s micro.Signal) bool {
		_, ok := line.SignalValue(s)
		return ok
	}

	var opA byte
	if v, ok := line.SignalValue(micro.SigAMux); ok && v != 0 {
		opA = e.mdr
	} else if asserted(micro.SigA) {
		opA = e.Current.Regs.half(halfIndex(get(micro.SigA)))
	}

	var opB byte
	if asserted(micro.SigB) {
		opB = e.Current.Regs.half(halfIndex(get(micro.SigB)))
	}

	alu := applyALU(get(micro.SigALU), opA, opB, e.Current.Status.C)

	cBus := opA
	if v, ok := line.SignalValue(micro.SigCSMux); ok && v != 0 {
		cBus = alu.value
	}

	if asserted(micro.SigMARA) && asserted(micro.SigMARB) && line.Clocks[micro.ClkMARCk] {
		hi := e.Current.Regs.half(halfIndex(get(micro.SigMARA)))
		lo := e.Current.Regs.half(halfIndex(get(micro.SigMARB)))
		e.mar = uint16(hi)<<8 | uint16(lo)
	}

	if v, ok := line.SignalValue(micro.SigMemRead); ok && v != 0 {
		b, err := e.Memory.Read(e.mar)
		if err != nil {
			return err
		}
		e.mdr = b
	}
	if v, ok := line.SignalValue(micro.SigMemWrite); ok && v != 0 {
		if err := e.Memory.Write(e.mar, cBus); err != nil {
			return err
		}
	}

	if line.Clocks[micro.ClkLoadCk] && asserted(micro.SigC) {
		e.Current.Regs.setHalf(halfIndex(get(micro.SigC)), cBus)
	}

	if line.Clocks[micro.ClkNCk] {
		e.Current.Status.N = alu.n
	}
	if line.Clocks[micro.ClkZCk] {
		if v, ok := line.SignalValue(micro.SigAndZ); ok && v != 0 {
			e.Current.Status.Z = e.Current.Status.Z && alu.z
		} else {
			e.Current.Status.Z = alu.z
		}
	}
	if line.Clocks[micro.ClkVCk] {
		e.Current.Status.V = alu.v
	}
	if line.Clocks[micro.ClkCCk] {
		e.Current.Status.C = alu.c
	}
	if line.Clocks[micro.ClkSCk] {
		e.Current.Status.S = alu.n
	}
	if line.Clocks[micro.ClkPValidCk] {
		if v, ok := line.SignalValue(micro.SigPValid); ok {
			e.prefetchValid = v != 0
		}
	}

	return nil
}
