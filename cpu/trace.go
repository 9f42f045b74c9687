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

import "github.com/pep9sim/pep9/asm"

// Frame is one call-stack entry: the return address pushed by CALL, and
// whether it represents a CALL malloc heap allocation rather than a
// normal subroutine frame.
type Frame struct {
	ReturnAddr uint16
	IsHeap     bool
	Bytes      uint16
}

// StackModel is the symbolic call-stack/heap trace maintained as CALL
// and RET instructions retire, per spec.md §1's "maintains a symbolic
// stack/heap trace model correlated with the running program". SUBSP
// and ADDSP leave it unchanged: local and parameter frames are not
// modelled.
type StackModel struct {
	Frames    []Frame
	HeapBytes uint16
}

// Depth reports the current call-stack depth.
func (s StackModel) Depth() int {
	return len(s.Frames)
}

// onInstructionBoundary updates the call-depth/stack-trace model for
// the instruction that just retired (its start address is e.Start.Regs.PC,
// captured before it began executing). CALL pushes a frame and RET pops
// one; SUBSP and ADDSP change nothing; CALL malloc is recognised from
// the attached program's trace-tag analysis and flips the
// heap-allocated flag.
func (e *Engine) onInstructionBoundary() {
	if e.AsmProgram == nil {
		return
	}
	c, ok := e.AsmProgram.CodeAt(int32(e.Start.Regs.PC))
	if !ok {
		return
	}

	e.trapActive = asm.IsTrap(c.Mnemonic)

	switch c.Mnemonic {
	case "CALL":
		frame := Frame{ReturnAddr: e.Start.Regs.PC + 3}
		if c.Arg.Kind == asm.ArgSymbolRef && c.Arg.SymbolName() == "malloc" {
			frame.IsHeap = true
			if e.AsmProgram.Static != nil {
				frame.Bytes = e.AsmProgram.Static.StackEffectSize(uint16(e.Start.Regs.PC))
				e.Stack.HeapBytes += frame.Bytes
			}
		}
		e.Stack.Frames = append(e.Stack.Frames, frame)

	case "RET":
		if len(e.Stack.Frames) > 0 {
			e.Stack.Frames = e.Stack.Frames[:len(e.Stack.Frames)-1]
		}

	case "SUBSP", "ADDSP":
		// local-variable reservation/release; tracked via the program's
		// stack-effect annotations rather than the live stack model,
		// since SUBSP/ADDSP don't push/pop call frames.
	}
}

// TrapActive reports whether the instruction that just retired switched
// the machine into OS trap context, mirroring the original engine's
// isTrapped flag.
func (e *Engine) TrapActive() bool {
	return e.trapActive
}

// StepOver runs one ISA instruction, continuing past any CALL until
// control returns to the same call depth it started at.
func (e *Engine) StepOver() (StepResult, error) {
	startDepth := e.Stack.Depth()
	for {
		res, err := e.OneISAStep()
		if err != nil || res.Finished || res.MicroBreakpointHit || res.AsmBreakpointHit {
			return res, err
		}
		if e.Stack.Depth() <= startDepth {
			return res, nil
		}
	}
}

// StepInto runs exactly one ISA instruction, descending into any CALL.
func (e *Engine) StepInto() (StepResult, error) {
	return e.OneISAStep()
}

// StepOut runs ISA instructions until the call-stack depth drops below
// its value when StepOut was invoked.
func (e *Engine) StepOut() (StepResult, error) {
	startDepth := e.Stack.Depth()
	for {
		res, err := e.OneISAStep()
		if err != nil || res.Finished || res.MicroBreakpointHit || res.AsmBreakpointHit {
			return res, err
		}
		if e.Stack.Depth() < startDepth {
			return res, nil
		}
	}
}

// Machine interface, satisfying micro.Machine for UnitTest.Run.

func (e *Engine) SetMemoryByte(addr uint16, value byte) {
	_ = e.Memory.Set(addr, value)
}

func (e *Engine) MemoryByte(addr uint16) byte {
	v, _ := e.Memory.Get(addr)
	return v
}

func (e *Engine) SetRegister(name string, value uint16) {
	e.Current.Regs.set(name, value)
}

func (e *Engine) Register(name string) (uint16, bool) {
	return e.Current.Regs.get(name)
}

func (e *Engine) SetStatusBit(name string, value bool) {
	e.Current.Status.set(name, value)
}

func (e *Engine) StatusBit(name string) (bool, bool) {
	return e.Current.Status.get(name)
}
