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

import (
	"github.com/pep9sim/pep9/asm/program"
	"github.com/pep9sim/pep9/config"
	"github.com/pep9sim/pep9/errors"
	"github.com/pep9sim/pep9/memory"
	"github.com/pep9sim/pep9/micro"
)

// StepResult reports what happened during one call to OneMCStep.
type StepResult struct {
	MicroAddr         int
	InstructionEnded  bool
	MicroBreakpointHit bool
	AsmBreakpointHit   bool
	Finished           bool
}

// Engine is the microcoded CPU described by spec.md §4.5: it drives the
// simulated register file and memory device one microcode line at a
// time, dispatching addressing-mode and instruction-specifier decode
// through 256-entry jump tables, and maintains the symbolic call-depth
// and heap trace model as ISA instructions complete.
type Engine struct {
	Memory    memory.Device
	Microcode *micro.Program
	AsmProgram *program.Program

	cfg config.Config

	jumpTables JumpTables
	startLine  int
	muPC       int

	Start   Snapshot
	Current Snapshot

	Cycle    uint64
	ISACount uint64

	prefetchValid bool
	mar           uint16
	mdr           byte

	microBreakpoints map[int]bool

	MicroBreakpointHit bool
	AsmBreakpointHit   bool
	ExecutionFinished  bool

	ControlError error
	DataError    error
	MemoryError  error

	Stack StackModel

	trapActive bool
}

// NewEngine constructs an Engine over mem, with no microcode loaded yet.
func NewEngine(mem memory.Device, cfg config.Config) *Engine {
	return &Engine{
		Memory:           mem,
		cfg:              cfg,
		microBreakpoints: map[int]bool{},
	}
}

// LoadMicrocode installs mp as the running microprogram, resolving its
// jump tables and resetting µPC to the first code line (the engine's
// fetch-dispatch entry point, by convention).
func (e *Engine) LoadMicrocode(mp *micro.Program) {
	e.Microcode = mp
	e.jumpTables = BuildJumpTables(mp)
	e.startLine = 0
	e.muPC = e.startLine
}

// LoadProgram attaches the assembled user/OS program whose trace-tag
// analysis feeds the stack/heap model.
func (e *Engine) LoadProgram(p *program.Program) {
	e.AsmProgram = p
}

// Reset clears registers, status, and execution state, leaving µPC at
// the engine's fetch-dispatch entry point.
func (e *Engine) Reset() {
	e.Current = Snapshot{}
	e.Start = Snapshot{}
	e.Cycle = 0
	e.ISACount = 0
	e.prefetchValid = false
	e.mar = 0
	e.mdr = 0
	e.muPC = e.startLine
	e.MicroBreakpointHit = false
	e.AsmBreakpointHit = false
	e.ExecutionFinished = false
	e.ControlError = nil
	e.DataError = nil
	e.MemoryError = nil
	e.Stack = StackModel{}
}

// SetMicroBreakpoint toggles a breakpoint on a microcode address.
func (e *Engine) SetMicroBreakpoint(addr int, on bool) {
	if on {
		e.microBreakpoints[addr] = true
	} else {
		delete(e.microBreakpoints, addr)
	}
}

// OneMCStep executes exactly one microcode line, per spec.md §4.5's
// six-step "Single step" description.
func (e *Engine) OneMCStep() (StepResult, error) {
	if e.ExecutionFinished {
		return StepResult{Finished: true}, nil
	}

	if e.muPC == e.startLine {
		e.flatten()
	}

	line, ok := e.Microcode.CodeLineAt(e.muPC)
	if !ok {
		e.ControlError = errors.Errorf(errors.DecoderUndefined, e.muPC, "µPC out of range")
		return StepResult{}, e.ControlError
	}

	if err := e.applyLine(line); err != nil {
		e.MemoryError = errors.Errorf(errors.MemoryRefused, e.mar, err)
		return StepResult{}, e.MemoryError
	}

	next, stop, err := e.evaluateBranch(line)
	if err != nil {
		e.ControlError = err
		return StepResult{}, err
	}

	e.Cycle++

	if stop {
		e.ExecutionFinished = true
		return StepResult{MicroAddr: e.muPC, Finished: true}, nil
	}

	if next == e.muPC {
		e.ControlError = errors.Errorf(errors.ControlSelfBranch)
		return StepResult{}, e.ControlError
	}

	result := StepResult{MicroAddr: next}
	instructionEnded := next == e.startLine
	e.muPC = next

	if instructionEnded {
		e.onInstructionBoundary()
		e.ISACount++
		result.InstructionEnded = true
		if e.AsmProgram != nil && e.AsmProgram.Breakpoints() != nil {
			for _, bp := range e.AsmProgram.Breakpoints() {
				if bp == e.Current.Regs.PC {
					e.AsmBreakpointHit = true
					result.AsmBreakpointHit = true
				}
			}
		}
	}

	if e.microBreakpoints[e.muPC] {
		e.MicroBreakpointHit = true
		result.MicroBreakpointHit = true
	}

	return result, nil
}

// OneISAStep repeats OneMCStep until µPC returns to the fetch-dispatch
// entry point (one complete ISA instruction), stopping early on error or
// breakpoint.
func (e *Engine) OneISAStep() (StepResult, error) {
	for {
		res, err := e.OneMCStep()
		if err != nil || res.Finished || res.InstructionEnded || res.MicroBreakpointHit {
			return res, err
		}
	}
}

// OnRun repeats OneMCStep until error, finished, or a breakpoint,
// processing a UI yield every RunSliceSize cycles so a host loop remains
// responsive while execution still guarantees forward progress.
func (e *Engine) OnRun(yield func()) error {
	sliceCount := 0
	for {
		if sliceCount == 0 {
			e.MicroBreakpointHit = false
			e.AsmBreakpointHit = false
		}
		res, err := e.OneMCStep()
		if err != nil {
			return err
		}
		if res.Finished || res.MicroBreakpointHit || res.AsmBreakpointHit {
			return nil
		}
		sliceCount++
		if e.cfg.RunSliceSize > 0 && sliceCount%e.cfg.RunSliceSize == 0 {
			sliceCount = 0
			if yield != nil {
				yield()
			}
		}
	}
}

// RunToCompletion drives the engine with OnRun and no yield callback,
// satisfying micro.Machine for UnitTest.Run.
func (e *Engine) RunToCompletion() error {
	return e.OnRun(nil)
}
