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
	"github.com/pep9sim/pep9/asm"
	"github.com/pep9sim/pep9/errors"
	"github.com/pep9sim/pep9/micro"
)

// evaluateBranch computes the next µPC for line, per spec.md §4.5's
// branch-function table. stop reports that execution has finished.
func (e *Engine) evaluateBranch(line micro.Line) (next int, stop bool, err error) {
	switch line.BranchFn {
	case micro.BranchStop:
		return e.muPC, true, nil

	case micro.BranchUnconditional:
		return e.resolveTarget(line.TrueTarget)

	case micro.BranchOnN:
		return e.resolveCond(line, e.Current.Status.N)
	case micro.BranchOnZ:
		return e.resolveCond(line, e.Current.Status.Z)
	case micro.BranchOnV:
		return e.resolveCond(line, e.Current.Status.V)
	case micro.BranchOnC:
		return e.resolveCond(line, e.Current.Status.C)
	case micro.BranchOnS:
		return e.resolveCond(line, e.Current.Status.S)

	case micro.BranchGT:
		return e.resolveCond(line, !e.Current.Status.N && !e.Current.Status.Z)
	case micro.BranchGE:
		return e.resolveCond(line, !e.Current.Status.N)
	case micro.BranchEQ:
		return e.resolveCond(line, e.Current.Status.Z)
	case micro.BranchLE:
		return e.resolveCond(line, e.Current.Status.N || e.Current.Status.Z)
	case micro.BranchLT:
		return e.resolveCond(line, e.Current.Status.N)
	case micro.BranchNE:
		return e.resolveCond(line, !e.Current.Status.Z)

	case micro.BranchIsPrefetchValid:
		return e.resolveCond(line, e.prefetchValid)

	case micro.BranchIsUnary:
		opcode, _ := e.Current.Regs.IRParts()
		mnemonic, _, ok := asm.DecodeOpcode(opcode)
		return e.resolveCond(line, ok && asm.IsUnary(mnemonic))

	case micro.BranchIsPCEven:
		return e.resolveCond(line, e.Current.Regs.PC%2 == 0)

	case micro.BranchAddressingModeDecoder:
		opcode, _ := e.Current.Regs.IRParts()
		mnemonic, mode, ok := asm.DecodeOpcode(opcode)
		if !ok {
			return 0, false, errors.Errorf(errors.DecoderUndefined, opcode, "unrecognised opcode")
		}
		addr, ok := e.jumpTables.AMD[mode]
		if !ok || addr == noTarget {
			return 0, false, errors.Errorf(errors.DecoderUndefined, opcode, mnemonic+" addressing mode")
		}
		return addr, false, nil

	case micro.BranchInstructionSpecifierDecoder:
		opcode, _ := e.Current.Regs.IRParts()
		addr := e.jumpTables.ISD[opcode]
		if addr == noTarget {
			return 0, false, errors.Errorf(errors.DecoderUndefined, opcode, "no ISD entry")
		}
		return addr, false, nil
	}

	return e.resolveTarget(line.TrueTarget)
}

func (e *Engine) resolveCond(line micro.Line, cond bool) (int, bool, error) {
	target := line.FalseTarget
	if cond {
		target = line.TrueTarget
	}
	return e.resolveTarget(target)
}

func (e *Engine) resolveTarget(symbol string) (int, bool, error) {
	addr, ok := e.Microcode.AddressOf(symbol)
	if !ok {
		return 0, false, errors.Errorf(errors.UndefinedSymbol, symbol)
	}
	return addr, false, nil
}
