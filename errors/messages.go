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

package errors

// error messages
const (
	// lexical
	BadToken            = "line %d: %s"
	BadCharLiteral       = "malformed character literal: %q"
	BadStringLiteral     = "malformed string literal: %q"
	UnterminatedLiteral  = "unterminated literal: %q"

	// syntactic
	UnexpectedToken       = "unexpected token: %q"
	MissingOperand        = "mnemonic %q requires an operand"
	MissingComma          = "expected ',' before %q"
	MissingSemicolon      = "expected ';' before clock signals"
	UnknownBranchFunction = "unrecognised branch function: %q"

	// semantic - assembler
	UndefinedSymbol       = "undefined symbol: %s"
	MultiplyDefinedSymbol = "multiply defined symbol: %s"
	IllegalAddressingMode = "illegal addressing mode %s for mnemonic %s"
	ArgumentOutOfRange    = "argument %v out of range for %s"
	MissingEnd            = "missing .END directive"
	ProgramTooLarge       = "program exceeds 65535 bytes (%d)"
	BurnCountWrong        = "expected %d .BURN directive(s), found %d"
	BurnValueWrong        = "expected .BURN value of 0x%04X, found 0x%04X"
	StructUnresolved      = "could not resolve struct member list for %s"
	StackEffectMismatch   = "stack-effect trace tags sum to %d bytes, operand is %d"

	// semantic - microassembler
	DuplicateSignal        = "signal %s specified more than once"
	ConflictingMemSignals   = "MemRead and MemWrite cannot both be asserted"
	UnknownSignal           = "unrecognised control signal: %s"
	SignalOutOfRange        = "value %d out of range for signal %s"
	UnknownClock            = "unrecognised clock signal: %s"
	ExtendedSyntaxDisabled  = "symbolic branches are not enabled for this microprogram"

	// resource
	CannotOpen  = "cannot open %s: %v"
	CannotWrite = "cannot write %s: %v"

	// runtime
	MemoryRefused     = "memory device refused access at address 0x%04X: %v"
	ControlSelfBranch = "uInstructions cannot branch to themselves"
	DecoderUndefined  = "decoder entry for 0x%02X is undefined: %v"
	UnitPostViolation = "unit test postcondition failed: %s"

	// assembly / CLI wrapping
	AssemblyError  = "assembly error: %v"
	MicroasmError  = "microcode assembly error: %v"
	EngineError    = "cpu engine error: %v"
	CLIError       = "%v"
)
