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

// Errno distinguishes the five error kinds described for the toolchain:
// lexical, syntactic, semantic, resource and runtime.
type Errno int

// list of error numbers
const (
	// Lexical (assembler and microassembler)
	LexBadToken Errno = iota
	LexBadCharLiteral
	LexBadStringLiteral
	LexUnterminatedLiteral

	// Syntactic
	SyntaxUnexpectedToken
	SyntaxMissingOperand
	SyntaxMissingComma
	SyntaxMissingSemicolon
	SyntaxUnknownBranchFunction

	// Semantic (assembler)
	SemUndefinedSymbol
	SemMultiplyDefinedSymbol
	SemIllegalAddressingMode
	SemArgumentOutOfRange
	SemMissingEnd
	SemProgramTooLarge
	SemBurnCountWrong
	SemBurnValueWrong
	SemStructUnresolved
	SemStackEffectMismatch

	// Semantic (microassembler)
	MicroDuplicateSignal
	MicroConflictingMemSignals
	MicroUnknownSignal
	MicroSignalOutOfRange
	MicroUnknownClock
	MicroExtendedSyntaxDisabled

	// Resource
	ResourceCannotOpen
	ResourceCannotWrite

	// Runtime (CPU engine)
	RuntimeMemoryRefused
	RuntimeControlSelfBranch
	RuntimeDecoderUndefined
	RuntimeUnitPostViolation
)
