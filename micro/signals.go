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

// Package micro is the microcode assembler: lexer, per-line parser FSM,
// and post-construction linking of a MicrocodeProgram, per spec.md §4.4.
// Grounded on hardware/cpu/instructions' control-signal-table style and
// on original_source/pep9asm/microcode.h's signal/clock enumerations.
package micro

// Signal is a control-signal id understood by the data section, eg.
// "LoadCk", "MemRead", "A", "MARCk". The table is closed (not every
// identifier is a legal signal) so that unknown-signal errors can be
// raised during parsing.
type Signal int

const (
	SigInvalid Signal = iota
	SigLoadCk
	SigC
	SigB
	SigA
	SigMARCk
	SigMARA
	SigMARB
	SigMemRead
	SigMemWrite
	SigAMux
	SigCMux
	SigALU
	SigCSMux
	SigSCk
	SigCCk
	SigVCk
	SigAndZ
	SigZCk
	SigNCk
	SigPValid
	SigPValidCk
)

// Clock is a clock-signal id: which register the current cycle's
// combinational output latches into.
type Clock int

const (
	ClkInvalid Clock = iota
	ClkLoadCk
	ClkMARCk
	ClkSCk
	ClkCCk
	ClkVCk
	ClkZCk
	ClkNCk
	ClkPValidCk
)

var signalNames = map[string]Signal{
	"LoadCk":  SigLoadCk,
	"C":       SigC,
	"B":       SigB,
	"A":       SigA,
	"MARCk":   SigMARCk,
	"MARA":    SigMARA,
	"MARB":    SigMARB,
	"MemRead": SigMemRead,
	"MemWrite": SigMemWrite,
	"AMux":    SigAMux,
	"CMux":    SigCMux,
	"ALU":     SigALU,
	"CSMux":   SigCSMux,
	"S":       SigSCk,
	"C_bit":   SigCCk,
	"V":       SigVCk,
	"AndZ":    SigAndZ,
	"Z":       SigZCk,
	"N":       SigNCk,
	"PValid":  SigPValid,
}

var clockNames = map[string]Clock{
	"LoadCk":   ClkLoadCk,
	"MARCk":    ClkMARCk,
	"SCk":      ClkSCk,
	"CCk":      ClkCCk,
	"VCk":      ClkVCk,
	"ZCk":      ClkZCk,
	"NCk":      ClkNCk,
	"PValidCk": ClkPValidCk,
}

// LookupSignal resolves a signal identifier's text to a Signal, or false
// if the name is not a recognised control signal.
func LookupSignal(name string) (Signal, bool) {
	s, ok := signalNames[name]
	return s, ok
}

// LookupClock resolves a clock identifier's text to a Clock, or false if
// the name is not a recognised clock signal.
func LookupClock(name string) (Clock, bool) {
	c, ok := clockNames[name]
	return c, ok
}
