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

// BranchFunction names how a code line's next µPC is computed, per
// spec.md §3's "Microcode line" variant.
type BranchFunction int

const (
	BranchUnconditional BranchFunction = iota
	BranchOnN
	BranchOnZ
	BranchOnV
	BranchOnC
	BranchOnS
	BranchGT
	BranchGE
	BranchEQ
	BranchLE
	BranchLT
	BranchNE
	BranchIsPrefetchValid
	BranchIsUnary
	BranchIsPCEven
	BranchAddressingModeDecoder
	BranchInstructionSpecifierDecoder
	BranchStop
	BranchAssemblerAssigned
)

var branchNames = map[string]BranchFunction{
	"uBRN":  BranchOnN,
	"uBRZ":  BranchOnZ,
	"uBRV":  BranchOnV,
	"uBRC":  BranchOnC,
	"uBRS":  BranchOnS,
	"uBRGT": BranchGT,
	"uBRGE": BranchGE,
	"uBREQ": BranchEQ,
	"uBRLE": BranchLE,
	"uBRLT": BranchLT,
	"uBRNE": BranchNE,
	"IsPrefetchValid":             BranchIsPrefetchValid,
	"IsUnary":                     BranchIsUnary,
	"IsPCEven":                    BranchIsPCEven,
	"AMD":                         BranchAddressingModeDecoder,
	"ISD":                         BranchInstructionSpecifierDecoder,
}

// LookupBranchFunction resolves a branch-condition identifier, used after
// "if" in extended-syntax microcode.
func LookupBranchFunction(name string) (BranchFunction, bool) {
	b, ok := branchNames[name]
	return b, ok
}

// LineKind distinguishes the five shapes a microcode source line can take.
type LineKind int

const (
	LineBlank LineKind = iota
	LineCommentOnly
	LinePreCondition
	LinePostCondition
	LineCode
)

// SpecKind names what a pre/post-condition clause asserts.
type SpecKind int

const (
	SpecMemory SpecKind = iota
	SpecRegister
	SpecStatusBit
)

// Spec is one clause of a UnitPre/UnitPost condition list, eg.
// "Mem[0x0010]=0xFF", "A=0x0000", or "N=1".
type Spec struct {
	Kind    SpecKind
	Address uint16 // valid when Kind == SpecMemory
	Reg     string // valid when Kind == SpecRegister
	Bit     string // valid when Kind == SpecStatusBit
	Value   uint16
	Width   int // 1 or 2 bytes, for SpecMemory
}

// disabledSignal marks a control-signal slot as not asserted this cycle.
const disabledSignal = -1

// Line is one parsed row of microcode source, per spec.md §3's
// "Microcode line" variant. Exactly one of the *Kind-specific fields is
// meaningful, selected by Kind.
type Line struct {
	Kind LineKind

	Comment    string
	Breakpoint bool
	Symbol     string // user-given label, empty if none

	// LineCode fields.
	Signals     [22]int // indexed by Signal; disabledSignal if not asserted
	Clocks      map[Clock]bool
	BranchFn    BranchFunction
	TrueTarget  string
	FalseTarget string

	// LinePreCondition / LinePostCondition fields.
	Specs []Spec
}

// NewCodeLine returns a Line of LineCode with every signal disabled and
// an empty clock set, ready for signal/clock assignment by the parser.
func NewCodeLine() Line {
	l := Line{Kind: LineCode, Clocks: map[Clock]bool{}}
	for i := range l.Signals {
		l.Signals[i] = disabledSignal
	}
	return l
}

// SignalValue returns the asserted value of s and whether it was
// asserted at all this line.
func (l *Line) SignalValue(s Signal) (int, bool) {
	v := l.Signals[s]
	return v, v != disabledSignal
}

// SetSignal asserts s with the given 8-bit value.
func (l *Line) SetSignal(s Signal, value int) {
	l.Signals[s] = value
}

// IsBranch reports whether this line ends a basic block, ie. its branch
// function is not Unconditional.
func (l *Line) IsBranch() bool {
	return l.Kind == LineCode && l.BranchFn != BranchUnconditional
}
