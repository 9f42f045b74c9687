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
	"strings"

	"github.com/pep9sim/pep9/errors"
)

// parseLine turns one microcode source line into a Line, per spec.md
// §4.4's per-line FSM. extended gates the symbolic if/goto/AMD/ISD
// syntax; when false, those tokens are rejected.
func parseLine(toks []Token, lineNo int, extended bool) (Line, error) {
	if len(toks) == 0 {
		return Line{Kind: LineBlank}, nil
	}

	if len(toks) == 1 && toks[0].Kind == MTokComment {
		return Line{Kind: LineCommentOnly, Comment: toks[0].Text}, nil
	}

	if toks[0].Kind == MTokUnitPre || toks[0].Kind == MTokUnitPost {
		specs, comment, err := parseSpecs(toks[1:], lineNo)
		if err != nil {
			return Line{}, err
		}
		kind := LinePreCondition
		if toks[0].Kind == MTokUnitPost {
			kind = LinePostCondition
		}
		return Line{Kind: kind, Specs: specs, Comment: comment}, nil
	}

	return parseCodeLine(toks, lineNo, extended)
}

// parseSpecs parses a comma-separated list of pre/post-condition clauses.
func parseSpecs(toks []Token, lineNo int) ([]Spec, string, error) {
	var specs []Spec
	var comment string
	i := 0
	for i < len(toks) {
		if toks[i].Kind == MTokComment {
			comment = toks[i].Text
			i++
			continue
		}
		spec, consumed, err := parseOneSpec(toks[i:], lineNo)
		if err != nil {
			return nil, "", err
		}
		specs = append(specs, spec)
		i += consumed
		if i < len(toks) && toks[i].Kind == MTokComma {
			i++
		}
	}
	return specs, comment, nil
}

// parseOneSpec parses "Mem[0xNNNN]=0xNN[NN]", "REG=0xNNNN" or "FLAG=0|1"
// starting at toks[0], and returns how many tokens it consumed.
func parseOneSpec(toks []Token, lineNo int) (Spec, int, error) {
	if len(toks) == 0 {
		return Spec{}, 0, errors.Errorf(errors.UnexpectedToken, "<end of line>")
	}

	if toks[0].Kind == MTokIdentifier && toks[0].Text == "Mem" {
		if len(toks) < 6 || toks[1].Kind != MTokLBracket || toks[2].Kind != MTokHex ||
			toks[3].Kind != MTokRBracket || toks[4].Kind != MTokEquals {
			return Spec{}, 0, errors.Errorf(errors.UnexpectedToken, "Mem[...]=... specification")
		}
		valTok := toks[5]
		if valTok.Kind != MTokHex && valTok.Kind != MTokDecimal {
			return Spec{}, 0, errors.Errorf(errors.UnexpectedToken, valTok.Text)
		}
		width := 1
		if valTok.Kind == MTokHex && len(valTok.Text) > len("0xNN") {
			width = 2
		}
		return Spec{
			Kind:    SpecMemory,
			Address: uint16(toks[2].Value),
			Value:   uint16(valTok.Value),
			Width:   width,
		}, 6, nil
	}

	if len(toks) < 3 || toks[0].Kind != MTokIdentifier || toks[1].Kind != MTokEquals {
		return Spec{}, 0, errors.Errorf(errors.UnexpectedToken, toks[0].Text)
	}
	name := toks[0].Text
	valTok := toks[2]
	if valTok.Kind != MTokHex && valTok.Kind != MTokDecimal {
		return Spec{}, 0, errors.Errorf(errors.UnexpectedToken, valTok.Text)
	}
	if isStatusBitName(name) {
		return Spec{Kind: SpecStatusBit, Bit: name, Value: uint16(valTok.Value)}, 3, nil
	}
	return Spec{Kind: SpecRegister, Reg: name, Value: uint16(valTok.Value)}, 3, nil
}

func isStatusBitName(name string) bool {
	switch name {
	case "N", "Z", "V", "C", "S":
		return true
	}
	return false
}

// parseCodeLine parses "[label:] [@] signal=value, ... ; clock, ... branch // comment".
func parseCodeLine(toks []Token, lineNo int, extended bool) (Line, error) {
	line := NewCodeLine()
	i := 0

	if i < len(toks) && toks[i].Kind == MTokSymbolDef {
		line.Symbol = toks[i].Text
		i++
	}
	if i < len(toks) && toks[i].Kind == MTokBreakpoint {
		line.Breakpoint = true
		i++
	}

	seen := map[Signal]bool{}
	sawMemRead, sawMemWrite := false, false

	// signal=value, signal=value, ...
	for i < len(toks) && toks[i].Kind != MTokSemicolon && !isBranchStart(toks[i]) && toks[i].Kind != MTokComment {
		if i+2 >= len(toks) || toks[i].Kind != MTokIdentifier || toks[i+1].Kind != MTokEquals {
			return Line{}, errors.Errorf(errors.MissingComma, toks[i].Text)
		}
		name := toks[i].Text
		valTok := toks[i+2]
		if valTok.Kind != MTokHex && valTok.Kind != MTokDecimal {
			return Line{}, errors.Errorf(errors.UnexpectedToken, valTok.Text)
		}
		sig, ok := LookupSignal(name)
		if !ok {
			return Line{}, errors.Errorf(errors.UnknownSignal, name)
		}
		if seen[sig] {
			return Line{}, errors.Errorf(errors.DuplicateSignal, name)
		}
		seen[sig] = true
		if valTok.Value < 0 || valTok.Value > 0xFF {
			return Line{}, errors.Errorf(errors.SignalOutOfRange, valTok.Value, name)
		}
		if sig == SigMemRead {
			sawMemRead = true
		}
		if sig == SigMemWrite {
			sawMemWrite = true
		}
		line.SetSignal(sig, int(valTok.Value))
		i += 3

		if i < len(toks) && toks[i].Kind == MTokComma {
			i++
			continue
		}
		break
	}
	if sawMemRead && sawMemWrite {
		return Line{}, errors.Errorf(errors.ConflictingMemSignals)
	}

	if i < len(toks) && toks[i].Kind == MTokSemicolon {
		i++
		for i < len(toks) && !isBranchStart(toks[i]) && toks[i].Kind != MTokComment {
			if toks[i].Kind != MTokIdentifier {
				return Line{}, errors.Errorf(errors.UnexpectedToken, toks[i].Text)
			}
			clk, ok := LookupClock(toks[i].Text)
			if !ok {
				return Line{}, errors.Errorf(errors.UnknownClock, toks[i].Text)
			}
			line.Clocks[clk] = true
			i++
			if i < len(toks) && toks[i].Kind == MTokComma {
				i++
				continue
			}
			break
		}
	}

	if i < len(toks) && isBranchStart(toks[i]) {
		if !extended && isSymbolicBranchStart(toks[i]) {
			return Line{}, errors.Errorf(errors.ExtendedSyntaxDisabled)
		}
		var err error
		i, err = parseBranch(&line, toks, i)
		if err != nil {
			return Line{}, err
		}
	} else {
		line.BranchFn = BranchAssemblerAssigned
	}

	if i < len(toks) && toks[i].Kind == MTokComment {
		line.Comment = toks[i].Text
		i++
	}
	if i != len(toks) {
		return Line{}, errors.Errorf(errors.UnexpectedToken, toks[i].Text)
	}
	return line, nil
}

func isBranchStart(t Token) bool {
	switch t.Kind {
	case MTokIf, MTokGoto, MTokStop, MTokAMD, MTokISD:
		return true
	}
	return false
}

// isSymbolicBranchStart reports whether t begins one of the branch forms
// gated behind extended mode: if, goto, AMD or ISD. stop is accepted in
// basic microcode too.
func isSymbolicBranchStart(t Token) bool {
	return t.Kind == MTokIf || t.Kind == MTokGoto || t.Kind == MTokAMD || t.Kind == MTokISD
}

// parseBranch parses one of: "goto L", "if Fn L else L", "stop", "AMD",
// "ISD", starting at toks[i].
func parseBranch(line *Line, toks []Token, i int) (int, error) {
	switch toks[i].Kind {
	case MTokStop:
		line.BranchFn = BranchStop
		return i + 1, nil

	case MTokAMD:
		line.BranchFn = BranchAddressingModeDecoder
		return i + 1, nil

	case MTokISD:
		line.BranchFn = BranchInstructionSpecifierDecoder
		return i + 1, nil

	case MTokGoto:
		if i+1 >= len(toks) || toks[i+1].Kind != MTokIdentifier {
			return 0, errors.Errorf(errors.UnexpectedToken, "label after goto")
		}
		line.BranchFn = BranchUnconditional
		line.TrueTarget = toks[i+1].Text
		line.FalseTarget = toks[i+1].Text
		return i + 2, nil

	case MTokIf:
		if i+1 >= len(toks) || toks[i+1].Kind != MTokIdentifier {
			return 0, errors.Errorf(errors.UnknownBranchFunction, "<missing>")
		}
		fnName := toks[i+1].Text
		fn, ok := LookupBranchFunction(fnName)
		if !ok {
			return 0, errors.Errorf(errors.UnknownBranchFunction, fnName)
		}
		if i+2 >= len(toks) || toks[i+2].Kind != MTokIdentifier {
			return 0, errors.Errorf(errors.UnexpectedToken, "true-branch label")
		}
		trueLabel := toks[i+2].Text
		j := i + 3
		falseLabel := trueLabel
		if j < len(toks) && toks[j].Kind == MTokElse {
			if j+1 >= len(toks) || toks[j+1].Kind != MTokIdentifier {
				return 0, errors.Errorf(errors.UnexpectedToken, "false-branch label")
			}
			falseLabel = toks[j+1].Text
			j += 2
		}
		line.BranchFn = fn
		line.TrueTarget = trueLabel
		line.FalseTarget = falseLabel
		return j, nil
	}
	return 0, errors.Errorf(errors.UnexpectedToken, toks[i].Text)
}

// ParseSource splits text into lines and parses each one independently,
// returning every line's Diagnostic (already carrying its line number)
// alongside the parsed lines.
func ParseSource(text string, extended bool) ([]Line, []Diagnostic) {
	rawLines := strings.Split(text, "\n")
	var lines []Line
	var diags []Diagnostic
	for idx, raw := range rawLines {
		lineNo := idx + 1
		if strings.TrimSpace(raw) == "" {
			lines = append(lines, Line{Kind: LineBlank})
			continue
		}
		toks, err := mLexLine(raw, lineNo)
		if err != nil {
			diags = append(diags, Diagnostic{Line: lineNo, Message: err.Error()})
			continue
		}
		line, err := parseLine(toks, lineNo, extended)
		if err != nil {
			diags = append(diags, Diagnostic{Line: lineNo, Message: err.Error()})
			continue
		}
		lines = append(lines, line)
	}
	return lines, diags
}
