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

package asm

import (
	"github.com/pep9sim/pep9/errors"
)

// parseLine turns one line's tokens into an AsmCode, seeded by the first
// token as the per-line FSM described in spec.md §4.2. It does not
// resolve symbol references or assign addresses; that is the job of the
// two-pass driver in assembler.go.
func parseLine(toks []Token, lineNo int) (Code, error) {
	code := Code{SourceLine: lineNo, Address: -1, EmitObjectCode: true}

	if len(toks) == 0 {
		code.Kind = KindBlank
		return code, nil
	}

	pos := 0
	if toks[pos].Kind == TokSymbolDef {
		code.HasSymbol = true
		code.ADDRSSSymbol = toks[pos].Text // stash the defining name; assembler.go moves it
		pos++
	}
	if pos >= len(toks) || toks[pos].Kind == TokComment {
		code.Kind = KindCommentOnly
		if pos < len(toks) {
			code.Comment = toks[pos].Text
			code.attachTraceTag()
		}
		if !code.HasSymbol {
			code.Kind = KindCommentOnly
		}
		return code, nil
	}

	tok := toks[pos]
	switch tok.Kind {
	case TokDotCommand:
		return parseDotCommand(code, toks, pos, lineNo)
	case TokIdentifier:
		return parseMnemonicLine(code, toks, pos, lineNo)
	default:
		return Code{}, errors.Errorf(errors.UnexpectedToken, tok.Text)
	}
}

func trailingComment(toks []Token, pos int) string {
	if pos < len(toks) && toks[pos].Kind == TokComment {
		return toks[pos].Text
	}
	return ""
}

func parseMnemonicLine(code Code, toks []Token, pos int, lineNo int) (Code, error) {
	mnemonic := toks[pos].Text
	info, ok := Mnemonics[mnemonic]
	if !ok {
		return Code{}, errors.Errorf(errors.UnexpectedToken, mnemonic)
	}
	pos++
	code.Mnemonic = mnemonic

	if info.unary {
		code.Kind = KindUnary
		code.Comment = trailingComment(toks, pos)
		code.attachTraceTag()
		return code, nil
	}

	code.Kind = KindNonUnary
	if pos >= len(toks) || toks[pos].Kind == TokComment {
		return Code{}, errors.Errorf(errors.MissingOperand, mnemonic)
	}

	arg, newPos, err := parseArgument(toks, pos, lineNo)
	if err != nil {
		return Code{}, err
	}
	pos = newPos
	code.Arg = arg

	mode := ModeNone
	if pos < len(toks) && toks[pos].Kind == TokComma {
		pos++
		if pos >= len(toks) || toks[pos].Kind != TokMode {
			return Code{}, errors.Errorf(errors.MissingComma, mnemonic)
		}
		mode = toks[pos].Mode
		pos++
	} else if info.isBranch {
		mode = ModeImmediate
	}

	if _, ok := info.opcodeFor(mode); !ok {
		return Code{}, errors.Errorf(errors.IllegalAddressingMode, mode, mnemonic)
	}
	code.Mode = mode
	code.Comment = trailingComment(toks, pos)
	code.attachTraceTag()
	return code, nil
}

func parseArgument(toks []Token, pos int, lineNo int) (Argument, int, error) {
	tok := toks[pos]
	switch tok.Kind {
	case TokDecimal:
		return Decimal(tok.Value), pos + 1, nil
	case TokHex:
		return Hex(tok.Value), pos + 1, nil
	case TokChar:
		return Char(tok.Value, tok.Text), pos + 1, nil
	case TokString:
		return String(tok.Value, tok.Text), pos + 1, nil
	case TokIdentifier:
		return SymbolRef(tok.Text), pos + 1, nil
	default:
		return Argument{}, pos, errors.Errorf(errors.UnexpectedToken, tok.Text)
	}
}

func parseDotCommand(code Code, toks []Token, pos int, lineNo int) (Code, error) {
	directive := toks[pos].Text
	pos++

	hasArg := pos < len(toks) && toks[pos].Kind != TokComment
	var arg Argument
	var err error
	if hasArg {
		arg, pos, err = parseArgument(toks, pos, lineNo)
		if err != nil {
			return Code{}, err
		}
	}

	switch directive {
	case ".ADDRSS":
		if arg.Kind != ArgSymbolRef {
			return Code{}, errors.Errorf(errors.UnexpectedToken, ".ADDRSS requires a symbol")
		}
		code.Kind = KindDotADDRSS
		code.Arg = arg
	case ".ALIGN":
		n := arg.Value()
		if n != 2 && n != 4 && n != 8 {
			return Code{}, errors.Errorf(errors.ArgumentOutOfRange, n, ".ALIGN")
		}
		code.Kind = KindDotALIGN
		code.AlignN = n
	case ".ASCII":
		if arg.Kind != ArgString {
			return Code{}, errors.Errorf(errors.UnexpectedToken, ".ASCII requires a string")
		}
		code.Kind = KindDotASCII
		code.ASCIIBytes = []byte(stripQuotes(arg.raw))
	case ".BLOCK":
		n := arg.Value()
		if n < 0 || n > 65535 {
			return Code{}, errors.Errorf(errors.ArgumentOutOfRange, n, ".BLOCK")
		}
		code.Kind = KindDotBLOCK
		code.BlockN = n
	case ".BURN":
		code.Kind = KindDotBURN
		code.BurnAddr = uint16(arg.Value())
	case ".BYTE":
		v := arg.Value()
		if v < -128 || v > 255 {
			return Code{}, errors.Errorf(errors.ArgumentOutOfRange, v, ".BYTE")
		}
		code.Kind = KindDotBYTE
		code.ByteValue = uint8(v)
	case ".END":
		code.Kind = KindDotEND
	case ".EQUATE":
		if arg.Kind != ArgSymbolRef && hasArg {
			// .EQUATE value; the defining symbol is code.ADDRSSSymbol,
			// already captured as the leading TokSymbolDef.
		}
		code.Kind = KindDotEQUATE
		code.EquateValue = arg.Value()
	case ".WORD":
		v := arg.Value()
		code.Kind = KindDotWORD
		code.WordValue = uint16(v)
	default:
		return Code{}, errors.Errorf(errors.UnexpectedToken, directive)
	}

	code.Comment = trailingComment(toks, pos)
	code.attachTraceTag()
	return code, nil
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
