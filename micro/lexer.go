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
	"fmt"
	"strconv"
	"strings"

	"github.com/pep9sim/pep9/errors"
)

// TokenKind tags one lexed microcode token, per spec.md §4.4's
// "Lexer tokens" list.
type TokenKind int

const (
	MTokIdentifier TokenKind = iota
	MTokSymbolDef
	MTokHex
	MTokDecimal
	MTokComma
	MTokEquals
	MTokSemicolon
	MTokLBracket
	MTokRBracket
	MTokIf
	MTokElse
	MTokGoto
	MTokStop
	MTokAMD
	MTokISD
	MTokUnitPre
	MTokUnitPost
	MTokComment
	MTokBreakpoint
)

// Token is one lexed microcode unit.
type Token struct {
	Kind  TokenKind
	Text  string
	Value int32
}

var keywords = map[string]TokenKind{
	"if":       MTokIf,
	"else":     MTokElse,
	"goto":     MTokGoto,
	"stop":     MTokStop,
	"AMD":      MTokAMD,
	"ISD":      MTokISD,
	"UnitPre":  MTokUnitPre,
	"UnitPost": MTokUnitPost,
}

// mLexLine splits one microcode source line into tokens.
func mLexLine(line string, lineNo int) ([]Token, error) {
	var toks []Token
	i := 0
	n := len(line)

	for i < n {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++

		case c == '@':
			toks = append(toks, Token{Kind: MTokBreakpoint})
			i++

		case c == '/' && i+1 < n && line[i+1] == '/':
			toks = append(toks, Token{Kind: MTokComment, Text: strings.TrimRight(line[i+2:], "\r\n")})
			i = n

		case c == ',':
			toks = append(toks, Token{Kind: MTokComma})
			i++

		case c == '=':
			toks = append(toks, Token{Kind: MTokEquals})
			i++

		case c == ';':
			toks = append(toks, Token{Kind: MTokSemicolon})
			i++

		case c == '[':
			toks = append(toks, Token{Kind: MTokLBracket})
			i++

		case c == ']':
			toks = append(toks, Token{Kind: MTokRBracket})
			i++

		case c == '0' && i+1 < n && (line[i+1] == 'x' || line[i+1] == 'X'):
			text, rest := mLexBareWord(line[i:])
			v, err := strconv.ParseUint(text[2:], 16, 32)
			if err != nil {
				return nil, mLexError(lineNo, "malformed hex literal '%s'", text)
			}
			toks = append(toks, Token{Kind: MTokHex, Text: text, Value: int32(v)})
			i += len(line[i:]) - len(rest)

		case isDigit(c):
			text, rest := mLexBareWord(line[i:])
			v, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return nil, mLexError(lineNo, "malformed decimal literal '%s'", text)
			}
			toks = append(toks, Token{Kind: MTokDecimal, Text: text, Value: int32(v)})
			i += len(line[i:]) - len(rest)

		case isIdentStart(c):
			text, rest := mLexIdent(line[i:])
			i += len(line[i:]) - len(rest)
			if i < n && line[i] == ':' && text != "UnitPre" && text != "UnitPost" {
				toks = append(toks, Token{Kind: MTokSymbolDef, Text: text})
				i++
				continue
			}
			if kind, ok := keywords[text]; ok {
				toks = append(toks, Token{Kind: kind, Text: text})
				if i < n && line[i] == ':' {
					i++
				}
			} else {
				toks = append(toks, Token{Kind: MTokIdentifier, Text: text})
			}

		default:
			return nil, mLexError(lineNo, "unexpected character '%c'", c)
		}
	}
	return toks, nil
}

func mLexError(lineNo int, format string, args ...interface{}) error {
	return errors.Errorf(errors.BadToken, lineNo, fmt.Sprintf(format, args...))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func mLexIdent(s string) (text, rest string) {
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func mLexBareWord(s string) (text, rest string) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}
