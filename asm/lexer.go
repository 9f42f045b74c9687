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
	"fmt"
	"strconv"
	"strings"

	"github.com/pep9sim/pep9/errors"
)

// TokenKind tags one lexed token on an assembly source line.
type TokenKind int

const (
	TokSymbolDef TokenKind = iota
	TokIdentifier
	TokDotCommand
	TokDecimal
	TokHex
	TokChar
	TokString
	TokMode
	TokComma
	TokComment
)

// Token is one lexed unit, carrying both its raw text and any decoded
// value (for numeric/char/string kinds).
type Token struct {
	Kind  TokenKind
	Text  string
	Value int32
	Mode  AddrMode
}

// lexLine splits one source line into tokens, trying in this order:
// whitespace, comment, comma, addressing-mode suffix after a comma, char
// literal, string literal, dot-command, hex, signed decimal, identifier
// (optionally a symbol definition).
func lexLine(line string, lineNo int) ([]Token, error) {
	var toks []Token
	i := 0
	n := len(line)
	expectMode := false

	for i < n {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == ';':
			toks = append(toks, Token{Kind: TokComment, Text: strings.TrimRight(line[i+1:], "\r\n")})
			i = n

		case c == ',':
			toks = append(toks, Token{Kind: TokComma})
			i++
			expectMode = true

		case expectMode && isModeStart(line, i):
			text, rest := lexBareWord(line[i:])
			mode, ok := modeSuffix[strings.ToLower(text)]
			if !ok {
				return nil, lexError(lineNo, "unrecognised addressing mode '%s'", text)
			}
			toks = append(toks, Token{Kind: TokMode, Text: text, Mode: mode})
			i += len(line[i:]) - len(rest)
			expectMode = false

		case c == '\'':
			v, text, rest, err := lexCharLiteral(line[i:], lineNo)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: TokChar, Text: text, Value: v})
			i += len(line[i:]) - len(rest)

		case c == '"':
			v, text, rest, err := lexStringLiteral(line[i:], lineNo)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: TokString, Text: text, Value: v})
			i += len(line[i:]) - len(rest)

		case c == '.':
			text, rest := lexBareWord(line[i:])
			toks = append(toks, Token{Kind: TokDotCommand, Text: strings.ToUpper(text)})
			i += len(line[i:]) - len(rest)

		case (c == '0' && i+1 < n && (line[i+1] == 'x' || line[i+1] == 'X')):
			text, rest := lexBareWord(line[i:])
			v, err := strconv.ParseInt(text[2:], 16, 64)
			if err != nil {
				return nil, lexError(lineNo, "malformed hex literal '%s'", text)
			}
			toks = append(toks, Token{Kind: TokHex, Text: text, Value: int32(v)})
			i += len(line[i:]) - len(rest)

		case c == '-' || isDigit(c):
			text, rest := lexBareWord(line[i:])
			v, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return nil, lexError(lineNo, "malformed decimal literal '%s'", text)
			}
			toks = append(toks, Token{Kind: TokDecimal, Text: text, Value: int32(v)})
			i += len(line[i:]) - len(rest)

		case isIdentStart(c):
			text, rest := lexIdent(line[i:])
			i += len(line[i:]) - len(rest)
			if i < n && line[i] == ':' {
				toks = append(toks, Token{Kind: TokSymbolDef, Text: text})
				i++
			} else {
				toks = append(toks, Token{Kind: TokIdentifier, Text: text})
			}

		default:
			return nil, lexError(lineNo, "unexpected character '%c'", c)
		}
	}
	return toks, nil
}

func lexError(lineNo int, format string, args ...interface{}) error {
	return errors.Errorf(errors.BadToken, lineNo, fmt.Sprintf(format, args...))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func lexIdent(s string) (text, rest string) {
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func lexBareWord(s string) (text, rest string) {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '.') {
		i++
	}
	for i < len(s) && (isIdentChar(s[i])) {
		i++
	}
	return s[:i], s[i:]
}

func isModeStart(line string, i int) bool {
	c := line[i]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// lexCharLiteral decodes a single-quoted character literal, including
// escape sequences \b \f \n \r \t \v \" \\ and \xNN.
func lexCharLiteral(s string, lineNo int) (value int32, text string, rest string, err error) {
	i := 1 // skip opening quote
	if i >= len(s) {
		return 0, "", "", lexError(lineNo, "unterminated character literal")
	}
	var v byte
	if s[i] == '\\' {
		v, i, err = decodeEscape(s, i, lineNo)
		if err != nil {
			return 0, "", "", err
		}
	} else {
		v = s[i]
		i++
	}
	if i >= len(s) || s[i] != '\'' {
		return 0, "", "", lexError(lineNo, "unterminated character literal")
	}
	i++
	return int32(v), s[:i], s[i:], nil
}

// lexStringLiteral decodes a double-quoted string literal.
func lexStringLiteral(s string, lineNo int) (value int32, text string, rest string, err error) {
	i := 1
	var decoded []byte
	for i < len(s) && s[i] != '"' {
		if s[i] == '\\' {
			var v byte
			v, i, err = decodeEscape(s, i, lineNo)
			if err != nil {
				return 0, "", "", err
			}
			decoded = append(decoded, v)
			continue
		}
		decoded = append(decoded, s[i])
		i++
	}
	if i >= len(s) {
		return 0, "", "", lexError(lineNo, "unterminated string literal")
	}
	i++ // closing quote

	var v int32
	switch len(decoded) {
	case 0:
		v = 0
	case 1:
		v = int32(decoded[0])
	default:
		v = int32(decoded[0])<<8 | int32(decoded[1])
	}
	return v, s[:i], s[i:], nil
}

// decodeEscape decodes the escape sequence starting at s[i] == '\\' and
// returns the decoded byte plus the index just past it.
func decodeEscape(s string, i int, lineNo int) (byte, int, error) {
	if i+1 >= len(s) {
		return 0, 0, lexError(lineNo, "dangling escape")
	}
	switch s[i+1] {
	case 'b':
		return '\b', i + 2, nil
	case 'f':
		return '\f', i + 2, nil
	case 'n':
		return '\n', i + 2, nil
	case 'r':
		return '\r', i + 2, nil
	case 't':
		return '\t', i + 2, nil
	case 'v':
		return '\v', i + 2, nil
	case '"':
		return '"', i + 2, nil
	case '\'':
		return '\'', i + 2, nil
	case '\\':
		return '\\', i + 2, nil
	case 'x', 'X':
		if i+3 >= len(s) {
			return 0, 0, lexError(lineNo, "incomplete \\x escape")
		}
		v, err := strconv.ParseUint(s[i+2:i+4], 16, 8)
		if err != nil {
			return 0, 0, lexError(lineNo, "malformed \\x escape")
		}
		return byte(v), i + 4, nil
	default:
		return 0, 0, lexError(lineNo, "unknown escape '\\%c'", s[i+1])
	}
}
