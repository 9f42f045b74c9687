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
	"strconv"
	"strings"

	"github.com/pep9sim/pep9/trace"
)

// TraceTagKind classifies a parsed #tag comment annotation, per spec.md
// §4.2's "Trace-tag parsing".
type TraceTagKind int

const (
	TagPrimitive TraceTagKind = iota
	TagArray
	TagStructMember
	TagSymbol
)

// TraceTagAnnotation is the parsed form of a "#fmt", "#fmt<n>a", or
// "#ident" comment annotation.
type TraceTagAnnotation struct {
	Kind   TraceTagKind
	Format trace.Format
	Length uint16
	Symbol string
}

// parseTraceTag scans comment (without its leading ';') for the first
// "#..." token and parses it. Returns ok=false when comment carries no
// recognisable tag.
func parseTraceTag(comment string) (TraceTagAnnotation, bool) {
	idx := strings.IndexByte(comment, '#')
	if idx < 0 {
		return TraceTagAnnotation{}, false
	}
	rest := comment[idx+1:]
	end := 0
	for end < len(rest) && !isSpace(rest[end]) {
		end++
	}
	token := rest[:end]
	if token == "" {
		return TraceTagAnnotation{}, false
	}

	if fmtTok, arrLen, isArr, ok := splitArrayTag(token); ok {
		format, ok := trace.ParseFormat(fmtTok)
		if !ok {
			return TraceTagAnnotation{}, false
		}
		if isArr {
			return TraceTagAnnotation{Kind: TagArray, Format: format, Length: arrLen}, true
		}
		return TraceTagAnnotation{Kind: TagPrimitive, Format: format}, true
	}

	// Not a format token: treat as a bare symbol tag (struct-member
	// list reference).
	return TraceTagAnnotation{Kind: TagSymbol, Symbol: token}, true
}

// splitArrayTag recognises "fmt" or "fmt<n>a" and returns the format
// token plus the array length (0 when not an array form).
func splitArrayTag(token string) (format string, length uint16, isArray bool, ok bool) {
	lt := strings.IndexByte(token, '<')
	if lt < 0 {
		return token, 0, false, true
	}
	if !strings.HasSuffix(token, ">a") {
		return "", 0, false, false
	}
	n, err := strconv.ParseUint(token[lt+1:len(token)-2], 10, 16)
	if err != nil {
		return "", 0, false, false
	}
	return token[:lt], uint16(n), true, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
