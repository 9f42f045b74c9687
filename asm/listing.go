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
	"strings"

	"github.com/pep9sim/pep9/symbols"
)

// FormatListing renders result the way the assembler listing does: one
// line per Code with column widths 6/7/9/8/12/rest, followed by a
// symbol-table dump, per spec.md §6.
func FormatListing(r *Result) string {
	var b strings.Builder
	for _, c := range r.Codes {
		b.WriteString(formatListingLine(c, r.Symbols))
		b.WriteByte('\n')
	}
	b.WriteString(formatSymbolTable(r.Symbols))
	return b.String()
}

func formatListingLine(c Code, table *symbols.Table) string {
	addrCol := "      "
	if c.Address >= 0 {
		addrCol = fmt.Sprintf("%04X  ", uint16(c.Address))
	}

	bytesCol := padRight(bytesHex(c.Bytes()), 7)

	name := ""
	if sym, ok := table.GetByID(c.Symbol); ok && c.HasSymbol {
		name = sym.Name + ":"
	}
	nameCol := padRight(name, 9)

	mnemonicCol := padRight(c.mnemonicText(), 8)
	operandCol := padRight(operandText(c), 12)

	comment := ""
	if c.Comment != "" {
		comment = ";" + c.Comment
	}

	return addrCol + bytesCol + nameCol + mnemonicCol + operandCol + comment
}

func operandText(c Code) string {
	switch c.Kind {
	case KindNonUnary:
		return c.Arg.Text()
	case KindDotADDRSS:
		return c.Arg.Text()
	case KindDotALIGN:
		return fmt.Sprintf("%d", c.AlignN)
	case KindDotASCII:
		return string(c.ASCIIBytes)
	case KindDotBLOCK:
		return fmt.Sprintf("%d", c.BlockN)
	case KindDotBURN:
		return fmt.Sprintf("0x%04X", c.BurnAddr)
	case KindDotBYTE:
		return fmt.Sprintf("%d", c.ByteValue)
	case KindDotEQUATE:
		return fmt.Sprintf("%d", c.EquateValue)
	case KindDotWORD:
		return fmt.Sprintf("%d", c.WordValue)
	default:
		return ""
	}
}

func bytesHex(b []byte) string {
	parts := make([]string, len(b))
	for i, by := range b {
		parts[i] = hexByte(by)
	}
	return strings.Join(parts, " ")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

// formatSymbolTable renders the two-column symbol-table dump described
// in spec.md §6.
func formatSymbolTable(table *symbols.Table) string {
	var b strings.Builder
	b.WriteString("Symbol table\n")
	b.WriteString(strings.Repeat("-", 39) + "\n")
	b.WriteString(fmt.Sprintf("%-10s%-13s%-10s%-13s\n", "Symbol", "Value", "Symbol", "Value"))
	b.WriteString(strings.Repeat("-", 39) + "\n")

	syms := table.Symbols()
	for i := 0; i < len(syms); i += 2 {
		left := fmt.Sprintf("%-10s%-13s", syms[i].Name, valueText(syms[i]))
		right := ""
		if i+1 < len(syms) {
			right = fmt.Sprintf("%-10s%-13s", syms[i+1].Name, valueText(syms[i+1]))
		}
		b.WriteString(left + right + "\n")
	}
	b.WriteString(strings.Repeat("-", 39) + "\n")
	return b.String()
}

func valueText(s symbols.Symbol) string {
	switch s.Value.Kind {
	case symbols.Location:
		return fmt.Sprintf("%04X", s.Value.Addr())
	case symbols.Numeric:
		return fmt.Sprintf("%d", s.Value.Int())
	default:
		return "----"
	}
}
