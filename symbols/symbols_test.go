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

package symbols_test

import (
	"testing"

	"github.com/pep9sim/pep9/internal/pepassert"
	"github.com/pep9sim/pep9/symbols"
)

func TestInsertIsIdempotent(t *testing.T) {
	tbl := symbols.New()

	a := tbl.Insert("foo")
	b := tbl.Insert("foo")

	pepassert.ExpectEquality(t, a.ID, b.ID)
	pepassert.ExpectEquality(t, a.State, symbols.Undefined)
}

func TestSetValueTransitions(t *testing.T) {
	tbl := symbols.New()
	tbl.Insert("foo")

	sym, ok := tbl.SetValue("foo", symbols.LocationValue(10))
	pepassert.ExpectSuccess(t, ok)
	pepassert.ExpectEquality(t, sym.State, symbols.Single)
	pepassert.ExpectEquality(t, sym.Value.Addr(), uint16(10))

	sym, ok = tbl.SetValue("foo", symbols.LocationValue(20))
	pepassert.ExpectSuccess(t, ok)
	pepassert.ExpectEquality(t, sym.State, symbols.Multiple)

	// once multiple, the state latches regardless of further assignment
	sym, ok = tbl.SetValue("foo", symbols.LocationValue(30))
	pepassert.ExpectSuccess(t, ok)
	pepassert.ExpectEquality(t, sym.State, symbols.Multiple)
}

func TestApplyOffsetOnlyShiftsLocations(t *testing.T) {
	tbl := symbols.New()
	tbl.Insert("loc")
	tbl.Insert("num")
	tbl.SetValue("loc", symbols.LocationValue(0x100))
	tbl.SetValue("num", symbols.NumericValue(5))

	tbl.ApplyOffset(0x10)

	loc, _ := tbl.Get("loc")
	num, _ := tbl.Get("num")

	pepassert.ExpectEquality(t, loc.Value.Addr(), uint16(0x110))
	pepassert.ExpectEquality(t, num.Value.Int(), int32(5))
}

func TestUndefinedAndMultiplyDefinedCounts(t *testing.T) {
	tbl := symbols.New()
	tbl.Insert("a")
	tbl.Insert("b")
	tbl.SetValue("a", symbols.NumericValue(1))
	tbl.SetValue("a", symbols.NumericValue(2))

	pepassert.ExpectEquality(t, tbl.UndefinedCount(), 1)
	pepassert.ExpectEquality(t, tbl.MultiplyDefinedCount(), 1)
}

func TestCopyCharIOFrom(t *testing.T) {
	osTable := symbols.New()
	osTable.Insert("charIn")
	osTable.SetValue("charIn", symbols.LocationValue(0xFC15))
	osTable.Insert("charOut")
	osTable.SetValue("charOut", symbols.LocationValue(0xFC16))

	user := symbols.New()
	user.CopyCharIOFrom(osTable)

	charIn, ok := user.Get("charIn")
	pepassert.ExpectSuccess(t, ok)
	pepassert.ExpectEquality(t, charIn.Value.Addr(), uint16(0xFC15))
}

func TestGetByIDOutOfRange(t *testing.T) {
	tbl := symbols.New()
	_, ok := tbl.GetByID(symbols.ID(42))
	pepassert.ExpectFailure(t, ok)
}
