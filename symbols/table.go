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

package symbols

// Table is a mapping from name to Symbol and from ID to Symbol, grounded
// on symboltable.cpp's SymbolTable class. Both mappings are kept
// consistent by routing every mutation through the Table rather than
// letting callers hold a Symbol by reference.
type Table struct {
	byID   []Symbol // byID[id] is always the current Symbol for that id
	byName map[string]ID
	nextID ID
}

// New returns an empty Table.
func New() *Table {
	return &Table{
		byName: make(map[string]ID),
	}
}

// Insert creates a new undefined Symbol with the given name, or returns
// the existing entry if name is already present. Per spec.md §4.1, name
// collisions do not by themselves signal an error.
func (t *Table) Insert(name string) Symbol {
	if id, ok := t.byName[name]; ok {
		return t.byID[id]
	}

	id := t.nextID
	t.nextID++

	sym := Symbol{ID: id, Name: name, Value: EmptyValue(), State: Undefined}
	t.byID = append(t.byID, sym)
	t.byName[name] = id

	return sym
}

// Get looks a Symbol up by name. The second return value is false if no
// such symbol has been inserted.
func (t *Table) Get(name string) (Symbol, bool) {
	id, ok := t.byName[name]
	if !ok {
		return Symbol{}, false
	}
	return t.byID[id], true
}

// GetByID looks a Symbol up by its ID. The second return value is false
// if id is out of range.
func (t *Table) GetByID(id ID) (Symbol, bool) {
	if id < 0 || int(id) >= len(t.byID) {
		return Symbol{}, false
	}
	return t.byID[id], true
}

// Exists reports whether name has been inserted into the table.
func (t *Table) Exists(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// SetValue assigns v to the named symbol, following the
// undefined -> single -> multiple transition rule. Returns the updated
// Symbol and false if name does not exist.
func (t *Table) SetValue(name string, v Value) (Symbol, bool) {
	id, ok := t.byName[name]
	if !ok {
		return Symbol{}, false
	}
	return t.SetValueByID(id, v)
}

// SetValueByID is SetValue addressed by ID rather than name.
func (t *Table) SetValueByID(id ID, v Value) (Symbol, bool) {
	if id < 0 || int(id) >= len(t.byID) {
		return Symbol{}, false
	}
	sym := t.byID[id]
	sym.setValue(v)
	t.byID[id] = sym
	return sym, true
}

// ApplyOffset adds delta to the value of every Location-kind symbol in
// the table, per spec.md §3's "offset relocation" operation. Numeric and
// Empty symbols are left untouched.
func (t *Table) ApplyOffset(delta int32) {
	for i := range t.byID {
		t.byID[i].Value = t.byID[i].Value.Relocate(delta)
	}
}

// UndefinedCount returns the number of symbols still in the Undefined
// state.
func (t *Table) UndefinedCount() int {
	n := 0
	for _, s := range t.byID {
		if s.State == Undefined {
			n++
		}
	}
	return n
}

// MultiplyDefinedCount returns the number of symbols latched Multiple.
func (t *Table) MultiplyDefinedCount() int {
	n := 0
	for _, s := range t.byID {
		if s.State == Multiple {
			n++
		}
	}
	return n
}

// Symbols returns every Symbol in the table, in insertion (ID) order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, len(t.byID))
	copy(out, t.byID)
	return out
}

// CopyCharIOFrom copies the value of each of the charIn and charOut
// symbols that is single-defined in src into this table, inserting it if
// necessary; a name already defined in this table is left as it is. Per spec.md §4.1: "Undefined charIn/charOut are resolved by
// copying the corresponding values from the currently loaded OS symbol
// table, not by memory inspection."
func (t *Table) CopyCharIOFrom(src *Table) {
	for _, name := range []string{"charIn", "charOut"} {
		osSym, ok := src.Get(name)
		if !ok || !osSym.IsDefined() {
			continue
		}
		local, ok := t.Get(name)
		if ok && !local.IsUndefined() {
			continue
		}
		t.Insert(name)
		t.SetValue(name, osSym.Value)
	}
}
