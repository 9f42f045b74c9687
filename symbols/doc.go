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

// Package symbols is a from-scratch port of the original SymbolTable /
// SymbolEntry / AbstractSymbolValue class hierarchy (symboltable.cpp,
// symbolentry.cpp, symbolvalue.cpp). The original shared_ptr graph of
// SymbolTable <-> SymbolEntry <-> AbstractSymbolValue becomes an
// arena-and-id design: the Table owns every Symbol in an indexed slice
// and hands out integer IDs rather than pointers, per the "Shared-pointer
// graphs" note in spec.md §9.
package symbols
