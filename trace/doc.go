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

// Package trace is a from-scratch port of typetags.cpp/h's AType
// hierarchy (PrimitiveType, ArrayType, StructType, LiteralPrimitiveType,
// LiteralArrayType) plus the StaticTraceInfo record described in
// spec.md §3. Per the "Polymorphic hierarchies" note in spec.md §9, the
// AType class hierarchy becomes a single tagged Type variant dispatched
// by a Kind field rather than a virtual method table.
package trace
