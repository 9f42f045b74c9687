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

// Package errors is a helper package for the plain Go language error type. We
// think of these errors as curated errors. External to this package, curated
// errors are referenced as plain errors (ie. they implement the error
// interface).
//
// Internally, errors are thought of as being composed of parts, as described
// by The Go Programming Language (Donovan, Kernighan): "When the error is
// ultimately handled by the program's main function, it should provide a clear
// causal chain from the root of the problem to the overall failure".
//
// The Error() function implementation for curated errors ensures that this
// chain is normalised: it does not contain duplicate adjacent parts. The
// practical advantage is that it alleviates the problem of when and how to
// wrap errors. For example:
//
//	func AssembleUser(text string) error {
//		err := lex(text)
//		if err != nil {
//			return errors.Errorf("assembly error: %v", err)
//		}
//		return nil
//	}
//
// will result in a message like "assembly error: unexpected token ','" and
// not "assembly error: assembly error: unexpected token ','" if lex() itself
// used the same curated wrapping.
package errors
