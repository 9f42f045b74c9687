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

package errors_test

import (
	"fmt"
	"testing"

	"github.com/pep9sim/pep9/errors"
	"github.com/pep9sim/pep9/internal/pepassert"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := errors.Errorf(testError, "foo")
	pepassert.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := errors.Errorf(testError, e)
	pepassert.ExpectEquality(t, f.Error(), "test error: foo")
}

func TestIs(t *testing.T) {
	e := errors.Errorf(testError, "foo")
	pepassert.ExpectSuccess(t, errors.Is(e, testError))

	// Has() should fail because we haven't included testErrorB anywhere in the error
	pepassert.ExpectFailure(t, errors.Has(e, testErrorB))

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := errors.Errorf(testErrorB, e)
	pepassert.ExpectFailure(t, errors.Is(f, testError))
	pepassert.ExpectSuccess(t, errors.Is(f, testErrorB))
	pepassert.ExpectSuccess(t, errors.Has(f, testError))
	pepassert.ExpectSuccess(t, errors.Has(f, testErrorB))

	// IsAny should return true for these errors also
	pepassert.ExpectSuccess(t, errors.IsAny(e))
	pepassert.ExpectSuccess(t, errors.IsAny(f))
}

func TestPlainErrors(t *testing.T) {
	// test plain errors that haven't been formatted with our errors package
	e := fmt.Errorf("plain test error")
	pepassert.ExpectFailure(t, errors.IsAny(e))

	const testError = "test error: %s"
	pepassert.ExpectFailure(t, errors.Has(e, testError))
}
