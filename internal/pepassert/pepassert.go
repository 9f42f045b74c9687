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

// Package pepassert collects the handful of test helpers used by the
// symbols, errors and logger packages' _test.go files, in place of a
// third-party assertion library for the handful of cases the teacher's
// own test package covers.
package pepassert

import (
	"math"
	"reflect"
	"testing"
)

// ExpectSuccess fails the test unless v is true or a nil error.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	switch x := v.(type) {
	case bool:
		if !x {
			t.Errorf("expected success, got failure")
		}
	case error:
		if x != nil {
			t.Errorf("expected success, got error: %v", x)
		}
	case nil:
		// treated as success
	default:
		t.Errorf("unsupported type for ExpectSuccess: %T", v)
	}
}

// ExpectFailure fails the test unless v is false or a non-nil error.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	switch x := v.(type) {
	case bool:
		if x {
			t.Errorf("expected failure, got success")
		}
	case error:
		if x == nil {
			t.Errorf("expected failure, got nil error")
		}
	default:
		t.Errorf("unsupported type for ExpectFailure: %T", v)
	}
}

// ExpectEquality fails the test unless a and b are deeply equal.
func ExpectEquality(t *testing.T, a, b interface{}) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected equality: %#v != %#v", a, b)
	}
}

// ExpectInequality fails the test if a and b are deeply equal.
func ExpectInequality(t *testing.T, a, b interface{}) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Errorf("expected inequality: %#v == %#v", a, b)
	}
}

// ExpectApproximate fails the test unless a and b are within tolerance of
// one another.
func ExpectApproximate(t *testing.T, a, b, tolerance float64) {
	t.Helper()
	if math.Abs(a-b) > tolerance {
		t.Errorf("expected %v to be within %v of %v", a, tolerance, b)
	}
}
