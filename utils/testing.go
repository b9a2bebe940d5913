package utils

import (
	"errors"
	"runtime"
	"testing"
)

// Location of the test line which called the assert helper
func getParentInfo() (string, int) {
	parent, _, _, _ := runtime.Caller(2)
	info := runtime.FuncForPC(parent)
	file, line := info.FileLine(parent)
	return file, line
}

// Assert that predicate holds, reporting msg otherwise
func Assert(t *testing.T, predicate bool, msg string) {
	if !predicate {
		file, line := getParentInfo()
		t.Errorf("%s in %s:%d", msg, file, line)
	}
}

// Assert that a == b
func AssertEqual[T comparable](t *testing.T, a T, b T) {
	if a != b {
		file, line := getParentInfo()
		t.Errorf("Expected %v == %v (%T) in %s:%d", a, b, a, file, line)
	}
}

// Assert that a != b
func AssertNotEqual[T comparable](t *testing.T, a T, b T) {
	if a == b {
		file, line := getParentInfo()
		t.Errorf("Expected %v != %v (%T) in %s:%d", a, b, a, file, line)
	}
}

// Assert that error is nil
func AssertNoError(t *testing.T, err error) {
	if err != nil {
		file, line := getParentInfo()
		t.Errorf("Expected no error, got '%v' in %s:%d", err, file, line)
	}
}

// Assert that an error is not nil
func AssertError(t *testing.T, err error) {
	if err == nil {
		file, line := getParentInfo()
		t.Errorf("Expected error, got '%v' in %s:%d", err, file, line)
	}
}

// Assert that err matches target somewhere in its chain
func AssertErrorIs(t *testing.T, err error, target error) {
	if !errors.Is(err, target) {
		file, line := getParentInfo()
		t.Errorf("Expected error '%v', got '%v' in %s:%d", target, err, file, line)
	}
}

// Assert that f panics
func AssertPanics(t *testing.T, f func()) {
	panicked := func() (p bool) {
		defer func() {
			if recover() != nil {
				p = true
			}
		}()
		f()
		return false
	}()
	if !panicked {
		file, line := getParentInfo()
		t.Errorf("Expected a panic in %s:%d", file, line)
	}
}

// Assert that comparator(a, b) holds
func AssertEqualWithComparator[T any](t *testing.T, a T, b T, comparator func(T, T) bool) {
	if !comparator(a, b) {
		file, line := getParentInfo()
		t.Errorf("Expected %v == %v (%T) in %s:%d", a, b, a, file, line)
	}
}

// Same length and same elements in the same order
func CompareArrays[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Same keys mapping to the same values
func CompareMaps[T comparable, V comparable](a map[T]V, b map[T]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		if vb, ok := b[k]; !ok || va != vb {
			return false
		}
	}
	// same length and every key of a in b, so same keys
	return true
}

// Assert that the arrays are equal, see CompareArrays
func AssertEqualArrays[T comparable](t *testing.T, a []T, b []T) {
	AssertEqualWithComparator(t, a, b, CompareArrays)
}

// Assert that the maps are equal, see CompareMaps
func AssertEqualMaps[T comparable, V comparable](t *testing.T, a map[T]V, b map[T]V) {
	AssertEqualWithComparator(t, a, b, CompareMaps)
}
