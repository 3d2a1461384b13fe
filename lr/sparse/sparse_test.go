package sparse

import (
	"testing"
)

func TestSetAndValue(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) = 4711, is %d", v)
	}
	if v := M.Value(9, 9); v != -1 {
		t.Errorf("expected null value for M(9,9), is %d", v)
	}
	M.Set(2, 3, 42)
	if v := M.Value(2, 3); v != 42 || M.Count(2, 3) != 1 {
		t.Errorf("expected Set to replace value, have %v", M.Values(2, 3))
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 position set, have %d", M.ValueCount())
	}
}

func TestAddValues(t *testing.T) {
	M := NewIntMatrix(5, 5, DefaultNullValue)
	M.Add(1, 1, 1).Add(1, 1, 2).Add(1, 1, 3)
	vals := M.Values(1, 1)
	if len(vals) != 3 || vals[0] != 1 || vals[2] != 3 {
		t.Errorf("expected values [1 2 3], have %v", vals)
	}
	vals[0] = 99
	if M.Value(1, 1) != 1 {
		t.Errorf("Values must return a copy")
	}
	if M.Values(0, 0) != nil || M.Count(0, 0) != 0 {
		t.Errorf("expected no values at (0,0)")
	}
}

func TestRowMajorOrder(t *testing.T) {
	M := NewIntMatrix(4, 4, DefaultNullValue)
	M.Set(3, 0, 30)
	M.Set(0, 2, 2)
	M.Set(1, 1, 11)
	M.Set(0, 1, 1)
	M.Set(3, 3, 33)
	var seen []int32
	M.Each(func(i, j int, values []int32) {
		seen = append(seen, values[0])
	})
	expected := []int32{1, 2, 11, 30, 33}
	if len(seen) != len(expected) {
		t.Fatalf("expected %v, have %v", expected, seen)
	}
	for i := range seen {
		if seen[i] != expected[i] {
			t.Errorf("expected %v, have %v", expected, seen)
			break
		}
	}
	if M.M() != 4 || M.N() != 4 || M.NullValue() != DefaultNullValue {
		t.Errorf("matrix dimensions broken")
	}
}

func TestOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for index out of range")
		}
	}()
	M := NewIntMatrix(2, 2, 0)
	M.Set(2, 0, 1)
}
