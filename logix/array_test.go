package logix

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/l5x-format/go-l5x/radix"
)

func TestArrayOfThreeDint(t *testing.T) {
	a, err := NewArray(MustDims(3), NewDint(10), NewDint(20), NewDint(30))
	if err != nil {
		t.Fatal(err)
	}
	v, err := a.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(v, NewDint(20)) {
		t.Errorf("Get(1) = %v, want 20", v)
	}
	before, _ := a.At(1)
	if err := a.Set(NewDint(99), 1); err != nil {
		t.Fatal(err)
	}
	after, _ := a.At(1)
	if before != after {
		t.Error("Set replaced the element member")
	}
	v, _ = a.Get(1)
	if !Equal(v, NewDint(99)) {
		t.Errorf("Get(1) = %v, want 99", v)
	}
	if a.Dimensions() != MustDims(3) {
		t.Errorf("dimensions = %s", a.Dimensions())
	}
}

func TestArrayConstruction(t *testing.T) {
	tests := []struct {
		name  string
		dims  Dimensions
		elems []Value
		err   error
	}{
		{"empty", Dimensions{}, nil, ErrEmptyArray},
		{"no elements", MustDims(2), nil, ErrEmptyArray},
		{"count", MustDims(2), []Value{NewDint(1)}, ErrDimensions},
		{"null", MustDims(2), []Value{NewDint(1), Null}, ErrNullElement},
		{"mixed atomics", MustDims(2), []Value{NewDint(1), NewInt(1)}, ErrHeterogeneousArray},
		{"mixed kinds", MustDims(2), []Value{NewDint(1), NewString("x")}, ErrHeterogeneousArray},
		{"mixed structures", MustDims(2), []Value{MustStructure("A"), MustStructure("B")}, ErrHeterogeneousArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArray(tt.dims, tt.elems...)
			if !errors.Is(err, tt.err) {
				t.Errorf("error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestArrayIndexing(t *testing.T) {
	a, err := NewAtomicArray(Int, MustDims(2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 6 {
		t.Fatalf("Len = %d", a.Len())
	}
	var names []string
	for _, m := range a.Members() {
		names = append(names, m.Name())
	}
	want := []string{"[0,0]", "[0,1]", "[0,2]", "[1,0]", "[1,1]", "[1,2]"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	m, err := a.At(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "[1,2]" {
		t.Errorf("At(1,2) = %s", m.Name())
	}
	if e, err := a.Index("[ 1, 2 ]"); err != nil || e != m {
		t.Errorf("Index = %v, %v", e, err)
	}
	for _, idx := range [][]int{{2, 0}, {0, 3}, {-1, 0}, {1}, {0, 0, 0}} {
		if _, err := a.At(idx...); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("At(%v) error = %v", idx, err)
		}
	}
	if err := a.Set(NewDint(1), 0, 0); !errors.Is(err, ErrHeterogeneousArray) {
		t.Errorf("Set DINT into INT array error = %v", err)
	}
	if err := a.Set(Null, 0, 0); !errors.Is(err, ErrNullElement) {
		t.Errorf("Set null error = %v", err)
	}
}

func TestArraySharedRadix(t *testing.T) {
	hex, _ := NewDint(1).WithRadix(radix.Hex)
	a, err := NewArray(MustDims(2), hex, NewDint(2))
	if err != nil {
		t.Fatal(err)
	}
	if a.Radix() != radix.Hex {
		t.Errorf("radix = %s", a.Radix())
	}
	if err := a.Set(NewDint(255), 1); err != nil {
		t.Fatal(err)
	}
	v, _ := a.Get(1)
	if got := v.String(); got != "16#0000_00ff" {
		t.Errorf("element = %s", got)
	}
	if err := a.SetRadix(radix.Decimal); err != nil {
		t.Fatal(err)
	}
	v, _ = a.Get(1)
	if got := v.String(); got != "255" {
		t.Errorf("element after SetRadix = %s", got)
	}
}

func TestArrayOfStrings(t *testing.T) {
	proto, _ := NewStringWithCapacity("", 10)
	a, err := Fill(MustDims(2), proto)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Set(NewString("hi"), 1); err != nil {
		t.Fatal(err)
	}
	s, _ := a.Get(1)
	if got := s.(*String); got.Cap() != 10 || got.Text() != "hi" {
		t.Errorf("element = %v of capacity %d", got, got.Cap())
	}
	if err := a.Set(NewString("much too long"), 0); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("long string error = %v", err)
	}
}

func TestArrayAs(t *testing.T) {
	a, _ := NewArray(MustDims(2), NewDint(1), NewDint(2))
	got, err := As[Atomic](a)
	if err != nil {
		t.Fatal(err)
	}
	if got[1].Int64() != 2 {
		t.Errorf("As = %v", got)
	}
	if _, err := As[*Structure](a); !errors.Is(err, ErrInvalidCast) {
		t.Errorf("As[*Structure] error = %v", err)
	}
}

func TestDimensions(t *testing.T) {
	for _, in := range []string{"2 3", "2,3", "[2,3]", " [2, 3] "} {
		d, err := ParseDimensions(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if d != MustDims(2, 3) || d.Attr() != "2 3" || d.String() != "[2,3]" {
			t.Errorf("%q parsed to %v", in, d)
		}
	}
	for _, bad := range []string{"", "0", "1 2 3 4", "65536", "x"} {
		if _, err := ParseDimensions(bad); !errors.Is(err, ErrDimensions) {
			t.Errorf("ParseDimensions(%q) error = %v", bad, err)
		}
	}
	d := MustDims(2, 3, 4)
	for off := range d.Len() {
		got, err := d.Offset(d.Indices(off)...)
		if err != nil || got != off {
			t.Errorf("Offset(Indices(%d)) = %d, %v", off, got, err)
		}
	}
}
