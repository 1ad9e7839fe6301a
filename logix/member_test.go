package logix

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/l5x-format/go-l5x/logix/tagname"
)

func point(x int32) *Structure {
	return MustStructure("Point", MustMember("X", NewDint(x)))
}

// tree builds T{A: Point[2], B: DINT, S: STRING}.
func tree(t *testing.T) *Member {
	t.Helper()
	a, err := NewArray(MustDims(2), point(1), point(2))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := NewStringWithCapacity("ok", 2)
	return MustMember("T", MustStructure("Outer",
		MustMember("A", a),
		MustMember("B", NewDint(6)),
		MustMember("S", s),
	))
}

func TestNewMember(t *testing.T) {
	for _, name := range []string{"Tag", "_x1", "[3]", "[1,2]", "7"} {
		if _, err := NewMember(name, NewDint(0)); err != nil {
			t.Errorf("NewMember(%q): %v", name, err)
		}
	}
	for _, name := range []string{"", "1x", "a.b", "[x]", "a b"} {
		if _, err := NewMember(name, NewDint(0)); !errors.Is(err, ErrInvalidName) {
			t.Errorf("NewMember(%q) error = %v", name, err)
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("nil value did not panic")
		}
	}()
	_, _ = NewMember("Tag", nil)
}

func TestResolveNestedPath(t *testing.T) {
	root := tree(t)
	got := Resolve(root, "A[1].X")
	if got == nil {
		t.Fatal("A[1].X not found")
	}
	s := root.Value().(*Structure)
	a, _ := s.Member("A")
	e, _ := a.Value().(*Array).At(1)
	x, _ := e.Value().(*Structure).Member("X")
	if got != x {
		t.Error("resolve differs from manual descent")
	}
	if !Equal(got.Value(), NewDint(2)) {
		t.Errorf("A[1].X = %v", got.Value())
	}
	if got.TagName() != "T.A[1].X" {
		t.Errorf("TagName = %s", got.TagName())
	}
	for _, p := range []string{"a[1].x", "S.LEN", "S.DATA[1]", "B.2", ""} {
		if root.Resolve(p) == nil {
			t.Errorf("Resolve(%q) = nil", p)
		}
	}
	for _, p := range []string{"Nope", "A[2].X", "A.X", "B.32", "B.X", "A[1].X.Y", "A..X"} {
		if m := root.Resolve(p); m != nil {
			t.Errorf("Resolve(%q) = %v, want nil", p, m)
		}
	}
}

func TestBitMembers(t *testing.T) {
	root := tree(t)
	bit := root.Resolve("B.1")
	if !Equal(bit.Value(), NewBool(true)) {
		t.Errorf("B.1 = %v", bit.Value())
	}
	if bit.TagName() != "T.B.1" {
		t.Errorf("bit TagName = %s", bit.TagName())
	}
	if err := bit.SetValue(NewBool(false)); err != nil {
		t.Fatal(err)
	}
	if !Equal(root.Resolve("B").Value(), NewDint(4)) {
		t.Errorf("B = %v after clearing bit 1", root.Resolve("B").Value())
	}
	small := MustMember("S", NewSint(1))
	if err := small.Resolve("0").SetValue(NewBool(false)); !errors.Is(err, ErrReadOnly) {
		t.Errorf("setting a SINT bit error = %v", err)
	}
}

func TestAllNames(t *testing.T) {
	root := MustMember("T", MustStructure("Outer",
		MustMember("A", mkArray(t, point(1), point(2))),
		MustMember("B", NewSint(0)),
	))
	got := slices.Collect(AllNames(root))
	want := []tagname.TagName{"A", "A[0]", "A[0].X", "A[1]", "A[1].X", "B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AllNames (-want +got):\n%s", diff)
	}
	withBits := slices.Collect(AllNames(root, IncludeBits()))
	if n := len(withBits); n != len(want)+2*32+8 {
		t.Errorf("with bits: %d names", n)
	}
	if !slices.Contains(withBits, tagname.TagName("A[1].X.31")) {
		t.Error("missing A[1].X.31")
	}
	// early stop
	for range AllNames(root) {
		break
	}
}

func mkArray(t *testing.T, elems ...Value) *Array {
	t.Helper()
	a, err := NewArray(MustDims(len(elems)), elems...)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestChangeBubbling(t *testing.T) {
	root := tree(t)
	var got []string
	record := func(where string) func(Change) {
		return func(c Change) { got = append(got, where+" "+c.Op.String()+" "+c.Member.Name()) }
	}
	s := root.Value().(*Structure)
	a, _ := s.Member("A")
	e := root.Resolve("A[1]")
	x := root.Resolve("A[1].X")
	root.OnChange(record("root"))
	s.OnChange(record("outer"))
	a.OnChange(record("A"))
	e.OnChange(record("elem"))
	x.OnChange(record("X"))
	sibling := root.Resolve("A[0].X")
	sibling.OnChange(record("sibling"))

	if err := x.SetValue(NewDint(9)); err != nil {
		t.Fatal(err)
	}
	want := []string{"X set X", "elem set X", "A set X", "outer set X", "root set X"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}

	got = nil
	cancel := root.OnChange(record("again"))
	cancel()
	if err := root.Resolve("S").Value().(*String).SetText("no"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"outer set DATA", "root set DATA"}, got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestOwnership(t *testing.T) {
	p := point(1)
	m1 := MustMember("P1", p)
	m2 := MustMember("P2", p)
	if m1.Value() == m2.Value() {
		t.Fatal("a value was shared by two members")
	}
	if err := m2.Value().(*Structure).Replace("X", NewDint(5)); err != nil {
		t.Fatal(err)
	}
	if Equal(m1.Value(), m2.Value()) {
		t.Error("mutating the copy changed the original")
	}

	outer := MustStructure("Box", MustMember("In", point(0)))
	root := MustMember("Root", outer)
	in := root.Resolve("In")
	if err := in.SetValue(outer); err != nil {
		t.Fatal(err)
	}
	if in.Value() == Value(outer) {
		t.Error("a structure was made to contain itself")
	}
	if root.Resolve("In.In.X") == nil {
		t.Error("copy of outer not installed")
	}
}

func TestCycle(t *testing.T) {
	inner := MustStructure("Inner")
	outer := MustStructure("Outer", MustMember("In", inner))
	top := MustMember("Top", outer)
	tests := []struct {
		name string
		add  func() error
	}{
		{"add", func() error { return inner.Add(top) }},
		{"insert", func() error { return inner.Insert(0, top) }},
		{"add range", func() error { return inner.AddRange(top) }},
		{"replace", func() error { return outer.ReplaceAt(0, top) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.add(); !errors.Is(err, ErrCycle) {
				t.Fatalf("got %v, want %v", err, ErrCycle)
			}
			if inner.Len() != 0 || outer.Len() != 1 {
				t.Errorf("layout changed: inner %d outer %d members", inner.Len(), outer.Len())
			}
		})
	}
}

func TestSetMemberCycle(t *testing.T) {
	inner := MustStructure("Inner")
	outer := MustStructure("Outer", MustMember("In", inner))
	if err := SetMember(inner, "Up", outer); !errors.Is(err, ErrCycle) {
		t.Fatalf("got %v, want %v", err, ErrCycle)
	}
	if outer.Owner() != nil {
		t.Error("a failed SetMember kept ownership of its value")
	}
	// an owned value is copied, so no cycle forms
	top := MustMember("Top", outer)
	if err := SetMember(inner, "Up", top.Value()); err != nil {
		t.Fatal(err)
	}
	if top.Resolve("In.Up.In") == nil {
		t.Error("copy of outer not installed")
	}
}
