package tagname

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Foo", []string{"Foo"}},
		{"Foo.Bar[2].Baz", []string{"Foo", "Bar", "[2]", "Baz"}},
		{"Foo[1,2]", []string{"Foo", "[1,2]"}},
		{"Foo[1][2]", []string{"Foo", "[1]", "[2]"}},
		{"Foo.5", []string{"Foo", "5"}},
		{"Program:Main.Tag", []string{"Program:Main", "Tag"}},
		{"[3].X", []string{"[3]", "X"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := TagName(tt.in).Segments()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Segments(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("Foo.Bar[ 1 , 2 ].Baz")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Foo.Bar[1,2].Baz" {
		t.Errorf("Parse = %q", got)
	}
	for _, bad := range []string{"Foo..Bar", "Foo.", ".Foo", "Foo.[2]", "Foo[2", "Foo[a]", "Foo[1,2,3,4]", "Foo-Bar", "1Foo.Bar", "Foo[2]x"} {
		if _, err := Parse(bad); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error = %v, want ErrSyntax", bad, err)
		}
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		parts []string
		want  TagName
	}{
		{[]string{"Tag", "[2]"}, "Tag[2]"},
		{[]string{"Tag", "Member"}, "Tag.Member"},
		{[]string{"Tag", "[2]", "Member", "[0,1]"}, "Tag[2].Member[0,1]"},
		{[]string{"Tag.A", "B[1]"}, "Tag.A.B[1]"},
		{[]string{"Tag", ".Member"}, "Tag.Member"},
		{[]string{"", "Tag", ""}, "Tag"},
	}
	for _, tt := range tests {
		if got := Combine(tt.parts...); got != tt.want {
			t.Errorf("Combine(%q) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}

func TestDecompose(t *testing.T) {
	tn := TagName("Foo.Bar[2].Baz")
	if got := tn.Root(); got != "Foo" {
		t.Errorf("Root = %q", got)
	}
	if got := tn.Operand(); got != ".Bar[2].Baz" {
		t.Errorf("Operand = %q", got)
	}
	if got := tn.Path(); got != "Bar[2].Baz" {
		t.Errorf("Path = %q", got)
	}
	if got := tn.Member(); got != "Baz" {
		t.Errorf("Member = %q", got)
	}
	if got := tn.Parent(); got != "Foo.Bar[2]" {
		t.Errorf("Parent = %q", got)
	}
	if got := tn.Depth(); got != 3 {
		t.Errorf("Depth = %d", got)
	}
	if got := tn.Append("[1]", "X"); got != "Foo.Bar[2].Baz[1].X" {
		t.Errorf("Append = %q", got)
	}
}

func TestCompare(t *testing.T) {
	if !TagName("foo.BAR[1]").Equal("Foo.bar[1]") {
		t.Error("expected case-insensitive equality")
	}
	if TagName("Foo.A").Compare("Foo.B") >= 0 {
		t.Error("expected Foo.A < Foo.B")
	}
	if TagName("Foo").Compare("Foo.A") >= 0 {
		t.Error("expected prefix to sort first")
	}
	if !TagName("Foo.Bar[2].Baz").HasPrefix("foo.bar") {
		t.Error("expected prefix match")
	}
	if TagName("Foo.Barn").HasPrefix("Foo.Bar") {
		t.Error("prefix must match whole segments")
	}
}

func TestIndex(t *testing.T) {
	if got := Index(1, 2, 3); got != "[1,2,3]" {
		t.Errorf("Index = %q", got)
	}
	got, err := ParseIndex("[4, 5]")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{4, 5}, got); diff != "" {
		t.Errorf("ParseIndex mismatch (-want +got):\n%s", diff)
	}
	if _, err := ParseIndex("[-1]"); !errors.Is(err, ErrSyntax) {
		t.Errorf("ParseIndex([-1]) error = %v", err)
	}
}
