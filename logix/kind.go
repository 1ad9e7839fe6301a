package logix

import (
	"fmt"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/radix"
)

// Kind is the variant of a Value.
type Kind int

const (
	NullKind Kind = iota
	AtomicKind
	StringKind
	ArrayKind
	StructureKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:      "Null",
		AtomicKind:    "Atomic",
		StringKind:    "String",
		ArrayKind:     "Array",
		StructureKind: "Structure",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AtomicType is the concrete type of an Atomic.
type AtomicType int

const (
	Bool AtomicType = iota
	Sint
	Int
	Dint
	Lint
	Usint
	Uint
	Udint
	Ulint
	Real
	Lreal
)

var atomicTypeNames = map[AtomicType]string{
	Bool:  "BOOL",
	Sint:  "SINT",
	Int:   "INT",
	Dint:  "DINT",
	Lint:  "LINT",
	Usint: "USINT",
	Uint:  "UINT",
	Udint: "UDINT",
	Ulint: "ULINT",
	Real:  "REAL",
	Lreal: "LREAL",
}

var atomicShapes = map[AtomicType]radix.Shape{
	Bool:  {Bits: 1},
	Sint:  {Bits: 8, Signed: true},
	Int:   {Bits: 16, Signed: true},
	Dint:  {Bits: 32, Signed: true},
	Lint:  {Bits: 64, Signed: true},
	Usint: {Bits: 8},
	Uint:  {Bits: 16},
	Udint: {Bits: 32},
	Ulint: {Bits: 64},
	Real:  {Bits: 32, Float: true},
	Lreal: {Bits: 64, Float: true},
}

func (t AtomicType) String() string {
	s, ok := atomicTypeNames[t]
	if ok {
		return s
	}
	return "<unknown atomic type>"
}

func (t AtomicType) MarshalText() ([]byte, error) {
	s, ok := atomicTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("<err: %d is not an atomic type>", t)
	}
	return []byte(s), nil
}

func (t *AtomicType) UnmarshalText(d []byte) error {
	at, ok := LookupAtomicType(string(d))
	if !ok {
		return fmt.Errorf("unrecognized atomic type %q", d)
	}
	*t = at
	return nil
}

// LookupAtomicType finds the atomic type with the given data type name,
// ignoring case. BIT is an alias for BOOL.
func LookupAtomicType(name string) (AtomicType, bool) {
	if strings.EqualFold(name, "BIT") {
		return Bool, true
	}
	for _, t := range AtomicTypes() {
		if strings.EqualFold(atomicTypeNames[t], name) {
			return t, true
		}
	}
	return 0, false
}

func AtomicTypes() []AtomicType {
	return []AtomicType{Bool, Sint, Int, Dint, Lint, Usint, Uint, Udint, Ulint, Real, Lreal}
}

func (t AtomicType) Shape() radix.Shape { return atomicShapes[t] }

// Bits is the payload width.
func (t AtomicType) Bits() int { return atomicShapes[t].Bits }

func (t AtomicType) IsFloat() bool { return atomicShapes[t].Float }

func (t AtomicType) IsSigned() bool { return atomicShapes[t].Signed }

func (t AtomicType) IsInteger() bool { return t != Bool && !t.IsFloat() }

// DefaultRadix is the radix of a freshly declared value of type t.
func (t AtomicType) DefaultRadix() radix.Radix { return radix.Default(t.Shape()) }

func (t AtomicType) mask() uint64 {
	b := t.Bits()
	if b >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(b) - 1
}
