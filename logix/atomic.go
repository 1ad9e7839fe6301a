package logix

import (
	"cmp"
	"fmt"
	"math"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/radix"
)

// Atomic is an immutable scalar value. Changing an atomic means building
// a new one.
type Atomic struct {
	typ   AtomicType
	bits  uint64
	radix radix.Radix
}

// Zero is the default value of t in its default radix.
func Zero(t AtomicType) Atomic {
	return Atomic{typ: t, radix: t.DefaultRadix()}
}

// FromBits builds an atomic from its raw payload. Bits above the width of
// t are discarded.
func FromBits(t AtomicType, bits uint64, r radix.Radix) (Atomic, error) {
	if !r.Supports(t.Shape()) {
		return Atomic{}, fmt.Errorf("%w: radix %s for %s", radix.ErrUnsupported, r, t)
	}
	return Atomic{typ: t, bits: bits & t.mask(), radix: r}, nil
}

func fromBits(t AtomicType, bits uint64) Atomic {
	return Atomic{typ: t, bits: bits & t.mask(), radix: t.DefaultRadix()}
}

func NewBool(v bool) Atomic {
	if v {
		return fromBits(Bool, 1)
	}
	return fromBits(Bool, 0)
}
func NewSint(v int8) Atomic     { return fromBits(Sint, uint64(v)) }
func NewInt(v int16) Atomic     { return fromBits(Int, uint64(v)) }
func NewDint(v int32) Atomic    { return fromBits(Dint, uint64(v)) }
func NewLint(v int64) Atomic    { return fromBits(Lint, uint64(v)) }
func NewUsint(v uint8) Atomic   { return fromBits(Usint, uint64(v)) }
func NewUint(v uint16) Atomic   { return fromBits(Uint, uint64(v)) }
func NewUdint(v uint32) Atomic  { return fromBits(Udint, uint64(v)) }
func NewUlint(v uint64) Atomic  { return fromBits(Ulint, v) }
func NewReal(v float32) Atomic  { return fromBits(Real, uint64(math.Float32bits(v))) }
func NewLreal(v float64) Atomic { return fromBits(Lreal, math.Float64bits(v)) }

func (a Atomic) Kind() Kind         { return AtomicKind }
func (a Atomic) TypeName() string   { return a.typ.String() }
func (a Atomic) Members() []*Member { return nil }
func (a Atomic) Clone() Value       { return a }
func (a Atomic) isValue()           {}

func (a Atomic) Type() AtomicType   { return a.typ }
func (a Atomic) Radix() radix.Radix { return a.radix }
func (a Atomic) Bits() uint64       { return a.bits }

// WithRadix returns a copy of a rendered in r.
func (a Atomic) WithRadix(r radix.Radix) (Atomic, error) {
	if !r.Supports(a.typ.Shape()) {
		return a, fmt.Errorf("%w: radix %s for %s", radix.ErrUnsupported, r, a.typ)
	}
	a.radix = r
	return a, nil
}

// String formats a in its own radix.
func (a Atomic) String() string {
	s, err := a.Format(a.radix)
	if err != nil {
		s, _ = a.Format(a.typ.DefaultRadix())
	}
	return s
}

// Format renders a in radix r without changing a.
func (a Atomic) Format(r radix.Radix) (string, error) {
	return r.Format(a.bits, a.typ.Shape())
}

func (a Atomic) Bool() bool { return a.bits != 0 }

// Int64 is the value sign- or zero-extended to 64 bits. Floats truncate
// toward zero.
func (a Atomic) Int64() int64 {
	switch {
	case a.typ.IsFloat():
		return floatToInt(a.Float64())
	case a.typ.IsSigned():
		shift := uint(64 - a.typ.Bits())
		return int64(a.bits<<shift) >> shift
	}
	return int64(a.bits)
}

func (a Atomic) Uint64() uint64 {
	if a.typ.IsFloat() {
		return uint64(floatToInt(a.Float64()))
	}
	return uint64(a.Int64())
}

func (a Atomic) Float64() float64 {
	switch a.typ {
	case Real:
		return float64(math.Float32frombits(uint32(a.bits)))
	case Lreal:
		return math.Float64frombits(a.bits)
	case Ulint:
		return float64(a.bits)
	}
	return float64(a.Int64())
}

func floatToInt(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// As converts a to type t. Integer conversions copy the two's complement
// payload: widening sign-extends signed sources, narrowing truncates.
// Conversions to and from floats go by numeric value, and any non-zero
// value converts to a true BOOL.
func (a Atomic) As(t AtomicType) Atomic {
	if t == a.typ {
		return a
	}
	var res Atomic
	switch {
	case t == Bool:
		nz := a.bits != 0
		if a.typ.IsFloat() {
			nz = a.Float64() != 0
		}
		res = NewBool(nz)
	case t == Real:
		res = NewReal(float32(a.Float64()))
	case t == Lreal:
		res = NewLreal(a.Float64())
	case a.typ.IsFloat():
		res = fromBits(t, uint64(floatToInt(a.Float64())))
	default:
		res = fromBits(t, uint64(a.Int64()))
	}
	if a.radix.Supports(t.Shape()) {
		res.radix = a.radix
	}
	return res
}

// Equal reports whether a and b have the same type and numeric value.
// Atomics of different types are never equal; convert first. All NaNs of
// one type are equal, as they share the text 1.#QNAN.
func (a Atomic) Equal(b Atomic) bool {
	if a.typ != b.typ {
		return false
	}
	if a.typ.IsFloat() {
		x, y := a.Float64(), b.Float64()
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	}
	return a.bits == b.bits
}

// Compare orders atomics of the same type by numeric value.
func (a Atomic) Compare(b Atomic) (int, error) {
	if a.typ != b.typ {
		return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrInvalidCast, a.typ, b.typ)
	}
	switch {
	case a.typ.IsFloat():
		return cmp.Compare(a.Float64(), b.Float64()), nil
	case a.typ.IsSigned():
		return cmp.Compare(a.Int64(), b.Int64()), nil
	}
	return cmp.Compare(a.bits, b.bits), nil
}

// Bit returns bit i of an integer atomic as a BOOL.
func (a Atomic) Bit(i int) (Atomic, error) {
	if !a.typ.IsInteger() {
		return Atomic{}, fmt.Errorf("%w: %s has no bits", ErrInvalidCast, a.typ)
	}
	if i < 0 || i >= a.typ.Bits() {
		return Atomic{}, fmt.Errorf("%w: bit %d of %s", ErrIndexOutOfRange, i, a.typ)
	}
	return NewBool(a.bits&(1<<uint(i)) != 0), nil
}

// SetBit returns a copy of a with bit i set to v.
func (a Atomic) SetBit(i int, v bool) (Atomic, error) {
	if _, err := a.Bit(i); err != nil {
		return a, err
	}
	if v {
		a.bits |= 1 << uint(i)
	} else {
		a.bits &^= 1 << uint(i)
	}
	return a, nil
}

// ParseAtomic parses a literal, inferring both radix and type. Decimal
// literals take the narrowest type that holds them, starting from BOOL for
// 0 and 1; based and ASCII literals take the type matching their digit
// width; float literals are REAL unless they need LREAL precision; Date/Time
// literals are LINT.
func ParseAtomic(text string) (Atomic, error) {
	t := strings.TrimSpace(text)
	r, err := radix.Infer(t)
	if err != nil {
		return Atomic{}, err
	}
	typ, err := inferType(t, r)
	if err != nil {
		return Atomic{}, err
	}
	return parseAs(typ, t, r)
}

// ParseAtomicAs parses a literal of any radix into type t, rejecting values
// that do not fit.
func ParseAtomicAs(t AtomicType, text string) (Atomic, error) {
	s := strings.TrimSpace(text)
	r, err := radix.Infer(s)
	if err != nil {
		return Atomic{}, err
	}
	return parseAs(t, s, r)
}

func parseAs(t AtomicType, text string, r radix.Radix) (Atomic, error) {
	bits, err := r.Parse(text, t.Shape())
	if err != nil {
		return Atomic{}, err
	}
	if !r.Supports(t.Shape()) {
		r = t.DefaultRadix()
	}
	return Atomic{typ: t, bits: bits, radix: r}, nil
}

func inferType(t string, r radix.Radix) (AtomicType, error) {
	switch r {
	case radix.Decimal:
		switch t {
		case "true", "false", "0", "1":
			return Bool, nil
		}
		for _, typ := range []AtomicType{Sint, Int, Dint, Lint, Ulint} {
			if _, err := r.Parse(t, typ.Shape()); err == nil {
				return typ, nil
			}
		}
		return 0, fmt.Errorf("%w: %q is out of range", ErrFormat, t)
	case radix.Hex, radix.Octal, radix.Binary:
		_, digits, _ := strings.Cut(t, "#")
		n := len(strings.ReplaceAll(digits, "_", ""))
		per := map[radix.Radix]int{radix.Hex: 4, radix.Octal: 3, radix.Binary: 1}[r]
		return fitType(t, r, n*per)
	case radix.ASCII:
		b, err := radix.UnquoteASCII(t)
		if err != nil {
			return 0, err
		}
		return fitType(t, r, 8*len(b))
	case radix.Float, radix.Exponential:
		bits, err := r.Parse(t, Lreal.Shape())
		if err != nil {
			return 0, err
		}
		f := math.Float64frombits(bits)
		if math.IsNaN(f) || float64(float32(f)) == f {
			return Real, nil
		}
		return Lreal, nil
	case radix.DateTime:
		return Lint, nil
	}
	return 0, fmt.Errorf("%w: cannot infer a type for %q", ErrFormat, t)
}

// fitType picks the narrowest signed type that holds the literal, given
// that it carries n bits of digits. Octal digits overshoot a width by up to
// two bits.
func fitType(t string, r radix.Radix, n int) (AtomicType, error) {
	for _, typ := range []AtomicType{Sint, Int, Dint, Lint} {
		if typ.Bits()+2 < n && typ != Lint {
			continue
		}
		if _, err := r.Parse(t, typ.Shape()); err == nil {
			return typ, nil
		}
	}
	return 0, fmt.Errorf("%w: %q does not fit any integer type", ErrFormat, t)
}
