package logix

import (
	"fmt"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/logix/tagname"
	"github.com/signadot/l5x-format/go-l5x/radix"
)

// Array is a homogeneous collection of elements addressed by up to three
// indices. Element members are named by their bracket index, "[1,2]".
// Atomic elements share the radix of the array.
type Array struct {
	node
	typeName string
	kind     Kind
	dims     Dimensions
	radix    radix.Radix
	elems    []*Member
}

// NewArray builds an array of shape dims from elems in row-major order.
// Every element must have the type of the first; atomics take its radix.
func NewArray(dims Dimensions, elems ...Value) (*Array, error) {
	if dims.Len() == 0 || len(elems) == 0 {
		return nil, ErrEmptyArray
	}
	if len(elems) != dims.Len() {
		return nil, fmt.Errorf("%w: %d elements for %s", ErrDimensions, len(elems), dims)
	}
	first := elems[0]
	for i, e := range elems {
		if e == nil {
			panic(fmt.Sprintf("logix: nil array element %d", i))
		}
		if e.Kind() == NullKind {
			return nil, fmt.Errorf("%w: element %s", ErrNullElement, dims.IndexName(i))
		}
		if !sameType(first, e) {
			return nil, fmt.Errorf("%w: element %s is %s, not %s", ErrHeterogeneousArray,
				dims.IndexName(i), e.TypeName(), first.TypeName())
		}
	}
	a := &Array{
		typeName: first.TypeName(),
		kind:     first.Kind(),
		dims:     dims,
	}
	if at, ok := first.(Atomic); ok {
		a.radix = at.radix
	}
	a.elems = make([]*Member, len(elems))
	for i, e := range elems {
		if at, ok := e.(Atomic); ok {
			at.radix = a.radix
			e = at
		}
		if s, ok := e.(*String); ok && a.kind == StringKind {
			fs, err := fitString(first.(*String), s)
			if err != nil {
				return nil, fmt.Errorf("element %s: %w", dims.IndexName(i), err)
			}
			e = fs
		}
		a.elems[i] = a.newElem(i, e)
	}
	return a, nil
}

func (a *Array) newElem(i int, v Value) *Member {
	m := &Member{name: a.dims.IndexName(i), parent: a}
	m.assign(v)
	return m
}

// Fill builds an array of shape dims with a copy of zero in every element.
func Fill(dims Dimensions, zero Value) (*Array, error) {
	if zero == nil {
		panic("logix: nil fill value")
	}
	elems := make([]Value, dims.Len())
	for i := range elems {
		elems[i] = zero.Clone()
	}
	return NewArray(dims, elems...)
}

// NewAtomicArray builds an array of zero values of type t.
func NewAtomicArray(t AtomicType, dims Dimensions) (*Array, error) {
	return Fill(dims, Zero(t))
}

func (a *Array) Kind() Kind       { return ArrayKind }
func (a *Array) TypeName() string { return a.typeName }
func (a *Array) isValue()         {}

// ElemKind is the kind shared by all elements.
func (a *Array) ElemKind() Kind { return a.kind }

func (a *Array) Dimensions() Dimensions { return a.dims }

// Radix is the shared radix of atomic elements, Null otherwise.
func (a *Array) Radix() radix.Radix { return a.radix }

// SetRadix re-renders every atomic element in r. It is not a change of
// value and raises no event.
func (a *Array) SetRadix(r radix.Radix) error {
	if a.kind != AtomicKind {
		return fmt.Errorf("%w: %s elements have no radix", ErrInvalidCast, a.typeName)
	}
	for _, m := range a.elems {
		at, err := m.value.(Atomic).WithRadix(r)
		if err != nil {
			return err
		}
		m.value = at
	}
	a.radix = r
	return nil
}

func (a *Array) Len() int { return len(a.elems) }

func (a *Array) Members() []*Member { return append([]*Member(nil), a.elems...) }

// At returns the element member at the given indices, one per axis.
func (a *Array) At(idx ...int) (*Member, error) {
	off, err := a.dims.Offset(idx...)
	if err != nil {
		return nil, err
	}
	return a.elems[off], nil
}

// Get returns the element value at the given indices.
func (a *Array) Get(idx ...int) (Value, error) {
	m, err := a.At(idx...)
	if err != nil {
		return nil, err
	}
	return m.Value(), nil
}

// Set replaces the value of the element at idx. The element member stays.
func (a *Array) Set(v Value, idx ...int) error {
	m, err := a.At(idx...)
	if err != nil {
		return err
	}
	return m.SetValue(v)
}

// Index returns the element named by a bracket segment such as "[2]".
func (a *Array) Index(seg string) (*Member, error) {
	idx, err := tagname.ParseIndex(seg)
	if err != nil {
		return nil, err
	}
	return a.At(idx...)
}

func (a *Array) Clone() Value {
	res := &Array{typeName: a.typeName, kind: a.kind, dims: a.dims, radix: a.radix}
	res.elems = make([]*Member, len(a.elems))
	for i, m := range a.elems {
		res.elems[i] = res.newElem(i, m.value.Clone())
	}
	return res
}

func (a *Array) String() string {
	b := &strings.Builder{}
	b.WriteString(a.typeName)
	b.WriteString(a.dims.String())
	b.WriteString("{")
	for i, m := range a.elems {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.value.String())
	}
	b.WriteString("}")
	return b.String()
}

func (a *Array) accept(_ *Member, v Value) (Value, error) {
	if v.Kind() == NullKind {
		return nil, ErrNullElement
	}
	proto := a.elems[0].value
	if !sameType(proto, v) {
		return nil, fmt.Errorf("%w: %s into %s array", ErrHeterogeneousArray, v.TypeName(), a.typeName)
	}
	switch x := v.(type) {
	case Atomic:
		x.radix = a.radix
		return x, nil
	case *String:
		return fitString(proto.(*String), x)
	}
	return v, nil
}

// setBytes overwrites a SINT array from b, zero padding, without raising
// changes.
func (a *Array) setBytes(b []byte) {
	for i, m := range a.elems {
		var c byte
		if i < len(b) {
			c = b[i]
		}
		at := m.value.(Atomic)
		at.bits = uint64(c)
		m.value = at
	}
}

// As returns the element values of a as T, failing with ErrInvalidCast if
// any element holds another variant.
func As[T Value](a *Array) ([]T, error) {
	res := make([]T, len(a.elems))
	for i, m := range a.elems {
		t, ok := m.Value().(T)
		if !ok {
			return nil, fmt.Errorf("%w: element %s is %s", ErrInvalidCast, m.name, m.Value().Kind())
		}
		res[i] = t
	}
	return res, nil
}
