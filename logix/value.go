package logix

import (
	"strings"

	"github.com/signadot/l5x-format/go-l5x/debug"
)

// Value is one of NullValue, Atomic, *String, *Array or *Structure.
type Value interface {
	Kind() Kind
	// TypeName is the data type name: "DINT", "STRING", "TIMER", or for
	// arrays the element data type.
	TypeName() string
	// Members returns the literal or computed members of a composite value.
	Members() []*Member
	// Clone deep-copies the value. The copy belongs to no member.
	Clone() Value
	String() string

	isValue()
}

// NullValue represents an untyped or undefined tag.
type NullValue struct{}

// Null is the NullValue singleton.
var Null = NullValue{}

func (NullValue) Kind() Kind         { return NullKind }
func (NullValue) TypeName() string   { return "" }
func (NullValue) Members() []*Member { return nil }
func (NullValue) Clone() Value       { return Null }
func (NullValue) String() string     { return "null" }
func (NullValue) isValue()           {}

// Op classifies a Change.
type Op int

const (
	OpSet Op = iota
	OpAdd
	OpRemove
	OpClear
)

func (o Op) String() string {
	switch o {
	case OpSet:
		return "set"
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpClear:
		return "clear"
	}
	return "<unknown op>"
}

// Change describes one mutation. It is delivered unmodified to every
// listener from the mutation site up to the root.
//
// Member is the member whose value was set, the member added or removed,
// or nil for OpClear.
type Change struct {
	Member *Member
	Op     Op
}

// container is implemented by the composite variants, which own members
// and forward their changes upward.
type container interface {
	Value
	base() *node
	// accept vets v as the new value of child m, returning the value to
	// store. Arrays coerce atomics to their shared radix.
	accept(m *Member, v Value) (Value, error)
}

// node holds the ownership and listener state shared by composite values.
type node struct {
	owner     *Member
	listeners []func(Change)
}

func (n *node) base() *node { return n }

// Owner is the member holding this value, or nil for a root value.
func (n *node) Owner() *Member { return n.owner }

// OnChange registers fn to be called after any mutation at or below this
// value. Listeners must not mutate the tree they observe.
func (n *node) OnChange(fn func(Change)) (cancel func()) {
	n.listeners = append(n.listeners, fn)
	i := len(n.listeners) - 1
	return func() { n.listeners[i] = nil }
}

func (n *node) notify(c Change) {
	for _, fn := range n.listeners {
		if fn != nil {
			fn(c)
		}
	}
	if n.owner != nil {
		n.owner.notify(c)
	}
}

func sameType(a, b Value) bool {
	if a.Kind() != b.Kind() || !strings.EqualFold(a.TypeName(), b.TypeName()) {
		return false
	}
	if x, ok := a.(*Array); ok {
		return x.dims == b.(*Array).dims
	}
	return true
}

// Equal compares values structurally: same variant, same type name, and
// recursively equal members in the same order. Atomics compare by type
// and numeric value, strings by decoded text.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case Atomic:
		y, ok := b.(Atomic)
		return ok && x.Equal(y)
	case *String:
		y, ok := b.(*String)
		return ok && strings.EqualFold(x.typeName, y.typeName) && x.Text() == y.Text()
	case *Array:
		y, ok := b.(*Array)
		if !ok || x.dims != y.dims || !strings.EqualFold(x.typeName, y.typeName) {
			return false
		}
		for i := range x.elems {
			if !Equal(x.elems[i].Value(), y.elems[i].Value()) {
				return false
			}
		}
		return true
	case *Structure:
		y, ok := b.(*Structure)
		if !ok || !strings.EqualFold(x.typeName, y.typeName) || len(x.members) != len(y.members) {
			return false
		}
		for i := range x.members {
			mx, my := x.members[i], y.members[i]
			if !strings.EqualFold(mx.name, my.name) || !Equal(mx.Value(), my.Value()) {
				return false
			}
		}
		return true
	}
	return false
}

func traceChange(m *Member, c Change) {
	if !debug.Changes() {
		return
	}
	debug.Logf("change %s %s at %s\n", c.Op, changeName(c), m.TagName())
}

func changeName(c Change) string {
	if c.Member == nil {
		return "*"
	}
	return c.Member.name
}
