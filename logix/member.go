package logix

import (
	"fmt"
	"strconv"

	"github.com/signadot/l5x-format/go-l5x/logix/tagname"
)

// Member is a named slot holding one value. It is the unit of composition
// of arrays, structures and strings.
//
// A literal member stores its value. A computed member reads and writes
// through accessor funcs instead, for layouts whose serialized form does
// not decompose into child elements.
type Member struct {
	name  string
	value Value

	get func() Value
	set func(Value) error

	parent container
	// host is the integer member a bit member addresses.
	host *Member

	listeners []func(Change)
}

// NewMember makes a literal member. The name must be a member name or a
// bracket index. A nil value is a caller defect and panics; use Null for
// an uninitialized slot.
func NewMember(name string, v Value) (*Member, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	m := &Member{name: name}
	m.assign(mustValue(name, v))
	return m, nil
}

// MustMember is like NewMember but panics on error.
func MustMember(name string, v Value) *Member {
	m, err := NewMember(name, v)
	if err != nil {
		panic(err)
	}
	return m
}

// NewComputedMember makes a member whose value is produced by get and
// stored by set. A nil set makes the member read-only.
func NewComputedMember(name string, get func() Value, set func(Value) error) (*Member, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if get == nil {
		panic("logix: computed member " + name + " without getter")
	}
	return &Member{name: name, get: get, set: set}, nil
}

func mustValue(name string, v Value) Value {
	if v == nil {
		panic("logix: nil value for member " + name)
	}
	return v
}

func validName(name string) bool {
	if tagname.IsName(name) || tagname.IsBit(name) {
		return true
	}
	_, err := tagname.ParseIndex(name)
	return err == nil
}

func (m *Member) Name() string { return m.name }

// Value returns the current value.
func (m *Member) Value() Value {
	if m.get != nil {
		return m.get()
	}
	return m.value
}

// IsComputed reports whether the member is backed by accessor funcs.
func (m *Member) IsComputed() bool { return m.get != nil }

// IsReadOnly reports whether SetValue always fails.
func (m *Member) IsReadOnly() bool { return m.get != nil && m.set == nil }

// Parent is the composite value holding m, or nil.
func (m *Member) Parent() Value {
	if m.parent == nil {
		return nil
	}
	return m.parent
}

// SetValue replaces the member's value and raises one change. The
// containing collection may reject v, e.g. an array rejects a value of
// another type. A value already owned elsewhere, or one which would make
// the tree cyclic, is cloned first.
func (m *Member) SetValue(v Value) error {
	mustValue(m.name, v)
	if m.get != nil {
		if m.set == nil {
			return fmt.Errorf("%w: %s", ErrReadOnly, m.TagName())
		}
		if err := m.set(v); err != nil {
			return err
		}
		m.notify(Change{Member: m, Op: OpSet})
		return nil
	}
	if m.parent != nil {
		cv, err := m.parent.accept(m, v)
		if err != nil {
			return fmt.Errorf("%s: %w", m.TagName(), err)
		}
		v = cv
	}
	m.assign(v)
	m.notify(Change{Member: m, Op: OpSet})
	return nil
}

// assign installs v without raising a change.
func (m *Member) assign(v Value) {
	if c, ok := v.(container); ok {
		if owner := c.base().owner; (owner != nil && owner != m) || m.within(c) {
			v = c.Clone()
			c = v.(container)
		}
		c.base().owner = m
	}
	if old, ok := m.value.(container); ok && old != v {
		old.base().owner = nil
	}
	m.value = v
}

// within reports whether m sits somewhere below c.
func (m *Member) within(c container) bool {
	return m.parent != nil && below(m.parent, c)
}

// OnChange registers fn to be called after any mutation of this member's
// value or below it.
func (m *Member) OnChange(fn func(Change)) (cancel func()) {
	m.listeners = append(m.listeners, fn)
	i := len(m.listeners) - 1
	return func() { m.listeners[i] = nil }
}

func (m *Member) notify(c Change) {
	traceChange(m, c)
	for _, fn := range m.listeners {
		if fn != nil {
			fn(c)
		}
	}
	if m.parent != nil {
		m.parent.base().notify(c)
	}
}

// TagName is the path of m from the root of its tree, starting with the
// root member's name.
func (m *Member) TagName() tagname.TagName {
	if m.host != nil {
		return m.host.TagName().Append(m.name)
	}
	if m.parent == nil {
		return tagname.TagName(m.name)
	}
	owner := m.parent.base().owner
	if owner == nil {
		return tagname.TagName(m.name)
	}
	return owner.TagName().Append(m.name)
}

// Members returns the members of the held value. Integer atomics expose
// one computed BOOL member per bit, named "0" upward; those of 32 and
// 64 bit types are writable.
func (m *Member) Members() []*Member {
	v := m.Value()
	if a, ok := v.(Atomic); ok && a.typ.IsInteger() {
		res := make([]*Member, a.typ.Bits())
		for i := range res {
			res[i] = m.bit(i)
		}
		return res
	}
	return v.Members()
}

func (m *Member) bit(i int) *Member {
	get := func() Value {
		a, _ := m.Value().(Atomic)
		b, err := a.Bit(i)
		if err != nil {
			return Null
		}
		return b
	}
	var set func(Value) error
	if a, ok := m.Value().(Atomic); ok && a.typ.Bits() >= 32 {
		set = func(v Value) error {
			on, ok := v.(Atomic)
			if !ok {
				return fmt.Errorf("%w: %s is not atomic", ErrInvalidCast, v.Kind())
			}
			a, ok := m.Value().(Atomic)
			if !ok {
				return fmt.Errorf("%w: %s no longer holds an integer", ErrInvalidCast, m.TagName())
			}
			na, err := a.SetBit(i, on.As(Bool).Bool())
			if err != nil {
				return err
			}
			return m.SetValue(na)
		}
	}
	return &Member{name: strconv.Itoa(i), get: get, set: set, host: m}
}

// Clone deep-copies m into a member which belongs to no collection.
// Computed members keep sharing their accessors.
func (m *Member) Clone() *Member {
	if m.get != nil {
		return &Member{name: m.name, get: m.get, set: m.set}
	}
	res := &Member{name: m.name}
	res.assign(m.value.Clone())
	return res
}

func (m *Member) String() string {
	return fmt.Sprintf("%s = %s", m.name, m.Value())
}
