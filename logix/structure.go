package logix

import (
	"fmt"
	"strings"
)

// Structure is an ordered collection of uniquely named members. Member
// order is the serialized order.
//
// A fixed structure has its layout set at construction, as predefined
// types do: members can be set, and SetMember can append, but Add,
// Insert, Remove and the other layout operations fail with
// ErrFixedLayout. Setting a member of a fixed structure keeps its type.
type Structure struct {
	node
	typeName string
	fixed    bool
	members  []*Member

	block *Block
	bind  func(*Block) []*Member
}

// NewStructure makes a mutable structure.
func NewStructure(typeName string, members ...*Member) (*Structure, error) {
	s := &Structure{typeName: typeName}
	if err := s.attach(members); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFixedStructure makes a structure whose layout cannot change.
func NewFixedStructure(typeName string, members ...*Member) (*Structure, error) {
	s, err := NewStructure(typeName, members...)
	if err != nil {
		return nil, err
	}
	s.fixed = true
	return s, nil
}

// MustStructure is like NewStructure but panics on error.
func MustStructure(typeName string, members ...*Member) *Structure {
	s, err := NewStructure(typeName, members...)
	if err != nil {
		panic(err)
	}
	return s
}

// attach appends ms after checking all of them, so a failure leaves s
// unchanged.
func (s *Structure) attach(ms []*Member) error {
	return s.attachAt(len(s.members), ms)
}

func (s *Structure) attachAt(i int, ms []*Member) error {
	if err := s.check(ms, nil); err != nil {
		return err
	}
	tail := append([]*Member(nil), s.members[i:]...)
	s.members = append(append(s.members[:i], ms...), tail...)
	for _, m := range ms {
		m.parent = s
	}
	return nil
}

// check vets ms as new members, ignoring the existing member skip.
func (s *Structure) check(ms []*Member, skip *Member) error {
	for i, m := range ms {
		if m == nil {
			panic("logix: nil member in " + s.typeName)
		}
		if m.parent != nil || m.host != nil {
			return fmt.Errorf("%w: %s", ErrMemberInUse, m.name)
		}
		if c, ok := m.value.(container); ok && below(s, c) {
			return fmt.Errorf("%w: %s into %s", ErrCycle, m.name, s.typeName)
		}
		if j := s.Index(m.name); j >= 0 && s.members[j] != skip {
			return fmt.Errorf("%w: %s in %s", ErrDuplicateMember, m.name, s.typeName)
		}
		for _, o := range ms[:i] {
			if o == m || strings.EqualFold(o.name, m.name) {
				return fmt.Errorf("%w: %s in %s", ErrDuplicateMember, m.name, s.typeName)
			}
		}
	}
	return nil
}

// below reports whether v is c or sits somewhere below it.
func below(v, c container) bool {
	for v != nil {
		if Value(v) == Value(c) {
			return true
		}
		owner := v.base().owner
		if owner == nil {
			return false
		}
		v = owner.parent
	}
	return false
}

func (s *Structure) Kind() Kind       { return StructureKind }
func (s *Structure) TypeName() string { return s.typeName }
func (s *Structure) isValue()         {}

// IsFixed reports whether the layout is fixed.
func (s *Structure) IsFixed() bool { return s.fixed }

func (s *Structure) Members() []*Member { return append([]*Member(nil), s.members...) }

func (s *Structure) Len() int { return len(s.members) }

// Index is the position of the member called name, or -1.
func (s *Structure) Index(name string) int {
	for i, m := range s.members {
		if strings.EqualFold(m.name, name) {
			return i
		}
	}
	return -1
}

func (s *Structure) Has(name string) bool { return s.Index(name) >= 0 }

// Member looks up a member by case-insensitive name.
func (s *Structure) Member(name string) (*Member, error) {
	i := s.Index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrMemberNotFound, name, s.typeName)
	}
	return s.members[i], nil
}

func (s *Structure) At(i int) (*Member, error) {
	if i < 0 || i >= len(s.members) {
		return nil, fmt.Errorf("%w: member %d of %s", ErrIndexOutOfRange, i, s.typeName)
	}
	return s.members[i], nil
}

func (s *Structure) mutable() error {
	if s.fixed {
		return fmt.Errorf("%w: %s", ErrFixedLayout, s.typeName)
	}
	return nil
}

// Add appends m.
func (s *Structure) Add(m *Member) error {
	return s.AddRange(m)
}

// AddRange appends ms, all or none. One change is raised per member.
func (s *Structure) AddRange(ms ...*Member) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if err := s.attach(ms); err != nil {
		return err
	}
	for _, m := range ms {
		s.notify(Change{Member: m, Op: OpAdd})
	}
	return nil
}

// Insert places m at position i, 0 <= i <= Len.
func (s *Structure) Insert(i int, m *Member) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if i < 0 || i > len(s.members) {
		return fmt.Errorf("%w: insert at %d of %s", ErrIndexOutOfRange, i, s.typeName)
	}
	if err := s.attachAt(i, []*Member{m}); err != nil {
		return err
	}
	s.notify(Change{Member: m, Op: OpAdd})
	return nil
}

// Remove detaches the member called name. A missing name is
// ErrMemberNotFound.
func (s *Structure) Remove(name string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	i := s.Index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s in %s", ErrMemberNotFound, name, s.typeName)
	}
	return s.RemoveAt(i)
}

func (s *Structure) RemoveAt(i int) error {
	if err := s.mutable(); err != nil {
		return err
	}
	m, err := s.At(i)
	if err != nil {
		return err
	}
	s.members = append(s.members[:i], s.members[i+1:]...)
	m.parent = nil
	s.notify(Change{Member: m, Op: OpRemove})
	return nil
}

// Replace sets the value of the member called name.
func (s *Structure) Replace(name string, v Value) error {
	m, err := s.Member(name)
	if err != nil {
		return err
	}
	return m.SetValue(v)
}

// ReplaceMember swaps the member called name for m, keeping its position.
func (s *Structure) ReplaceMember(name string, m *Member) error {
	if err := s.mutable(); err != nil {
		return err
	}
	i := s.Index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s in %s", ErrMemberNotFound, name, s.typeName)
	}
	return s.ReplaceAt(i, m)
}

// ReplaceAt swaps the member at position i for m. It raises a remove and
// an add.
func (s *Structure) ReplaceAt(i int, m *Member) error {
	if err := s.mutable(); err != nil {
		return err
	}
	old, err := s.At(i)
	if err != nil {
		return err
	}
	if err := s.check([]*Member{m}, old); err != nil {
		return err
	}
	s.members[i] = m
	old.parent = nil
	m.parent = s
	s.notify(Change{Member: old, Op: OpRemove})
	s.notify(Change{Member: m, Op: OpAdd})
	return nil
}

// Clear removes all members with a single change.
func (s *Structure) Clear() error {
	if err := s.mutable(); err != nil {
		return err
	}
	for _, m := range s.members {
		m.parent = nil
	}
	s.members = nil
	s.notify(Change{Op: OpClear})
	return nil
}

func (s *Structure) Clone() Value {
	res := &Structure{typeName: s.typeName, fixed: s.fixed, bind: s.bind}
	if s.block != nil {
		res.block = s.block.Clone()
		// the binder accepted this block once, so failing now is a binder bug
		if err := res.bindBlock(); err != nil {
			panic(err)
		}
		return res
	}
	res.members = make([]*Member, len(s.members))
	for i, m := range s.members {
		c := m.Clone()
		c.parent = res
		res.members[i] = c
	}
	return res
}

func (s *Structure) String() string {
	b := &strings.Builder{}
	b.WriteString(s.typeName)
	b.WriteString("{")
	for i, m := range s.members {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}
	b.WriteString("}")
	return b.String()
}

func (s *Structure) accept(m *Member, v Value) (Value, error) {
	if !s.fixed {
		return v, nil
	}
	cur := m.Value()
	if cur.Kind() == NullKind {
		return v, nil
	}
	if !sameType(cur, v) {
		return nil, fmt.Errorf("%w: %s is %s, not %s", ErrInvalidCast, m.name, cur.TypeName(), v.TypeName())
	}
	if x, ok := v.(*String); ok {
		return fitString(cur.(*String), x)
	}
	return v, nil
}

// GetMember returns the value of the member called name as a T.
func GetMember[T Value](s *Structure, name string) (T, error) {
	var zero T
	m, err := s.Member(name)
	if err != nil {
		return zero, err
	}
	t, ok := m.Value().(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %s", ErrInvalidCast, m.name, m.Value().Kind())
	}
	return t, nil
}

// SetMember sets the member called name to v, appending a new member if
// there is none. It appends even to a fixed structure, so predefined
// types can grow their declared layout in order.
func SetMember(s *Structure, name string, v Value) error {
	if m, err := s.Member(name); err == nil {
		return m.SetValue(v)
	}
	m, err := NewMember(name, v)
	if err != nil {
		return err
	}
	if err := s.attach([]*Member{m}); err != nil {
		m.assign(Null)
		return err
	}
	s.notify(Change{Member: m, Op: OpAdd})
	return nil
}
