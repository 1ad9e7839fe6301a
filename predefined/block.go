package predefined

import (
	"fmt"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/logix"
)

// field is one attribute of a parameters block exposed as a member.
// Text fields hold a STRING; the others the atomic type typ.
type field struct {
	attr string
	typ  logix.AtomicType
	text bool
}

func textField(attr string) field                     { return field{attr: attr, text: true} }
func atomField(attr string, t logix.AtomicType) field { return field{attr: attr, typ: t} }

// binder returns the member binder of a block type with the given fields.
func binder(fields []field) func(*logix.Block) []*logix.Member {
	return func(b *logix.Block) []*logix.Member {
		res := make([]*logix.Member, len(fields))
		for i, f := range fields {
			m, err := logix.NewComputedMember(f.attr, f.getter(b), f.setter(b))
			if err != nil {
				panic(err)
			}
			res[i] = m
		}
		return res
	}
}

func (f field) getter(b *logix.Block) func() logix.Value {
	if f.text {
		return func() logix.Value {
			v, _ := b.Get(f.attr)
			return logix.NewString(v[:min(len(v), logix.MaxAxis)])
		}
	}
	return func() logix.Value { return f.atomic(b) }
}

func (f field) atomic(b *logix.Block) logix.Atomic {
	v, ok := b.Get(f.attr)
	if !ok {
		return logix.Zero(f.typ)
	}
	if f.typ == logix.Bool {
		return logix.NewBool(strings.EqualFold(v, "true") || v == "1")
	}
	a, err := logix.ParseAtomicAs(f.typ, v)
	if err != nil {
		return logix.Zero(f.typ)
	}
	return a
}

func (f field) setter(b *logix.Block) func(logix.Value) error {
	if f.text {
		return func(v logix.Value) error {
			s, ok := v.(*logix.String)
			if !ok {
				return fmt.Errorf("%w: %s takes a STRING, not %s", logix.ErrInvalidCast, f.attr, v.TypeName())
			}
			b.Set(f.attr, s.Text())
			return nil
		}
	}
	return func(v logix.Value) error {
		a, ok := v.(logix.Atomic)
		if !ok {
			return fmt.Errorf("%w: %s takes a %s, not %s", logix.ErrInvalidCast, f.attr, f.typ, v.TypeName())
		}
		b.Set(f.attr, f.format(b, a.As(f.typ)))
		return nil
	}
}

// format renders a the way the block already spells the attribute: the
// case of boolean words and the radix of numbers are kept.
func (f field) format(b *logix.Block, a logix.Atomic) string {
	old, _ := b.Get(f.attr)
	if f.typ == logix.Bool {
		s := "false"
		if a.Bool() {
			s = "true"
		}
		if old != "" && old == strings.ToUpper(old) {
			s = strings.ToUpper(s)
		}
		return s
	}
	if prev, err := logix.ParseAtomicAs(f.typ, old); err == nil {
		if ra, err := a.WithRadix(prev.Radix()); err == nil {
			return ra.String()
		}
	}
	return a.String()
}

// blockType registers a block backed type over fields.
func blockType(name, element, format string, defaults []logix.Attr, fields []field) *Type {
	bind := binder(fields)
	return &Type{
		Name:  name,
		Block: element,
		New: func() logix.Value {
			s, err := logix.NewBlockStructure(name, logix.NewBlock(element, format, defaults...), bind)
			if err != nil {
				panic(err)
			}
			return s
		},
		FromBlock: func(b *logix.Block) (logix.Value, error) {
			return logix.NewBlockStructure(name, b, bind)
		},
	}
}
