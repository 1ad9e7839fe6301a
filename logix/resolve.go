package logix

import (
	"iter"
	"strconv"

	"github.com/signadot/l5x-format/go-l5x/logix/tagname"
)

// Resolve follows path from root, one segment at a time: names select
// structure and string members, bracket indices select array elements and
// bit numbers select bits of integers. It returns nil as soon as a
// segment matches nothing. The empty path is root itself.
func Resolve(root *Member, path tagname.TagName) *Member {
	m := root
	for _, seg := range path.Segments() {
		if m = child(m, seg); m == nil {
			return nil
		}
	}
	return m
}

// Resolve is Resolve(m, path) for a path in text form. A malformed path
// resolves to nil.
func (m *Member) Resolve(path string) *Member {
	t, err := tagname.Parse(path)
	if err != nil {
		return nil
	}
	return Resolve(m, t)
}

func child(m *Member, seg string) *Member {
	switch v := m.Value().(type) {
	case *Array:
		if !tagname.IsIndex(seg) {
			return nil
		}
		e, err := v.Index(seg)
		if err != nil {
			return nil
		}
		return e
	case *Structure:
		if c, err := v.Member(seg); err == nil {
			return c
		}
	case *String:
		for _, c := range v.Members() {
			if tagname.SegmentEqual(c.name, seg) {
				return c
			}
		}
	case Atomic:
		if !tagname.IsBit(seg) || !v.typ.IsInteger() {
			return nil
		}
		i, err := strconv.Atoi(seg)
		if err != nil || i >= v.typ.Bits() {
			return nil
		}
		return m.bit(i)
	}
	return nil
}

type nameOpts struct {
	bits bool
}

// NameOption configures AllNames.
type NameOption func(*nameOpts)

// IncludeBits makes AllNames descend into the bits of integers.
func IncludeBits() NameOption {
	return func(o *nameOpts) { o.bits = true }
}

// AllNames yields the path relative to root of every member below it,
// depth first in declaration order, parents before children. Each call
// starts a fresh walk.
func AllNames(root *Member, opts ...NameOption) iter.Seq[tagname.TagName] {
	o := &nameOpts{}
	for _, opt := range opts {
		opt(o)
	}
	return func(yield func(tagname.TagName) bool) {
		walkNames(root, "", o, yield)
	}
}

func walkNames(m *Member, prefix tagname.TagName, o *nameOpts, yield func(tagname.TagName) bool) bool {
	var kids []*Member
	if a, ok := m.Value().(Atomic); ok {
		if !o.bits || !a.typ.IsInteger() {
			return true
		}
		kids = m.Members()
	} else {
		kids = m.Value().Members()
	}
	for _, k := range kids {
		p := prefix.Append(k.name)
		if !yield(p) {
			return false
		}
		if !walkNames(k, p, o, yield) {
			return false
		}
	}
	return true
}
