package encode

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/signadot/l5x-format/go-l5x/debug"
	"github.com/signadot/l5x-format/go-l5x/l5x"
	"github.com/signadot/l5x-format/go-l5x/logix"
	"github.com/signadot/l5x-format/go-l5x/radix"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	indent   int
	dataForm *logix.DataForm
	bits     bool

	format l5x.Format

	Color func(logix.Kind, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes v as a Data element to w.
func Encode(v logix.Value, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	el, err := data(v, es)
	if err != nil {
		return err
	}
	return write(el, w, es)
}

// EncodeTag writes m as a Tag element to w.
func EncodeTag(m *logix.Member, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	el, err := tag(m, es)
	if err != nil {
		return err
	}
	return write(el, w, es)
}

func write(el *etree.Element, w io.Writer, es *EncState) error {
	doc := etree.NewDocument()
	doc.SetRoot(el)
	if es.indent < 0 {
		doc.Indent(etree.NoIndent)
	} else {
		doc.Indent(es.indent)
	}
	_, err := doc.WriteTo(w)
	return err
}

// Data encodes v as the Data element of a tag.
func Data(v logix.Value, opts ...EncodeOption) (*etree.Element, error) {
	return data(v, newState(opts))
}

// Element encodes v as a bare DataValue, Array or Structure element.
func Element(v logix.Value, opts ...EncodeOption) (*etree.Element, error) {
	return element(v, newState(opts))
}

// Tag encodes m as a Tag element carrying the Data of its value. String
// tags get both their String and Decorated data, as the tool writes them.
func Tag(m *logix.Member, opts ...EncodeOption) (*etree.Element, error) {
	return tag(m, newState(opts))
}

func tag(m *logix.Member, es *EncState) (*etree.Element, error) {
	v := m.Value()
	el := etree.NewElement(l5x.TagElement)
	el.CreateAttr(l5x.NameAttr, m.Name())
	el.CreateAttr(l5x.TagTypeAttr, "Base")
	el.CreateAttr(l5x.DataTypeAttr, v.TypeName())
	switch x := v.(type) {
	case *logix.Array:
		el.CreateAttr(l5x.DimensionsAttr, x.Dimensions().Attr())
		if x.ElemKind() == logix.AtomicKind {
			el.CreateAttr(l5x.RadixAttr, x.Radix().String())
		}
	case logix.Atomic:
		el.CreateAttr(l5x.RadixAttr, x.Radix().String())
	}
	formats := []l5x.Format{es.format}
	if _, ok := v.(*logix.String); ok && es.format == 0 {
		formats = []l5x.Format{l5x.String, l5x.Decorated}
	}
	for _, f := range formats {
		fes := *es
		fes.format = f
		d, err := data(v, &fes)
		if err != nil {
			return nil, fmt.Errorf("tag %s: %w", m.Name(), err)
		}
		el.AddChild(d)
	}
	return el, nil
}

func formatOf(v logix.Value, es *EncState) l5x.Format {
	if es.format != 0 {
		return es.format
	}
	switch x := v.(type) {
	case *logix.String:
		return l5x.String
	case *logix.Structure:
		if b := x.Block(); b != nil {
			if f, err := l5x.ParseFormat(b.Format); err == nil {
				return f
			}
		}
	}
	return l5x.Decorated
}

func data(v logix.Value, es *EncState) (*etree.Element, error) {
	f := formatOf(v, es)
	el := etree.NewElement(l5x.DataElement)
	el.CreateAttr(l5x.FormatAttr, f.String())
	if debug.Encode() {
		debug.Logf("encode %s data of %s\n", f, v.TypeName())
	}
	switch f {
	case l5x.Decorated:
		child, err := element(v, es)
		if err != nil {
			return nil, err
		}
		el.AddChild(child)
	case l5x.String:
		s, ok := v.(*logix.String)
		if !ok {
			return nil, fmt.Errorf("%w: %s data of %s", ErrEncoding, f, v.TypeName())
		}
		el.CreateAttr(l5x.LengthAttr, strconv.Itoa(s.Len()))
		el.CreateCData(s.Quoted())
	case l5x.Message, l5x.Alarm:
		s, ok := v.(*logix.Structure)
		if !ok || s.Block() == nil {
			return nil, fmt.Errorf("%w: %s data of %s", ErrEncoding, f, v.TypeName())
		}
		el.AddChild(block(s.Block()))
	default:
		return nil, fmt.Errorf("%w: cannot write %s data", ErrEncoding, f)
	}
	return el, nil
}

func block(b *logix.Block) *etree.Element {
	el := etree.NewElement(b.Element)
	for _, a := range b.Attrs() {
		el.CreateAttr(a.Name, a.Value)
	}
	return el
}

func element(v logix.Value, es *EncState) (*etree.Element, error) {
	switch x := v.(type) {
	case logix.Atomic:
		el := etree.NewElement(l5x.DataValueElement)
		el.CreateAttr(l5x.DataTypeAttr, x.TypeName())
		el.CreateAttr(l5x.RadixAttr, x.Radix().String())
		el.CreateAttr(l5x.ValueAttr, x.String())
		return el, nil
	case *logix.String:
		return stringStructure(x, es)
	case *logix.Array:
		el := etree.NewElement(l5x.ArrayElement)
		if err := array(el, x, es); err != nil {
			return nil, err
		}
		return el, nil
	case *logix.Structure:
		return structure(x, es)
	}
	return nil, fmt.Errorf("%w: cannot write %s", ErrEncoding, v.Kind())
}

func structure(s *logix.Structure, es *EncState) (*etree.Element, error) {
	if s.Block() != nil {
		return nil, fmt.Errorf("%w: %s has no decorated form", ErrEncoding, s.TypeName())
	}
	el := etree.NewElement(l5x.StructureElement)
	el.CreateAttr(l5x.DataTypeAttr, s.TypeName())
	for _, m := range s.Members() {
		child, err := member(m, es)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Name(), err)
		}
		el.AddChild(child)
	}
	return el, nil
}

// stringStructure writes a string nested in a structure or array, where it
// is laid out as its LEN and DATA members.
func stringStructure(s *logix.String, es *EncState) (*etree.Element, error) {
	el := etree.NewElement(l5x.StructureElement)
	el.CreateAttr(l5x.DataTypeAttr, s.TypeName())
	if err := stringMembers(el, s, es); err != nil {
		return nil, err
	}
	return el, nil
}

func stringMembers(el *etree.Element, s *logix.String, es *EncState) error {
	ln := el.CreateElement(l5x.DataValueMemberElement)
	ln.CreateAttr(l5x.NameAttr, l5x.StringLen)
	ln.CreateAttr(l5x.DataTypeAttr, logix.Dint.String())
	ln.CreateAttr(l5x.RadixAttr, radix.Decimal.String())
	ln.CreateAttr(l5x.ValueAttr, strconv.Itoa(s.Len()))
	form := s.DataForm()
	if es.dataForm != nil {
		form = *es.dataForm
	}
	if form == logix.QuotedData {
		data := el.CreateElement(l5x.DataValueMemberElement)
		data.CreateAttr(l5x.NameAttr, l5x.StringData)
		data.CreateAttr(l5x.DataTypeAttr, s.TypeName())
		data.CreateAttr(l5x.RadixAttr, radix.ASCII.String())
		data.CreateCData(s.Quoted())
		return nil
	}
	data := el.CreateElement(l5x.ArrayMemberElement)
	data.CreateAttr(l5x.NameAttr, l5x.StringData)
	if err := array(data, s.Data(), es); err != nil {
		return fmt.Errorf("%s: %w", l5x.StringData, err)
	}
	return nil
}

func member(m *logix.Member, es *EncState) (*etree.Element, error) {
	switch x := m.Value().(type) {
	case logix.Atomic:
		el := etree.NewElement(l5x.DataValueMemberElement)
		el.CreateAttr(l5x.NameAttr, m.Name())
		el.CreateAttr(l5x.DataTypeAttr, x.TypeName())
		if x.Type() != logix.Bool {
			el.CreateAttr(l5x.RadixAttr, x.Radix().String())
		}
		el.CreateAttr(l5x.ValueAttr, x.String())
		return el, nil
	case *logix.Array:
		el := etree.NewElement(l5x.ArrayMemberElement)
		el.CreateAttr(l5x.NameAttr, m.Name())
		if err := array(el, x, es); err != nil {
			return nil, err
		}
		return el, nil
	case *logix.String:
		el := etree.NewElement(l5x.StructureMemberElement)
		el.CreateAttr(l5x.NameAttr, m.Name())
		el.CreateAttr(l5x.DataTypeAttr, x.TypeName())
		if err := stringMembers(el, x, es); err != nil {
			return nil, err
		}
		return el, nil
	case *logix.Structure:
		s, err := structure(x, es)
		if err != nil {
			return nil, err
		}
		s.Tag = l5x.StructureMemberElement
		s.Attr = append([]etree.Attr{{Key: l5x.NameAttr, Value: m.Name()}}, s.Attr...)
		return s, nil
	}
	return nil, fmt.Errorf("%w: member %s is %s", ErrEncoding, m.Name(), m.Value().Kind())
}

// array fills el, an Array or ArrayMember, with the attributes and
// elements of a.
func array(el *etree.Element, a *logix.Array, es *EncState) error {
	el.CreateAttr(l5x.DataTypeAttr, a.TypeName())
	el.CreateAttr(l5x.DimensionsAttr, a.Dimensions().List())
	atomic := a.ElemKind() == logix.AtomicKind
	if atomic {
		el.CreateAttr(l5x.RadixAttr, a.Radix().String())
	}
	for _, m := range a.Members() {
		e := el.CreateElement(l5x.ElementElement)
		e.CreateAttr(l5x.IndexAttr, m.Name())
		if atomic {
			e.CreateAttr(l5x.ValueAttr, m.Value().String())
			continue
		}
		child, err := element(m.Value(), es)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name(), err)
		}
		if child.Tag != l5x.StructureElement {
			return fmt.Errorf("%w: %s elements cannot nest %s", ErrEncoding, a.TypeName(), child.Tag)
		}
		e.AddChild(child)
	}
	return nil
}
