package parse

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/signadot/l5x-format/go-l5x/debug"
	"github.com/signadot/l5x-format/go-l5x/l5x"
	"github.com/signadot/l5x-format/go-l5x/logix"
	"github.com/signadot/l5x-format/go-l5x/logix/tagname"
	"github.com/signadot/l5x-format/go-l5x/radix"
)

// Parse decodes a document whose root is a Tag, a Data element or a bare
// DataValue, Array or Structure element.
func Parse(d []byte, opts ...ParseOption) (logix.Value, error) {
	doc, err := readDoc(d)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	p := &parser{newOpts(opts)}
	switch root.Tag {
	case l5x.TagElement:
		m, err := p.tag(root)
		if err != nil {
			return nil, err
		}
		return m.Value(), nil
	case l5x.DataElement:
		return p.dataElement(root, "", "")
	}
	return p.element(root, "")
}

// Tags decodes every controller and program tag of an L5X document. A
// document whose root is a single Tag yields that tag.
func Tags(r io.Reader, opts ...ParseOption) ([]*logix.Member, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	els := []*etree.Element{root}
	if root.Tag != l5x.TagElement {
		els = doc.FindElements("//" + l5x.TagsElement + "/" + l5x.TagElement)
	}
	p := &parser{newOpts(opts)}
	res := make([]*logix.Member, 0, len(els))
	for _, el := range els {
		m, err := p.tag(el)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, nil
}

func readDoc(d []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return doc, nil
}

// Tag decodes a Tag element. Of its Data children the one with the
// richest format is used; a tag without data gets the default value of
// its declared type.
func Tag(el *etree.Element, opts ...ParseOption) (*logix.Member, error) {
	return (&parser{newOpts(opts)}).tag(el)
}

// Data decodes a Data element.
func Data(el *etree.Element, opts ...ParseOption) (logix.Value, error) {
	return (&parser{newOpts(opts)}).dataElement(el, "", "")
}

// Element decodes a DataValue, Array or Structure element.
func Element(el *etree.Element, opts ...ParseOption) (logix.Value, error) {
	return (&parser{newOpts(opts)}).element(el, "")
}

type parser struct {
	*parseOpts
}

func (p *parser) fail(el *etree.Element, path tagname.TagName, err error) error {
	var pe *Error
	if errors.As(err, &pe) {
		return err
	}
	return &Error{Path: path, Element: el.GetPath(), Err: err}
}

func (p *parser) tag(el *etree.Element) (*logix.Member, error) {
	name := el.SelectAttrValue(l5x.NameAttr, "")
	path := tagname.Combine(name)
	typeName := el.SelectAttrValue(l5x.DataTypeAttr, "")
	if debug.Parse() {
		debug.Logf("parse tag %s : %s\n", name, typeName)
	}
	var (
		best  *etree.Element
		bestF l5x.Format
	)
	datas := el.SelectElements(l5x.DataElement)
	for _, d := range datas {
		f, err := dataFormat(d)
		if err != nil {
			return nil, p.fail(d, path, err)
		}
		if f == l5x.L5K {
			continue
		}
		if best == nil || f.Rank() > bestF.Rank() {
			best, bestF = d, f
		}
	}
	var (
		v   logix.Value
		err error
	)
	switch {
	case best != nil:
		v, err = p.data(best, bestF, typeName, path)
	case len(datas) > 0:
		err = p.fail(datas[0], path, fmt.Errorf("%w: only %s data", ErrUnsupportedFormat, l5x.L5K))
	default:
		v, err = p.declared(el, typeName, path)
	}
	if err != nil {
		return nil, err
	}
	m, err := logix.NewMember(name, v)
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	return m, nil
}

// declared builds the default value of a tag from its DataType and
// Dimensions attributes.
func (p *parser) declared(el *etree.Element, typeName string, path tagname.TagName) (logix.Value, error) {
	v, err := p.registry.New(typeName)
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	dims := el.SelectAttrValue(l5x.DimensionsAttr, "")
	if dims == "" {
		return v, nil
	}
	d, err := logix.ParseDimensions(dims)
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	a, err := logix.Fill(d, v)
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	return a, nil
}

func dataFormat(d *etree.Element) (l5x.Format, error) {
	attr := d.SelectAttr(l5x.FormatAttr)
	if attr == nil {
		// unformatted data is the legacy text unless it holds elements
		if len(d.ChildElements()) > 0 {
			return l5x.Decorated, nil
		}
		return l5x.L5K, nil
	}
	return l5x.ParseFormat(attr.Value)
}

func (p *parser) dataElement(d *etree.Element, typeName string, path tagname.TagName) (logix.Value, error) {
	f, err := dataFormat(d)
	if err != nil {
		return nil, p.fail(d, path, err)
	}
	return p.data(d, f, typeName, path)
}

func (p *parser) data(d *etree.Element, f l5x.Format, typeName string, path tagname.TagName) (logix.Value, error) {
	switch f {
	case l5x.Decorated:
		el, err := onlyChild(d)
		if err != nil {
			return nil, p.fail(d, path, err)
		}
		return p.element(el, path)
	case l5x.String:
		return p.stringData(d, typeName, path)
	case l5x.Message, l5x.Alarm:
		el, err := onlyChild(d)
		if err != nil {
			return nil, p.fail(d, path, err)
		}
		return p.block(el, f, path)
	}
	return nil, p.fail(d, path, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f))
}

func onlyChild(el *etree.Element) (*etree.Element, error) {
	cs := el.ChildElements()
	if len(cs) != 1 {
		return nil, fmt.Errorf("%s holds %d elements, want 1", el.Tag, len(cs))
	}
	return cs[0], nil
}

func (p *parser) block(el *etree.Element, f l5x.Format, path tagname.TagName) (logix.Value, error) {
	typ, ok := p.registry.LookupBlock(el.Tag)
	if !ok {
		return nil, p.fail(el, path, fmt.Errorf("%w: no data type is stored as %s", ErrUnsupportedFormat, el.Tag))
	}
	attrs := make([]logix.Attr, len(el.Attr))
	for i, a := range el.Attr {
		attrs[i] = logix.Attr{Name: a.Key, Value: a.Value}
	}
	v, err := typ.FromBlock(logix.NewBlock(el.Tag, f.String(), attrs...))
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	return v, nil
}

func (p *parser) stringData(d *etree.Element, typeName string, path tagname.TagName) (logix.Value, error) {
	if typeName == "" {
		typeName = logix.StringType
	}
	b, err := radix.UnquoteASCII(strings.TrimSpace(d.Text()))
	if err != nil {
		return nil, p.fail(d, path, err)
	}
	if n := d.SelectAttr(l5x.LengthAttr); p.strict && n != nil && n.Value != strconv.Itoa(len(b)) {
		return nil, p.fail(d, path, fmt.Errorf("%s %s for %d characters", l5x.LengthAttr, n.Value, len(b)))
	}
	s, err := logix.NewStringType(typeName, string(b), p.stringCap(typeName, len(b)))
	if err != nil {
		return nil, p.fail(d, path, err)
	}
	return s, nil
}

// stringCap is the capacity of a decoded string of n characters whose
// DATA array does not state it.
func (p *parser) stringCap(typeName string, n int) int {
	if c, ok := p.registry.StringCap(typeName); ok {
		return c
	}
	return max(n, logix.DefaultStringCap)
}

func (p *parser) element(el *etree.Element, path tagname.TagName) (logix.Value, error) {
	if debug.Parse() {
		debug.Logf("parse %s at %q\n", el.Tag, path)
	}
	switch el.Tag {
	case l5x.DataValueElement:
		return p.atomic(el, path)
	case l5x.ArrayElement:
		return p.array(el, path)
	case l5x.StructureElement:
		return p.structure(el, path)
	}
	return nil, p.fail(el, path, fmt.Errorf("unexpected element %s", el.Tag))
}

func (p *parser) member(el *etree.Element, path tagname.TagName) (*logix.Member, error) {
	name := el.SelectAttrValue(l5x.NameAttr, "")
	mp := path.Append(name)
	var (
		v   logix.Value
		err error
	)
	switch el.Tag {
	case l5x.DataValueMemberElement:
		v, err = p.atomic(el, mp)
	case l5x.ArrayMemberElement:
		v, err = p.array(el, mp)
	case l5x.StructureMemberElement:
		v, err = p.structure(el, mp)
	default:
		err = fmt.Errorf("unexpected member element %s", el.Tag)
	}
	if err != nil {
		return nil, p.fail(el, mp, err)
	}
	m, err := logix.NewMember(name, v)
	if err != nil {
		return nil, p.fail(el, mp, err)
	}
	return m, nil
}

func (p *parser) atomic(el *etree.Element, path tagname.TagName) (logix.Value, error) {
	dt := el.SelectAttrValue(l5x.DataTypeAttr, "")
	t, ok := logix.LookupAtomicType(dt)
	if !ok {
		return nil, p.fail(el, path, fmt.Errorf("%w: %q is not an atomic type", logix.ErrInvalidCast, dt))
	}
	r, err := radix.ParseRadix(el.SelectAttrValue(l5x.RadixAttr, ""))
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	val := el.SelectAttr(l5x.ValueAttr)
	if val == nil {
		return nil, p.fail(el, path, fmt.Errorf("missing %s", l5x.ValueAttr))
	}
	a, err := parseAtomic(t, r, val.Value)
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	return a, nil
}

// parseAtomic parses text as t, keeping the radix r of the element when
// the literal is written in another.
func parseAtomic(t logix.AtomicType, r radix.Radix, text string) (logix.Atomic, error) {
	a, err := logix.ParseAtomicAs(t, text)
	if err != nil {
		return a, err
	}
	if r != radix.Null && r != a.Radix() {
		if ra, err := a.WithRadix(r); err == nil {
			a = ra
		}
	}
	return a, nil
}

func (p *parser) array(el *etree.Element, path tagname.TagName) (logix.Value, error) {
	dt := el.SelectAttrValue(l5x.DataTypeAttr, "")
	dims, err := logix.ParseDimensions(el.SelectAttrValue(l5x.DimensionsAttr, ""))
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	elems := el.SelectElements(l5x.ElementElement)
	if p.strict && len(elems) != dims.Len() {
		return nil, p.fail(el, path, fmt.Errorf("%w: %d elements for %s", logix.ErrDimensions, len(elems), dims))
	}
	if t, ok := logix.LookupAtomicType(dt); ok {
		return p.atomicArray(el, t, dims, elems, path)
	}
	vals := make([]logix.Value, dims.Len())
	for _, e := range elems {
		idx := e.SelectAttrValue(l5x.IndexAttr, "")
		ep := path.Append(idx)
		off, err := offset(dims, idx)
		if err != nil {
			return nil, p.fail(e, ep, err)
		}
		if vals[off] != nil {
			return nil, p.fail(e, ep, fmt.Errorf("element %s appears twice", idx))
		}
		s, err := onlyChild(e)
		if err != nil {
			return nil, p.fail(e, ep, err)
		}
		if s.Tag != l5x.StructureElement {
			return nil, p.fail(s, ep, fmt.Errorf("unexpected element %s", s.Tag))
		}
		if vals[off], err = p.structure(s, ep); err != nil {
			return nil, err
		}
	}
	for i := range vals {
		if vals[i] != nil {
			continue
		}
		if vals[i], err = p.registry.New(dt); err != nil {
			return nil, p.fail(el, path.Append(dims.IndexName(i)), err)
		}
	}
	a, err := logix.NewArray(dims, vals...)
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	return a, nil
}

func (p *parser) atomicArray(el *etree.Element, t logix.AtomicType, dims logix.Dimensions, elems []*etree.Element, path tagname.TagName) (*logix.Array, error) {
	a, err := logix.NewAtomicArray(t, dims)
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	r, err := radix.ParseRadix(el.SelectAttrValue(l5x.RadixAttr, ""))
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	if r != radix.Null {
		if err := a.SetRadix(r); err != nil {
			return nil, p.fail(el, path, err)
		}
	}
	for _, e := range elems {
		idx := e.SelectAttrValue(l5x.IndexAttr, "")
		ep := path.Append(idx)
		m, err := a.Index(idx)
		if err != nil {
			return nil, p.fail(e, ep, err)
		}
		v, err := parseAtomic(t, a.Radix(), e.SelectAttrValue(l5x.ValueAttr, ""))
		if err != nil {
			return nil, p.fail(e, ep, err)
		}
		if err := m.SetValue(v); err != nil {
			return nil, p.fail(e, ep, err)
		}
	}
	return a, nil
}

func offset(dims logix.Dimensions, seg string) (int, error) {
	idx, err := tagname.ParseIndex(seg)
	if err != nil {
		return 0, err
	}
	return dims.Offset(idx...)
}

func (p *parser) structure(el *etree.Element, path tagname.TagName) (logix.Value, error) {
	dt := el.SelectAttrValue(l5x.DataTypeAttr, "")
	children := el.ChildElements()
	if isString(children) {
		return p.decomposedString(dt, children, path)
	}
	ms := make([]*logix.Member, 0, len(children))
	for _, c := range children {
		m, err := p.member(c, path)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	v, err := p.overlay(dt, ms, path)
	if err != nil {
		return nil, p.fail(el, path, err)
	}
	return v, nil
}

// isString reports whether members are the LEN and DATA of a string, with
// DATA either quoted text or an array of SINT.
func isString(ms []*etree.Element) bool {
	if len(ms) != 2 || ms[0].Tag != l5x.DataValueMemberElement {
		return false
	}
	if !strings.EqualFold(ms[0].SelectAttrValue(l5x.NameAttr, ""), l5x.StringLen) ||
		!strings.EqualFold(ms[1].SelectAttrValue(l5x.NameAttr, ""), l5x.StringData) {
		return false
	}
	switch ms[1].Tag {
	case l5x.DataValueMemberElement:
		return strings.EqualFold(ms[1].SelectAttrValue(l5x.RadixAttr, ""), radix.ASCII.String())
	case l5x.ArrayMemberElement:
		return strings.EqualFold(ms[1].SelectAttrValue(l5x.DataTypeAttr, ""), logix.Sint.String())
	}
	return false
}

func (p *parser) decomposedString(typeName string, ms []*etree.Element, path tagname.TagName) (logix.Value, error) {
	lenEl, dataEl := ms[0], ms[1]
	dp := path.Append(l5x.StringData)
	var (
		b        []byte
		capacity int
		form     = logix.QuotedData
	)
	if dataEl.Tag == l5x.DataValueMemberElement {
		var err error
		b, err = radix.UnquoteASCII(strings.TrimSpace(dataEl.Text()))
		if err != nil {
			return nil, p.fail(dataEl, dp, err)
		}
		capacity = p.stringCap(typeName, len(b))
	} else {
		v, err := p.array(dataEl, dp)
		if err != nil {
			return nil, err
		}
		data := v.(*logix.Array)
		for _, m := range data.Members() {
			if c := byte(m.Value().(logix.Atomic).Uint64()); c != 0 {
				b = append(b, c)
			}
		}
		capacity = data.Len()
		form = logix.ArrayData
	}
	if p.strict {
		n, err := p.atomic(lenEl, path.Append(l5x.StringLen))
		if err != nil {
			return nil, err
		}
		if got := n.(logix.Atomic).Int64(); got != int64(len(b)) {
			return nil, p.fail(lenEl, path.Append(l5x.StringLen), fmt.Errorf("LEN %d for %d characters", got, len(b)))
		}
	}
	s, err := logix.NewStringType(typeName, string(b), capacity)
	if err != nil {
		return nil, p.fail(dataEl, dp, err)
	}
	s.SetDataForm(form)
	return s, nil
}

// overlay lays decoded members out as the registered type named typeName,
// or as a plain structure when the name is not registered.
func (p *parser) overlay(typeName string, ms []*logix.Member, path tagname.TagName) (logix.Value, error) {
	typ, ok := p.registry.Lookup(typeName)
	if !ok {
		return logix.NewStructure(typeName, ms...)
	}
	proto, ok := typ.New().(*logix.Structure)
	if !ok || proto.Block() != nil {
		return logix.NewStructure(typeName, ms...)
	}
	for _, m := range ms {
		if proto.Has(m.Name()) {
			if err := proto.Replace(m.Name(), m.Value()); err != nil {
				return nil, fmt.Errorf("%s: %w", path.Append(m.Name()), err)
			}
			continue
		}
		if p.strict {
			return nil, fmt.Errorf("%w: %s has no member %s", logix.ErrMemberNotFound, typeName, m.Name())
		}
		if err := logix.SetMember(proto, m.Name(), m.Value()); err != nil {
			return nil, err
		}
	}
	return proto, nil
}
