package encode

import (
	"io"
	"strconv"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/logix"
)

// Text writes m and its members as an indented tree, one member per line:
//
//	Delay : TIMER
//	  PRE : DINT = 5000
//	  DN : BOOL = 0
//
// Composite values show no value on their own line. With EncodeBits the
// bits of integers are listed below them.
func Text(m *logix.Member, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	if es.indent < 0 {
		es.indent = 0
	}
	return text(m, w, es, 0)
}

func text(m *logix.Member, w io.Writer, es *EncState, depth int) error {
	v := m.Value()
	k := v.Kind()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", depth*es.indent))
	b.WriteString(es.color(k, NameColor, m.Name()))
	b.WriteString(es.color(k, SepColor, " : "))
	b.WriteString(es.color(k, TypeColor, typeText(v)))
	switch k {
	case logix.AtomicKind, logix.StringKind:
		b.WriteString(es.color(k, SepColor, " = "))
		b.WriteString(es.color(k, ValueColor, v.String()))
	}
	if m.IsReadOnly() {
		b.WriteString(" (read-only)")
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	var children []*logix.Member
	switch k {
	case logix.AtomicKind:
		if es.bits {
			children = m.Members()
		}
	case logix.ArrayKind, logix.StructureKind:
		children = v.Members()
	}
	for _, c := range children {
		if err := text(c, w, es, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func typeText(v logix.Value) string {
	switch x := v.(type) {
	case *logix.Array:
		return x.TypeName() + x.Dimensions().String()
	case *logix.String:
		return x.TypeName() + "(" + strconv.Itoa(x.Cap()) + ")"
	case logix.NullValue:
		return "null"
	}
	return v.TypeName()
}

func (es *EncState) color(k logix.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}
