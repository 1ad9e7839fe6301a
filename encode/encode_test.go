package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/l5x-format/go-l5x/l5x"
	"github.com/signadot/l5x-format/go-l5x/logix"
	"github.com/signadot/l5x-format/go-l5x/predefined"
	"github.com/signadot/l5x-format/go-l5x/radix"
)

func dints(t *testing.T, vs ...int32) *logix.Array {
	t.Helper()
	elems := make([]logix.Value, len(vs))
	for i, v := range vs {
		elems[i] = logix.NewDint(v)
	}
	a, err := logix.NewArray(logix.MustDims(len(vs)), elems...)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestMustString(t *testing.T) {
	hex, _ := logix.NewDint(255).WithRadix(radix.Hex)
	tests := []struct {
		name string
		v    logix.Value
		opts []EncodeOption
		want string
	}{
		{
			name: "dint",
			v:    logix.NewDint(42),
			want: `<Data Format="Decorated"><DataValue DataType="DINT" Radix="Decimal" Value="42"/></Data>`,
		},
		{
			name: "hex dint",
			v:    hex,
			want: `<Data Format="Decorated"><DataValue DataType="DINT" Radix="Hex" Value="16#0000_00ff"/></Data>`,
		},
		{
			name: "bool",
			v:    logix.NewBool(true),
			want: `<Data Format="Decorated"><DataValue DataType="BOOL" Radix="Decimal" Value="1"/></Data>`,
		},
		{
			name: "string",
			v:    logix.NewString("hi"),
			want: `<Data Format="String" Length="2"><![CDATA['hi']]></Data>`,
		},
		{
			name: "array",
			v:    dints(t, 1, 2),
			want: `<Data Format="Decorated"><Array DataType="DINT" Dimensions="2" Radix="Decimal">` +
				`<Element Index="[0]" Value="1"/><Element Index="[1]" Value="2"/></Array></Data>`,
		},
		{
			name: "structure",
			v: logix.MustStructure("Pt",
				logix.MustMember("X", logix.NewDint(1)),
				logix.MustMember("On", logix.NewBool(false)),
			),
			want: `<Data Format="Decorated"><Structure DataType="Pt">` +
				`<DataValueMember Name="X" DataType="DINT" Radix="Decimal" Value="1"/>` +
				`<DataValueMember Name="On" DataType="BOOL" Value="0"/></Structure></Data>`,
		},
		{
			name: "nested structure",
			v: logix.MustStructure("Outer",
				logix.MustMember("P", logix.MustStructure("Pt", logix.MustMember("X", logix.NewDint(3)))),
			),
			want: `<Data Format="Decorated"><Structure DataType="Outer">` +
				`<StructureMember Name="P" DataType="Pt">` +
				`<DataValueMember Name="X" DataType="DINT" Radix="Decimal" Value="3"/>` +
				`</StructureMember></Structure></Data>`,
		},
		{
			name: "array member",
			v:    logix.MustStructure("Holder", logix.MustMember("A", dints(t, 7))),
			want: `<Data Format="Decorated"><Structure DataType="Holder">` +
				`<ArrayMember Name="A" DataType="DINT" Dimensions="1" Radix="Decimal">` +
				`<Element Index="[0]" Value="7"/></ArrayMember></Structure></Data>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, MustString(tt.v, tt.opts...)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestMultiDimArray(t *testing.T) {
	a, err := logix.NewAtomicArray(logix.Int, logix.MustDims(2, 3))
	if err != nil {
		t.Fatal(err)
	}
	el, err := Element(a)
	if err != nil {
		t.Fatal(err)
	}
	if got := el.SelectAttrValue(l5x.DimensionsAttr, ""); got != "2,3" {
		t.Errorf("Dimensions = %q", got)
	}
	var idx []string
	for _, e := range el.ChildElements() {
		idx = append(idx, e.SelectAttrValue(l5x.IndexAttr, ""))
	}
	want := []string{"[0,0]", "[0,1]", "[0,2]", "[1,0]", "[1,1]", "[1,2]"}
	if diff := cmp.Diff(want, idx); diff != "" {
		t.Errorf("indices (-want +got):\n%s", diff)
	}
}

func TestNestedString(t *testing.T) {
	s, err := logix.NewStringWithCapacity("ab", 4)
	if err != nil {
		t.Fatal(err)
	}
	v := logix.MustStructure("Holder", logix.MustMember("S", s))

	el, err := Element(v)
	if err != nil {
		t.Fatal(err)
	}
	sm := el.ChildElements()[0]
	if sm.Tag != l5x.StructureMemberElement || sm.SelectAttrValue(l5x.DataTypeAttr, "") != logix.StringType {
		t.Fatalf("string member is %s %v", sm.Tag, sm.Attr)
	}
	ms := sm.ChildElements()
	if len(ms) != 2 {
		t.Fatalf("string member has %d children", len(ms))
	}
	if ms[0].SelectAttrValue(l5x.NameAttr, "") != l5x.StringLen || ms[0].SelectAttrValue(l5x.ValueAttr, "") != "2" {
		t.Errorf("LEN = %v", ms[0].Attr)
	}
	if ms[1].SelectAttrValue(l5x.RadixAttr, "") != "ASCII" || ms[1].Text() != "'ab'" {
		t.Errorf("DATA = %v %q", ms[1].Attr, ms[1].Text())
	}

	checkArray := func(el *etree.Element) {
		t.Helper()
		data := el.ChildElements()[0].ChildElements()[1]
		if data.Tag != l5x.ArrayMemberElement || data.SelectAttrValue(l5x.DimensionsAttr, "") != "4" {
			t.Fatalf("DATA = %s %v", data.Tag, data.Attr)
		}
		if n := len(data.ChildElements()); n != 4 {
			t.Errorf("DATA has %d elements", n)
		}
		if got := data.ChildElements()[1].SelectAttrValue(l5x.ValueAttr, ""); got != "'b'" {
			t.Errorf("DATA[1] = %q", got)
		}
	}
	el, err = Element(v, StringDataForm(logix.ArrayData))
	if err != nil {
		t.Fatal(err)
	}
	checkArray(el)

	held, err := logix.GetMember[*logix.String](v, "S")
	if err != nil {
		t.Fatal(err)
	}
	held.SetDataForm(logix.ArrayData)
	if el, err = Element(v); err != nil {
		t.Fatal(err)
	}
	checkArray(el)
	if el, err = Element(v, StringDataForm(logix.QuotedData)); err != nil {
		t.Fatal(err)
	}
	if tag := el.ChildElements()[0].ChildElements()[1].Tag; tag != l5x.DataValueMemberElement {
		t.Errorf("forced quoted DATA is %s", tag)
	}
}

func TestStringAsDecorated(t *testing.T) {
	d, err := Data(logix.NewString("x"), EncodeFormat(l5x.Decorated))
	if err != nil {
		t.Fatal(err)
	}
	st := d.ChildElements()[0]
	if st.Tag != l5x.StructureElement || st.SelectAttrValue(l5x.DataTypeAttr, "") != logix.StringType {
		t.Errorf("decorated string = %s %v", st.Tag, st.Attr)
	}
}

func TestTag(t *testing.T) {
	tag := logix.MustMember("Counts", dints(t, 1, 2, 3))
	el, err := Tag(tag)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, a := range el.Attr {
		got[a.Key] = a.Value
	}
	want := map[string]string{
		"Name":       "Counts",
		"TagType":    "Base",
		"DataType":   "DINT",
		"Dimensions": "3",
		"Radix":      "Decimal",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("attributes (-want +got):\n%s", diff)
	}

	el, err = Tag(logix.MustMember("Msg", logix.NewString("hello")))
	if err != nil {
		t.Fatal(err)
	}
	var formats []string
	for _, d := range el.SelectElements(l5x.DataElement) {
		formats = append(formats, d.SelectAttrValue(l5x.FormatAttr, ""))
	}
	if diff := cmp.Diff([]string{"String", "Decorated"}, formats); diff != "" {
		t.Errorf("string tag formats (-want +got):\n%s", diff)
	}
}

func TestBlockData(t *testing.T) {
	m := predefined.NewMessage()
	d, err := Data(m.Structure)
	if err != nil {
		t.Fatal(err)
	}
	if d.SelectAttrValue(l5x.FormatAttr, "") != "Message" {
		t.Errorf("Format = %q", d.SelectAttrValue(l5x.FormatAttr, ""))
	}
	p := d.SelectElement(l5x.MessageParameters)
	if p == nil {
		t.Fatal("no MessageParameters")
	}
	if got := p.SelectAttrValue("MessageType", ""); got != m.MessageType() {
		t.Errorf("MessageType = %q", got)
	}
	if _, err := Data(m.Structure, EncodeFormat(l5x.Decorated)); !errors.Is(err, ErrEncoding) {
		t.Errorf("decorated MESSAGE error = %v", err)
	}
	if _, err := Data(logix.NewDint(1), EncodeFormat(l5x.L5K)); !errors.Is(err, ErrEncoding) {
		t.Errorf("L5K error = %v", err)
	}
	if _, err := Data(logix.NewDint(1), EncodeFormat(l5x.String)); !errors.Is(err, ErrEncoding) {
		t.Errorf("String data of DINT error = %v", err)
	}
}

func TestEncodeIndent(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	v := logix.MustStructure("Pt", logix.MustMember("X", logix.NewDint(1)))
	if err := Encode(v, buf); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`<Data Format="Decorated">`,
		`  <Structure DataType="Pt">`,
		`    <DataValueMember Name="X" DataType="DINT" Radix="Decimal" Value="1"/>`,
		`  </Structure>`,
		`</Data>`,
	}, "\n")
	if diff := cmp.Diff(want, strings.TrimSpace(buf.String())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEncodeReadsBack(t *testing.T) {
	a, _ := logix.NewArray(logix.MustDims(2), logix.NewString("it's"), logix.NewString("$"))
	out := MustString(a)
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromString(out); err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, e := range doc.FindElements("//DataValueMember[@Name='DATA']") {
		texts = append(texts, e.Text())
	}
	if diff := cmp.Diff([]string{"'it$'s'", "'$$'"}, texts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestText(t *testing.T) {
	tm := predefined.NewTimer()
	if err := tm.SetPreset(100); err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := Text(logix.MustMember("Delay", tm.Structure), buf); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Delay : TIMER",
		"  PRE : DINT = 100",
		"  ACC : DINT = 0",
		"  EN : BOOL = 0",
		"  TT : BOOL = 0",
		"  DN : BOOL = 0",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	buf.Reset()
	n, _ := logix.NewSint(5).WithRadix(radix.Binary)
	if err := Text(logix.MustMember("B", n), buf, EncodeBits(true), Indent(1)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 9 || lines[1] != " 0 : BOOL = 1 (read-only)" {
		t.Errorf("bits view:\n%s", buf.String())
	}
}

func TestColors(t *testing.T) {
	c := NewColors()
	c.Map[Colorable{Kind: logix.AtomicKind, Attr: ValueColor}] = func(s string, _ ...any) string { return "<" + s + ">" }
	buf := bytes.NewBuffer(nil)
	if err := Text(logix.MustMember("N", logix.NewDint(3)), buf, EncodeColors(c)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "<3>\n") {
		t.Errorf("colored = %q", buf.String())
	}
	if got := c.Color(logix.Kind(99), NameColor, "x"); got != "x" {
		t.Errorf("unmapped color = %q", got)
	}
}
