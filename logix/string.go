package logix

import (
	"fmt"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/radix"
)

// DefaultStringCap is the DATA length of the built-in STRING type.
const DefaultStringCap = 82

// StringType is the name of the built-in string type.
const StringType = "STRING"

// String is a fixed capacity ASCII string laid out as the members LEN
// and DATA. DATA is a SINT array; LEN is read-only and always counts its
// non-zero bytes.
type String struct {
	node
	typeName string
	lenM     *Member
	dataM    *Member
	form     DataForm
}

// DataForm is the XML layout of DATA when a string is nested in a
// structure or array.
type DataForm int

const (
	// QuotedData is one DataValueMember holding the quoted text, as the
	// tool exports nested strings.
	QuotedData DataForm = iota
	// ArrayData is an ArrayMember of SINT.
	ArrayData
)

func (f DataForm) String() string {
	if f == ArrayData {
		return "array"
	}
	return "quoted"
}

// ParseDataForm parses "quoted" or "array".
func ParseDataForm(v string) (DataForm, error) {
	switch strings.ToLower(v) {
	case "quoted":
		return QuotedData, nil
	case "array":
		return ArrayData, nil
	}
	return 0, fmt.Errorf("unknown string data form %q", v)
}

// NewString makes a STRING holding text, with the default capacity or the
// length of text if longer. It panics if text is longer than MaxAxis; use
// NewStringWithCapacity for text of unknown length.
func NewString(text string) *String {
	s, err := NewStringType(StringType, text, max(DefaultStringCap, len(text)))
	if err != nil {
		panic(err)
	}
	return s
}

// NewStringWithCapacity makes a STRING with capacity bytes of DATA.
func NewStringWithCapacity(text string, capacity int) (*String, error) {
	return NewStringType(StringType, text, capacity)
}

// NewStringType makes a string of a user-defined string type.
func NewStringType(typeName, text string, capacity int) (*String, error) {
	if capacity < 1 || capacity > MaxAxis {
		return nil, fmt.Errorf("%w: string capacity %d", ErrDimensions, capacity)
	}
	if len(text) > capacity {
		return nil, fmt.Errorf("%w: %d bytes into %s of capacity %d", ErrCapacityExceeded, len(text), typeName, capacity)
	}
	elems := make([]Value, capacity)
	for i := range elems {
		var c byte
		if i < len(text) {
			c = text[i]
		}
		elems[i] = Atomic{typ: Sint, bits: uint64(c), radix: radix.ASCII}
	}
	data, err := NewArray(Dimensions{capacity}, elems...)
	if err != nil {
		return nil, err
	}
	return newString(typeName, data), nil
}

func newString(typeName string, data *Array) *String {
	s := &String{typeName: typeName}
	s.lenM = &Member{
		name:   "LEN",
		get:    func() Value { return NewDint(int32(s.Len())) },
		parent: s,
	}
	s.dataM = &Member{name: "DATA", parent: s}
	s.dataM.assign(data)
	return s
}

// DataForm is the layout DATA is written in when s is nested.
func (s *String) DataForm() DataForm { return s.form }

// SetDataForm sets the layout DATA is written in when s is nested.
func (s *String) SetDataForm(f DataForm) { s.form = f }

func (s *String) Kind() Kind         { return StringKind }
func (s *String) TypeName() string   { return s.typeName }
func (s *String) Members() []*Member { return []*Member{s.lenM, s.dataM} }
func (s *String) isValue()           {}

// Data is the DATA array.
func (s *String) Data() *Array { return s.dataM.value.(*Array) }

// Cap is the DATA length.
func (s *String) Cap() int { return s.Data().Len() }

// Len counts the non-zero bytes of DATA.
func (s *String) Len() int {
	n := 0
	for _, m := range s.Data().elems {
		if m.value.(Atomic).bits != 0 {
			n++
		}
	}
	return n
}

// Bytes returns the non-zero bytes of DATA in order.
func (s *String) Bytes() []byte {
	data := s.Data()
	res := make([]byte, 0, data.Len())
	for _, m := range data.elems {
		if c := byte(m.value.(Atomic).bits); c != 0 {
			res = append(res, c)
		}
	}
	return res
}

func (s *String) Text() string { return string(s.Bytes()) }

// SetText replaces the content, zero filling the rest of DATA, and raises
// a single change on DATA. Text too long for the capacity leaves s as it
// was.
func (s *String) SetText(text string) error {
	if len(text) > s.Cap() {
		return fmt.Errorf("%w: %d bytes into %s of capacity %d", ErrCapacityExceeded, len(text), s.typeName, s.Cap())
	}
	s.Data().setBytes([]byte(text))
	s.dataM.notify(Change{Member: s.dataM, Op: OpSet})
	return nil
}

// Quoted is the text in ASCII radix form, 'it$'s'.
func (s *String) Quoted() string { return radix.QuoteASCII(s.Bytes()) }

func (s *String) String() string { return s.Quoted() }

func (s *String) Clone() Value {
	res := newString(s.typeName, s.Data().Clone().(*Array))
	res.form = s.form
	return res
}

func (s *String) accept(m *Member, v Value) (Value, error) {
	if m != s.dataM {
		return nil, ErrReadOnly
	}
	a, ok := v.(*Array)
	if !ok || a.kind != AtomicKind || !strings.EqualFold(a.typeName, Sint.String()) || a.dims.Rank() != 1 {
		return nil, fmt.Errorf("%w: DATA must be a SINT array, not %s", ErrInvalidCast, v.TypeName())
	}
	return v, nil
}

// fitString returns s shaped like proto: the same type name and capacity.
func fitString(proto, s *String) (*String, error) {
	if strings.EqualFold(proto.typeName, s.typeName) && proto.Cap() == s.Cap() {
		return s, nil
	}
	res, err := NewStringType(proto.typeName, s.Text(), proto.Cap())
	if err != nil {
		return nil, err
	}
	res.form = s.form
	return res, nil
}
