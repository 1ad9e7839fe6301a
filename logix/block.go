package logix

import (
	"fmt"
	"strings"
)

// Attr is one name/value pair of a Block.
type Attr struct {
	Name  string
	Value string
}

// Block is the serialized form of a type whose data is one element of
// attributes rather than a member tree, like MessageParameters. Block
// structures expose its attributes through computed members.
type Block struct {
	// Element is the element name, e.g. "AlarmDigitalParameters".
	Element string
	// Format is the Format attribute of the enclosing Data element.
	Format string
	attrs  []Attr
}

func NewBlock(element, format string, attrs ...Attr) *Block {
	return &Block{Element: element, Format: format, attrs: append([]Attr(nil), attrs...)}
}

// Get returns the attribute called name, case-insensitively.
func (b *Block) Get(name string) (string, bool) {
	for _, a := range b.attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// Set updates the attribute called name, appending it if missing.
func (b *Block) Set(name, value string) {
	for i := range b.attrs {
		if strings.EqualFold(b.attrs[i].Name, name) {
			b.attrs[i].Value = value
			return
		}
	}
	b.attrs = append(b.attrs, Attr{Name: name, Value: value})
}

// Attrs returns the attributes in document order.
func (b *Block) Attrs() []Attr { return append([]Attr(nil), b.attrs...) }

func (b *Block) Clone() *Block {
	return NewBlock(b.Element, b.Format, b.attrs...)
}

// NewBlockStructure makes a fixed structure over block. bind produces its
// computed members, reading and writing block; it is called again on the
// block copy when the structure is cloned.
func NewBlockStructure(typeName string, block *Block, bind func(*Block) []*Member) (*Structure, error) {
	if block == nil || bind == nil {
		panic("logix: block structure " + typeName + " without block or binder")
	}
	s := &Structure{typeName: typeName, fixed: true, block: block, bind: bind}
	if err := s.bindBlock(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Structure) bindBlock() error {
	s.members = nil
	if err := s.attach(s.bind(s.block)); err != nil {
		return fmt.Errorf("binding %s: %w", s.typeName, err)
	}
	return nil
}

// Block is the backing block of a block structure, or nil.
func (s *Structure) Block() *Block { return s.block }
