package encode

import (
	"github.com/signadot/l5x-format/go-l5x/l5x"
	"github.com/signadot/l5x-format/go-l5x/logix"
)

type EncodeOption func(*EncState)

// EncodeFormat selects the Format of the Data element. By default strings
// use String, block structures the format of their block, and all other
// values Decorated.
func EncodeFormat(f l5x.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) l5x.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// Indent sets the indentation of written XML; n < 0 writes no line breaks.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// StringDataForm writes the DATA of every nested string in form f. By
// default each string keeps its own DataForm, which parse records from the
// layout it read.
func StringDataForm(f logix.DataForm) EncodeOption {
	return func(es *EncState) { es.dataForm = &f }
}

// EncodeBits makes text views list the bits of integers.
func EncodeBits(v bool) EncodeOption {
	return func(es *EncState) { es.bits = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
