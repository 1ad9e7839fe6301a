package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/logix"
)

// MustString encodes v as an unindented Data element, panicking on error.
func MustString(v logix.Value, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(v, buf, append([]EncodeOption{Indent(-1)}, opts...)...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
