package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/l5x-format/go-l5x/logix/tagname"
)

var (
	ErrParse             = errors.New("parse error")
	ErrUnsupportedFormat = errors.New("unsupported data format")
)

// Error locates a decoding failure: Path is the tag path of the value
// being decoded and Element the offending element. It matches ErrParse
// and unwraps to the underlying error.
type Error struct {
	Path    tagname.TagName
	Element string
	Err     error
}

func (e *Error) Error() string {
	if e.Path.IsEmpty() {
		return fmt.Sprintf("parse error in %s: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("parse error in %s at %s: %v", e.Element, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrParse }
