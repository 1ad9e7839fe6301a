package logix

import (
	"errors"

	"github.com/signadot/l5x-format/go-l5x/radix"
)

var (
	ErrFormat             = radix.ErrFormat
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrHeterogeneousArray = errors.New("heterogeneous array")
	ErrEmptyArray         = errors.New("empty array")
	ErrNullElement        = errors.New("null array element")
	ErrMemberNotFound     = errors.New("member not found")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInvalidCast        = errors.New("invalid cast")
	ErrDuplicateMember    = errors.New("duplicate member")
	ErrFixedLayout        = errors.New("fixed structure layout")
	ErrReadOnly           = errors.New("read-only member")
	ErrMemberInUse        = errors.New("member already belongs to a collection")
	ErrInvalidName        = errors.New("invalid member name")
	ErrDimensions         = errors.New("invalid dimensions")
	ErrCycle              = errors.New("value would contain itself")
)
