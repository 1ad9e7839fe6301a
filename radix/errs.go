package radix

import "errors"

var (
	ErrFormat      = errors.New("format error")
	ErrUnsupported = errors.New("radix not supported")
)
