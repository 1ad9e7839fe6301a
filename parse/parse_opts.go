package parse

import "github.com/signadot/l5x-format/go-l5x/predefined"

type parseOpts struct {
	registry *predefined.Registry
	strict   bool
}

type ParseOption func(*parseOpts)

// Registry sets the data types decoded structures are laid out by. The
// default is predefined.Default().
func Registry(r *predefined.Registry) ParseOption {
	return func(o *parseOpts) { o.registry = r }
}

// Strict rejects input the tool would not write: missing array elements,
// a Length disagreeing with the string, and members unknown to a
// registered type.
func Strict(v bool) ParseOption {
	return func(o *parseOpts) { o.strict = v }
}

func newOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{registry: predefined.Default()}
	for _, f := range opts {
		f(o)
	}
	return o
}
