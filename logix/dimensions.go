package logix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/logix/tagname"
)

// MaxAxis is the largest length of one array axis.
const MaxAxis = 65535

// Dimensions is the shape of an array: up to three axes, unused trailing
// axes zero. Dimensions{3} is a one dimensional array of three elements.
type Dimensions [3]int

// Dims builds Dimensions from axis lengths, outermost first.
func Dims(axes ...int) (Dimensions, error) {
	var d Dimensions
	if len(axes) == 0 || len(axes) > 3 {
		return d, fmt.Errorf("%w: rank %d", ErrDimensions, len(axes))
	}
	for i, n := range axes {
		if n < 1 || n > MaxAxis {
			return Dimensions{}, fmt.Errorf("%w: axis %d has length %d", ErrDimensions, i, n)
		}
		d[i] = n
	}
	return d, nil
}

// MustDims is like Dims but panics on error.
func MustDims(axes ...int) Dimensions {
	d, err := Dims(axes...)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDimensions accepts "3", "2 3", "2,3" and "[2,3]".
func ParseDimensions(s string) (Dimensions, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "[")
	t = strings.TrimSuffix(t, "]")
	fields := strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == ' ' })
	axes := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Dimensions{}, fmt.Errorf("%w: %q", ErrDimensions, s)
		}
		axes[i] = n
	}
	return Dims(axes...)
}

func (d Dimensions) Rank() int {
	n := 0
	for n < 3 && d[n] != 0 {
		n++
	}
	return n
}

// Axes returns the used axis lengths.
func (d Dimensions) Axes() []int { return append([]int(nil), d[:d.Rank()]...) }

// Len is the element count, the product of the axes.
func (d Dimensions) Len() int {
	if d.Rank() == 0 {
		return 0
	}
	n := 1
	for _, a := range d[:d.Rank()] {
		n *= a
	}
	return n
}

// Offset maps indices to the flat, row-major element offset.
func (d Dimensions) Offset(idx ...int) (int, error) {
	r := d.Rank()
	if len(idx) != r {
		return 0, fmt.Errorf("%w: %d indices for rank %d", ErrIndexOutOfRange, len(idx), r)
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= d[i] {
			return 0, fmt.Errorf("%w: %s on %s", ErrIndexOutOfRange, tagname.Index(idx...), d)
		}
		off = off*d[i] + x
	}
	return off, nil
}

// Indices is the inverse of Offset.
func (d Dimensions) Indices(off int) []int {
	r := d.Rank()
	res := make([]int, r)
	for i := r - 1; i >= 0; i-- {
		res[i] = off % d[i]
		off /= d[i]
	}
	return res
}

// IndexName is the member name of the element at off, e.g. "[1,2]".
func (d Dimensions) IndexName(off int) string {
	return tagname.Index(d.Indices(off)...)
}

// String is the declaration form, "[2,3]".
func (d Dimensions) String() string {
	return tagname.Index(d.Axes()...)
}

// Attr is the form of the Dimensions attribute of a Tag, "2 3".
func (d Dimensions) Attr() string { return d.join(" ") }

// List is the form of the Dimensions attribute of Array data, "2,3".
func (d Dimensions) List() string { return d.join(",") }

func (d Dimensions) join(sep string) string {
	parts := make([]string, d.Rank())
	for i, a := range d.Axes() {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, sep)
}
