package radix

import (
	"fmt"
	"strconv"
	"strings"
)

type Radix int

const (
	Null Radix = iota
	Decimal
	Binary
	Octal
	Hex
	Float
	Exponential
	ASCII
	DateTime
)

var radixNames = map[Radix]string{
	Null:        "NullType",
	Decimal:     "Decimal",
	Binary:      "Binary",
	Octal:       "Octal",
	Hex:         "Hex",
	Float:       "Float",
	Exponential: "Exponential",
	ASCII:       "ASCII",
	DateTime:    "Date/Time",
}

func (r Radix) String() string {
	s, ok := radixNames[r]
	if ok {
		return s
	}
	return "<unknown radix>"
}

func (r Radix) MarshalText() ([]byte, error) {
	s, ok := radixNames[r]
	if !ok {
		return nil, fmt.Errorf("<err: %d is not a radix>", r)
	}
	return []byte(s), nil
}

func (r *Radix) UnmarshalText(d []byte) error {
	pr, err := ParseRadix(string(d))
	if err != nil {
		return err
	}
	*r = pr
	return nil
}

// ParseRadix parses a radix name as it appears in a Radix attribute.
// Matching is case-insensitive.
func ParseRadix(v string) (Radix, error) {
	for r, name := range radixNames {
		if strings.EqualFold(name, v) {
			return r, nil
		}
	}
	switch strings.ToLower(v) {
	case "", "null":
		return Null, nil
	case "datetime":
		return DateTime, nil
	}
	return Null, fmt.Errorf("%w: unknown radix %q", ErrFormat, v)
}

// Radices returns all radices in declaration order.
func Radices() []Radix {
	return []Radix{Null, Decimal, Binary, Octal, Hex, Float, Exponential, ASCII, DateTime}
}

// Shape describes a fixed-width payload.
type Shape struct {
	Bits   int // 1, 8, 16, 32 or 64
	Signed bool
	Float  bool
}

func (s Shape) bytes() int {
	if s.Bits < 8 {
		return 1
	}
	return s.Bits / 8
}

func (s Shape) mask() uint64 {
	if s.Bits >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(s.Bits) - 1
}

func (s Shape) String() string {
	switch {
	case s.Float:
		return fmt.Sprintf("float%d", s.Bits)
	case s.Bits == 1:
		return "bool"
	case s.Signed:
		return fmt.Sprintf("int%d", s.Bits)
	default:
		return fmt.Sprintf("uint%d", s.Bits)
	}
}

// Supports reports whether values of shape s can be formatted in radix r.
func (r Radix) Supports(s Shape) bool {
	switch r {
	case Decimal:
		return !s.Float
	case Binary, Octal, Hex, ASCII:
		return !s.Float && s.Bits > 1
	case Float, Exponential:
		return s.Float
	case DateTime:
		return s.Bits == 64 && s.Signed && !s.Float
	}
	return false
}

// Default returns the radix a freshly declared value of shape s uses.
func Default(s Shape) Radix {
	if s.Float {
		return Float
	}
	return Decimal
}

// Infer returns the radix whose literal convention recognizes text.
func Infer(text string) (Radix, error) {
	r, ok := TryInfer(text)
	if !ok {
		return Null, fmt.Errorf("%w: no radix recognizes %q", ErrFormat, text)
	}
	return r, nil
}

// TryInfer is like Infer but reports failure with a boolean.
func TryInfer(text string) (Radix, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return Null, false
	}
	switch {
	case strings.HasPrefix(t, "16#"):
		return Hex, true
	case strings.HasPrefix(t, "8#"):
		return Octal, true
	case strings.HasPrefix(t, "2#"):
		return Binary, true
	case hasPrefixFold(t, "DT#"):
		return DateTime, true
	case t[0] == '\'':
		return ASCII, true
	case t == "true" || t == "false":
		return Decimal, true
	}
	if _, ok := parseSpecialFloat(t); ok {
		return Float, true
	}
	if strings.ContainsAny(t, "eE") {
		if _, err := strconv.ParseFloat(t, 64); err == nil {
			return Exponential, true
		}
		return Null, false
	}
	if strings.Contains(t, ".") {
		if _, err := strconv.ParseFloat(t, 64); err == nil {
			return Float, true
		}
		return Null, false
	}
	if _, err := strconv.ParseInt(t, 10, 64); err == nil {
		return Decimal, true
	}
	if _, err := strconv.ParseUint(t, 10, 64); err == nil {
		return Decimal, true
	}
	return Null, false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
