package radix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateTimeLayout = "2006-01-02-15:04:05"

// Format renders the payload bits of shape s in radix r.
func (r Radix) Format(bits uint64, s Shape) (string, error) {
	if !r.Supports(s) {
		return "", fmt.Errorf("%w: %s cannot format %s", ErrUnsupported, r, s)
	}
	bits &= s.mask()
	switch r {
	case Decimal:
		if s.Signed {
			return strconv.FormatInt(signExtend(bits, s.Bits), 10), nil
		}
		return strconv.FormatUint(bits, 10), nil
	case Hex:
		return "16#" + group(pad(strconv.FormatUint(bits, 16), s.Bits/4), 4), nil
	case Octal:
		return "8#" + group(pad(strconv.FormatUint(bits, 8), (s.Bits+2)/3), 3), nil
	case Binary:
		return "2#" + group(pad(strconv.FormatUint(bits, 2), s.Bits), 4), nil
	case ASCII:
		n := s.bytes()
		b := make([]byte, n)
		for i := range n {
			b[n-1-i] = byte(bits >> (8 * uint(i)))
		}
		return QuoteASCII(b), nil
	case Float:
		return formatFloat(floatOf(bits, s), s.Bits), nil
	case Exponential:
		return formatExponential(floatOf(bits, s), s.Bits), nil
	case DateTime:
		return formatDateTime(int64(bits))
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, r)
}

// Parse is the inverse of Format: it reads text written in radix r into
// a payload of shape s. Values which do not fit s are rejected.
func (r Radix) Parse(text string, s Shape) (uint64, error) {
	t := strings.TrimSpace(text)
	if s.Bits == 1 {
		switch t {
		case "true":
			return 1, nil
		case "false":
			return 0, nil
		}
	}
	switch r {
	case Decimal:
		if s.Float {
			return parseFloatBits(t, s)
		}
		return parseDecimal(t, s)
	case Hex:
		return parseBased(t, "16#", 16, s)
	case Octal:
		return parseBased(t, "8#", 8, s)
	case Binary:
		return parseBased(t, "2#", 2, s)
	case ASCII:
		b, err := UnquoteASCII(t)
		if err != nil {
			return 0, err
		}
		if len(b) > s.bytes() {
			return 0, fmt.Errorf("%w: %q does not fit %s", ErrFormat, text, s)
		}
		var v uint64
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		if v&^s.mask() != 0 {
			return 0, fmt.Errorf("%w: %q does not fit %s", ErrFormat, text, s)
		}
		return v, nil
	case Float, Exponential:
		if !s.Float {
			return 0, fmt.Errorf("%w: %s cannot parse %s", ErrUnsupported, r, s)
		}
		return parseFloatBits(t, s)
	case DateTime:
		if !r.Supports(s) {
			return 0, fmt.Errorf("%w: %s cannot parse %s", ErrUnsupported, r, s)
		}
		v, err := parseDateTime(t)
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	}
	return 0, fmt.Errorf("%w: %s cannot parse %q", ErrUnsupported, r, text)
}

func parseDecimal(t string, s Shape) (uint64, error) {
	if s.Signed {
		v, err := strconv.ParseInt(t, 10, s.Bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a decimal %s", ErrFormat, t, s)
		}
		return uint64(v) & s.mask(), nil
	}
	v, err := strconv.ParseUint(t, 10, s.Bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal %s", ErrFormat, t, s)
	}
	return v, nil
}

func parseBased(t, prefix string, base int, s Shape) (uint64, error) {
	digits, ok := strings.CutPrefix(t, prefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q lacks prefix %s", ErrFormat, t, prefix)
	}
	digits = strings.ReplaceAll(digits, "_", "")
	if digits == "" {
		return 0, fmt.Errorf("%w: %q has no digits", ErrFormat, t)
	}
	v, err := strconv.ParseUint(digits, base, s.Bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q does not fit %s", ErrFormat, t, s)
	}
	return v, nil
}

func parseFloatBits(t string, s Shape) (uint64, error) {
	f, ok := parseSpecialFloat(t)
	if !ok {
		var err error
		f, err = strconv.ParseFloat(t, s.Bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a float%d", ErrFormat, t, s.Bits)
		}
	}
	if s.Bits == 32 {
		return uint64(math.Float32bits(float32(f))), nil
	}
	return math.Float64bits(f), nil
}

func parseSpecialFloat(t string) (float64, bool) {
	switch strings.ToUpper(t) {
	case "1.#INF", "+1.#INF":
		return math.Inf(1), true
	case "-1.#INF":
		return math.Inf(-1), true
	case "1.#QNAN", "-1.#QNAN", "1.#IND", "-1.#IND", "1.#SNAN":
		return math.NaN(), true
	}
	return 0, false
}

func floatOf(bits uint64, s Shape) float64 {
	if s.Bits == 32 {
		return float64(math.Float32frombits(uint32(bits)))
	}
	return math.Float64frombits(bits)
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "1.#QNAN"
	case math.IsInf(f, 1):
		return "1.#INF"
	case math.IsInf(f, -1):
		return "-1.#INF"
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatExponential writes the tool's d.dddddddde+xxx form. REAL uses 8
// fraction digits and LREAL 16, enough for both to parse back exactly.
func formatExponential(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return formatFloat(f, bitSize)
	}
	prec := 8
	if bitSize == 64 {
		prec = 16
	}
	s := strconv.FormatFloat(f, 'e', prec, bitSize)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], exp[1:]
	return mant + "e" + sign + pad(digits, 3)
}

func formatDateTime(micros int64) (string, error) {
	t := time.UnixMicro(micros).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return "", fmt.Errorf("%w: %d is outside the Date/Time range", ErrFormat, micros)
	}
	frac := fmt.Sprintf("%06d", t.Nanosecond()/1000)
	return "DT#" + t.Format(dateTimeLayout) + "." + frac[:3] + "_" + frac[3:] + "Z", nil
}

func parseDateTime(t string) (int64, error) {
	if !hasPrefixFold(t, "DT#") {
		return 0, fmt.Errorf("%w: %q lacks prefix DT#", ErrFormat, t)
	}
	v := t[3:]
	v = strings.TrimSuffix(strings.TrimSuffix(v, "Z"), "z")
	v = strings.ReplaceAll(v, "_", "")
	tm, err := time.Parse(dateTimeLayout, v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a date/time: %w", ErrFormat, t, err)
	}
	return tm.UnixMicro(), nil
}

func signExtend(bits uint64, width int) int64 {
	if width >= 64 {
		return int64(bits)
	}
	shift := uint(64 - width)
	return int64(bits<<shift) >> shift
}

func pad(digits string, n int) string {
	if len(digits) >= n {
		return digits
	}
	return strings.Repeat("0", n-len(digits)) + digits
}

// group inserts '_' every n digits counting from the right.
func group(digits string, n int) string {
	if len(digits) <= n {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % n
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += n {
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		b.WriteString(digits[i : i+n])
	}
	return b.String()
}
