package radix

import (
	"fmt"
	"strings"
)

var asciiEscapes = map[byte]string{
	'\t': "$t",
	'\n': "$l",
	'\f': "$p",
	'\r': "$r",
	'\'': "$'",
	'$':  "$$",
}

// EscapeASCII writes b using the $ escape grammar, without quotes.
func EscapeASCII(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if esc, ok := asciiEscapes[c]; ok {
			sb.WriteString(esc)
			continue
		}
		if c < 0x20 || c > 0x7e {
			fmt.Fprintf(&sb, "$%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// QuoteASCII is EscapeASCII wrapped in single quotes.
func QuoteASCII(b []byte) string {
	return "'" + EscapeASCII(b) + "'"
}

// UnescapeASCII decodes the $ escape grammar. Escape letters are case
// insensitive; $N is accepted as a line feed.
func UnescapeASCII(s string) ([]byte, error) {
	res := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '$' {
			res = append(res, c)
			continue
		}
		if i+1 >= len(s) {
			return nil, fmt.Errorf("%w: dangling $ in %q", ErrFormat, s)
		}
		i++
		switch e := s[i]; e {
		case 't', 'T':
			res = append(res, '\t')
		case 'l', 'L', 'n', 'N':
			res = append(res, '\n')
		case 'p', 'P':
			res = append(res, '\f')
		case 'r', 'R':
			res = append(res, '\r')
		case '\'', '$', '"':
			res = append(res, e)
		default:
			if i+1 >= len(s) {
				return nil, fmt.Errorf("%w: short hex escape in %q", ErrFormat, s)
			}
			hi, ok1 := unhex(s[i])
			lo, ok2 := unhex(s[i+1])
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w: bad escape $%s in %q", ErrFormat, s[i:i+2], s)
			}
			res = append(res, hi<<4|lo)
			i++
		}
	}
	return res, nil
}

// UnquoteASCII strips the surrounding single quotes and unescapes.
func UnquoteASCII(s string) ([]byte, error) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return nil, fmt.Errorf("%w: %q is not a quoted ASCII literal", ErrFormat, s)
	}
	return UnescapeASCII(s[1 : len(s)-1])
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
