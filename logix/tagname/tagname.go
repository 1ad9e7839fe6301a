// Package tagname parses and composes Logix tag names.
//
// A tag name is a dotted/bracketed path such as
//
//	MyTag.Member[2].Sub.5
//
// Segments are either names (MyTag, Member, Sub), bit numbers (5) or
// bracket indices ([2], [1,2], [1,2,3]). Names and indices are joined with a
// dot before a name and nothing before an index. Segment comparison is case
// insensitive.
package tagname

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrSyntax = errors.New("tag name syntax error")

type TagName string

// Parse validates s and returns it in canonical form, with index segments
// stripped of whitespace.
func Parse(s string) (TagName, error) {
	segs, err := split(s)
	if err != nil {
		return "", err
	}
	return Combine(segs...), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) TagName {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Combine joins names, indices and whole paths into one tag name.
func Combine(parts ...string) TagName {
	var b strings.Builder
	for _, p := range parts {
		p = strings.TrimPrefix(p, ".")
		if p == "" {
			continue
		}
		if b.Len() > 0 && p[0] != '[' {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return TagName(b.String())
}

func (t TagName) String() string { return string(t) }

func (t TagName) IsEmpty() bool { return t == "" }

// Segments decomposes t into its ordered segments. A malformed name yields
// its best-effort split; use Parse to validate.
func (t TagName) Segments() []string {
	segs, _ := split(string(t))
	return segs
}

// Depth is the number of segments after the root.
func (t TagName) Depth() int {
	return max(len(t.Segments())-1, 0)
}

// Root is the first segment.
func (t TagName) Root() string {
	segs := t.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

// Operand is the text after the root, including its leading '.' or '['.
func (t TagName) Operand() string {
	root := t.Root()
	return strings.TrimPrefix(string(t), root)
}

// Path is the tag name relative to its root.
func (t TagName) Path() TagName {
	segs := t.Segments()
	if len(segs) < 2 {
		return ""
	}
	return Combine(segs[1:]...)
}

// Member is the last segment.
func (t TagName) Member() string {
	segs := t.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Parent drops the last segment.
func (t TagName) Parent() TagName {
	segs := t.Segments()
	if len(segs) < 2 {
		return ""
	}
	return Combine(segs[:len(segs)-1]...)
}

// Append adds segments or paths to the end of t.
func (t TagName) Append(parts ...string) TagName {
	return Combine(append([]string{string(t)}, parts...)...)
}

// Equal compares tag names segment by segment, ignoring case.
func (t TagName) Equal(o TagName) bool {
	return t.Compare(o) == 0
}

// Compare orders tag names segment by segment, ignoring case.
func (t TagName) Compare(o TagName) int {
	a, b := t.Segments(), o.Segments()
	for i := range min(len(a), len(b)) {
		if c := compareSegment(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// HasPrefix reports whether the leading segments of t equal those of p.
func (t TagName) HasPrefix(p TagName) bool {
	a, b := t.Segments(), p.Segments()
	if len(b) > len(a) {
		return false
	}
	for i := range b {
		if compareSegment(a[i], b[i]) != 0 {
			return false
		}
	}
	return true
}

func compareSegment(a, b string) int {
	return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}

// SegmentEqual compares two segments ignoring case.
func SegmentEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

// IsIndex reports whether seg is a bracket index segment.
func IsIndex(seg string) bool {
	return len(seg) >= 2 && seg[0] == '[' && seg[len(seg)-1] == ']'
}

// IsBit reports whether seg is a bit number segment.
func IsBit(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}

// Index renders indices as a bracket segment, e.g. Index(1, 2) is "[1,2]".
func Index(indices ...int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range indices {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	b.WriteByte(']')
	return b.String()
}

// ParseIndex decodes a bracket segment into its indices.
func ParseIndex(seg string) ([]int, error) {
	if !IsIndex(seg) {
		return nil, fmt.Errorf("%w: %q is not an index", ErrSyntax, seg)
	}
	parts := strings.Split(seg[1:len(seg)-1], ",")
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: %q has more than 3 dimensions", ErrSyntax, seg)
	}
	res := make([]int, len(parts))
	for i, p := range parts {
		x, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || x < 0 {
			return nil, fmt.Errorf("%w: bad index %q in %q", ErrSyntax, p, seg)
		}
		res[i] = x
	}
	return res, nil
}

// IsName reports whether seg is a valid member name. The root segment of
// a tag name may additionally carry a program scope such as
// "Program:Main"; see split.
func IsName(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isRootName(seg string) bool {
	scope, name, ok := strings.Cut(seg, ":")
	if !ok {
		return IsName(seg)
	}
	return IsName(scope) && IsName(name)
}

func split(s string) ([]string, error) {
	var segs []string
	i := 0
	for i < len(s) {
		switch c := s[i]; c {
		case '.':
			if i == 0 || i == len(s)-1 || s[i+1] == '.' || s[i+1] == '[' {
				return segs, fmt.Errorf("%w: misplaced '.' at %d in %q", ErrSyntax, i, s)
			}
			i++
		case '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return segs, fmt.Errorf("%w: unterminated index in %q", ErrSyntax, s)
			}
			seg := s[i : i+j+1]
			idx, err := ParseIndex(seg)
			if err != nil {
				return segs, err
			}
			segs = append(segs, Index(idx...))
			i += j + 1
			if i < len(s) && s[i] != '.' && s[i] != '[' {
				return segs, fmt.Errorf("%w: unexpected %q after index in %q", ErrSyntax, s[i], s)
			}
		default:
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			seg := s[i:j]
			ok := IsName(seg) || IsBit(seg)
			if len(segs) == 0 {
				ok = isRootName(seg) || IsBit(seg)
			}
			if !ok {
				return segs, fmt.Errorf("%w: bad segment %q in %q", ErrSyntax, seg, s)
			}
			segs = append(segs, seg)
			i = j
		}
	}
	return segs, nil
}
