package l5x

import (
	"errors"
	"fmt"
	"strings"
)

// Format is the Format attribute of a Data element.
type Format int

const (
	// Decorated data is an element tree of DataValue, Array and Structure.
	Decorated Format = iota + 1
	// String data is the quoted text of a string tag.
	String
	// Message data is one MessageParameters element.
	Message
	// Alarm data is one AlarmDigitalParameters or AlarmAnalogParameters
	// element.
	Alarm
	// L5K data is the legacy text encoding. It is recognized, not decoded.
	L5K
)

var ErrBadFormat = errors.New("bad data format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"decorated": Decorated,
		"string":    String,
		"message":   Message,
		"alarm":     Alarm,
		"l5k":       L5K,
	}[strings.ToLower(v)]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case Decorated:
		return []byte("Decorated"), nil
	case String:
		return []byte("String"), nil
	case Message:
		return []byte("Message"), nil
	case Alarm:
		return []byte("Alarm"), nil
	case L5K:
		return []byte("L5K"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a data format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsDecorated() bool { return f == Decorated }

// Rank orders formats by how much of a value they carry, for picking one
// Data element of a Tag.
func (f Format) Rank() int {
	switch f {
	case Decorated:
		return 4
	case Message, Alarm:
		return 3
	case String:
		return 2
	case L5K:
		return 1
	}
	return 0
}

// AllFormats returns all formats in preference order.
func AllFormats() []Format {
	return []Format{Decorated, Message, Alarm, String, L5K}
}
