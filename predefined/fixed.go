package predefined

import (
	"fmt"
	"strings"

	"github.com/signadot/l5x-format/go-l5x/logix"
)

const (
	TimerType   = "TIMER"
	CounterType = "COUNTER"
	ControlType = "CONTROL"
)

// layout declares a fixed structure: DINT members, then BOOL members.
func layout(typeName string, dints []string, bools []string) *logix.Structure {
	var ms []*logix.Member
	for _, n := range dints {
		ms = append(ms, logix.MustMember(n, logix.NewDint(0)))
	}
	for _, n := range bools {
		ms = append(ms, logix.MustMember(n, logix.NewBool(false)))
	}
	s, err := logix.NewFixedStructure(typeName, ms...)
	if err != nil {
		panic(err)
	}
	return s
}

func view(v logix.Value, typeName string) (*logix.Structure, error) {
	s, ok := v.(*logix.Structure)
	if !ok || !strings.EqualFold(s.TypeName(), typeName) {
		return nil, fmt.Errorf("%w: %s is not a %s", logix.ErrInvalidCast, v.TypeName(), typeName)
	}
	return s, nil
}

func dint(s *logix.Structure, name string) int32 {
	a, err := logix.GetMember[logix.Atomic](s, name)
	if err != nil {
		return 0
	}
	return int32(a.Int64())
}

func setDint(s *logix.Structure, name string, v int32) error {
	return logix.SetMember(s, name, logix.NewDint(v))
}

func boolean(s *logix.Structure, name string) bool {
	a, err := logix.GetMember[logix.Atomic](s, name)
	if err != nil {
		return false
	}
	return a.Bool()
}

func setBool(s *logix.Structure, name string, v bool) error {
	return logix.SetMember(s, name, logix.NewBool(v))
}

// Timer is a TIMER: preset and accumulated milliseconds plus the enable,
// timing and done bits.
type Timer struct {
	*logix.Structure
}

func NewTimer() *Timer {
	return &Timer{layout(TimerType, []string{"PRE", "ACC"}, []string{"EN", "TT", "DN"})}
}

// AsTimer views v as a TIMER.
func AsTimer(v logix.Value) (*Timer, error) {
	s, err := view(v, TimerType)
	if err != nil {
		return nil, err
	}
	return &Timer{s}, nil
}

func (t *Timer) Preset() int32           { return dint(t.Structure, "PRE") }
func (t *Timer) SetPreset(v int32) error { return setDint(t.Structure, "PRE", v) }
func (t *Timer) Accum() int32            { return dint(t.Structure, "ACC") }
func (t *Timer) SetAccum(v int32) error  { return setDint(t.Structure, "ACC", v) }
func (t *Timer) Enabled() bool           { return boolean(t.Structure, "EN") }
func (t *Timer) SetEnabled(v bool) error { return setBool(t.Structure, "EN", v) }
func (t *Timer) Timing() bool            { return boolean(t.Structure, "TT") }
func (t *Timer) SetTiming(v bool) error  { return setBool(t.Structure, "TT", v) }
func (t *Timer) Done() bool              { return boolean(t.Structure, "DN") }
func (t *Timer) SetDone(v bool) error    { return setBool(t.Structure, "DN", v) }

// Counter is a COUNTER.
type Counter struct {
	*logix.Structure
}

func NewCounter() *Counter {
	return &Counter{layout(CounterType, []string{"PRE", "ACC"}, []string{"CU", "CD", "DN", "OV", "UN"})}
}

// AsCounter views v as a COUNTER.
func AsCounter(v logix.Value) (*Counter, error) {
	s, err := view(v, CounterType)
	if err != nil {
		return nil, err
	}
	return &Counter{s}, nil
}

func (c *Counter) Preset() int32           { return dint(c.Structure, "PRE") }
func (c *Counter) SetPreset(v int32) error { return setDint(c.Structure, "PRE", v) }
func (c *Counter) Accum() int32            { return dint(c.Structure, "ACC") }
func (c *Counter) SetAccum(v int32) error  { return setDint(c.Structure, "ACC", v) }
func (c *Counter) CountUp() bool           { return boolean(c.Structure, "CU") }
func (c *Counter) CountDown() bool         { return boolean(c.Structure, "CD") }
func (c *Counter) Done() bool              { return boolean(c.Structure, "DN") }
func (c *Counter) Overflow() bool          { return boolean(c.Structure, "OV") }
func (c *Counter) Underflow() bool         { return boolean(c.Structure, "UN") }

// Control is a CONTROL, used by file and sequencer instructions.
type Control struct {
	*logix.Structure
}

func NewControl() *Control {
	return &Control{layout(ControlType,
		[]string{"LEN", "POS"},
		[]string{"EN", "EU", "DN", "EM", "ER", "UL", "IN", "FD"})}
}

// AsControl views v as a CONTROL.
func AsControl(v logix.Value) (*Control, error) {
	s, err := view(v, ControlType)
	if err != nil {
		return nil, err
	}
	return &Control{s}, nil
}

func (c *Control) Length() int32             { return dint(c.Structure, "LEN") }
func (c *Control) SetLength(v int32) error   { return setDint(c.Structure, "LEN", v) }
func (c *Control) Position() int32           { return dint(c.Structure, "POS") }
func (c *Control) SetPosition(v int32) error { return setDint(c.Structure, "POS", v) }
func (c *Control) Enabled() bool             { return boolean(c.Structure, "EN") }
func (c *Control) Done() bool                { return boolean(c.Structure, "DN") }
func (c *Control) Errored() bool             { return boolean(c.Structure, "ER") }
func (c *Control) Found() bool               { return boolean(c.Structure, "FD") }
