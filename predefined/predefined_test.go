package predefined

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/l5x-format/go-l5x/logix"
)

func memberNames(v logix.Value) []string {
	var res []string
	for _, m := range v.Members() {
		res = append(res, m.Name())
	}
	return res
}

func TestTimer(t *testing.T) {
	tm := NewTimer()
	if diff := cmp.Diff([]string{"PRE", "ACC", "EN", "TT", "DN"}, memberNames(tm.Structure)); diff != "" {
		t.Errorf("layout (-want +got):\n%s", diff)
	}
	if err := tm.SetPreset(5000); err != nil {
		t.Fatal(err)
	}
	if err := tm.SetDone(true); err != nil {
		t.Fatal(err)
	}
	if tm.Preset() != 5000 || !tm.Done() || tm.Timing() {
		t.Errorf("timer = %v", tm)
	}
	if err := tm.Add(logix.MustMember("X", logix.NewDint(0))); !errors.Is(err, logix.ErrFixedLayout) {
		t.Errorf("Add to TIMER error = %v", err)
	}
	if _, err := AsTimer(NewCounter().Structure); !errors.Is(err, logix.ErrInvalidCast) {
		t.Errorf("AsTimer(COUNTER) error = %v", err)
	}
	tag := logix.MustMember("T1", tm.Structure)
	if tag.Resolve("PRE") == nil || tag.Resolve("DN") == nil {
		t.Error("TIMER members do not resolve")
	}
}

func TestCounterControl(t *testing.T) {
	c := NewCounter()
	if err := c.SetAccum(-3); err != nil {
		t.Fatal(err)
	}
	if c.Accum() != -3 || c.Done() {
		t.Errorf("counter = %v", c)
	}
	ctl := NewControl()
	if err := ctl.SetLength(10); err != nil {
		t.Fatal(err)
	}
	if err := ctl.SetPosition(4); err != nil {
		t.Fatal(err)
	}
	if ctl.Length() != 10 || ctl.Position() != 4 || ctl.Found() {
		t.Errorf("control = %v", ctl)
	}
	if ctl.Len() != 10 {
		t.Errorf("CONTROL has %d members", ctl.Len())
	}
}

func TestMessage(t *testing.T) {
	m := NewMessage()
	if m.MessageType() != "CIP Data Table Read" {
		t.Errorf("MessageType = %q", m.MessageType())
	}
	if err := m.SetPath("LocalENB, 2, 10.0.0.5"); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Block().Get("Path"); v != "LocalENB, 2, 10.0.0.5" {
		t.Errorf("block Path = %q", v)
	}
	if err := m.SetRequestedLength(12); err != nil {
		t.Fatal(err)
	}
	if m.RequestedLength() != 12 {
		t.Errorf("RequestedLength = %d", m.RequestedLength())
	}
	sc, err := m.Member("ServiceCode")
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.SetValue(logix.NewInt(0x4d)); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Block().Get("ServiceCode"); v != "16#004d" {
		t.Errorf("ServiceCode attribute = %q, want the hex radix kept", v)
	}
	cc, _ := m.Member("CacheConnections")
	if err := cc.SetValue(logix.NewBool(false)); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Block().Get("CacheConnections"); v != "FALSE" {
		t.Errorf("CacheConnections = %q", v)
	}
	if err := m.Replace("Path", logix.NewDint(1)); !errors.Is(err, logix.ErrInvalidCast) {
		t.Errorf("DINT into Path error = %v", err)
	}

	c := m.Clone().(*logix.Structure)
	cm, err := AsMessage(c)
	if err != nil {
		t.Fatal(err)
	}
	if err := cm.SetPath("elsewhere"); err != nil {
		t.Fatal(err)
	}
	if m.Path() == "elsewhere" {
		t.Error("clone shares its block")
	}

	long := strings.Repeat("p", logix.MaxAxis+1)
	if err := m.SetPath(long); !errors.Is(err, logix.ErrDimensions) {
		t.Errorf("%d byte Path error = %v", len(long), err)
	}
	m.Block().Set("Path", long)
	pm, err := m.Member("Path")
	if err != nil {
		t.Fatal(err)
	}
	if n := pm.Value().(*logix.String).Len(); n != logix.MaxAxis {
		t.Errorf("long Path attribute reads as %d bytes", n)
	}
}

func TestAlarmDigital(t *testing.T) {
	a := NewAlarmDigital()
	if a.Severity() != 500 || !a.AckRequired() || a.Latched() {
		t.Errorf("defaults: severity %d, ack %v, latched %v", a.Severity(), a.AckRequired(), a.Latched())
	}
	var changes int
	tag := logix.MustMember("Alm", a.Structure)
	tag.OnChange(func(logix.Change) { changes++ })
	if err := a.SetLatched(true); err != nil {
		t.Fatal(err)
	}
	if err := a.SetSeverity(750); err != nil {
		t.Fatal(err)
	}
	if v, _ := a.Block().Get("Latched"); v != "true" || changes != 2 {
		t.Errorf("Latched = %q after %d changes", v, changes)
	}
	if a.Severity() != 750 {
		t.Errorf("Severity = %d", a.Severity())
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"timer", "MESSAGE", "Alarm_Digital", "STRING", "DINT"} {
		if _, err := r.New(name); err != nil {
			t.Errorf("New(%s): %v", name, err)
		}
	}
	if _, err := r.New("UDT_Missing"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type error = %v", err)
	}
	if err := r.RegisterString("STRING_20", 20); err != nil {
		t.Fatal(err)
	}
	if n, ok := r.StringCap("string_20"); !ok || n != 20 {
		t.Errorf("StringCap = %d, %v", n, ok)
	}
	if err := r.RegisterString("STRING_20", 30); !errors.Is(err, ErrDuplicateType) {
		t.Errorf("duplicate error = %v", err)
	}
	if err := r.Register(&Type{Name: "DINT", New: func() logix.Value { return logix.Null }}); !errors.Is(err, ErrDuplicateType) {
		t.Errorf("atomic name error = %v", err)
	}
	typ, ok := r.LookupBlock("MessageParameters")
	if !ok || typ.Name != MessageType {
		t.Errorf("LookupBlock = %v, %v", typ, ok)
	}
	if Default().Types()[0] != AlarmDigitalType {
		t.Errorf("Types = %v", Default().Types())
	}
}
