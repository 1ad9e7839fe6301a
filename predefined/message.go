package predefined

import (
	"fmt"

	"github.com/signadot/l5x-format/go-l5x/l5x"
	"github.com/signadot/l5x-format/go-l5x/logix"
)

const (
	MessageType      = "MESSAGE"
	AlarmDigitalType = "ALARM_DIGITAL"
)

var messageFields = []field{
	textField("MessageType"),
	atomField("RequestedLength", logix.Int),
	atomField("ConnectedFlag", logix.Dint),
	textField("ConnectionPath"),
	atomField("CommTypeCode", logix.Dint),
	atomField("ServiceCode", logix.Int),
	atomField("ObjectType", logix.Int),
	atomField("TargetObject", logix.Int),
	atomField("AttributeNumber", logix.Int),
	atomField("Channel", logix.Dint),
	atomField("Rack", logix.Dint),
	atomField("Group", logix.Dint),
	atomField("Slot", logix.Dint),
	textField("Path"),
	textField("RemoteElement"),
	textField("LocalElement"),
	textField("DestinationTag"),
	atomField("CacheConnections", logix.Bool),
	atomField("LargePacketUsage", logix.Bool),
}

var messageDefaults = []logix.Attr{
	{Name: "MessageType", Value: "CIP Data Table Read"},
	{Name: "RequestedLength", Value: "1"},
	{Name: "ConnectedFlag", Value: "2"},
	{Name: "ConnectionPath", Value: ""},
	{Name: "CommTypeCode", Value: "0"},
	{Name: "ServiceCode", Value: "16#004c"},
	{Name: "ObjectType", Value: "16#0000"},
	{Name: "TargetObject", Value: "0"},
	{Name: "AttributeNumber", Value: "16#0000"},
	{Name: "Channel", Value: "0"},
	{Name: "Rack", Value: "0"},
	{Name: "Group", Value: "0"},
	{Name: "Slot", Value: "0"},
	{Name: "Path", Value: ""},
	{Name: "RemoteElement", Value: ""},
	{Name: "LocalElement", Value: ""},
	{Name: "CacheConnections", Value: "TRUE"},
	{Name: "LargePacketUsage", Value: "FALSE"},
}

func messageType() *Type {
	return blockType(MessageType, l5x.MessageParameters, l5x.Message.String(), messageDefaults, messageFields)
}

// Message is a MESSAGE. Its members are the attributes of its
// MessageParameters block.
type Message struct {
	*logix.Structure
}

func NewMessage() *Message {
	return &Message{messageType().New().(*logix.Structure)}
}

// AsMessage views v as a MESSAGE.
func AsMessage(v logix.Value) (*Message, error) {
	s, err := view(v, MessageType)
	if err != nil {
		return nil, err
	}
	return &Message{s}, nil
}

func (m *Message) text(attr string) string {
	v, _ := m.Block().Get(attr)
	return v
}

func (m *Message) setText(attr, v string) error {
	s, err := logix.NewStringWithCapacity(v, max(logix.DefaultStringCap, len(v)))
	if err != nil {
		return fmt.Errorf("%s: %w", attr, err)
	}
	return m.Replace(attr, s)
}

func (m *Message) MessageType() string             { return m.text("MessageType") }
func (m *Message) SetMessageType(v string) error   { return m.setText("MessageType", v) }
func (m *Message) Path() string                    { return m.text("Path") }
func (m *Message) SetPath(v string) error          { return m.setText("Path", v) }
func (m *Message) RemoteElement() string           { return m.text("RemoteElement") }
func (m *Message) SetRemoteElement(v string) error { return m.setText("RemoteElement", v) }
func (m *Message) LocalElement() string            { return m.text("LocalElement") }
func (m *Message) SetLocalElement(v string) error  { return m.setText("LocalElement", v) }

func (m *Message) RequestedLength() int16 {
	a, _ := logix.GetMember[logix.Atomic](m.Structure, "RequestedLength")
	return int16(a.Int64())
}

func (m *Message) SetRequestedLength(n int16) error {
	return m.Replace("RequestedLength", logix.NewInt(n))
}

var alarmDigitalFields = []field{
	atomField("Severity", logix.Dint),
	atomField("MinDurationPRE", logix.Dint),
	atomField("ShelveDuration", logix.Dint),
	atomField("MaxShelveDuration", logix.Dint),
	atomField("ProgTime", logix.Lint),
	atomField("EnableIn", logix.Bool),
	atomField("In", logix.Bool),
	atomField("InFault", logix.Bool),
	atomField("Condition", logix.Bool),
	atomField("AckRequired", logix.Bool),
	atomField("Latched", logix.Bool),
	atomField("ProgAck", logix.Bool),
	atomField("OperAck", logix.Bool),
	atomField("ProgReset", logix.Bool),
	atomField("OperReset", logix.Bool),
	atomField("ProgSuppress", logix.Bool),
	atomField("OperSuppress", logix.Bool),
	atomField("ProgUnsuppress", logix.Bool),
	atomField("OperUnsuppress", logix.Bool),
	atomField("OperShelve", logix.Bool),
	atomField("ProgUnshelve", logix.Bool),
	atomField("OperUnshelve", logix.Bool),
	atomField("ProgDisable", logix.Bool),
	atomField("OperDisable", logix.Bool),
	atomField("ProgEnable", logix.Bool),
	atomField("OperEnable", logix.Bool),
	atomField("AlarmCountReset", logix.Bool),
	atomField("UseProgTime", logix.Bool),
}

var alarmDigitalDefaults = []logix.Attr{
	{Name: "Severity", Value: "500"},
	{Name: "MinDurationPRE", Value: "0"},
	{Name: "ShelveDuration", Value: "0"},
	{Name: "MaxShelveDuration", Value: "0"},
	{Name: "ProgTime", Value: "DT#1970-01-01-00:00:00.000_000Z"},
	{Name: "EnableIn", Value: "false"},
	{Name: "In", Value: "false"},
	{Name: "InFault", Value: "false"},
	{Name: "Condition", Value: "true"},
	{Name: "AckRequired", Value: "true"},
	{Name: "Latched", Value: "false"},
	{Name: "ProgAck", Value: "false"},
	{Name: "OperAck", Value: "false"},
	{Name: "ProgReset", Value: "false"},
	{Name: "OperReset", Value: "false"},
	{Name: "ProgSuppress", Value: "false"},
	{Name: "OperSuppress", Value: "false"},
	{Name: "ProgUnsuppress", Value: "false"},
	{Name: "OperUnsuppress", Value: "false"},
	{Name: "OperShelve", Value: "false"},
	{Name: "ProgUnshelve", Value: "false"},
	{Name: "OperUnshelve", Value: "false"},
	{Name: "ProgDisable", Value: "false"},
	{Name: "OperDisable", Value: "false"},
	{Name: "ProgEnable", Value: "false"},
	{Name: "OperEnable", Value: "false"},
	{Name: "AlarmCountReset", Value: "false"},
	{Name: "UseProgTime", Value: "false"},
}

func alarmDigitalType() *Type {
	return blockType(AlarmDigitalType, l5x.AlarmDigitalParameters, l5x.Alarm.String(), alarmDigitalDefaults, alarmDigitalFields)
}

// AlarmDigital is an ALARM_DIGITAL. Its members are the attributes of its
// AlarmDigitalParameters block.
type AlarmDigital struct {
	*logix.Structure
}

func NewAlarmDigital() *AlarmDigital {
	return &AlarmDigital{alarmDigitalType().New().(*logix.Structure)}
}

// AsAlarmDigital views v as an ALARM_DIGITAL.
func AsAlarmDigital(v logix.Value) (*AlarmDigital, error) {
	s, err := view(v, AlarmDigitalType)
	if err != nil {
		return nil, err
	}
	return &AlarmDigital{s}, nil
}

func (a *AlarmDigital) Severity() int32 {
	v, _ := logix.GetMember[logix.Atomic](a.Structure, "Severity")
	return int32(v.Int64())
}

func (a *AlarmDigital) SetSeverity(n int32) error {
	return a.Replace("Severity", logix.NewDint(n))
}

func (a *AlarmDigital) Latched() bool {
	v, _ := logix.GetMember[logix.Atomic](a.Structure, "Latched")
	return v.Bool()
}

func (a *AlarmDigital) SetLatched(v bool) error {
	return a.Replace("Latched", logix.NewBool(v))
}

func (a *AlarmDigital) AckRequired() bool {
	v, _ := logix.GetMember[logix.Atomic](a.Structure, "AckRequired")
	return v.Bool()
}
