// Package predefined provides the built-in Logix data types and a registry
// of data types by name.
//
// TIMER, COUNTER and CONTROL are fixed structures of DINT and BOOL members
// wrapped in typed views:
//
//	t := predefined.NewTimer()
//	_ = t.SetPreset(5000)
//	tag := logix.MustMember("Delay", t.Structure)
//
// MESSAGE and ALARM_DIGITAL store their data as one parameters element
// rather than a member tree, so they are block structures: each member is
// computed over an attribute of the block, and writing a member rewrites
// the attribute.
//
// A Registry maps data type names to constructors. Decoders use it to
// give decoded structures the layout, and block decoding, of the
// registered type.
package predefined
