// Package logix provides the value model of Logix controller tags.
//
// # Overview
//
// Every tag, parameter and member in a Logix project holds a Value. A Value
// is exactly one of
//
//   - Null: an untyped or undefined slot
//   - Atomic: an immutable BOOL, SINT, INT, DINT, LINT, USINT, UINT, UDINT,
//     ULINT, REAL or LREAL, carrying the radix it is rendered in
//   - *String: fixed capacity ASCII text laid out as LEN and DATA
//   - *Array: one to three dimensions of elements of one type
//   - *Structure: an ordered list of uniquely named members
//
// Switch on the concrete type, or on Kind, to handle each variant.
//
// # Members
//
// A Member pairs a name with a Value and is the only composition primitive:
// array elements are members named by their bracket index ("[1,2]"),
// structure fields are members named by identifier, and STRING exposes
// members LEN and DATA. A root tag is a Member without a parent.
//
// Members are usually literal, storing their value. Computed members read
// and write through funcs instead; STRING's LEN is one, and predefined
// types whose data is a single attribute block (MESSAGE, ALARM_DIGITAL) are
// structures of computed members over a Block.
//
// A value belongs to at most one member. Setting a member to a value owned
// by another member stores a copy, so a value tree never shares or
// contains itself.
//
// # Changes
//
// Every mutation raises one Change, delivered synchronously to the
// listeners of the mutated member and then of each enclosing value and
// member up to the root:
//
//	tag := logix.MustMember("Recipe", recipe)
//	cancel := tag.OnChange(func(c logix.Change) {
//	    fmt.Println(c.Op, c.Member.TagName())
//	})
//	defer cancel()
//
// Listeners must not mutate the tree they observe. Trees are not safe for
// concurrent use.
//
// # Addressing
//
// Resolve follows a tag name such as "A.B[2].C" from a member and returns
// nil when nothing matches; AllNames enumerates every member below a root.
// Tag names themselves live in package tagname.
//
// # Equality
//
// Equal compares values structurally. Atomics are equal when they have the
// same type and numeric value, whatever their radix; atomics of different
// types are never equal until converted with Atomic.As. Strings compare by
// text.
package logix
