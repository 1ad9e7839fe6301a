// Package parse decodes L5X tag data into Logix values.
//
// # Usage
//
//	// Decode all tags of an exported project
//	tags, err := parse.Tags(f)
//
//	// Decode one Data element, laying structures out by a registry
//	v, err := parse.Data(el, parse.Registry(reg), parse.Strict(true))
//
// # Shapes
//
// Dispatch is by element name. DataValue and DataValueMember hold an
// atomic in their Value attribute. Array and ArrayMember hold one Element
// per index, carrying a Value for atomic arrays or a nested Structure
// otherwise. Structure and StructureMember hold one member element per
// member, except that a LEN and DATA pair decodes as a string. DATA may be
// quoted text or an array of SINT.
//
// A Tag may carry several Data elements; the richest format wins, and
// L5K data alone is rejected with ErrUnsupportedFormat. Structures whose
// DataType is registered decode onto the registered layout, so a TIMER
// decodes as a fixed structure that predefined.AsTimer accepts.
//
// Failures are reported as *Error, naming the tag path and the element
// path of the offending element.
//
// # Related Packages
//
//   - github.com/signadot/l5x-format/go-l5x/encode - values to L5X
//   - github.com/signadot/l5x-format/go-l5x/predefined - registered types
package parse
