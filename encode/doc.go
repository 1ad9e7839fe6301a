// Package encode writes Logix values as L5X tag data.
//
// # Usage
//
//	// Write the Data element of a value
//	err := encode.Encode(v, os.Stdout)
//
//	// Write a whole Tag, selecting the data format
//	err := encode.EncodeTag(tag, os.Stdout, encode.EncodeFormat(l5x.Decorated))
//
//	// Build the element tree without writing it
//	el, err := encode.Data(v, encode.StringDataForm(logix.ArrayData))
//
//	// Show a member tree as text
//	err := encode.Text(tag, os.Stdout, encode.EncodeBits(true))
//
// Unless a format is given, strings are written as String data, block
// structures such as MESSAGE in the format of their block, and everything
// else as Decorated data. Strings nested in structures and arrays write
// DATA in their own DataForm unless StringDataForm overrides it.
//
// # Related Packages
//
//   - github.com/signadot/l5x-format/go-l5x/logix - value model
//   - github.com/signadot/l5x-format/go-l5x/parse - L5X to values
package encode
