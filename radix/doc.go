// Package radix converts between the textual number conventions of Logix
// tag data and fixed-width numeric payloads.
//
// # Radices
//
// A Radix names one textual convention:
//
//	Decimal       -42
//	Hex           16#ffff_ffd6
//	Octal         8#37_777_777_726
//	Binary        2#1111_1111_1111_1111_1111_1111_1101_0110
//	ASCII         '$FF$FF$FF$D6'
//	Float         -42.0
//	Exponential   -4.20000000e+001
//	DateTime      DT#1970-01-01-00:00:00.000_042Z
//
// Payloads are carried as raw bits in a uint64 together with a Shape that
// gives the width, signedness and float-ness of the value. Hex, octal,
// binary and ASCII output is always padded to the full width of the shape;
// Parse accepts shorter input and zero-extends it.
//
// # Inference
//
// Infer examines a literal's prefix and returns the radix which recognizes
// it:
//
//	r, err := radix.Infer("16#00ff") // radix.Hex
//	r, ok := radix.TryInfer("1.5")   // radix.Float, true
//
// The literals "true" and "false" are recognized ahead of numeric
// inference and infer Decimal.
//
// # ASCII escapes
//
// QuoteASCII and UnquoteASCII implement the escape grammar shared by the
// ASCII radix and string data: $t $l $p $r $' $$ for tab, line feed, form
// feed, carriage return, apostrophe and dollar, and $xx two digit hex escapes
// for every other byte outside the printable range.
package radix
