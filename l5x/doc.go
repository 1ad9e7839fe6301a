// Package l5x names the elements and attributes of L5X tag data.
//
// A tag's value is stored in one or more Data elements, distinguished by
// their Format attribute:
//
//	<Tag Name="Count" TagType="Base" DataType="DINT" Radix="Decimal">
//	  <Data Format="L5K"><![CDATA[0]]></Data>
//	  <Data Format="Decorated">
//	    <DataValue DataType="DINT" Radix="Decimal" Value="0"/>
//	  </Data>
//	</Tag>
//
// Decorated data is an element tree mirroring the value: DataValue for
// atomics, Array with one Element per index, and Structure with one
// DataValueMember, ArrayMember or StructureMember per member. String tags
// additionally carry Format="String" data holding the quoted text, and
// MESSAGE and alarm tags carry a single parameters element.
//
// # Related Packages
//
//   - github.com/signadot/l5x-format/go-l5x/encode - Encode values to L5X
//   - github.com/signadot/l5x-format/go-l5x/parse - Parse L5X to values
package l5x
