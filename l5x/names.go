package l5x

// Element names.
const (
	TagElement             = "Tag"
	TagsElement            = "Tags"
	DataElement            = "Data"
	DataValueElement       = "DataValue"
	ArrayElement           = "Array"
	ElementElement         = "Element"
	StructureElement       = "Structure"
	DataValueMemberElement = "DataValueMember"
	ArrayMemberElement     = "ArrayMember"
	StructureMemberElement = "StructureMember"
	MessageParameters      = "MessageParameters"
	AlarmDigitalParameters = "AlarmDigitalParameters"
	DescriptionElement     = "Description"
)

// Attribute names.
const (
	NameAttr       = "Name"
	DataTypeAttr   = "DataType"
	RadixAttr      = "Radix"
	ValueAttr      = "Value"
	DimensionsAttr = "Dimensions"
	IndexAttr      = "Index"
	FormatAttr     = "Format"
	LengthAttr     = "Length"
	TagTypeAttr    = "TagType"
)

// Member names of string types.
const (
	StringLen  = "LEN"
	StringData = "DATA"
)
