package format

type (
	FillRule        uint8
	DeviceType      uint8
	Section         uint8
	DataType        uint8
	CompressionType uint8
)

const (
	NoFill      FillRule = 0x1 // NoFill keeps only rows present in every column.
	LastFill    FillRule = 0x2 // LastFill carries the last axis value forward into axis gaps.
	NANFill     FillRule = 0x3 // NANFill writes a NaN sentinel into channel gaps.
	LastNANFill FillRule = 0x4 // LastNANFill combines LastFill and NANFill.

	DeviceUnknown DeviceType = 0x0 // DeviceUnknown marks a device of unclassified type.
	DeviceChannel DeviceType = 0x1 // DeviceChannel marks a measured-signal device.
	DeviceAxis    DeviceType = 0x2 // DeviceAxis marks a driven-position device.

	SectionStandard Section = 0x1 // SectionStandard selects standard scan data.
	SectionSnapshot Section = 0x2 // SectionSnapshot selects snapshot data.
	SectionMonitor  Section = 0x3 // SectionMonitor selects monitor data.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Data type tags for column buffers. The numeric order follows the
// position-count file convention so that tags survive interchange unchanged.
const (
	TypeUnknown DataType = 0x0  // TypeUnknown represents a missing or unclassified type.
	TypeString  DataType = 0x1  // TypeString represents variable-length string values.
	TypeInt32   DataType = 0x2  // TypeInt32 represents 32-bit signed integer values.
	TypeFloat64 DataType = 0x3  // TypeFloat64 represents 64-bit floating point values.
	TypeInt8    DataType = 0x4  // TypeInt8 represents 8-bit signed integer values.
	TypeInt16   DataType = 0x5  // TypeInt16 represents 16-bit signed integer values.
	TypeInt64   DataType = 0x6  // TypeInt64 represents 64-bit signed integer values.
	TypeUint8   DataType = 0x7  // TypeUint8 represents 8-bit unsigned integer values.
	TypeUint16  DataType = 0x8  // TypeUint16 represents 16-bit unsigned integer values.
	TypeUint32  DataType = 0x9  // TypeUint32 represents 32-bit unsigned integer values.
	TypeUint64  DataType = 0xA  // TypeUint64 represents 64-bit unsigned integer values.
	TypeFloat32 DataType = 0xB  // TypeFloat32 represents 32-bit floating point values.
)

func (r FillRule) String() string {
	switch r {
	case NoFill:
		return "NoFill"
	case LastFill:
		return "LastFill"
	case NANFill:
		return "NANFill"
	case LastNANFill:
		return "LastNANFill"
	default:
		return "Unknown"
	}
}

// IsValid reports whether the fill rule is one of the four defined rules.
func (r FillRule) IsValid() bool {
	return r >= NoFill && r <= LastNANFill
}

// FillsAxis reports whether the rule substitutes values into axis gaps.
func (r FillRule) FillsAxis() bool {
	return r == LastFill || r == LastNANFill
}

// FillsChannel reports whether the rule substitutes values into channel gaps.
func (r FillRule) FillsChannel() bool {
	return r == NANFill || r == LastNANFill
}

func (d DeviceType) String() string {
	switch d {
	case DeviceChannel:
		return "Channel"
	case DeviceAxis:
		return "Axis"
	case DeviceUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

func (s Section) String() string {
	switch s {
	case SectionStandard:
		return "Standard"
	case SectionSnapshot:
		return "Snapshot"
	case SectionMonitor:
		return "Monitor"
	default:
		return "Unknown"
	}
}

func (t DataType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeInt8:
		return "Int8"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeUint8:
		return "Uint8"
	case TypeUint16:
		return "Uint16"
	case TypeUint32:
		return "Uint32"
	case TypeUint64:
		return "Uint64"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	default:
		return "Unknown"
	}
}

// IsValid reports whether the data type is one of the defined tags.
func (t DataType) IsValid() bool {
	return t >= TypeString && t <= TypeFloat32
}

// IsFloat reports whether the data type is a floating point type.
// Only floating point columns can hold the NaN fill sentinel.
func (t DataType) IsFloat() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// IsNumeric reports whether the data type is a fixed-size numeric type.
func (t DataType) IsNumeric() bool {
	return t.IsValid() && t != TypeString
}

// Size returns the encoded size of one element in bytes.
// It returns 0 for TypeString (variable length) and TypeUnknown.
func (t DataType) Size() int {
	switch t {
	case TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt32, TypeUint32, TypeFloat32:
		return 4
	case TypeInt64, TypeUint64, TypeFloat64:
		return 8
	default:
		return 0
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
