package section

import (
	"fmt"

	"github.com/arloliu/scanjoin/endian"
	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
)

// SnapshotFlag represents the packed flag field in the snapshot header.
type SnapshotFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is reserved, must be set to 0.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2-3 are reserved for future use, must be set to 0.
	// Bit 4-15 are magic number to identify the snapshot format:
	//   - 0xEC10 (0b1110_1100_0001_0000): Snapshot format v1
	Options uint16

	// CompressionType is an enum indicating the body compression codec.
	CompressionType uint8

	// Reserved must be zero.
	Reserved uint8
}

var validBodyCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewSnapshotFlag creates a new SnapshotFlag with default settings:
// little-endian byte order and Zstandard body compression.
func NewSnapshotFlag() SnapshotFlag {
	flag := SnapshotFlag{
		Options:         MagicSnapshotV1Opt,
		CompressionType: uint8(format.CompressionZstd),
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the snapshot data is little-endian.
func (f SnapshotFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the snapshot data is big-endian.
func (f SnapshotFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *SnapshotFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *SnapshotFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f SnapshotFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// GetMagicNumber returns the magic number from the Options field.
func (f SnapshotFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Compression returns the body compression codec.
func (f SnapshotFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the body compression codec.
func (f *SnapshotFlag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// Validate checks the magic number, reserved bits and compression codec.
func (f SnapshotFlag) Validate() error {
	if f.GetMagicNumber() != MagicSnapshotV1Opt {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}

	if f.Options&ReservedBitsMask != 0 || f.Reserved != 0 {
		return fmt.Errorf("%w: reserved bits set", errs.ErrInvalidHeaderFlags)
	}

	if _, ok := validBodyCompressions[f.CompressionType]; !ok {
		return fmt.Errorf("%w: compression 0x%02X", errs.ErrInvalidHeaderFlags, f.CompressionType)
	}

	return nil
}
