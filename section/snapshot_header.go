package section

import (
	"github.com/arloliu/scanjoin/errs"
)

// SnapshotHeader represents the fixed-size header at the start of a snapshot.
//
// All offsets except IndexOffset point into the uncompressed body; the body
// itself starts right after the column index.
type SnapshotHeader struct {
	// ColumnCount is the number of columns stored in the snapshot.
	ColumnCount uint32 // byte offset 4-7
	// RowCount is the number of rows shared by all columns.
	RowCount uint32 // byte offset 8-11
	// IndexOffset is the byte offset to the start of the column index section.
	IndexOffset uint32 // byte offset 12-15
	// MetaOffset is the body offset of the metadata section (always 0).
	MetaOffset uint32 // byte offset 16-19
	// PosRefOffset is the body offset of the position reference section.
	// It records the offset after the metadata section.
	PosRefOffset uint32 // byte offset 20-23
	// ValueOffset is the body offset of the value and cell-state section.
	// It records the offset after the encoded position reference section.
	ValueOffset uint32 // byte offset 24-27
	// Reserved must be zero.
	Reserved uint32 // byte offset 28-31

	// Flag is a packed field for options, endianness and magic number.
	Flag SnapshotFlag // byte offset 0-3
}

// NewSnapshotHeader creates a new SnapshotHeader with default flags.
// The counts and body offsets will be set when the encoder finishes.
func NewSnapshotHeader() *SnapshotHeader {
	return &SnapshotHeader{
		Flag:        NewSnapshotFlag(),
		IndexOffset: IndexOffsetOffset,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *SnapshotHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The Options field itself is always little-endian so the endianness bit
	// can be read before the engine is known.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = data[2]
	h.Flag.Reserved = data[3]

	engine := h.Flag.GetEndianEngine()

	h.ColumnCount = engine.Uint32(data[4:8])
	h.RowCount = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.MetaOffset = engine.Uint32(data[16:20])
	h.PosRefOffset = engine.Uint32(data[20:24])
	h.ValueOffset = engine.Uint32(data[24:28])
	h.Reserved = engine.Uint32(data[28:32])

	return h.Flag.Validate()
}

// Bytes serializes the SnapshotHeader into a byte slice.
func (h *SnapshotHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	b[3] = h.Flag.Reserved
	engine.PutUint32(b[4:8], h.ColumnCount)
	engine.PutUint32(b[8:12], h.RowCount)
	engine.PutUint32(b[12:16], h.IndexOffset)
	engine.PutUint32(b[16:20], h.MetaOffset)
	engine.PutUint32(b[20:24], h.PosRefOffset)
	engine.PutUint32(b[24:28], h.ValueOffset)
	engine.PutUint32(b[28:32], h.Reserved)

	return b
}

// ParseSnapshotHeader parses a SnapshotHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 32 bytes)
//
// Returns:
//   - SnapshotHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseSnapshotHeader(data []byte) (SnapshotHeader, error) {
	if len(data) < HeaderSize {
		return SnapshotHeader{}, errs.ErrInvalidHeaderSize
	}

	h := SnapshotHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return SnapshotHeader{}, err
	}

	return h, nil
}
