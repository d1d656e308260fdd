package section

import (
	"github.com/arloliu/scanjoin/endian"
	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/internal/pool"
)

// ColumnIndexEntry records information about a single column in the snapshot
// index section. It is a fixed size of 24 bytes.
//
// Value and state offsets are absolute offsets into the uncompressed body's
// value section (the region starting at SnapshotHeader.ValueOffset). The
// metadata section carries no offsets; metadata records are decoded
// sequentially in column order.
type ColumnIndexEntry struct {
	// DeviceID is the xxHash64 hash of the device identity string.
	//
	// Offset: 0, Size: 8 bytes
	DeviceID uint64

	// DataType is the column's data type tag.
	//
	// Offset: 8, Size: 1 byte
	DataType format.DataType

	// DeviceType is the column's device classification.
	//
	// Offset: 9, Size: 1 byte
	DeviceType format.DeviceType

	// Width is the per-row vector length (1 for scalar columns).
	//
	// Offset: 10, Size: 2 bytes
	Width uint16

	// ValueOffset is the byte offset of the column's value block inside the
	// value section.
	//
	// Offset: 12, Size: 4 bytes
	ValueOffset uint32

	// StateOffset is the byte offset of the column's cell-state block inside
	// the value section.
	//
	// Offset: 16, Size: 4 bytes
	StateOffset uint32

	// Reserved must be zero.
	//
	// Offset: 20, Size: 4 bytes
	Reserved uint32
}

// Bytes returns the index entry as a byte slice using the specified endian
// engine.
func (e *ColumnIndexEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [ColumnIndexEntrySize]byte // stack allocation, it's faster than heap allocation
	engine.PutUint64(b[0:8], e.DeviceID)
	b[8] = uint8(e.DataType)
	b[9] = uint8(e.DeviceType)
	engine.PutUint16(b[10:12], e.Width)
	engine.PutUint32(b[12:16], e.ValueOffset)
	engine.PutUint32(b[16:20], e.StateOffset)
	engine.PutUint32(b[20:24], e.Reserved)

	return b[:]
}

// WriteTo writes the index entry to a buffer using the specified endian
// engine.
func (e *ColumnIndexEntry) WriteTo(buf *pool.ByteBuffer, engine endian.EndianEngine) {
	buf.MustWrite(e.Bytes(engine))
}

// ParseColumnIndexEntry parses a single index entry from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the entry (must be at least 24 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - ColumnIndexEntry: Parsed entry
//   - error: ErrInvalidSnapshotData when data is too short or the entry's
//     type tags are invalid
func ParseColumnIndexEntry(data []byte, engine endian.EndianEngine) (ColumnIndexEntry, error) {
	if len(data) < ColumnIndexEntrySize {
		return ColumnIndexEntry{}, errs.ErrInvalidSnapshotData
	}

	e := ColumnIndexEntry{
		DeviceID:    engine.Uint64(data[0:8]),
		DataType:    format.DataType(data[8]),
		DeviceType:  format.DeviceType(data[9]),
		Width:       engine.Uint16(data[10:12]),
		ValueOffset: engine.Uint32(data[12:16]),
		StateOffset: engine.Uint32(data[16:20]),
		Reserved:    engine.Uint32(data[20:24]),
	}

	if !e.DataType.IsValid() || e.DeviceType > format.DeviceAxis || e.Width == 0 {
		return ColumnIndexEntry{}, errs.ErrInvalidSnapshotData
	}

	return e, nil
}
