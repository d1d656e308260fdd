package section

const (
	// Bit masks for the packed Options field.
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2-3), must be zero
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicSnapshotV1Opt is the version 1 magic number for the snapshot format.
	MagicSnapshotV1Opt = 0xEC10
)

// Offsets and section sizes in the snapshot.
const (
	HeaderSize           = 32         // fixed header size in bytes
	ColumnIndexEntrySize = 24         // fixed index entry size in bytes
	IndexOffsetOffset    = HeaderSize // byte offset where the column index starts
)
