// Package snapshot implements the binary interchange format for joined
// tables: a compact, self-describing encoding that lets a table be handed
// between processes or cached without re-running the join.
//
// # Format
//
// A snapshot is laid out as:
//
//	Header (32B) | Column Index (24B x N) | Compressed Body
//
// The header records the endianness, body compression codec and section
// offsets. The index carries one fixed-size entry per column with the device
// id hash, type tags, width and the column's offsets inside the body's value
// section. The body holds three sections, compressed as one block:
//
//	Metadata:  per-column descriptive records (length-prefixed strings)
//	PosRefs:   the shared row index, delta compressed
//	Values:    per-column dense value blocks followed by cell-state blocks
//
// # Usage
//
//	data, err := snapshot.Encode(tbl)
//	...
//	tbl, err := snapshot.Decode(data)
//
// Encoding defaults to little-endian byte order with Zstandard body
// compression; both are configurable:
//
//	data, err := snapshot.Encode(tbl,
//		snapshot.WithBigEndian(),
//		snapshot.WithCompression(format.CompressionLZ4))
//
// Statistics blocks are not part of the interchange format; a decoded table
// carries values, cell states and metadata only.
package snapshot
