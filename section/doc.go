// Package section defines the binary layout of the snapshot interchange
// format: the fixed-size header, the packed flag field and the per-column
// index entries.
//
// A snapshot consists of a 32-byte header, one 24-byte index entry per
// column, and a body holding the metadata, position reference, value and
// cell-state sections. The header and index are always stored uncompressed;
// the body is compressed as one block using the codec named in the flag.
package section
