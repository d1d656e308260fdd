package encoding

import (
	"encoding/binary"
	"iter"
	"unsafe"

	"github.com/arloliu/scanjoin/endian"
	"github.com/arloliu/scanjoin/internal/pool"
)

// VarStringEncoder encodes variable-length strings with a uvarint length
// prefix.
//
// Each string is encoded as:
//   - 1-5 bytes: length as uvarint
//   - N bytes: string data (UTF-8)
//
// Device attribute values and string-typed cell values carry no length limit,
// so the prefix is a uvarint rather than a fixed single byte; short strings
// still pay only one prefix byte.
//
// Additionally provides WriteVarint and WriteUvarint for embedding integer
// fields into the same payload, which the snapshot metadata block uses for
// dimensions and attribute counts.
//
// Note: The VarStringEncoder is NOT a ColumnarEncoder.
type VarStringEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	temp   [binary.MaxVarintLen64]byte
	count  int
}

// NewVarStringEncoder creates a new variable-length string encoder using the
// specified endian engine.
//
// The encoder uses a pooled byte buffer with amortized growth strategy for
// optimal performance when encoding multiple strings.
//
// Parameters:
//   - engine: Endian engine for byte order (typically little-endian)
//
// Returns:
//   - *VarStringEncoder: A new encoder instance ready for encoding
func NewVarStringEncoder(engine endian.EndianEngine) *VarStringEncoder {
	return &VarStringEncoder{
		engine: engine,
		buf:    pool.GetSnapshotBuffer(),
	}
}

// Write encodes a single string with a uvarint length prefix.
func (e *VarStringEncoder) Write(text string) {
	e.count++
	e.buf.Grow(binary.MaxVarintLen64 + len(text))

	n := binary.PutUvarint(e.temp[:], uint64(len(text)))
	e.buf.MustWrite(e.temp[:n])
	e.buf.MustWrite(unsafe.Slice(unsafe.StringData(text), len(text)))
}

// WriteSlice encodes a slice of strings with buffer pre-allocation.
func (e *VarStringEncoder) WriteSlice(texts []string) {
	totalSize := 0
	for _, text := range texts {
		totalSize += binary.MaxVarintLen64 + len(text)
	}
	e.buf.Grow(totalSize)

	for _, text := range texts {
		e.count++
		n := binary.PutUvarint(e.temp[:], uint64(len(text)))
		e.buf.MustWrite(e.temp[:n])
		e.buf.MustWrite(unsafe.Slice(unsafe.StringData(text), len(text)))
	}
}

// WriteVarint encodes a signed integer as a zigzag varint.
func (e *VarStringEncoder) WriteVarint(value int64) {
	e.buf.Grow(binary.MaxVarintLen64)
	n := binary.PutVarint(e.temp[:], value)
	e.buf.MustWrite(e.temp[:n])
}

// WriteUvarint encodes an unsigned integer as a varint.
func (e *VarStringEncoder) WriteUvarint(value uint64) {
	e.buf.Grow(binary.MaxVarintLen64)
	n := binary.PutUvarint(e.temp[:], value)
	e.buf.MustWrite(e.temp[:n])
}

// WriteByte appends a single raw byte.
func (e *VarStringEncoder) WriteByte(b byte) error {
	e.buf.Grow(1)
	e.buf.MustWrite([]byte{b})

	return nil
}

// Bytes returns the encoded byte slice.
// The returned slice references the internal buffer; the caller must not
// modify it and must copy it before calling Finish.
func (e *VarStringEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded strings.
// Integer and raw byte writes do not contribute to the count.
func (e *VarStringEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded payload.
func (e *VarStringEncoder) Size() int {
	return e.buf.Len()
}

// Finish finalizes the encoding session and returns the internal buffer to
// the pool. After Finish the encoder behaves as if newly created.
func (e *VarStringEncoder) Finish() {
	pool.PutSnapshotBuffer(e.buf)
	e.buf = pool.GetSnapshotBuffer()
	e.count = 0
}

// VarStringDecoder decodes payloads produced by VarStringEncoder.
//
// The decoder is a stateless reader over a byte slice; the sequential Read
// helpers return the number of bytes consumed so callers can interleave
// string, integer and raw byte fields the way the encoder wrote them.
type VarStringDecoder struct {
	engine endian.EndianEngine
}

// NewVarStringDecoder creates a new variable-length string decoder using the
// specified endian engine.
func NewVarStringDecoder(engine endian.EndianEngine) VarStringDecoder {
	return VarStringDecoder{engine: engine}
}

// All returns an iterator yielding up to count strings decoded from data.
// Malformed or truncated data terminates the iteration early.
func (VarStringDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		pos := 0
		for i := 0; i < count; i++ {
			length, n := binary.Uvarint(data[pos:])
			if n <= 0 || pos+n+int(length) > len(data) { //nolint:gosec
				return
			}
			pos += n

			if !yield(string(data[pos : pos+int(length)])) { //nolint:gosec
				return
			}
			pos += int(length) //nolint:gosec
		}
	}
}

// ReadString decodes one length-prefixed string at offset pos.
//
// Returns:
//   - string: The decoded string.
//   - int: The offset just past the string.
//   - bool: false when data is truncated or malformed.
func (VarStringDecoder) ReadString(data []byte, pos int) (string, int, bool) {
	if pos < 0 || pos >= len(data) {
		return "", pos, false
	}

	length, n := binary.Uvarint(data[pos:])
	if n <= 0 {
		return "", pos, false
	}
	pos += n

	end := pos + int(length) //nolint:gosec
	if end > len(data) {
		return "", pos, false
	}

	return string(data[pos:end]), end, true
}

// ReadVarint decodes one zigzag varint at offset pos.
func (VarStringDecoder) ReadVarint(data []byte, pos int) (int64, int, bool) {
	if pos < 0 || pos >= len(data) {
		return 0, pos, false
	}

	value, n := binary.Varint(data[pos:])
	if n <= 0 {
		return 0, pos, false
	}

	return value, pos + n, true
}

// ReadUvarint decodes one unsigned varint at offset pos.
func (VarStringDecoder) ReadUvarint(data []byte, pos int) (uint64, int, bool) {
	if pos < 0 || pos >= len(data) {
		return 0, pos, false
	}

	value, n := binary.Uvarint(data[pos:])
	if n <= 0 {
		return 0, pos, false
	}

	return value, pos + n, true
}

// ReadByte reads one raw byte at offset pos.
func (VarStringDecoder) ReadByte(data []byte, pos int) (byte, int, bool) {
	if pos < 0 || pos >= len(data) {
		return 0, pos, false
	}

	return data[pos], pos + 1, true
}
