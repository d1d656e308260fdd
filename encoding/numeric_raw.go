package encoding

import (
	"iter"
	"math"
	"unsafe"

	"github.com/arloliu/scanjoin/endian"
	"github.com/arloliu/scanjoin/internal/pool"
)

// Numeric constrains the fixed-width element types a raw codec can handle.
// Strings go through VarStringEncoder instead.
type Numeric interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// NumericRawEncoder encodes fixed-width numeric values in their native binary
// representation using the specified endianness.
//
// Raw encoding is the value layout of the snapshot body: cell buffers are
// dense and already typed, so there is nothing to gain from per-value
// compression before the whole body goes through the block compressor.
type NumericRawEncoder[T Numeric] struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*NumericRawEncoder[float64])(nil)

// NewNumericRawEncoder creates a new raw value encoder using the specified
// endian engine.
//
// Parameters:
//   - engine: Endian engine for byte order (typically little-endian)
//
// Returns:
//   - *NumericRawEncoder[T]: A new encoder instance ready for encoding
func NewNumericRawEncoder[T Numeric](engine endian.EndianEngine) *NumericRawEncoder[T] {
	return &NumericRawEncoder[T]{
		engine: engine,
		buf:    pool.GetSnapshotBuffer(),
	}
}

// Write encodes a single value with amortized buffer growth.
//
// For encoding multiple values, use WriteSlice for better performance.
func (e *NumericRawEncoder[T]) Write(val T) {
	size := int(unsafe.Sizeof(val))
	e.count++
	e.buf.Grow(size)

	off := e.buf.Len()
	e.buf.ExtendOrGrow(size)
	putValue(e.engine, e.buf.Slice(off, off+size), val)
}

// WriteSlice encodes a slice of values with a single buffer growth operation.
func (e *NumericRawEncoder[T]) WriteSlice(values []T) {
	if len(values) == 0 {
		return
	}

	var zero T
	size := int(unsafe.Sizeof(zero))
	e.count += len(values)

	off := e.buf.Len()
	e.buf.ExtendOrGrow(size * len(values))
	for _, val := range values {
		putValue(e.engine, e.buf.Slice(off, off+size), val)
		off += size
	}
}

// Bytes returns the encoded byte slice containing all written values.
// The returned slice references the internal buffer; the caller must not
// modify it and must copy it before calling Finish.
func (e *NumericRawEncoder[T]) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *NumericRawEncoder[T]) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded values.
func (e *NumericRawEncoder[T]) Size() int {
	return e.buf.Len()
}

// Reset is a no-op for raw encoding; values carry no sequence state.
func (e *NumericRawEncoder[T]) Reset() {}

// Finish finalizes the encoding session and returns the internal buffer to
// the pool. After Finish the encoder behaves as if newly created.
func (e *NumericRawEncoder[T]) Finish() {
	pool.PutSnapshotBuffer(e.buf)
	e.buf = pool.GetSnapshotBuffer()
	e.count = 0
}

// NumericRawDecoder decodes values produced by NumericRawEncoder.
// Raw layout supports random access; All decodes sequentially.
type NumericRawDecoder[T Numeric] struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = NumericRawDecoder[float64]{}

// NewNumericRawDecoder creates a new raw value decoder using the specified
// endian engine.
func NewNumericRawDecoder[T Numeric](engine endian.EndianEngine) NumericRawDecoder[T] {
	return NumericRawDecoder[T]{engine: engine}
}

// All returns an iterator yielding up to count values decoded from data.
// Truncated data terminates the iteration early.
func (d NumericRawDecoder[T]) All(data []byte, count int) iter.Seq[T] {
	return func(yield func(T) bool) {
		var zero T
		size := int(unsafe.Sizeof(zero))
		for i := 0; i < count; i++ {
			off := i * size
			if off+size > len(data) {
				return
			}
			if !yield(getValue[T](d.engine, data[off:off+size])) {
				return
			}
		}
	}
}

// DecodeSlice decodes exactly count values into a new slice.
// It returns false when the payload is truncated.
func (d NumericRawDecoder[T]) DecodeSlice(data []byte, count int) ([]T, bool) {
	values := make([]T, 0, count)
	for v := range d.All(data, count) {
		values = append(values, v)
	}

	return values, len(values) == count
}

func putValue[T Numeric](engine endian.EndianEngine, dst []byte, val T) {
	switch v := any(val).(type) {
	case int8:
		dst[0] = byte(v)
	case uint8:
		dst[0] = v
	case int16:
		engine.PutUint16(dst, uint16(v)) //nolint:gosec
	case uint16:
		engine.PutUint16(dst, v)
	case int32:
		engine.PutUint32(dst, uint32(v)) //nolint:gosec
	case uint32:
		engine.PutUint32(dst, v)
	case int64:
		engine.PutUint64(dst, uint64(v)) //nolint:gosec
	case uint64:
		engine.PutUint64(dst, v)
	case float32:
		engine.PutUint32(dst, math.Float32bits(v))
	case float64:
		engine.PutUint64(dst, math.Float64bits(v))
	}
}

func getValue[T Numeric](engine endian.EndianEngine, src []byte) T {
	var val T
	switch p := any(&val).(type) {
	case *int8:
		*p = int8(src[0]) //nolint:gosec
	case *uint8:
		*p = src[0]
	case *int16:
		*p = int16(engine.Uint16(src)) //nolint:gosec
	case *uint16:
		*p = engine.Uint16(src)
	case *int32:
		*p = int32(engine.Uint32(src)) //nolint:gosec
	case *uint32:
		*p = engine.Uint32(src)
	case *int64:
		*p = int64(engine.Uint64(src)) //nolint:gosec
	case *uint64:
		*p = engine.Uint64(src)
	case *float32:
		*p = math.Float32frombits(engine.Uint32(src))
	case *float64:
		*p = math.Float64frombits(engine.Uint64(src))
	}

	return val
}
