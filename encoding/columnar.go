package encoding

import "iter"

type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, or Finish.
	// The caller should not modify the returned slice.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the size in bytes of the encoded values.
	// It represents the number of bytes that were written to the internal buffer.
	Size() int

	// Reset clears the encoder's sequence state but keeps the accumulated data
	// in the internal buffer, allowing several independent sequences to be
	// concatenated into one payload.
	Reset()

	// Finish finalizes the encoding session and returns buffer resources to
	// the pool. After Finish the encoder behaves as if newly created; retrieve
	// the accumulated data with Bytes before calling it.
	//
	//	encoder := NewPosRefDeltaEncoder()
	//	defer encoder.Finish()
	//
	//	encoder.WriteSlice(refs)
	//	data := slices.Clone(encoder.Bytes())
	Finish()

	// Write encodes a single value.
	//
	// This method is optimized for appending a single value.
	// For bulk writes, use WriteSlice for better performance.
	Write(data T)

	// WriteSlice encodes a slice of values.
	//
	// This method is optimized for bulk writes. For single writes, use Write
	// for better performance.
	WriteSlice(values []T)
}

type ColumnarDecoder[T comparable] interface {
	// All returns an iterator that yields all decoded items from the provided
	// encoded data.
	//
	// The data should be the byte slice payload produced by a corresponding
	// encoder. The count parameter specifies the expected number of values to
	// decode.
	//
	// If the data is malformed or does not contain enough values, the iterator
	// may yield fewer values. The caller should handle this case appropriately.
	All(data []byte, count int) iter.Seq[T]
}
