package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferBasics(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Zero(t, bb.Len())
	require.Equal(t, 64, bb.Cap())

	bb.MustWrite([]byte("abc"))
	require.Equal(t, 3, bb.Len())
	require.Equal(t, []byte("abc"), bb.Bytes())

	bb.Reset()
	require.Zero(t, bb.Len())
	require.Equal(t, 64, bb.Cap(), "Reset retains capacity")
}

func TestByteBufferExtend(t *testing.T) {
	bb := NewByteBuffer(8)

	require.True(t, bb.Extend(8))
	require.Equal(t, 8, bb.Len())
	require.False(t, bb.Extend(1), "Extend must not grow past capacity")

	bb.ExtendOrGrow(16)
	require.Equal(t, 24, bb.Len())
}

func TestByteBufferSliceWrite(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.ExtendOrGrow(4)

	dst := bb.Slice(0, 4)
	copy(dst, []byte{1, 2, 3, 4})
	require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes())

	require.Panics(t, func() { bb.Slice(2, 1) })
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{1, 2})

	bb.Grow(SnapshotBufferDefaultSize)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), SnapshotBufferDefaultSize)
	require.Equal(t, []byte{1, 2}, bb.Bytes(), "Grow preserves contents")
}

func TestByteBufferWriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", out.String())
}

func TestSnapshotBufferPool(t *testing.T) {
	bb := GetSnapshotBuffer()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("x"))
	PutSnapshotBuffer(bb)

	reused := GetSnapshotBuffer()
	require.Zero(t, reused.Len(), "pooled buffers come back empty")
	PutSnapshotBuffer(reused)

	PutSnapshotBuffer(nil) // must not panic
}
