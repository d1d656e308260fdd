package encoding

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPosRefDeltaRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		refs []int32
	}{
		{"sequential", []int32{1, 2, 3, 4, 5}},
		{"sparse ascending", []int32{1, 3, 10, 100, 5000}},
		{"single value", []int32{42}},
		{"starts high", []int32{100000, 100001, 100005}},
		{"negative start", []int32{-10, -5, 0, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder := NewPosRefDeltaEncoder()
			defer encoder.Finish()

			encoder.WriteSlice(tt.refs)
			require.Equal(t, len(tt.refs), encoder.Len())

			decoded, ok := NewPosRefDeltaDecoder().DecodeSlice(encoder.Bytes(), len(tt.refs))
			require.True(t, ok)
			require.Equal(t, tt.refs, decoded)
		})
	}
}

func TestPosRefDeltaSingleWrites(t *testing.T) {
	encoder := NewPosRefDeltaEncoder()
	defer encoder.Finish()

	refs := []int32{5, 6, 9, 20}
	for _, ref := range refs {
		encoder.Write(ref)
	}

	decoded, ok := NewPosRefDeltaDecoder().DecodeSlice(encoder.Bytes(), len(refs))
	require.True(t, ok)
	require.Equal(t, refs, decoded)
}

func TestPosRefDeltaSequentialCompression(t *testing.T) {
	refs := make([]int32, 1000)
	for i := range refs {
		refs[i] = int32(i + 1)
	}

	encoder := NewPosRefDeltaEncoder()
	defer encoder.Finish()
	encoder.WriteSlice(refs)

	// One varint byte per step after the first value.
	require.LessOrEqual(t, encoder.Size(), len(refs)+4)
}

func TestPosRefDeltaReset(t *testing.T) {
	encoder := NewPosRefDeltaEncoder()
	defer encoder.Finish()

	first := []int32{1, 2, 3}
	second := []int32{10, 11}
	encoder.WriteSlice(first)
	firstSize := encoder.Size()
	encoder.Reset()
	encoder.WriteSlice(second)

	decoder := NewPosRefDeltaDecoder()
	payload := encoder.Bytes()

	decodedFirst, ok := decoder.DecodeSlice(payload[:firstSize], len(first))
	require.True(t, ok)
	require.Equal(t, first, decodedFirst)

	decodedSecond, ok := decoder.DecodeSlice(payload[firstSize:], len(second))
	require.True(t, ok)
	require.Equal(t, second, decodedSecond, "Reset starts a fresh delta chain")
}

func TestPosRefDeltaMalformedData(t *testing.T) {
	decoder := NewPosRefDeltaDecoder()

	t.Run("empty data", func(t *testing.T) {
		_, ok := decoder.DecodeSlice(nil, 3)
		require.False(t, ok)
	})

	t.Run("truncated data", func(t *testing.T) {
		encoder := NewPosRefDeltaEncoder()
		defer encoder.Finish()
		encoder.WriteSlice([]int32{1, 2, 3, 4})

		data := slices.Clone(encoder.Bytes())
		_, ok := decoder.DecodeSlice(data[:len(data)-2], 4)
		require.False(t, ok)
	})

	t.Run("zero count", func(t *testing.T) {
		decoded, ok := decoder.DecodeSlice([]byte{0x02}, 0)
		require.True(t, ok)
		require.Empty(t, decoded)
	})
}
