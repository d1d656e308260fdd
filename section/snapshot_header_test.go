package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scanjoin/endian"
	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
)

func TestSnapshotHeaderRoundTrip(t *testing.T) {
	h := NewSnapshotHeader()
	h.ColumnCount = 3
	h.RowCount = 1000
	h.PosRefOffset = 120
	h.ValueOffset = 1320

	parsed, err := ParseSnapshotHeader(h.Bytes())
	require.NoError(t, err)
	require.Equal(t, *h, parsed)
	require.True(t, parsed.Flag.IsLittleEndian())
	require.Equal(t, format.CompressionZstd, parsed.Flag.Compression())
	require.Equal(t, uint32(IndexOffsetOffset), parsed.IndexOffset)
}

func TestSnapshotHeaderBigEndian(t *testing.T) {
	h := NewSnapshotHeader()
	h.Flag.WithBigEndian()
	h.ColumnCount = 2
	h.RowCount = 7

	parsed, err := ParseSnapshotHeader(h.Bytes())
	require.NoError(t, err)
	require.True(t, parsed.Flag.IsBigEndian())
	require.Equal(t, uint32(2), parsed.ColumnCount)
	require.Equal(t, uint32(7), parsed.RowCount)
}

func TestSnapshotHeaderValidation(t *testing.T) {
	t.Run("short data", func(t *testing.T) {
		_, err := ParseSnapshotHeader(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		h := NewSnapshotHeader()
		data := h.Bytes()
		data[1] = 0xEA // another format's magic
		_, err := ParseSnapshotHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("reserved bits set", func(t *testing.T) {
		h := NewSnapshotHeader()
		data := h.Bytes()
		data[0] |= 0x01 // reserved option bit
		_, err := ParseSnapshotHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}

func TestSnapshotFlagValidate(t *testing.T) {
	t.Run("default flag is valid", func(t *testing.T) {
		require.NoError(t, NewSnapshotFlag().Validate())
	})

	t.Run("reserved option bit", func(t *testing.T) {
		f := NewSnapshotFlag()
		f.Options |= 0x0001
		require.ErrorIs(t, f.Validate(), errs.ErrInvalidHeaderFlags)
	})

	t.Run("reserved byte", func(t *testing.T) {
		f := NewSnapshotFlag()
		f.Reserved = 1
		require.ErrorIs(t, f.Validate(), errs.ErrInvalidHeaderFlags)
	})

	t.Run("invalid compression", func(t *testing.T) {
		f := NewSnapshotFlag()
		f.CompressionType = 0x9
		require.ErrorIs(t, f.Validate(), errs.ErrInvalidHeaderFlags)
	})

	t.Run("all codecs accepted", func(t *testing.T) {
		for _, c := range []format.CompressionType{
			format.CompressionNone, format.CompressionZstd,
			format.CompressionS2, format.CompressionLZ4,
		} {
			f := NewSnapshotFlag()
			f.SetCompression(c)
			require.NoError(t, f.Validate(), "codec %s", c)
		}
	})
}

func TestColumnIndexEntryRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	e := ColumnIndexEntry{
		DeviceID:    0xDEADBEEF12345678,
		DataType:    format.TypeFloat64,
		DeviceType:  format.DeviceAxis,
		Width:       3,
		ValueOffset: 4096,
		StateOffset: 8192,
	}

	parsed, err := ParseColumnIndexEntry(e.Bytes(engine), engine)
	require.NoError(t, err)
	require.Equal(t, e, parsed)
}

func TestColumnIndexEntryValidation(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	t.Run("short data", func(t *testing.T) {
		_, err := ParseColumnIndexEntry(make([]byte, ColumnIndexEntrySize-1), engine)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshotData)
	})

	t.Run("invalid data type", func(t *testing.T) {
		e := ColumnIndexEntry{DataType: format.DataType(0xF), DeviceType: format.DeviceAxis, Width: 1}
		_, err := ParseColumnIndexEntry(e.Bytes(engine), engine)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshotData)
	})

	t.Run("zero width", func(t *testing.T) {
		e := ColumnIndexEntry{DataType: format.TypeFloat64, DeviceType: format.DeviceAxis, Width: 0}
		_, err := ParseColumnIndexEntry(e.Bytes(engine), engine)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshotData)
	})
}
