package snapshot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/table"
)

func buildTable(t *testing.T) *table.JoinedTable {
	t.Helper()

	axisMeta := &table.MetaRecord{
		Name:      "motor1",
		Unit:      "mm",
		ID:        "ax:motor1",
		Dimension: table.Dimension{Rows: 1, Cols: 1},
		Device:    format.DeviceAxis,
		Type:      format.TypeFloat64,
	}
	attrs := table.NewAttributes()
	attrs.Add("access", "ca:det1")
	attrs.Add("access", "ca:det1.RBV")
	chanMeta := &table.MetaRecord{
		Name:       "det1",
		Unit:       "counts",
		ID:         "ch:det1",
		ChannelID:  "det1-chan",
		Dimension:  table.Dimension{Rows: 1, Cols: 1},
		Device:     format.DeviceChannel,
		Type:       format.TypeFloat64,
		Attributes: attrs,
	}
	stateMeta := &table.MetaRecord{
		Name:      "shutter",
		ID:        "ax:shutter",
		Dimension: table.Dimension{Rows: 1, Cols: 1},
		Device:    format.DeviceAxis,
		Type:      format.TypeString,
	}

	axisSeries, err := table.NewSeries([]table.PosRef{1, 3, 5}, []float64{10, 30, 50})
	require.NoError(t, err)
	axis, err := table.Adapt(axisSeries, axisMeta)
	require.NoError(t, err)

	chanSeries, err := table.NewSeries([]table.PosRef{1, 2, 5}, []float64{1, 2, 5})
	require.NoError(t, err)
	chan1, err := table.Adapt(chanSeries, chanMeta)
	require.NoError(t, err)

	stateSeries, err := table.NewSeries([]table.PosRef{1, 5}, []string{"open", "closed"})
	require.NoError(t, err)
	shutter, err := table.Adapt(stateSeries, stateMeta)
	require.NoError(t, err)

	tbl, err := table.Combine([]*table.Column{axis, chan1, shutter}, format.LastNANFill)
	require.NoError(t, err)

	return tbl
}

func requireTableEquivalent(t *testing.T, want, got *table.JoinedTable) {
	t.Helper()

	require.Equal(t, want.RowCount(), got.RowCount())
	require.Equal(t, want.ColumnCount(), got.ColumnCount())
	require.Equal(t, want.PosRefs(), got.PosRefs())

	for col := range want.ColumnCount() {
		wantMeta, err := want.ColumnMeta(col)
		require.NoError(t, err)
		gotMeta, err := got.ColumnMeta(col)
		require.NoError(t, err)
		require.Equal(t, wantMeta.Name, gotMeta.Name)
		require.Equal(t, wantMeta.Unit, gotMeta.Unit)
		require.Equal(t, wantMeta.ID, gotMeta.ID)
		require.Equal(t, wantMeta.ChannelID, gotMeta.ChannelID)
		require.Equal(t, wantMeta.Device, gotMeta.Device)
		require.Equal(t, wantMeta.Type, gotMeta.Type)

		wantStates, err := want.ColumnStates(col)
		require.NoError(t, err)
		gotStates, err := got.ColumnStates(col)
		require.NoError(t, err)
		require.Equal(t, wantStates, gotStates)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tbl := buildTable(t)

	data, err := Encode(tbl)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	requireTableEquivalent(t, tbl, decoded)

	t.Run("float values survive including NaN", func(t *testing.T) {
		want, err := tbl.Float64Column(1)
		require.NoError(t, err)
		got, err := decoded.Float64Column(1)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			if math.IsNaN(want[i]) {
				require.True(t, math.IsNaN(got[i]), "row %d", i)
			} else {
				require.Equal(t, want[i], got[i], "row %d", i)
			}
		}
	})

	t.Run("string values survive", func(t *testing.T) {
		want, err := tbl.StringColumn(2)
		require.NoError(t, err)
		got, err := decoded.StringColumn(2)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("attributes survive in order", func(t *testing.T) {
		meta, err := decoded.ColumnMeta(1)
		require.NoError(t, err)
		require.Equal(t, []string{"ca:det1", "ca:det1.RBV"}, meta.Attributes.Values("access"))
	})

	t.Run("column lookup by id works after decode", func(t *testing.T) {
		col, ok := decoded.ColumnByID("ch:det1")
		require.True(t, ok)
		require.Equal(t, 1, col)
	})
}

func TestSnapshotCompressionCodecs(t *testing.T) {
	tbl := buildTable(t)

	for _, c := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Encode(tbl, WithCompression(c))
			require.NoError(t, err)

			decoded, err := Decode(data)
			require.NoError(t, err)
			requireTableEquivalent(t, tbl, decoded)
		})
	}
}

func TestSnapshotBigEndian(t *testing.T) {
	tbl := buildTable(t)

	data, err := Encode(tbl, WithBigEndian())
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	requireTableEquivalent(t, tbl, decoded)
}

func TestSnapshotEmptyTable(t *testing.T) {
	tbl, err := table.Combine(nil, format.LastNANFill)
	require.NoError(t, err)

	data, err := Encode(tbl)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Zero(t, decoded.ColumnCount())
	require.Zero(t, decoded.RowCount())
}

func TestSnapshotArrayColumn(t *testing.T) {
	meta := &table.MetaRecord{
		Name:      "mca",
		ID:        "ch:mca",
		Dimension: table.Dimension{Rows: 1, Cols: 3},
		Device:    format.DeviceChannel,
		Type:      format.TypeInt32,
	}
	s, err := table.NewArraySeries([]table.PosRef{1, 2}, [][]int32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	col, err := table.Adapt(s, meta)
	require.NoError(t, err)

	tbl, err := table.Combine([]*table.Column{col}, format.NoFill)
	require.NoError(t, err)

	data, err := Encode(tbl)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	w, err := decoded.ColumnWidth(0)
	require.NoError(t, err)
	require.Equal(t, 3, w)

	v, err := decoded.Int32Column(0)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3, 4, 5, 6}, v)
}

func TestSnapshotInvalidInput(t *testing.T) {
	t.Run("truncated header", func(t *testing.T) {
		_, err := Decode([]byte{0x10, 0xEC})
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("garbage data", func(t *testing.T) {
		_, err := Decode(make([]byte, 64))
		require.Error(t, err)
	})

	t.Run("invalid compression option", func(t *testing.T) {
		_, err := Encode(buildTable(t), WithCompression(format.CompressionType(0x9)))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("column count beyond data", func(t *testing.T) {
		tbl := buildTable(t)
		data, err := Encode(tbl)
		require.NoError(t, err)

		// Inflate the declared column count past what the data can hold.
		data[4] = 0xFF
		data[5] = 0xFF
		_, err = Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidColumnCount)
	})
}
