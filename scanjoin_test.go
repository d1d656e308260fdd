package scanjoin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scanjoin/datafile"
	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/table"
)

func device(t *testing.T, id string, dt format.DeviceType, refs []table.PosRef, values []float64) *datafile.Device {
	t.Helper()

	series, err := table.NewSeries(refs, values)
	require.NoError(t, err)

	return &datafile.Device{
		Meta: &table.MetaRecord{
			Name:      id,
			ID:        id,
			Dimension: table.Dimension{Rows: 1, Cols: 1},
			Device:    dt,
			Type:      format.TypeFloat64,
		},
		Series: series,
	}
}

func buildFile(t *testing.T) *datafile.Memory {
	t.Helper()

	axis := device(t, "ax:motor1", format.DeviceAxis, []table.PosRef{1, 3, 5}, []float64{10, 30, 50})
	det1 := device(t, "ch:det1", format.DeviceChannel, []table.PosRef{1, 2, 5}, []float64{1, 2, 5})
	det2 := device(t, "ch:det2", format.DeviceChannel, []table.PosRef{1, 2, 3, 5}, []float64{4, 5, 6, 7})

	m := datafile.NewMemory()
	m.AddChain(1).
		AddDevice(format.SectionStandard, axis).
		AddDevice(format.SectionStandard, det1).
		AddDevice(format.SectionStandard, det2).
		SetPreferredAxis(axis).
		SetPreferredChannel(det1)

	return m
}

func TestJoinedData(t *testing.T) {
	f := buildFile(t)

	tbl, err := JoinedData(f, format.SectionStandard, "", format.LastNANFill)
	require.NoError(t, err)
	require.Equal(t, 3, tbl.ColumnCount())
	require.Equal(t, []table.PosRef{1, 2, 3, 5}, tbl.PosRefs())

	axis, err := tbl.Float64Column(0)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 10, 30, 50}, axis)

	t.Run("filter narrows the column set", func(t *testing.T) {
		tbl, err := JoinedData(f, format.SectionStandard, "det2", format.NoFill)
		require.NoError(t, err)
		require.Equal(t, 1, tbl.ColumnCount())
		require.Equal(t, []table.PosRef{1, 2, 3, 5}, tbl.PosRefs())
	})

	t.Run("empty section joins to an empty table", func(t *testing.T) {
		tbl, err := JoinedData(f, format.SectionMonitor, "", format.NoFill)
		require.NoError(t, err)
		require.Zero(t, tbl.ColumnCount())
	})
}

func TestPreferredData(t *testing.T) {
	f := buildFile(t)

	tbl, err := PreferredData(f, format.NoFill)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.ColumnCount())
	require.Equal(t, []table.PosRef{1, 5}, tbl.PosRefs())

	col, ok := tbl.ColumnByID("ch:det1")
	require.True(t, ok)
	values, err := tbl.Float64Column(col)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 5}, values)
}

func TestJoinedDataPropagatesErrors(t *testing.T) {
	bad := device(t, "ch:bad", format.DeviceChannel, []table.PosRef{2, 1}, []float64{1, 2})

	m := datafile.NewMemory()
	m.AddChain(1).AddDevice(format.SectionStandard, bad)

	_, err := JoinedData(m, format.SectionStandard, "", format.NoFill)
	require.ErrorIs(t, err, errs.ErrMalformedSeries)
}

func TestDeviceID(t *testing.T) {
	require.Equal(t, DeviceID("ax:motor1"), DeviceID("ax:motor1"))
	require.NotEqual(t, DeviceID("ax:motor1"), DeviceID("ax:motor2"))
}
