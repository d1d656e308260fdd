package datafile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/table"
)

func testDevice(t *testing.T, id string, device format.DeviceType, refs []table.PosRef, values []float64) *Device {
	t.Helper()

	series, err := table.NewSeries(refs, values)
	require.NoError(t, err)

	return &Device{
		Meta: &table.MetaRecord{
			Name:      id,
			ID:        id,
			Dimension: table.Dimension{Rows: 1, Cols: 1},
			Device:    device,
			Type:      format.TypeFloat64,
		},
		Series: series,
	}
}

func TestMemoryChains(t *testing.T) {
	m := NewMemory()
	require.Equal(t, -1, m.Chain(), "no chain selected on an empty file")
	require.Empty(t, m.Chains())

	chainMeta := table.NewAttributes()
	chainMeta.Add("comment", "alignment scan")

	m.AddChain(2).SetMeta(chainMeta)
	m.AddChain(1)

	require.Equal(t, []int{1, 2}, m.Chains(), "chain ids are ascending")
	require.Equal(t, 2, m.Chain(), "first added chain is selected")

	comment, ok := m.ChainMeta().Get("comment")
	require.True(t, ok)
	require.Equal(t, "alignment scan", comment)

	require.NoError(t, m.SelectChain(1))
	require.Equal(t, 1, m.Chain())
	require.Nil(t, m.ChainMeta())

	err := m.SelectChain(9)
	require.ErrorIs(t, err, errs.ErrChainNotFound)
	require.Equal(t, 1, m.Chain(), "failed selection keeps the current chain")
}

func TestMemoryDevices(t *testing.T) {
	m := NewMemory()

	axis := testDevice(t, "ax:motor1", format.DeviceAxis, []table.PosRef{1, 2}, []float64{0, 1})
	det1 := testDevice(t, "ch:det1", format.DeviceChannel, []table.PosRef{1, 2}, []float64{5, 6})
	det2 := testDevice(t, "ch:det2", format.DeviceChannel, []table.PosRef{1}, []float64{7})
	snap := testDevice(t, "ax:motor1", format.DeviceAxis, []table.PosRef{0}, []float64{-1})

	m.AddChain(1).
		AddDevice(format.SectionStandard, axis).
		AddDevice(format.SectionStandard, det1).
		AddDevice(format.SectionStandard, det2).
		AddDevice(format.SectionSnapshot, snap).
		SetPreferredAxis(axis).
		SetPreferredChannel(det1)

	t.Run("section scoping", func(t *testing.T) {
		std, err := m.Devices(format.SectionStandard, "")
		require.NoError(t, err)
		require.Len(t, std, 3)

		snaps, err := m.Devices(format.SectionSnapshot, "")
		require.NoError(t, err)
		require.Len(t, snaps, 1)

		monitors, err := m.Devices(format.SectionMonitor, "")
		require.NoError(t, err)
		require.Empty(t, monitors)
	})

	t.Run("id substring filter", func(t *testing.T) {
		dets, err := m.Devices(format.SectionStandard, "ch:")
		require.NoError(t, err)
		require.Len(t, dets, 2)

		one, err := m.Devices(format.SectionStandard, "det2")
		require.NoError(t, err)
		require.Len(t, one, 1)
		require.Equal(t, "ch:det2", one[0].Meta.ID)
	})

	t.Run("preferred devices", func(t *testing.T) {
		preferred, err := m.PreferredDevices()
		require.NoError(t, err)
		require.Len(t, preferred, 2)
		require.Equal(t, "ax:motor1", preferred[0].Meta.ID)
		require.Equal(t, "ch:det1", preferred[1].Meta.ID)
	})
}

func TestMemoryFileMetaAndLog(t *testing.T) {
	fileMeta := table.NewAttributes()
	fileMeta.Add("location", "beamline 7")

	m := NewMemory().
		SetFileMeta(fileMeta).
		AppendLog("scan started").
		AppendLog("scan finished")

	loc, ok := m.FileMeta().Get("location")
	require.True(t, ok)
	require.Equal(t, "beamline 7", loc)
	require.Equal(t, []string{"scan started", "scan finished"}, m.Log())
}

func TestMemoryNoChainSelected(t *testing.T) {
	m := NewMemory()

	_, err := m.Devices(format.SectionStandard, "")
	require.ErrorIs(t, err, errs.ErrChainNotFound)

	_, err = m.PreferredDevices()
	require.ErrorIs(t, err, errs.ErrChainNotFound)
}
