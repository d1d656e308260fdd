package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
)

func TestJoinedTableAccessors(t *testing.T) {
	tbl, err := Combine(joinFixture(t), format.LastNANFill)
	require.NoError(t, err)

	t.Run("meta and type", func(t *testing.T) {
		meta, err := tbl.ColumnMeta(0)
		require.NoError(t, err)
		require.Equal(t, "A", meta.ID)

		dt, err := tbl.ColumnType(1)
		require.NoError(t, err)
		require.Equal(t, format.TypeFloat64, dt)
	})

	t.Run("state at cell", func(t *testing.T) {
		state, err := tbl.StateAt(1, 0)
		require.NoError(t, err)
		require.Equal(t, CellFilled, state)
		require.True(t, state.IsPresent())

		state, err = tbl.StateAt(0, 0)
		require.NoError(t, err)
		require.Equal(t, CellReal, state)
	})

	t.Run("out of range indices", func(t *testing.T) {
		_, err := tbl.ColumnMeta(2)
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = tbl.ColumnMeta(-1)
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = tbl.StateAt(99, 0)
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = tbl.ColumnStates(2)
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = tbl.ColumnAverages(2)
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = Buffer[float64](tbl, 5)
		require.ErrorIs(t, err, errs.ErrOutOfRange)
	})

	t.Run("typed buffer mismatch", func(t *testing.T) {
		_, err := tbl.Int32Column(0)
		require.ErrorIs(t, err, errs.ErrTypeMismatch)
		_, err = tbl.StringColumn(0)
		require.ErrorIs(t, err, errs.ErrTypeMismatch)
	})

	t.Run("lookup by id", func(t *testing.T) {
		col, ok := tbl.ColumnByID("C")
		require.True(t, ok)
		require.Equal(t, 1, col)

		_, ok = tbl.ColumnByID("missing")
		require.False(t, ok)
	})

	t.Run("PosRefs returns a copy", func(t *testing.T) {
		refs := tbl.PosRefs()
		refs[0] = 999
		require.Equal(t, PosRef(1), tbl.PosRefs()[0])
	})
}

func TestCellStateString(t *testing.T) {
	require.Equal(t, "Real", CellReal.String())
	require.Equal(t, "Filled", CellFilled.String())
	require.Equal(t, "Absent", CellAbsent.String())
	require.False(t, CellAbsent.IsPresent())
}

func TestNewTable(t *testing.T) {
	meta := floatMeta("A", format.DeviceAxis)

	t.Run("round assembly", func(t *testing.T) {
		col, err := NewBuiltColumn(meta, 1,
			[]float64{10, 20}, []CellState{CellReal, CellFilled})
		require.NoError(t, err)

		tbl, err := NewTable([]PosRef{1, 2}, []*BuiltColumn{col})
		require.NoError(t, err)
		require.Equal(t, 2, tbl.RowCount())
		require.Equal(t, 1, tbl.ColumnCount())

		v, err := tbl.Float64Column(0)
		require.NoError(t, err)
		require.Equal(t, []float64{10, 20}, v)

		idx, ok := tbl.ColumnByID("A")
		require.True(t, ok)
		require.Zero(t, idx)
	})

	t.Run("value count must match rows times width", func(t *testing.T) {
		_, err := NewBuiltColumn(meta, 2, []float64{1, 2, 3}, []CellState{CellReal, CellReal})
		require.ErrorIs(t, err, errs.ErrMalformedSeries)
	})

	t.Run("element type must match meta", func(t *testing.T) {
		_, err := NewBuiltColumn(meta, 1, []int32{1}, []CellState{CellReal})
		require.ErrorIs(t, err, errs.ErrTypeMismatch)
	})

	t.Run("row count must match the index", func(t *testing.T) {
		col, err := NewBuiltColumn(meta, 1, []float64{10}, []CellState{CellReal})
		require.NoError(t, err)
		_, err = NewTable([]PosRef{1, 2}, []*BuiltColumn{col})
		require.ErrorIs(t, err, errs.ErrMalformedSeries)
	})
}
