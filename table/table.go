package table

import (
	"fmt"
	"slices"

	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/internal/hash"
)

// CellState classifies the provenance of one table cell.
type CellState uint8

const (
	// CellAbsent marks a cell with no value: the device did not sample at
	// this row and the fill rule defined no substitution.
	CellAbsent CellState = 0
	// CellReal marks a value the device actually recorded.
	CellReal CellState = 1
	// CellFilled marks a value synthesized by the fill rule.
	CellFilled CellState = 2
)

func (s CellState) String() string {
	switch s {
	case CellReal:
		return "Real"
	case CellFilled:
		return "Filled"
	case CellAbsent:
		return "Absent"
	default:
		return "Unknown"
	}
}

// IsPresent reports whether the cell holds a usable value, real or filled.
func (s CellState) IsPresent() bool {
	return s == CellReal || s == CellFilled
}

// tableColumn is one materialized output column: a dense flat value buffer
// with one cell state per row.
type tableColumn struct {
	meta   *MetaRecord
	width  int
	data   buffer
	states []CellState
	avg    *Averages
	dev    *Deviations
}

// JoinedTable is the immutable result of a join: a shared ascending row index
// and one dense typed column per input device.
//
// All accessors are safe for concurrent use; the table is never mutated after
// construction.
type JoinedTable struct {
	posRefs []PosRef
	cols    []tableColumn
	byID    map[uint64]int
}

// ColumnCount returns the number of columns.
func (t *JoinedTable) ColumnCount() int {
	return len(t.cols)
}

// RowCount returns the number of rows.
func (t *JoinedTable) RowCount() int {
	return len(t.posRefs)
}

// PosRefs returns the ascending row index.
// The returned slice is cloned to prevent external modification.
func (t *JoinedTable) PosRefs() []PosRef {
	return slices.Clone(t.posRefs)
}

// ColumnMeta returns the meta record of column col.
func (t *JoinedTable) ColumnMeta(col int) (*MetaRecord, error) {
	if col < 0 || col >= len(t.cols) {
		return nil, fmt.Errorf("%w: column %d of %d", errs.ErrOutOfRange, col, len(t.cols))
	}

	return t.cols[col].meta, nil
}

// ColumnType returns the data type tag of column col.
func (t *JoinedTable) ColumnType(col int) (format.DataType, error) {
	if col < 0 || col >= len(t.cols) {
		return format.TypeUnknown, fmt.Errorf("%w: column %d of %d", errs.ErrOutOfRange, col, len(t.cols))
	}

	return t.cols[col].data.dataType(), nil
}

// ColumnWidth returns the per-row vector length of column col
// (1 for scalar columns).
func (t *JoinedTable) ColumnWidth(col int) (int, error) {
	if col < 0 || col >= len(t.cols) {
		return 0, fmt.Errorf("%w: column %d of %d", errs.ErrOutOfRange, col, len(t.cols))
	}

	return t.cols[col].width, nil
}

// StateAt returns the cell state at (row, col).
func (t *JoinedTable) StateAt(row, col int) (CellState, error) {
	if col < 0 || col >= len(t.cols) {
		return CellAbsent, fmt.Errorf("%w: column %d of %d", errs.ErrOutOfRange, col, len(t.cols))
	}
	if row < 0 || row >= len(t.posRefs) {
		return CellAbsent, fmt.Errorf("%w: row %d of %d", errs.ErrOutOfRange, row, len(t.posRefs))
	}

	return t.cols[col].states[row], nil
}

// ColumnStates returns the per-row cell states of column col.
// The returned slice is cloned to prevent external modification.
func (t *JoinedTable) ColumnStates(col int) ([]CellState, error) {
	if col < 0 || col >= len(t.cols) {
		return nil, fmt.Errorf("%w: column %d of %d", errs.ErrOutOfRange, col, len(t.cols))
	}

	return slices.Clone(t.cols[col].states), nil
}

// ColumnAverages returns the row-aligned averaging statistics of column col,
// or nil if the input series carried none. Statistics are only populated at
// rows whose cell state is CellReal.
func (t *JoinedTable) ColumnAverages(col int) (*Averages, error) {
	if col < 0 || col >= len(t.cols) {
		return nil, fmt.Errorf("%w: column %d of %d", errs.ErrOutOfRange, col, len(t.cols))
	}

	return t.cols[col].avg, nil
}

// ColumnDeviations returns the row-aligned interval-detector statistics of
// column col, or nil if the input series carried none.
func (t *JoinedTable) ColumnDeviations(col int) (*Deviations, error) {
	if col < 0 || col >= len(t.cols) {
		return nil, fmt.Errorf("%w: column %d of %d", errs.ErrOutOfRange, col, len(t.cols))
	}

	return t.cols[col].dev, nil
}

// ColumnByID looks up a column index by device identity: the XML id when the
// meta record has one, otherwise the device name. When two devices share an
// identity the first one wins.
func (t *JoinedTable) ColumnByID(id string) (int, bool) {
	col, ok := t.byID[hash.ID(id)]

	return col, ok
}

// Buffer returns the dense value buffer of column col in table t as a typed
// slice. The buffer is row-major: row r of a width-w column occupies elements
// [r*w, (r+1)*w). Cells whose state is CellAbsent hold the zero value of T.
//
// The returned slice aliases the table's storage; callers must not modify it.
//
// Returns:
//   - []T: The column's value buffer.
//   - error: ErrOutOfRange for a bad column index, ErrTypeMismatch when T does
//     not match the column's data type.
func Buffer[T Value](t *JoinedTable, col int) ([]T, error) {
	if col < 0 || col >= len(t.cols) {
		return nil, fmt.Errorf("%w: column %d of %d", errs.ErrOutOfRange, col, len(t.cols))
	}

	b, ok := t.cols[col].data.(*vals[T])
	if !ok {
		return nil, fmt.Errorf("%w: column %d holds %s", errs.ErrTypeMismatch, col, t.cols[col].data.dataType())
	}

	return b.elems, nil
}

// Float64Column returns the value buffer of a float64 column.
func (t *JoinedTable) Float64Column(col int) ([]float64, error) {
	return Buffer[float64](t, col)
}

// Int32Column returns the value buffer of an int32 column.
func (t *JoinedTable) Int32Column(col int) ([]int32, error) {
	return Buffer[int32](t, col)
}

// StringColumn returns the value buffer of a string column.
func (t *JoinedTable) StringColumn(col int) ([]string, error) {
	return Buffer[string](t, col)
}

// BuiltColumn is one pre-materialized column for NewTable, used by decoders
// that reconstruct a table from its interchange form.
type BuiltColumn struct {
	meta   *MetaRecord
	width  int
	data   buffer
	states []CellState
}

// NewBuiltColumn wraps an already dense, row-aligned value buffer as a table
// column. values must hold rows*width elements and states one entry per row.
func NewBuiltColumn[T Value](meta *MetaRecord, width int, values []T, states []CellState) (*BuiltColumn, error) {
	if meta == nil {
		return nil, fmt.Errorf("%w: nil meta record", errs.ErrMalformedSeries)
	}
	if width <= 0 {
		width = 1
	}
	if len(values) != len(states)*width {
		return nil, fmt.Errorf("%w: device %q has %d values for %d rows of width %d",
			errs.ErrMalformedSeries, meta.label(), len(values), len(states), width)
	}
	if dt := dataTypeOf[T](); meta.Type != dt {
		return nil, fmt.Errorf("%w: device %q declares %s but buffer holds %s",
			errs.ErrTypeMismatch, meta.label(), meta.Type, dt)
	}

	return &BuiltColumn{
		meta:   meta,
		width:  width,
		data:   newVals(values),
		states: states,
	}, nil
}

// NewTable assembles a joined table from pre-materialized columns. Every
// column must have exactly one cell state per row index entry.
func NewTable(posRefs []PosRef, cols []*BuiltColumn) (*JoinedTable, error) {
	t := &JoinedTable{
		posRefs: posRefs,
		cols:    make([]tableColumn, 0, len(cols)),
		byID:    make(map[uint64]int, len(cols)),
	}

	for i, c := range cols {
		if len(c.states) != len(posRefs) {
			return nil, fmt.Errorf("%w: device %q has %d rows, table has %d",
				errs.ErrMalformedSeries, c.meta.label(), len(c.states), len(posRefs))
		}
		t.cols = append(t.cols, tableColumn{
			meta:   c.meta,
			width:  c.width,
			data:   c.data,
			states: c.states,
		})
		key := hash.ID(c.meta.label())
		if _, dup := t.byID[key]; !dup {
			t.byID[key] = i
		}
	}

	return t, nil
}
