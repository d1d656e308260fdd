package table

import (
	"fmt"

	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/internal/hash"
)

// Combine merges the given columns into one row-aligned table under the given
// fill rule.
//
// The row index is the intersection of all columns' position references for
// NoFill, and their sorted union for every other rule. Missing cells are
// synthesized per rule and device type:
//   - axis gaps receive the most recent prior axis value under LastFill and
//     LastNANFill; before the first real sample they stay absent
//   - channel gaps receive a NaN sentinel under NANFill and LastNANFill
//   - devices of unknown type are never filled
//
// Fillability is validated up front: a NaN-based rule combined with any
// non-floating-point channel column fails with ErrUnfillableType before any
// row is materialized, regardless of whether that column has gaps.
//
// Combine does not mutate its inputs; the same columns may participate in
// several concurrent joins. An empty column slice yields an empty table.
//
// Returns:
//   - *JoinedTable: The merged table, exclusively owned by the caller.
//   - error: ErrInvalidFillRule or ErrUnfillableType.
func Combine(cols []*Column, rule format.FillRule) (*JoinedTable, error) {
	if !rule.IsValid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidFillRule, uint8(rule))
	}

	if rule.FillsChannel() {
		for _, c := range cols {
			if c.DeviceType() == format.DeviceChannel && !c.DataType().IsFloat() {
				return nil, fmt.Errorf("%w: channel %q holds %s, %s requires floating point",
					errs.ErrUnfillableType, c.meta.label(), c.DataType(), rule)
			}
		}
	}

	rows := buildRowIndex(cols, rule)

	t := &JoinedTable{
		posRefs: rows,
		cols:    make([]tableColumn, 0, len(cols)),
		byID:    make(map[uint64]int, len(cols)),
	}

	for i, c := range cols {
		t.cols = append(t.cols, materialize(c, rows, rule))
		key := hash.ID(c.meta.label())
		if _, dup := t.byID[key]; !dup {
			t.byID[key] = i
		}
	}

	return t, nil
}

// materialize produces one dense output column by a single forward pass over
// the column's samples aligned to the row index.
func materialize(c *Column, rows []PosRef, rule format.FillRule) tableColumn {
	out := tableColumn{
		meta:   c.meta,
		width:  c.width,
		data:   c.data.newLike(len(rows) * c.width),
		states: make([]CellState, 0, len(rows)),
	}

	st := newStatWriter(c, len(rows))

	fillForward := rule.FillsAxis() && c.DeviceType() == format.DeviceAxis
	fillNaN := rule.FillsChannel() && c.DeviceType() == format.DeviceChannel

	cur := c.Cursor()
	for _, pos := range rows {
		if i, ok := cur.Seek(pos); ok {
			out.data.appendFrom(c.data, i*c.width, c.width)
			out.states = append(out.states, CellReal)
			st.copyReal(i)

			continue
		}

		switch {
		case fillForward:
			if last, ok := cur.Last(); ok {
				out.data.appendFrom(c.data, last*c.width, c.width)
				out.states = append(out.states, CellFilled)
				st.skip()

				continue
			}
			// No prior axis value to carry forward.
			out.data.appendZero(c.width)
			out.states = append(out.states, CellAbsent)
			st.skip()
		case fillNaN:
			out.data.appendNaN(c.width)
			out.states = append(out.states, CellFilled)
			st.skip()
		default:
			out.data.appendZero(c.width)
			out.states = append(out.states, CellAbsent)
			st.skip()
		}
	}

	out.avg, out.dev = st.result()

	return out
}

// statWriter builds row-aligned statistics blocks for one output column.
// Values are copied only at real cells; every other row gets the zero value.
type statWriter struct {
	src    *Column
	avg    *Averages
	dev    *Deviations
	cursor int
}

func newStatWriter(c *Column, rows int) *statWriter {
	w := &statWriter{src: c}

	if c.avg != nil {
		w.avg = &Averages{}
		if c.avg.MaxAttempts != nil {
			w.avg.MaxAttempts = make([]int32, rows)
		}
		if c.avg.Attempts != nil {
			w.avg.Attempts = make([]int32, rows)
		}
		if c.avg.Count != nil {
			w.avg.Count = make([]int32, rows)
		}
		if c.avg.MaxCount != nil {
			w.avg.MaxCount = make([]int32, rows)
		}
		if c.avg.Limit != nil {
			w.avg.Limit = make([]float64, rows)
		}
		if c.avg.MaxDeviation != nil {
			w.avg.MaxDeviation = make([]float64, rows)
		}
	}
	if c.dev != nil {
		w.dev = &Deviations{}
		if c.dev.Count != nil {
			w.dev.Count = make([]float64, rows)
		}
		if c.dev.Deviation != nil {
			w.dev.Deviation = make([]float64, rows)
		}
	}

	return w
}

// copyReal copies the sample statistics at source index i into the current row.
func (w *statWriter) copyReal(i int) {
	if w.avg != nil {
		sa := w.src.avg
		if sa.MaxAttempts != nil {
			w.avg.MaxAttempts[w.cursor] = sa.MaxAttempts[i]
		}
		if sa.Attempts != nil {
			w.avg.Attempts[w.cursor] = sa.Attempts[i]
		}
		if sa.Count != nil {
			w.avg.Count[w.cursor] = sa.Count[i]
		}
		if sa.MaxCount != nil {
			w.avg.MaxCount[w.cursor] = sa.MaxCount[i]
		}
		if sa.Limit != nil {
			w.avg.Limit[w.cursor] = sa.Limit[i]
		}
		if sa.MaxDeviation != nil {
			w.avg.MaxDeviation[w.cursor] = sa.MaxDeviation[i]
		}
	}
	if w.dev != nil {
		sd := w.src.dev
		if sd.Count != nil {
			w.dev.Count[w.cursor] = sd.Count[i]
		}
		if sd.Deviation != nil {
			w.dev.Deviation[w.cursor] = sd.Deviation[i]
		}
	}
	w.cursor++
}

// skip leaves the current row's statistics at their zero value.
func (w *statWriter) skip() {
	w.cursor++
}

func (w *statWriter) result() (*Averages, *Deviations) {
	return w.avg, w.dev
}
