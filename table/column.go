package table

import (
	"fmt"
	"slices"

	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
)

// Column is one adapted device series paired with its meta record; the
// join engine's unit of input. Create columns with Adapt.
type Column struct {
	meta    *MetaRecord
	posRefs []PosRef
	data    buffer
	width   int
	avg     *Averages
	dev     *Deviations
}

// Adapt validates a raw device series against its meta record and produces a
// join-ready column.
//
// Validation performed:
//   - position references must be strictly ascending with no duplicates
//     (ErrMalformedSeries, naming the device and the offending reference)
//   - the series element type must match the meta record's data type tag
//     (ErrTypeMismatch)
//   - for array devices (Dimension.Cols > 1) the series width must equal the
//     declared column count (ErrIncompatibleArrayDimension)
//   - attached statistics slices must parallel the sample sequence
//     (ErrMalformedSeries)
//
// The column shares the series' underlying buffers; inputs stay read-only
// for the lifetime of any join using the column.
func Adapt(series *Series, meta *MetaRecord) (*Column, error) {
	if series == nil || meta == nil {
		return nil, fmt.Errorf("%w: nil series or meta record", errs.ErrMalformedSeries)
	}

	for i := 1; i < len(series.posRefs); i++ {
		if series.posRefs[i] <= series.posRefs[i-1] {
			return nil, fmt.Errorf("%w: device %q position reference %d follows %d",
				errs.ErrMalformedSeries, meta.label(), series.posRefs[i], series.posRefs[i-1])
		}
	}

	if meta.Type != series.DataType() {
		return nil, fmt.Errorf("%w: device %q declares %s but series holds %s",
			errs.ErrTypeMismatch, meta.label(), meta.Type, series.DataType())
	}

	width := series.width
	declared := meta.Dimension.Cols
	if declared <= 0 {
		declared = 1
	}
	if width == 0 {
		// Empty array series adopts the declared width.
		width = declared
	}
	if width != declared {
		return nil, fmt.Errorf("%w: device %q declares %d columns but series width is %d",
			errs.ErrIncompatibleArrayDimension, meta.label(), declared, series.width)
	}

	if series.data.length() != series.Len()*width {
		return nil, fmt.Errorf("%w: device %q buffer holds %d values for %d samples of width %d",
			errs.ErrMalformedSeries, meta.label(), series.data.length(), series.Len(), width)
	}

	if series.avg != nil {
		if l, ok := series.avg.statLen(series.Len()); !ok {
			return nil, fmt.Errorf("%w: device %q average statistics length %d, want %d",
				errs.ErrMalformedSeries, meta.label(), l, series.Len())
		}
	}
	if series.dev != nil {
		if l, ok := series.dev.statLen(series.Len()); !ok {
			return nil, fmt.Errorf("%w: device %q deviation statistics length %d, want %d",
				errs.ErrMalformedSeries, meta.label(), l, series.Len())
		}
	}

	return &Column{
		meta:    meta,
		posRefs: series.posRefs,
		data:    series.data,
		width:   width,
		avg:     series.avg,
		dev:     series.dev,
	}, nil
}

// Meta returns the column's meta record.
func (c *Column) Meta() *MetaRecord {
	return c.meta
}

// DeviceType returns the device classification from the meta record.
func (c *Column) DeviceType() format.DeviceType {
	return c.meta.Device
}

// DataType returns the data type tag of the column buffer.
func (c *Column) DataType() format.DataType {
	return c.data.dataType()
}

// Width returns the per-sample vector length (1 for scalar columns).
func (c *Column) Width() int {
	return c.width
}

// Len returns the number of samples in the column.
func (c *Column) Len() int {
	return len(c.posRefs)
}

// PosRefs returns the column's position references.
// The returned slice is cloned to prevent external modification.
func (c *Column) PosRefs() []PosRef {
	return slices.Clone(c.posRefs)
}

// ValueIndex looks up the sample index holding the given position reference.
// Returns (index, true) when the column has a real sample at pos, and
// (-1, false) otherwise. O(log n) binary search; for sequential scans use
// Cursor instead.
func (c *Column) ValueIndex(pos PosRef) (int, bool) {
	i, ok := slices.BinarySearch(c.posRefs, pos)
	if !ok {
		return -1, false
	}

	return i, true
}

// Cursor returns a forward cursor positioned before the first sample.
func (c *Column) Cursor() *Cursor {
	return &Cursor{posRefs: c.posRefs, last: -1}
}

// Cursor scans a column's samples in ascending position reference order.
// Seek targets must be non-decreasing; the cursor never moves backwards,
// which keeps a full table scan linear in the sample count.
type Cursor struct {
	posRefs []PosRef
	next    int
	last    int
}

// Seek advances the cursor to pos and reports whether the column has a real
// sample there. On a hit it returns the sample index and consumes it.
func (cur *Cursor) Seek(pos PosRef) (int, bool) {
	for cur.next < len(cur.posRefs) && cur.posRefs[cur.next] < pos {
		cur.last = cur.next
		cur.next++
	}

	if cur.next < len(cur.posRefs) && cur.posRefs[cur.next] == pos {
		i := cur.next
		cur.last = i
		cur.next++

		return i, true
	}

	return -1, false
}

// Last returns the index of the most recent real sample at or before the
// last Seek target. Returns (-1, false) when no sample has been passed yet.
func (cur *Cursor) Last() (int, bool) {
	if cur.last < 0 {
		return -1, false
	}

	return cur.last, true
}
