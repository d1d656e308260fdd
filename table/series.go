package table

import (
	"fmt"
	"math"

	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
)

// PosRef is an integer scan-step identifier, the join key shared by all
// devices of a chain. Position counters in scan files are 32-bit integers.
type PosRef = int32

// Value constrains the Go element types a column buffer can hold, one per
// format.DataType tag.
type Value interface {
	string |
		int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// dataTypeOf maps a buffer element type to its format.DataType tag.
func dataTypeOf[T Value]() format.DataType {
	var v T
	switch any(v).(type) {
	case string:
		return format.TypeString
	case int8:
		return format.TypeInt8
	case int16:
		return format.TypeInt16
	case int32:
		return format.TypeInt32
	case int64:
		return format.TypeInt64
	case uint8:
		return format.TypeUint8
	case uint16:
		return format.TypeUint16
	case uint32:
		return format.TypeUint32
	case uint64:
		return format.TypeUint64
	case float32:
		return format.TypeFloat32
	case float64:
		return format.TypeFloat64
	default:
		return format.TypeUnknown
	}
}

// buffer is the type-erased view of a flat typed value buffer.
// All concrete buffers are vals[T]; the interface lets columns of different
// data types flow through one join pass.
type buffer interface {
	dataType() format.DataType
	length() int

	// newLike returns an empty buffer of the same concrete element type
	// with the given capacity.
	newLike(capacity int) buffer

	// appendFrom appends n elements from src starting at start.
	// src must have the same concrete element type.
	appendFrom(src buffer, start, n int)

	// appendZero appends n zero-valued elements.
	appendZero(n int)

	// appendNaN appends n NaN sentinels for floating point buffers;
	// for any other element type it appends zero values.
	appendNaN(n int)
}

// vals is the concrete typed buffer backing series, columns and tables.
type vals[T Value] struct {
	elems []T
}

func newVals[T Value](elems []T) *vals[T] {
	return &vals[T]{elems: elems}
}

func (b *vals[T]) dataType() format.DataType {
	return dataTypeOf[T]()
}

func (b *vals[T]) length() int {
	return len(b.elems)
}

func (b *vals[T]) newLike(capacity int) buffer {
	return &vals[T]{elems: make([]T, 0, capacity)}
}

func (b *vals[T]) appendFrom(src buffer, start, n int) {
	s := src.(*vals[T])
	b.elems = append(b.elems, s.elems[start:start+n]...)
}

func (b *vals[T]) appendZero(n int) {
	var zero T
	for range n {
		b.elems = append(b.elems, zero)
	}
}

func (b *vals[T]) appendNaN(n int) {
	var fill T
	switch p := any(&fill).(type) {
	case *float64:
		*p = math.NaN()
	case *float32:
		*p = float32(math.NaN())
	}
	for range n {
		b.elems = append(b.elems, fill)
	}
}

// Averages holds the per-sample statistics of an averaging (limit)
// measurement. Each non-nil slice parallels the sample sequence of the
// series it belongs to. Slices that the device did not record stay nil.
type Averages struct {
	// MaxAttempts is the maximum allowed attempts for limit measurements.
	MaxAttempts []int32
	// Attempts is the attempts actually used.
	Attempts []int32
	// Count is the measurement count actually used.
	Count []int32
	// MaxCount is the preset measurement count.
	MaxCount []int32
	// Limit is the preset limit.
	Limit []float64
	// MaxDeviation is the allowed maximum deviation.
	MaxDeviation []float64
}

// Deviations holds the per-sample statistics of an interval (standard
// deviation) detector. Each non-nil slice parallels the sample sequence.
type Deviations struct {
	// Count is the number of measurements per interval.
	Count []float64
	// Deviation is the standard deviation per interval.
	Deviation []float64
}

// Series is one device's raw sample sequence: position references paired
// with a flat typed value buffer, plus optional statistics blocks.
//
// The engine treats a series as read-only; it neither copies nor mutates
// the slices handed to the constructors. Callers must not mutate them while
// a join using the series is in flight.
type Series struct {
	posRefs []PosRef
	data    buffer
	width   int
	avg     *Averages
	dev     *Deviations
}

// NewSeries creates a scalar series from parallel position reference and
// value slices.
//
// Position reference ordering is not validated here; Adapt validates the
// full series against its meta record.
//
// Returns:
//   - *Series: The created series.
//   - error: ErrMalformedSeries if the slice lengths differ.
func NewSeries[T Value](posRefs []PosRef, values []T) (*Series, error) {
	if len(posRefs) != len(values) {
		return nil, fmt.Errorf("%w: %d position references but %d values",
			errs.ErrMalformedSeries, len(posRefs), len(values))
	}

	return &Series{
		posRefs: posRefs,
		data:    newVals(values),
		width:   1,
	}, nil
}

// NewArraySeries creates an array-valued series: one fixed-length vector per
// position reference. All vectors must have the same length.
//
// The vectors are flattened into one row-major buffer; the per-row vector
// length becomes the series width.
//
// Returns:
//   - *Series: The created series.
//   - error: ErrMalformedSeries on length mismatch between posRefs and rows,
//     ErrIncompatibleArrayDimension if vector lengths differ.
func NewArraySeries[T Value](posRefs []PosRef, rows [][]T) (*Series, error) {
	if len(posRefs) != len(rows) {
		return nil, fmt.Errorf("%w: %d position references but %d array rows",
			errs.ErrMalformedSeries, len(posRefs), len(rows))
	}

	if len(rows) == 0 {
		return &Series{posRefs: posRefs, data: newVals[T](nil), width: 0}, nil
	}

	width := len(rows[0])
	flat := make([]T, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row at position reference %d has %d values, want %d",
				errs.ErrIncompatibleArrayDimension, posRefs[i], len(row), width)
		}
		flat = append(flat, row...)
	}

	return &Series{
		posRefs: posRefs,
		data:    newVals(flat),
		width:   width,
	}, nil
}

// WithAverages attaches averaging statistics to the series and returns the
// series for chaining. Slice lengths are validated by Adapt.
func (s *Series) WithAverages(avg *Averages) *Series {
	s.avg = avg
	return s
}

// WithDeviations attaches interval-detector statistics to the series and
// returns the series for chaining. Slice lengths are validated by Adapt.
func (s *Series) WithDeviations(dev *Deviations) *Series {
	s.dev = dev
	return s
}

// Len returns the number of samples in the series.
func (s *Series) Len() int {
	return len(s.posRefs)
}

// Width returns the per-sample vector length: 1 for scalar series, the
// fixed vector length for array series, 0 for an empty array series.
func (s *Series) Width() int {
	return s.width
}

// DataType returns the data type tag of the series value buffer.
func (s *Series) DataType() format.DataType {
	return s.data.dataType()
}

// HasAverages reports whether the series carries averaging statistics.
func (s *Series) HasAverages() bool {
	return s.avg != nil
}

// HasDeviations reports whether the series carries interval-detector
// statistics.
func (s *Series) HasDeviations() bool {
	return s.dev != nil
}

// statLen reports whether every non-nil statistics slice has length n.
// It returns the first offending length when not.
func (a *Averages) statLen(n int) (int, bool) {
	for _, l := range []int{
		len(a.MaxAttempts), len(a.Attempts), len(a.Count),
		len(a.MaxCount), len(a.Limit), len(a.MaxDeviation),
	} {
		if l != 0 && l != n {
			return l, false
		}
	}

	return n, true
}

func (d *Deviations) statLen(n int) (int, bool) {
	for _, l := range []int{len(d.Count), len(d.Deviation)} {
		if l != 0 && l != n {
			return l, false
		}
	}

	return n, true
}
