// Package errs defines the sentinel errors returned by scanjoin.
//
// Callers should test for these values with errors.Is; the errors returned
// by the library wrap a sentinel with call-site context (device identity,
// position reference) via fmt.Errorf("%w: ...").
package errs

import "errors"

// Join construction errors.
var (
	// ErrMalformedSeries indicates a device series whose position references
	// are not strictly ascending, contain duplicates, or whose buffers are
	// inconsistent with the sample count.
	ErrMalformedSeries = errors.New("malformed device series")

	// ErrIncompatibleArrayDimension indicates an array-valued column whose
	// per-row vector length disagrees with its declared dimension.
	ErrIncompatibleArrayDimension = errors.New("incompatible array dimension")

	// ErrUnfillableType indicates a NaN-based fill rule applied to a channel
	// column whose data type is not floating point.
	ErrUnfillableType = errors.New("unfillable data type")

	// ErrTypeMismatch indicates a column buffer accessed (or constructed)
	// with a Go type that does not match the column's declared data type tag.
	ErrTypeMismatch = errors.New("data type mismatch")

	// ErrOutOfRange indicates a column or row index beyond the table bounds.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidFillRule indicates a fill rule value outside the defined set.
	ErrInvalidFillRule = errors.New("invalid fill rule")
)

// Data file errors.
var (
	// ErrChainNotFound indicates a chain id that the data file does not contain.
	ErrChainNotFound = errors.New("chain not found")
)

// Snapshot codec errors.
var (
	ErrInvalidHeaderSize    = errors.New("invalid header size")
	ErrInvalidMagicNumber   = errors.New("invalid magic number")
	ErrInvalidHeaderFlags   = errors.New("invalid header flags")
	ErrInvalidColumnCount   = errors.New("invalid column count")
	ErrInvalidPayloadOffset = errors.New("invalid payload offset")
	ErrInvalidSnapshotData  = errors.New("invalid snapshot data")
)
