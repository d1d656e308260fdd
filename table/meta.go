package table

import (
	"iter"

	"github.com/arloliu/scanjoin/format"
)

// Dimension describes the shape of one device's per-sample data.
// Cols > 1 marks array data: the device records a fixed-length vector per
// position reference instead of a scalar.
type Dimension struct {
	Rows int
	Cols int
}

// MetaRecord is the immutable descriptor of one device column.
//
// The engine carries meta records through a join unchanged and never mutates
// them; callers must not modify a record while a join using it is in flight.
type MetaRecord struct {
	// Name is the human-readable device name.
	Name string
	// Unit is the measurement unit, empty if the device has none.
	Unit string
	// ID is the device id as used in the scan description XML (XML-ID).
	ID string
	// ChannelID is the channel identification string, empty for axes.
	ChannelID string
	// NormalizeID is the XML-ID of the channel used for normalization,
	// empty if the device is not normalized.
	NormalizeID string
	// Dimension is the per-sample data shape; Cols > 1 marks array data.
	Dimension Dimension
	// Device is the device classification (axis, channel or unknown).
	Device format.DeviceType
	// Type is the data type tag of the device's value buffer.
	Type format.DataType
	// Attributes holds the decoded descriptive attributes, may be nil.
	Attributes *Attributes
}

// IsArray reports whether the device records a fixed-length vector per
// position reference.
func (m *MetaRecord) IsArray() bool {
	return m.Dimension.Cols > 1
}

// label returns the best identity for error messages: the XML id when
// present, otherwise the device name.
func (m *MetaRecord) label() string {
	if m.ID != "" {
		return m.ID
	}

	return m.Name
}

type attrPair struct {
	key   string
	value string
}

// Attributes is an ordered, multi-valued key to value mapping.
//
// It replaces the attribute multimap of the upstream file reader: insertion
// order of pairs is preserved, and one key may carry several values. All
// read methods are safe on a nil receiver.
type Attributes struct {
	pairs []attrPair
	index map[string][]int
}

// NewAttributes creates an empty attribute mapping.
func NewAttributes() *Attributes {
	return &Attributes{
		index: make(map[string][]int),
	}
}

// Add appends one key/value pair, preserving insertion order.
// The same key may be added multiple times with different values.
func (a *Attributes) Add(key, value string) {
	if a.index == nil {
		a.index = make(map[string][]int)
	}
	a.index[key] = append(a.index[key], len(a.pairs))
	a.pairs = append(a.pairs, attrPair{key: key, value: value})
}

// Get returns the first value recorded for key.
func (a *Attributes) Get(key string) (string, bool) {
	if a == nil || a.index == nil {
		return "", false
	}

	idxs, ok := a.index[key]
	if !ok || len(idxs) == 0 {
		return "", false
	}

	return a.pairs[idxs[0]].value, true
}

// Values returns all values recorded for key, in insertion order.
// The returned slice is newly allocated.
func (a *Attributes) Values(key string) []string {
	if a == nil || a.index == nil {
		return nil
	}

	idxs := a.index[key]
	if len(idxs) == 0 {
		return nil
	}

	values := make([]string, 0, len(idxs))
	for _, i := range idxs {
		values = append(values, a.pairs[i].value)
	}

	return values
}

// Keys returns the unique keys in first-seen order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}

	keys := make([]string, 0, len(a.index))
	seen := make(map[string]struct{}, len(a.index))
	for _, p := range a.pairs {
		if _, ok := seen[p.key]; ok {
			continue
		}
		seen[p.key] = struct{}{}
		keys = append(keys, p.key)
	}

	return keys
}

// Len returns the number of key/value pairs.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}

	return len(a.pairs)
}

// All iterates over every key/value pair in insertion order.
func (a *Attributes) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if a == nil {
			return
		}
		for _, p := range a.pairs {
			if !yield(p.key, p.value) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the mapping.
func (a *Attributes) Clone() *Attributes {
	if a == nil {
		return nil
	}

	clone := NewAttributes()
	for _, p := range a.pairs {
		clone.Add(p.key, p.value)
	}

	return clone
}
