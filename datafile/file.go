package datafile

import (
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/table"
)

// Device is one materialized device: its descriptor and its raw sample
// series, ready for table.Adapt.
type Device struct {
	Meta   *table.MetaRecord
	Series *table.Series
}

// File is the upstream data source boundary. A scan file holds one or more
// chains; exactly one chain is selected at a time and all device accessors
// operate on the selected chain.
//
// Implementations must return devices that stay valid and read-only while
// any join using them is in flight.
type File interface {
	// Chains returns the ids of all chains in the file, ascending.
	Chains() []int

	// Chain returns the id of the currently selected chain.
	Chain() int

	// SelectChain switches the selected chain.
	// Returns ErrChainNotFound when the file has no chain with that id.
	SelectChain(id int) error

	// ChainMeta returns the descriptive attributes of the selected chain.
	ChainMeta() *table.Attributes

	// FileMeta returns the file-level descriptive attributes.
	FileMeta() *table.Attributes

	// Devices returns the selected chain's devices in the given section.
	// A non-empty filter keeps only devices whose XML id contains it.
	Devices(sec format.Section, filter string) ([]*Device, error)

	// PreferredDevices returns the preferred axis and channel of the selected
	// chain, in that order, omitting whichever is not designated.
	PreferredDevices() ([]*Device, error)

	// Log returns the file's log messages in recorded order.
	Log() []string
}
