package datafile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/table"
)

// Memory is an in-memory File implementation assembled with a builder-style
// API. The first chain added becomes the selected chain.
//
// Memory is not safe for concurrent mutation; assemble it fully before
// sharing it across goroutines.
type Memory struct {
	chains   map[int]*memoryChain
	order    []int
	selected int
	fileMeta *table.Attributes
	log      []string
}

type memoryChain struct {
	meta             *table.Attributes
	sections         map[format.Section][]*Device
	preferredAxis    *Device
	preferredChannel *Device
}

var _ File = (*Memory)(nil)

// NewMemory creates an empty in-memory data source.
func NewMemory() *Memory {
	return &Memory{
		chains:   make(map[int]*memoryChain),
		selected: -1,
	}
}

// SetFileMeta sets the file-level attributes and returns the receiver for
// chaining.
func (m *Memory) SetFileMeta(attrs *table.Attributes) *Memory {
	m.fileMeta = attrs
	return m
}

// AppendLog appends one log message and returns the receiver for chaining.
func (m *Memory) AppendLog(msg string) *Memory {
	m.log = append(m.log, msg)
	return m
}

// AddChain adds an empty chain with the given id, replacing any existing
// chain with that id, and returns a builder scoped to it. The first chain
// added becomes the selected chain.
func (m *Memory) AddChain(id int) *ChainBuilder {
	c := &memoryChain{
		sections: make(map[format.Section][]*Device),
	}
	if _, exists := m.chains[id]; !exists {
		m.order = append(m.order, id)
		slices.Sort(m.order)
	}
	m.chains[id] = c
	if m.selected < 0 {
		m.selected = id
	}

	return &ChainBuilder{chain: c}
}

// Chains returns the ids of all chains, ascending.
func (m *Memory) Chains() []int {
	return slices.Clone(m.order)
}

// Chain returns the id of the currently selected chain, or -1 when the file
// has no chains.
func (m *Memory) Chain() int {
	return m.selected
}

// SelectChain switches the selected chain.
func (m *Memory) SelectChain(id int) error {
	if _, ok := m.chains[id]; !ok {
		return fmt.Errorf("%w: chain %d", errs.ErrChainNotFound, id)
	}
	m.selected = id

	return nil
}

// ChainMeta returns the attributes of the selected chain, nil when the file
// has no chains.
func (m *Memory) ChainMeta() *table.Attributes {
	c := m.chains[m.selected]
	if c == nil {
		return nil
	}

	return c.meta
}

// FileMeta returns the file-level attributes.
func (m *Memory) FileMeta() *table.Attributes {
	return m.fileMeta
}

// Devices returns the selected chain's devices in the given section.
// A non-empty filter keeps only devices whose XML id contains it.
func (m *Memory) Devices(sec format.Section, filter string) ([]*Device, error) {
	c := m.chains[m.selected]
	if c == nil {
		return nil, fmt.Errorf("%w: no chain selected", errs.ErrChainNotFound)
	}

	devices := c.sections[sec]
	if filter == "" {
		return slices.Clone(devices), nil
	}

	matched := make([]*Device, 0, len(devices))
	for _, d := range devices {
		if strings.Contains(d.Meta.ID, filter) {
			matched = append(matched, d)
		}
	}

	return matched, nil
}

// PreferredDevices returns the selected chain's preferred axis and channel,
// in that order, omitting whichever is not designated.
func (m *Memory) PreferredDevices() ([]*Device, error) {
	c := m.chains[m.selected]
	if c == nil {
		return nil, fmt.Errorf("%w: no chain selected", errs.ErrChainNotFound)
	}

	devices := make([]*Device, 0, 2)
	if c.preferredAxis != nil {
		devices = append(devices, c.preferredAxis)
	}
	if c.preferredChannel != nil {
		devices = append(devices, c.preferredChannel)
	}

	return devices, nil
}

// Log returns the file's log messages in recorded order.
func (m *Memory) Log() []string {
	return slices.Clone(m.log)
}

// ChainBuilder populates one chain of a Memory file.
type ChainBuilder struct {
	chain *memoryChain
}

// SetMeta sets the chain's attributes and returns the builder for chaining.
func (b *ChainBuilder) SetMeta(attrs *table.Attributes) *ChainBuilder {
	b.chain.meta = attrs
	return b
}

// AddDevice appends a device to the given section and returns the builder
// for chaining.
func (b *ChainBuilder) AddDevice(sec format.Section, device *Device) *ChainBuilder {
	b.chain.sections[sec] = append(b.chain.sections[sec], device)
	return b
}

// SetPreferredAxis designates the chain's preferred axis.
func (b *ChainBuilder) SetPreferredAxis(device *Device) *ChainBuilder {
	b.chain.preferredAxis = device
	return b
}

// SetPreferredChannel designates the chain's preferred channel.
func (b *ChainBuilder) SetPreferredChannel(device *Device) *ChainBuilder {
	b.chain.preferredChannel = device
	return b
}
