// Package scanjoin aligns independently sampled scan-device series into one
// row-aligned, typed table.
//
// During a scan, axes (driven positions) and channels (measured signals) each
// emit a sparse series of samples tagged with a shared integer position
// reference. Scanjoin merges N such series into a dense table on a common row
// index under a configurable fill rule, preserving per-cell type fidelity and
// the devices' descriptive metadata.
//
// # Core Features
//
//   - Four fill rules: NoFill (intersection), LastFill (axis carry-forward),
//     NANFill (channel NaN sentinel), LastNANFill (both)
//   - Typed column buffers for scalar, fixed-length array and string data
//   - Per-cell provenance states (real, filled, absent)
//   - Statistical aggregate blocks aligned to the joined rows
//   - Hash-based column lookup (64-bit xxHash64) by device id
//   - Compact compressed snapshot interchange form for joined tables
//
// # Basic Usage
//
// Joining two device series:
//
//	import "github.com/arloliu/scanjoin"
//
//	axisSeries, _ := table.NewSeries([]table.PosRef{1, 3, 5}, []float64{10, 30, 50})
//	axis, _ := table.Adapt(axisSeries, axisMeta)
//
//	chanSeries, _ := table.NewSeries([]table.PosRef{1, 2, 5}, []float64{1, 2, 5})
//	channel, _ := table.Adapt(chanSeries, chanMeta)
//
//	tbl, _ := scanjoin.Combine([]*table.Column{axis, channel}, format.LastNANFill)
//	values, _ := tbl.Float64Column(0)
//
// Joining straight from a data source:
//
//	tbl, _ := scanjoin.JoinedData(file, format.SectionStandard, "", format.LastNANFill)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the table,
// datafile and snapshot packages, simplifying the most common use cases. For
// advanced usage and fine-grained control, use those packages directly.
package scanjoin

import (
	"github.com/arloliu/scanjoin/datafile"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/internal/hash"
	"github.com/arloliu/scanjoin/table"
)

// DeviceID returns the 64-bit hash of a device identity string, the key used
// by JoinedTable column lookup and the snapshot column index.
//
// Parameters:
//   - id: Device identity (XML id, or name when no id exists)
//
// Returns:
//   - uint64: xxHash64 hash of the identity string
func DeviceID(id string) uint64 {
	return hash.ID(id)
}

// Combine merges the given columns into one row-aligned table under the given
// fill rule. See table.Combine for the full contract.
func Combine(cols []*table.Column, rule format.FillRule) (*table.JoinedTable, error) {
	return table.Combine(cols, rule)
}

// JoinedData fetches the devices of the given section from a data source,
// adapts them and joins them under the given fill rule.
//
// A non-empty filter keeps only devices whose XML id contains it. Devices are
// joined in the order the source returns them.
//
// Parameters:
//   - f: Data source with a selected chain.
//   - sec: Section to read devices from.
//   - filter: XML-id substring filter, empty for all devices.
//   - rule: Fill rule governing the row index and gap substitution.
//
// Returns:
//   - *table.JoinedTable: The merged table.
//   - error: Source, adaptation or join errors.
func JoinedData(f datafile.File, sec format.Section, filter string, rule format.FillRule) (*table.JoinedTable, error) {
	devices, err := f.Devices(sec, filter)
	if err != nil {
		return nil, err
	}

	return joinDevices(devices, rule)
}

// PreferredData joins the selected chain's preferred axis and channel under
// the given fill rule.
//
// Returns:
//   - *table.JoinedTable: The merged table; empty when the chain designates
//     no preferred devices.
//   - error: Source, adaptation or join errors.
func PreferredData(f datafile.File, rule format.FillRule) (*table.JoinedTable, error) {
	devices, err := f.PreferredDevices()
	if err != nil {
		return nil, err
	}

	return joinDevices(devices, rule)
}

func joinDevices(devices []*datafile.Device, rule format.FillRule) (*table.JoinedTable, error) {
	cols := make([]*table.Column, 0, len(devices))
	for _, d := range devices {
		col, err := table.Adapt(d.Series, d.Meta)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	return table.Combine(cols, rule)
}
