// Package table implements the data-alignment engine that merges independently
// sampled scan-device series into one row-aligned, typed table.
//
// # Data Model
//
// Every device of a scan chain emits a sparse series of samples tagged with an
// integer position reference (the scan step). Axes (driven positions) usually
// record a value only when they move; channels (measured signals) usually
// record one value per position reference. The engine aligns N such series on
// a common row index:
//
//	series, _ := table.NewSeries[float64]([]table.PosRef{1, 3, 5}, []float64{10, 30, 50})
//	col, _ := table.Adapt(series, meta)
//	tbl, _ := table.Combine([]*table.Column{col, ...}, format.LastNANFill)
//
// # Fill Rules
//
// The row set and the synthesis of missing cells are governed by a
// format.FillRule:
//   - NoFill: rows are the intersection of all columns' position references;
//     only fully populated rows survive.
//   - LastFill: rows are the union; axis gaps carry the most recent prior
//     axis value forward, channel gaps stay absent.
//   - NANFill: rows are the union; channel gaps receive a NaN sentinel
//     (floating-point channels only), axis gaps stay absent.
//   - LastNANFill: rows are the union; applies both substitutions.
//
// Cells synthesized by a fill rule are distinguishable from real samples via
// per-cell states (CellReal, CellFilled, CellAbsent); statistics blocks are
// only ever populated at real cells.
//
// # Concurrency
//
// Combine is a pure, synchronous computation over read-only inputs. Multiple
// joins may run concurrently, including over shared input columns, as long as
// no caller mutates an input series or meta record while a join is in flight.
// The returned JoinedTable is exclusively owned by the caller.
package table
