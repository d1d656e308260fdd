// Package datafile defines the collaborator interface through which the join
// engine receives already materialized device series and metadata.
//
// Opening the upstream file container, decoding its sections and attributes,
// and selecting chains are all solved before this boundary: a File hands out
// in-memory Device values ready for table.Adapt. The Memory implementation
// backs tests, examples and any consumer that assembles scan data itself.
package datafile
