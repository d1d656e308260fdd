package hash

import "github.com/cespare/xxhash/v2"

// ID computes the 64-bit xxHash of a device identifier string.
// The same string always hashes to the same ID, so XML ids can be used
// interchangeably with hashed ids across tables and snapshots.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
