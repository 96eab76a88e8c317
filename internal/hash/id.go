// Package hash provides the non-cryptographic hash used to checksum
// serialized index bodies.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of data.
func Sum64(data string) uint64 {
	return xxhash.Sum64String(data)
}
