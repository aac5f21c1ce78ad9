// seedhash.go -- fold an arbitrary-length seed into the 64-bit seed_int
// the core algorithm runs on.
//
// The spec's default seed is exactly 8 bytes and is read as a big-endian
// uint64 directly (see lxrhash.DefaultSeed). Callers of the CLI or the
// library may instead hand in a seed of any length (a passphrase, a hex
// string of arbitrary size); those get folded down with the same
// non-cryptographic fast hash the teacher uses to turn arbitrary byte
// strings into uint64 keys (see chd_test.go's use of fasthash.Hash64).
package seedhash

import (
	"encoding/binary"

	"github.com/opencoff/go-fasthash"
)

// defaultFoldSeed is an arbitrary fixed salt for folding non-default-length
// seeds; it has no relationship to the hasher's own seed_int and exists
// purely to decorrelate the folding step across different callers.
const defaultFoldSeed uint64 = 0x9e3779b97f4a7c15

// SeedInt converts a raw seed byte string into the 64-bit seed_int used
// throughout the hasher. An exactly-8-byte seed is interpreted as a
// big-endian uint64 per the spec; any other length is folded with
// go-fasthash.
func SeedInt(seed []byte) uint64 {
	if len(seed) == 8 {
		return binary.BigEndian.Uint64(seed)
	}
	return fasthash.Hash64(defaultFoldSeed, seed)
}
