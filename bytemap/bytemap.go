// bytemap.go -- the deterministic byte-permutation table at the heart of
// lxrhash. Every hash step indexes this table; its size (up to 2^34 bytes)
// is chosen so each lookup misses the CPU cache, which is the whole point:
// memory-bound, not compute-bound, mining.
//
// (c) PegNet contributors
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim is made to its
// suitability for any purpose.
package bytemap

import (
	"fmt"

	"github.com/pegnet/lxrhash/wraparith"
)

// MinK and MaxK bound the map-size exponent: M = 2^K.
const (
	MinK = 8
	MaxK = 34
)

// Shuffle-phase constants, lifted verbatim from the reference generator.
const (
	firstRand uint64 = 2458719153079158768
	firstB    uint64 = 4631534797403582785
	firstV    uint64 = 3523455478921636871
)

// Map is a contiguous, read-only-after-construction byte-permutation
// table. Entries are stored packed (one byte each); callers read them
// widened to uint64 via Get, per the spec's "packed storage, on-read
// widening" requirement.
type Map struct {
	k    uint8
	mask uint64
	data []byte // len == 1<<k

	// mm is non-nil when data is backed by a memory-mapped file; Close
	// unmaps it. nil means data is a plain heap slice owned by us.
	mm mmapHandle
}

// K returns the map-size exponent (M = 2^K).
func (m *Map) K() uint8 { return m.k }

// Len returns M, the number of entries in the table.
func (m *Map) Len() uint64 { return uint64(len(m.data)) }

// Mask returns M-1, used to wrap indices into the table.
func (m *Map) Mask() uint64 { return m.mask }

// Get returns entry i (masked into range), widened to uint64. The upper
// 56 bits are always zero, per the spec's upper-bits invariant.
func (m *Map) Get(i uint64) uint64 {
	return uint64(m.data[i&m.mask])
}

// Bytes exposes the packed backing array read-only, for TableCache to
// persist without a copy.
func (m *Map) Bytes() []byte { return m.data }

// Close releases any memory-mapped backing storage. It is a no-op for
// heap-backed maps.
func (m *Map) Close() error {
	if m.mm != nil {
		err := m.mm.unmap()
		m.mm = nil
		return err
	}
	return nil
}

// Generate builds a new ByteMap deterministically from (seedInt, passes, k).
// Given identical arguments the result is byte-for-byte identical across
// platforms and across runs -- see the package's determinism invariant.
func Generate(seedInt uint64, passes int, k uint8) (*Map, error) {
	if k < MinK || k > MaxK {
		return nil, fmt.Errorf("bytemap: k=%d out of range [%d,%d]", k, MinK, MaxK)
	}
	if passes <= 0 {
		return nil, fmt.Errorf("bytemap: passes must be positive, got %d", passes)
	}

	m := uint64(1) << k
	mask := m - 1

	data := make([]byte, m)

	// Initialization phase: tile byte values 0..255 across the table.
	// The reference writes this as "for i in map: map[i] = i" while map
	// is still all-zero, which is opaque; we write the intended
	// steady-state directly (see DESIGN.md Open Question).
	for i := uint64(0); i < m; i++ {
		data[i] = byte(i)
	}

	offset := seedInt ^ firstRand
	b := seedInt ^ firstB
	v := firstV

	for p := 0; p < passes; p++ {
		for i := uint64(0); i < m; i++ {
			offset = wraparith.Shl(offset, 9) ^ wraparith.Shr(offset, 1) ^ wraparith.Shr(offset, 7) ^ b
			v = uint64(data[(offset^b)&mask]) ^ wraparith.Shl(v, 8) ^ wraparith.Shr(v, 1)
			b = wraparith.Shl(v, 7) ^ wraparith.Shl(v, 13) ^ wraparith.Shl(v, 33) ^ wraparith.Shl(v, 52) ^
				wraparith.Shl(b, 9) ^ wraparith.Shr(b, 1)
			j := offset & mask
			data[i], data[j] = data[j], data[i]
		}
	}

	return &Map{k: k, mask: mask, data: data}, nil
}

// FromBytes wraps an already-generated, already-validated packed byte
// slice (e.g. one just read from a cache file) as a Map without copying.
func FromBytes(data []byte, k uint8) (*Map, error) {
	want := uint64(1) << k
	if uint64(len(data)) != want {
		return nil, fmt.Errorf("bytemap: expected %d bytes for k=%d, got %d", want, k, len(data))
	}
	return &Map{k: k, mask: want - 1, data: data}, nil
}
