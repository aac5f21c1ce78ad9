// lxrhash.go -- the stateless hash function that consumes a ByteMap and
// an arbitrary input buffer and reduces them to a D-byte digest.
//
// Three phases, each specified bit-exactly by the protocol this package
// implements: a fast spin that perturbs the initial state so repeated
// hashing of related inputs doesn't leave the ByteMap access pattern
// predictable, a main mixing loop that folds every input byte through
// twenty-five ByteMap lookups, and a reduction pass that folds the
// intermediate digest buffer down to output bytes the same way.
//
// (c) PegNet contributors
package lxrhash

import (
	"github.com/pegnet/lxrhash/bytemap"
	"github.com/pegnet/lxrhash/wraparith"
)

// Hash computes the D-byte digest of src using m as the ByteMap and
// seedInt as the initial accumulator state. It is a pure function: no
// allocation beyond the returned slice and the transient h/s locals, no
// I/O, no hidden state. Safe to call concurrently from multiple
// goroutines sharing the same *bytemap.Map, since m is read-only here.
func Hash(m *bytemap.Map, seedInt uint64, d int, src []byte) []byte {
	h := make([]uint64, d)

	a, s1, s2, s3 := spin(seedInt, d, src, h)
	a, s1, s2, s3 = mainLoop(m, src, d, h, a, s1, s2, s3)
	return reduce(m, d, h, a, s1, s2, s3)
}

// spin is Phase A: a fast pre-mix that perturbs the hasher's initial
// state before the real mixing begins. Deliberately does not reference
// the input byte's value -- only its position -- matching the canonical
// revision of the reference generator (an earlier revision folded the
// byte value and a ByteMap lookup into this phase; that revision's
// digests are not the ones this package targets).
func spin(seedInt uint64, d int, src []byte, h []uint64) (a, s1, s2, s3 uint64) {
	a = seedInt
	index := uint64(0)

	for range src {
		if index >= uint64(d) {
			index = 0
		}

		a = wraparith.Shl(index, 1) ^ wraparith.Shl(a, 7) ^ wraparith.Shr(a, 5)
		s1 = wraparith.Shl(s1, 9) ^ wraparith.Shr(s1, 3) ^ a
		h[index] = s1 ^ a

		a, s1, s2, s3 = s3, a, s1, s2
		index++
	}

	return a, s1, s2, s3
}

// mainLoop is Phase B: for each input byte, fold it through the ByteMap
// via mixStep, updating h[index] once per byte and advancing index with
// wraparound at d. Returns the accumulator state as it stood after the
// last byte, ready for the reduction pass to continue from.
func mainLoop(m *bytemap.Map, src []byte, d int, h []uint64, a, s1, s2, s3 uint64) (uint64, uint64, uint64, uint64) {
	mask := m.Mask()
	index := uint64(0)

	for _, v := range src {
		if index >= uint64(d) {
			index = 0
		}
		bit := uint64(v)

		a, s1, s2, s3 = mixStep(m, mask, h, index, bit, a, s1, s2, s3)

		index++
	}

	return a, s1, s2, s3
}

// reduce is Phase C: fold h[] down to the output digest, iterating from
// the last slot to the first. Each slot is processed by exactly the same
// mixing block as mainLoop, with h[i] substituted for the input byte and
// the slot index itself substituted for the running index.
func reduce(m *bytemap.Map, d int, h []uint64, a, s1, s2, s3 uint64) []byte {
	mask := m.Mask()
	out := make([]byte, d)

	for i := d - 1; i >= 0; i-- {
		bit := h[i]
		idx := uint64(i)

		a, s1, s2, s3 = mixStep(m, mask, h, idx, bit, a, s1, s2, s3)

		out[i] = byte(m.Get(a) ^ m.Get(h[i]))
	}

	return out
}

// mixStep applies the 28-statement mixing block shared by the main loop
// and the reduction pass: twenty-five rounds of shift/xor/ByteMap-lookup
// across s1, a and s2, a running update of h[index], and a cyclic rotation of
// (s1, s2, s3) at the end. bit is the input byte (main loop) or h[i]
// (reduction).
func mixStep(m *bytemap.Map, mask uint64, h []uint64, index, bit, a, s1, s2, s3 uint64) (ra, rs1, rs2, rs3 uint64) {
	b := func(x uint64) uint64 { return m.Get(x & mask) }

	s1 = wraparith.Shl(s1, 9) ^ wraparith.Shr(s1, 1) ^ a ^ wraparith.Shl(b(wraparith.Shr(a, 5)^bit), 3)
	s1 = wraparith.Shl(s1, 5) ^ wraparith.Shr(s1, 3) ^ wraparith.Shl(b(s1^bit), 7)
	s1 = wraparith.Shl(s1, 7) ^ wraparith.Shr(s1, 7) ^ wraparith.Shl(b(a^wraparith.Shr(s1, 7)), 5)
	s1 = wraparith.Shl(s1, 11) ^ wraparith.Shr(s1, 5) ^ wraparith.Shl(b(bit^wraparith.Shr(a, 11)^s1), 27)

	h[index] = s1 ^ a ^ wraparith.Shl(h[index], 7) ^ wraparith.Shr(h[index], 13)

	a = wraparith.Shl(a, 17) ^ wraparith.Shr(a, 5) ^ s1 ^ wraparith.Shl(b(a^wraparith.Shr(s1, 27)^bit), 3)
	a = wraparith.Shl(a, 13) ^ wraparith.Shr(a, 3) ^ wraparith.Shl(b(a^s1), 7)
	a = wraparith.Shl(a, 15) ^ wraparith.Shr(a, 7) ^ wraparith.Shl(b(wraparith.Shr(a, 7)^s1), 11)
	a = wraparith.Shl(a, 9) ^ wraparith.Shr(a, 11) ^ wraparith.Shl(b(bit^a^s1), 3)

	s1 = wraparith.Shl(s1, 7) ^ wraparith.Shr(s1, 27) ^ a ^ wraparith.Shl(b(wraparith.Shr(a, 3)), 13)
	s1 = wraparith.Shl(s1, 3) ^ wraparith.Shr(s1, 13) ^ wraparith.Shl(b(s1^bit), 11)
	s1 = wraparith.Shl(s1, 8) ^ wraparith.Shr(s1, 11) ^ wraparith.Shl(b(a^wraparith.Shr(s1, 11)), 9)
	s1 = wraparith.Shl(s1, 6) ^ wraparith.Shr(s1, 9) ^ wraparith.Shl(b(bit^a^s1), 3)

	a = wraparith.Shl(a, 23) ^ wraparith.Shr(a, 3) ^ s1 ^ wraparith.Shl(b(a^bit^wraparith.Shr(s1, 3)), 7)
	a = wraparith.Shl(a, 17) ^ wraparith.Shr(a, 7) ^ wraparith.Shl(b(a^wraparith.Shr(s1, 3)), 5)
	a = wraparith.Shl(a, 13) ^ wraparith.Shr(a, 5) ^ wraparith.Shl(b(wraparith.Shr(a, 5)^s1), 1)
	a = wraparith.Shl(a, 11) ^ wraparith.Shr(a, 1) ^ wraparith.Shl(b(bit^a^s1), 7)

	s1 = wraparith.Shl(s1, 5) ^ wraparith.Shr(s1, 3) ^ a ^ wraparith.Shl(b(wraparith.Shr(a, 7)^wraparith.Shr(s1, 3)), 6)
	s1 = wraparith.Shl(s1, 8) ^ wraparith.Shr(s1, 6) ^ wraparith.Shl(b(s1^bit), 11)
	s1 = wraparith.Shl(s1, 11) ^ wraparith.Shr(s1, 11) ^ wraparith.Shl(b(a^wraparith.Shr(s1, 11)), 5)
	s1 = wraparith.Shl(s1, 7) ^ wraparith.Shr(s1, 5) ^ wraparith.Shl(b(bit^wraparith.Shr(a, 7)^a^s1), 17)

	s2 = wraparith.Shl(s2, 3) ^ wraparith.Shr(s2, 17) ^ s1 ^ wraparith.Shl(b(a^wraparith.Shr(s2, 5)^bit), 13)
	s2 = wraparith.Shl(s2, 6) ^ wraparith.Shr(s2, 13) ^ wraparith.Shl(b(s2), 11)
	s2 = wraparith.Shl(s2, 11) ^ wraparith.Shr(s2, 11) ^ wraparith.Shl(b(a^s1^wraparith.Shr(s2, 11)), 23)
	s2 = wraparith.Shl(s2, 4) ^ wraparith.Shr(s2, 23) ^ wraparith.Shl(b(bit^wraparith.Shr(a, 8)^a^wraparith.Shr(s2, 10)), 1)

	s1 = wraparith.Shl(s2, 3) ^ wraparith.Shr(s2, 1) ^ h[index] ^ bit
	a = wraparith.Shl(a, 9) ^ wraparith.Shr(a, 7) ^ wraparith.Shr(s1, 1) ^ wraparith.Shl(b(wraparith.Shr(s2, 1)^h[index]), 5)

	// (s1, s2, s3) = (s3, s1, s2); a is carried through unrotated.
	return a, s3, s1, s2
}
