// lxrhash_test.go -- test suite for the Hasher and the Lxr facade
package lxrhash

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/pegnet/lxrhash/bytemap"
)

const smallK = 12 // enough to exercise every phase without a slow generate

func smallLxr(t *testing.T) *Lxr {
	t.Helper()
	m, err := bytemap.Generate(DefaultSeedInt(), DefaultPasses, smallK)
	if err != nil {
		t.Fatalf("generate: %s", err)
	}
	return &Lxr{
		K:       smallK,
		Passes:  DefaultPasses,
		Seed:    DefaultSeed[:],
		D:       DefaultDigestSize,
		SeedInt: DefaultSeedInt(),
		Map:     m,
	}
}

func TestHashLengthInvariant(t *testing.T) {
	assert := newAsserter(t)
	lxr := smallLxr(t)

	for _, src := range [][]byte{nil, []byte(""), []byte("a"), []byte("pegnet")} {
		d := lxr.Hash(src)
		assert(len(d) == lxr.D, "digest length %d != %d for %q", len(d), lxr.D, src)
	}
}

func TestHashDeterministic(t *testing.T) {
	assert := newAsserter(t)
	lxr := smallLxr(t)

	a := lxr.Hash([]byte("determinism"))
	b := lxr.Hash([]byte("determinism"))
	assert(hex.EncodeToString(a) == hex.EncodeToString(b), "hash not deterministic: %x vs %x", a, b)
}

func TestHashEmptyInputIsWellDefined(t *testing.T) {
	assert := newAsserter(t)
	lxr := smallLxr(t)

	d := lxr.Hash(nil)
	assert(len(d) == lxr.D, "empty-input digest has wrong length")

	d2 := lxr.Hash([]byte{})
	assert(hex.EncodeToString(d) == hex.EncodeToString(d2), "nil and []byte{} should hash identically")
}

func TestHashDiffersForDifferentInputs(t *testing.T) {
	assert := newAsserter(t)
	lxr := smallLxr(t)

	a := lxr.Hash([]byte("foo"))
	b := lxr.Hash([]byte("bar"))
	assert(hex.EncodeToString(a) != hex.EncodeToString(b), "foo and bar hashed identically")
}

// TestCanonicalVectors checks bit-exact compatibility against the
// reference implementation's published digests at the canonical
// parameters (K=30, passes=5, default seed, D=32). Table generation at
// this size is the whole point of the algorithm (memory-hardness) and
// takes real wall-clock time, so this is skipped under -short.
func TestCanonicalVectors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping canonical K=30 vector check in -short mode")
	}

	t.Setenv("HOME", t.TempDir())

	assert := newAsserter(t)

	lxr, err := Default()
	assert(err == nil, "Default(): %s", err)
	defer lxr.Close()

	cases := []struct {
		input string
		want  string
	}{
		{"", "66afa4d58ff4b99ef77f7bc2dc7567a23ccb47edab1486fccc3e9556bc64e9cc"},
		{"foo", "7dda54f8d5efcd6928870bdc9ece900b320e897bce4814e9010cc08647c197ae"},
		{"bar", "fe2cb7f3cef5702a1cb4712434085afe1efdef1d2563291e4883cd2a3ea1e074"},
		{"pegnet", "cd45b08c0619d78e2a810c4e6462296ec51ae4fd0f73a54a154a97a54942297e"},
		{"abcde", "00e9ef8262f154b6aef3b4bb1a95644bbd651040df34c3d88dd696d519445989"},
		{strings.Repeat("0", 103), "e169f393b60ef4e74fa2b3f514451523911a3c9929c76b39bd46f448979e784f"},
		{"1" + strings.Repeat("0", 102), "da715b359c07e94c3db8e7ca0fb2786ffc1d40cae2d02d4d193da4c5f0b28e6c"},
	}

	for _, c := range cases {
		got := hex.EncodeToString(lxr.Hash([]byte(c.input)))
		assert(got == c.want, "hash(%q) = %s, want %s", c.input, got, c.want)
	}
}
