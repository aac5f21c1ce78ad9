// facade.go -- the public entry point: builds or loads a ByteMap and
// exposes a single Hash method over it.
package lxrhash

import (
	"fmt"
	"io"

	"github.com/pegnet/lxrhash/bytemap"
	"github.com/pegnet/lxrhash/internal/seedhash"
	"github.com/pegnet/lxrhash/tablecache"
)

// DefaultK, DefaultPasses and DefaultDigestSize match the reference
// implementation's defaults.
const (
	DefaultK          = 30
	DefaultPasses     = 5
	DefaultDigestSize = 32
)

// DefaultSeed is the reference implementation's default 8-byte seed.
var DefaultSeed = [8]byte{0xFA, 0xFA, 0xEC, 0xEC, 0xFA, 0xFA, 0xEC, 0xEC}

// DefaultSeedInt returns the big-endian uint64 interpretation of
// DefaultSeed.
func DefaultSeedInt() uint64 {
	return seedhash.SeedInt(DefaultSeed[:])
}

// Lxr owns a Configuration and the ByteMap it was built from. Hash
// methods on it borrow the ByteMap read-only; the ByteMap's lifetime
// dominates that of any one Hash call, so concurrent calls to Hash on
// the same *Lxr are safe.
type Lxr struct {
	K       uint8
	Passes  int
	Seed    []byte
	D       int
	SeedInt uint64

	Map *bytemap.Map

	// Verbose, when non-nil, receives progress messages while the
	// ByteMap is generated (table construction for K=30 can take
	// minutes); nil means silent.
	Verbose io.Writer
}

// New validates k, passes and d (seed may be any length), then resolves the ByteMap: a cache
// hit loads it straight from disk (mmap'd), a miss generates it in memory
// and writes it back to the cache. A cache-store failure is reported to
// Verbose (if set) but is not fatal -- the freshly generated Map is still
// usable. cacheDir overrides the cache directory; "" means the default,
// $HOME/.lxrhash.
func New(k uint8, passes int, seed []byte, d int, cacheDir string, verbose io.Writer) (*Lxr, error) {
	if k < bytemap.MinK || k > bytemap.MaxK {
		return nil, ErrBadK
	}
	if passes <= 0 {
		return nil, ErrBadPasses
	}
	if d <= 0 {
		return nil, ErrBadDigestSize
	}

	seedInt := seedhash.SeedInt(seed)

	key := tablecache.Key{Seed: seed, Passes: passes, K: k, CacheDir: cacheDir}

	m, err := tablecache.TryLoad(key)
	if err != nil {
		return nil, fmt.Errorf("lxrhash: cache lookup: %w", err)
	}

	if m == nil {
		logf(verbose, "lxrhash: table not cached, generating (k=%d, passes=%d)\n", k, passes)

		m, err = bytemap.Generate(seedInt, passes, k)
		if err != nil {
			return nil, err
		}

		if err := tablecache.Store(key, m); err != nil {
			logf(verbose, "lxrhash: warning: could not cache table: %s\n", err)
		}
	} else {
		logf(verbose, "lxrhash: loaded cached table (k=%d, passes=%d)\n", k, passes)
	}

	return &Lxr{
		K:       k,
		Passes:  passes,
		Seed:    seed,
		D:       d,
		SeedInt: seedInt,
		Map:     m,
		Verbose: verbose,
	}, nil
}

// Default builds an Lxr using the reference implementation's default
// parameters: K=30, passes=5, the default 8-byte seed, D=32.
func Default() (*Lxr, error) {
	return New(DefaultK, DefaultPasses, DefaultSeed[:], DefaultDigestSize, "", nil)
}

// Hash computes the D-byte digest of src.
func (l *Lxr) Hash(src []byte) []byte {
	return Hash(l.Map, l.SeedInt, l.D, src)
}

// Close releases any resources (e.g. an mmap'd ByteMap) held by l.
func (l *Lxr) Close() error {
	if l.Map == nil {
		return nil
	}
	return l.Map.Close()
}

func logf(w io.Writer, format string, args ...interface{}) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format, args...)
}
