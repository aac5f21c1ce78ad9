// digestcache.go -- an LRU/ARC front-cache over Lxr.Hash, for callers
// that re-hash near-identical inputs (e.g. a mining loop sweeping a
// nonce range over an otherwise-fixed block header).
//
// This has no counterpart in the reference implementation -- pylxr.py
// hashes once per call with no memoization -- but it's the idiomatic Go
// shape for this kind of workload, and the teacher's DBReader already
// wraps its own record lookups in exactly this cache (see
// opencoff/golang-lru's ARCCache usage in dbreader.go).
package digestcache

import (
	lru "github.com/opencoff/golang-lru"

	"github.com/pegnet/lxrhash"
	"github.com/pegnet/lxrhash/internal/seedhash"
)

// Cache wraps an *lxrhash.Lxr with an ARC cache keyed by seedhash.SeedInt
// of the input bytes: the big-endian value of an 8-byte input, a fast
// non-cryptographic hash of any other length.
type Cache struct {
	lxr   *lxrhash.Lxr
	cache *lru.ARCCache
}

// New creates a Cache over lxr that retains up to size recently hashed
// inputs. size <= 0 falls back to a default of 128, matching the
// teacher's NewDBReader default.
func New(lxr *lxrhash.Lxr, size int) (*Cache, error) {
	if size <= 0 {
		size = 128
	}

	arc, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}

	return &Cache{lxr: lxr, cache: arc}, nil
}

// Hash returns the digest of src, computing and caching it on a miss.
//
// The cache key is a 64-bit fold of src, not src itself -- two distinct
// inputs that collide under the fold would return the wrong cached
// digest. This tradeoff is acceptable for the mining workload this cache
// targets (nonce-mutated headers of a fixed, known layout) and is a
// non-goal to fix for arbitrary inputs; callers hashing adversarial or
// highly variable inputs should call the underlying *lxrhash.Lxr.Hash
// directly instead.
func (c *Cache) Hash(src []byte) []byte {
	key := seedhash.SeedInt(src)

	if v, ok := c.cache.Get(key); ok {
		return v.([]byte)
	}

	digest := c.lxr.Hash(src)
	c.cache.Add(key, digest)
	return digest
}

// Purge evicts every cached digest.
func (c *Cache) Purge() {
	c.cache.Purge()
}
