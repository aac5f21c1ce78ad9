// tablecache_test.go -- test suite for the file-backed ByteMap cache
package tablecache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pegnet/lxrhash/bytemap"
)

const testK = 10 // M = 1024, small enough for a fast round trip

func withTempHome(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
}

func TestStoreThenTryLoadHits(t *testing.T) {
	assert := newAsserter(t)
	withTempHome(t)

	m, err := bytemap.Generate(0xFAFAECECFAFAECEC, 2, testK)
	assert(err == nil, "generate: %s", err)

	key := Key{Seed: []byte{0xFA, 0xFA, 0xEC, 0xEC, 0xFA, 0xFA, 0xEC, 0xEC}, Passes: 2, K: testK}

	err = Store(key, m)
	assert(err == nil, "store: %s", err)

	loaded, err := TryLoad(key)
	assert(err == nil, "tryload: %s", err)
	assert(loaded != nil, "expected a cache hit")
	defer loaded.Close()

	for i := uint64(0); i < m.Len(); i++ {
		if m.Get(i) != loaded.Get(i) {
			t.Fatalf("entry %d differs: %d vs %d", i, m.Get(i), loaded.Get(i))
		}
	}
}

func TestTryLoadMissesWhenAbsent(t *testing.T) {
	assert := newAsserter(t)
	withTempHome(t)

	key := Key{Seed: []byte{1, 2, 3, 4, 5, 6, 7, 8}, Passes: 1, K: testK}

	m, err := TryLoad(key)
	assert(err == nil, "tryload: %s", err)
	assert(m == nil, "expected a miss for an absent file")
}

func TestTryLoadMissesOnWrongLength(t *testing.T) {
	assert := newAsserter(t)
	withTempHome(t)

	key := Key{Seed: []byte{9, 9, 9, 9, 9, 9, 9, 9}, Passes: 1, K: testK}

	dir, err := Dir(key)
	assert(err == nil, "dir: %s", err)

	path := filepath.Join(dir, key.Filename())
	err = os.WriteFile(path, []byte("too short"), 0600)
	assert(err == nil, "write: %s", err)

	m, err := TryLoad(key)
	assert(err == nil, "tryload: %s", err)
	assert(m == nil, "expected a miss for a wrong-length file")
}

func TestTryLoadMissesOnCorruptedSeal(t *testing.T) {
	assert := newAsserter(t)
	withTempHome(t)

	m, err := bytemap.Generate(42, 2, testK)
	assert(err == nil, "generate: %s", err)

	key := Key{Seed: []byte{2, 2, 2, 2, 2, 2, 2, 2}, Passes: 2, K: testK}
	assert(Store(key, m) == nil, "store failed")

	dir, err := Dir(key)
	assert(err == nil, "dir: %s", err)

	path := filepath.Join(dir, key.Filename())
	data, err := os.ReadFile(path)
	assert(err == nil, "read: %s", err)
	data[0] ^= 0xFF
	assert(os.WriteFile(path, data, 0600) == nil, "rewrite failed")

	loaded, err := TryLoad(key)
	assert(err == nil, "tryload: %s", err)
	assert(loaded == nil, "expected a miss once the data disagrees with the seal")
}
