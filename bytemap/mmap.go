// mmap.go -- memory-map a previously generated byte-map straight from its
// cache file, instead of reading it onto the heap.
//
// For K=30 the table is 1 GiB; reading it fully defeats the point of
// caching it. mmap lets the OS page it in on demand and share it across
// processes, the same way dbreader.go mmaps the CHD offset table.
package bytemap

import (
	"fmt"
	"os"
	"syscall"
)

// mmapHandle abstracts the OS resource backing an mmap'd Map so Close can
// release it without the rest of the package caring about the syscall
// layer.
type mmapHandle interface {
	unmap() error
}

type unixMmap struct {
	region []byte
}

func (u *unixMmap) unmap() error {
	return syscall.Munmap(u.region)
}

// LoadMmap memory-maps the packed byte-map stored at path, read-only, and
// wraps it as a Map. The file must be exactly 1<<k bytes; any other length
// is a caller error (TableCache is expected to have already validated
// length and checksum before calling this).
func LoadMmap(path string, k uint8) (*Map, error) {
	want := int64(1) << k

	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	st, err := fd.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() != want {
		return nil, fmt.Errorf("bytemap: %s: expected %d bytes, got %d", path, want, st.Size())
	}

	region, err := syscall.Mmap(int(fd.Fd()), 0, int(want), syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("bytemap: %s: mmap failed: %w", path, err)
	}

	return &Map{
		k:    k,
		mask: uint64(want) - 1,
		data: region,
		mm:   &unixMmap{region: region},
	}, nil
}
