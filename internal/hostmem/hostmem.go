// Package hostmem provides platform-specific helpers for reserving anonymous
// zero-filled memory regions from the host.
package hostmem

import (
	"fmt"
	"os"
)

// Region is a page-rounded span of zero-filled, read-write host memory.
type Region struct {
	data    []byte
	release func() error
}

// Bytes returns the reserved span. Its length is the page-rounded size.
func (r *Region) Bytes() []byte { return r.data }

// Size returns the length of the reserved span in bytes.
func (r *Region) Size() int { return len(r.data) }

// Release returns the region to the host. The span must not be touched
// afterwards. Releasing twice is a no-op.
func (r *Region) Release() error {
	if r.release == nil {
		return nil
	}
	rel := r.release
	r.release = nil
	r.data = nil
	return rel()
}

// PageSize returns the host page size used to round reservations.
func PageSize() int {
	return os.Getpagesize()
}

// Reserve obtains at least size bytes of zero-filled memory from the host,
// rounded up to a whole number of pages.
func Reserve(size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("hostmem: size must be positive (got %d)", size)
	}
	pagesize := PageSize()
	pad := size % pagesize
	pad = (pagesize - pad) % pagesize
	return reserve(size + pad)
}
