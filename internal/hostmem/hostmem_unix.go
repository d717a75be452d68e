//go:build linux || darwin || freebsd

package hostmem

import (
	"errors"

	"golang.org/x/sys/unix"
)

// reserve maps an anonymous private region. The kernel hands back zero-filled
// pages, so no explicit clearing is needed.
func reserve(size int) (*Region, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	release := func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return &Region{data: data, release: release}, nil
}
