//go:build windows

package hostmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// reserve commits a zero-filled private region via VirtualAlloc.
func reserve(size int) (*Region, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	// Use unsafe.Pointer in a single expression to avoid linter warnings
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	release := func() error {
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}
	return &Region{data: data, release: release}, nil
}
