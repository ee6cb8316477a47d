//go:build windows

package region

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapAnon commits size bytes with VirtualAlloc. Pages are zero-filled and
// backed on first touch, like an anonymous mmap.
func mapAnon(size int) ([]byte, func([]byte) error, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, err
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	return data, func([]byte) error {
		// MEM_RELEASE requires size 0 and frees the whole reservation.
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}, nil
}
