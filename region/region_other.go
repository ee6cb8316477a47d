//go:build !unix && !windows

package region

import "unsafe"

// pageAlign is the alignment an OS mapping would give us.
const pageAlign = 1 << 12

// mapAnon falls back to a heap buffer trimmed to a page boundary on targets
// with no anonymous mapping call in x/sys (js/wasm, wasip1, plan9). The Go heap does not move objects, and Region keeps the
// buffer reachable, so its addresses stay valid until Close.
func mapAnon(size int) ([]byte, func([]byte) error, error) {
	buf := make([]byte, size+pageAlign)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(unsafe.SliceData(buf))) % pageAlign); rem != 0 {
		off = pageAlign - rem
	}
	return buf[off : off+size : off+size], func([]byte) error { return nil }, nil
}
