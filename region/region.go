// Package region maps anonymous memory to hand to an early arena, so the
// arena can be driven over real addresses outside a kernel.
package region

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

var (
	// ErrEmpty is returned by Map for a zero-sized request.
	ErrEmpty = errors.New("region: size must be non-zero")

	// ErrOutOfRange indicates an address range not contained in the mapping.
	ErrOutOfRange = errors.New("region: address range outside mapping")

	// ErrClosed indicates use of a region after Close.
	ErrClosed = errors.New("region: closed")
)

// Region is a page-aligned, read-write block of memory not managed by the
// Go heap. Its addresses are stable until Close.
type Region struct {
	data  []byte
	unmap func([]byte) error
}

// Map reserves size bytes of zeroed memory.
func Map(size uintptr) (*Region, error) {
	if size == 0 {
		return nil, ErrEmpty
	}
	if size > math.MaxInt {
		return nil, fmt.Errorf("region: size %#x too large", size)
	}
	data, unmap, err := mapAnon(int(size))
	if err != nil {
		return nil, fmt.Errorf("region: map %d bytes: %w", size, err)
	}
	return &Region{data: data, unmap: unmap}, nil
}

// Start returns the address of the first byte of the region.
func (r *Region) Start() uintptr {
	if r == nil || r.data == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(r.data)))
}

// Size returns the length of the region in bytes.
func (r *Region) Size() uintptr {
	if r == nil {
		return 0
	}
	return uintptr(len(r.data))
}

// End returns the address one past the last byte of the region.
func (r *Region) End() uintptr {
	return r.Start() + r.Size()
}

// Contains reports whether [addr, addr+n) lies inside the region.
func (r *Region) Contains(addr, n uintptr) bool {
	start, end := r.Start(), r.End()
	if r.data == nil || addr < start || addr > end {
		return false
	}
	return n <= end-addr
}

// Bytes returns the n bytes at addr as a slice of the mapping.
// The slice is capped at n, so appends never spill into neighbouring allocations.
func (r *Region) Bytes(addr, n uintptr) ([]byte, error) {
	if r.data == nil {
		return nil, ErrClosed
	}
	if !r.Contains(addr, n) {
		return nil, fmt.Errorf("%w: [%#x, +%#x) not in [%#x, %#x)", ErrOutOfRange, addr, n, r.Start(), r.End())
	}
	off := addr - r.Start()
	return r.data[off : off+n : off+n], nil
}

// Close releases the mapping. Calling Close more than once is a no-op.
func (r *Region) Close() error {
	if r == nil || r.data == nil {
		return nil
	}
	err := r.unmap(r.data)
	r.data = nil
	return err
}
