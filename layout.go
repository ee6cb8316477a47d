package earlyalloc

import (
	"fmt"
	"unsafe"
)

// Layout is the size and alignment of a byte allocation.
// Align must be a power of two; Alloc rejects anything else with ErrInvalidParam.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout returns a Layout after checking that align is a power of two.
func NewLayout(size, align uintptr) (Layout, error) {
	if !isPowerOfTwo(align) {
		return Layout{}, fmt.Errorf("%w: alignment %#x is not a power of two", ErrInvalidParam, align)
	}
	return Layout{Size: size, Align: align}, nil
}

// MustLayout is like NewLayout but panics on an invalid alignment.
// Intended for constant layouts in boot code and tests.
func MustLayout(size, align uintptr) Layout {
	l, err := NewLayout(size, align)
	if err != nil {
		panic(err)
	}
	return l
}

// LayoutOf returns the Layout of a value of type T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{Size: unsafe.Sizeof(zero), Align: unsafe.Alignof(zero)}
}

// AllocFor reserves room for one T from a and returns its address.
func AllocFor[T any](a ByteAllocator) (uintptr, error) {
	return a.Alloc(LayoutOf[T]())
}

// AllocSliceFor reserves room for n contiguous values of type T.
// Returns ErrInvalidParam if n is negative or the total size overflows.
func AllocSliceFor[T any](a ByteAllocator, n int) (uintptr, error) {
	l := LayoutOf[T]()
	if n < 0 {
		return 0, &AllocError{Op: opAlloc, Size: l.Size, Align: l.Align, Err: ErrInvalidParam}
	}
	total := l.Size * uintptr(n)
	if l.Size != 0 && total/l.Size != uintptr(n) {
		return 0, &AllocError{Op: opAlloc, Size: l.Size, Align: l.Align, Err: ErrInvalidParam}
	}
	return a.Alloc(Layout{Size: total, Align: l.Align})
}

func isPowerOfTwo(x uintptr) bool {
	return x != 0 && x&(x-1) == 0
}

// alignUp rounds addr up to align. ok is false if the rounding overflows.
func alignUp(addr, align uintptr) (aligned uintptr, ok bool) {
	mask := align - 1
	sum := addr + mask
	if sum < addr {
		return 0, false
	}
	return sum &^ mask, true
}

func alignDown(addr, align uintptr) uintptr {
	return addr &^ (align - 1)
}
