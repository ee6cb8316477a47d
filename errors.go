package earlyalloc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParam indicates that the address arithmetic of a request is not
	// representable: the byte cursor would overflow, the page cursor would
	// underflow, or the alignment is not a power of two.
	ErrInvalidParam = errors.New("earlyalloc: invalid parameter")

	// ErrNoMemory indicates that the byte and page cursors would collide.
	ErrNoMemory = errors.New("earlyalloc: no memory")

	// ErrInvalidPageSize is returned by New when the configured page size is
	// zero or not a power of two.
	ErrInvalidPageSize = errors.New("earlyalloc: page size must be a non-zero power of two")

	// ErrCorrupt is returned by Validate when a cursor invariant does not hold.
	ErrCorrupt = errors.New("earlyalloc: arena invariant violated")
)

// AllocError describes a failed byte or page allocation.
//
// It unwraps to ErrInvalidParam or ErrNoMemory, so callers normally match it
// with errors.Is.
type AllocError struct {
	Op    string  // "alloc" or "alloc_pages"
	Size  uintptr // requested bytes; zero when the page count overflowed
	Align uintptr
	Pages int // requested pages, alloc_pages only
	Err   error
}

func (e *AllocError) Error() string {
	if e.Op == opAllocPages {
		return fmt.Sprintf("%s(pages=%d, align=%#x): %v", e.Op, e.Pages, e.Align, e.Err)
	}
	return fmt.Sprintf("%s(size=%#x, align=%#x): %v", e.Op, e.Size, e.Align, e.Err)
}

func (e *AllocError) Unwrap() error { return e.Err }

const (
	opAlloc      = "alloc"
	opAllocPages = "alloc_pages"
)
