package earlyalloc

import "math/bits"

// AllocPages reserves numPages pages below the page cursor, with the base
// aligned down to 1<<alignPow2, and returns the base address. Pages are
// never given back.
//
// Running the page cursor below zero is reported as ErrInvalidParam, not
// ErrNoMemory; only a collision with the byte region is ErrNoMemory.
func (a *Arena) AllocPages(numPages, alignPow2 int) (uintptr, error) {
	if numPages < 0 || alignPow2 < 0 || alignPow2 >= bits.UintSize {
		return 0, a.fail(&AllocError{Op: opAllocPages, Pages: numPages, Err: ErrInvalidParam})
	}
	align := uintptr(1) << alignPow2

	hi, lo := bits.Mul(uint(numPages), uint(a.pageSz()))
	if hi != 0 {
		return 0, a.fail(&AllocError{Op: opAllocPages, Pages: numPages, Align: align, Err: ErrInvalidParam})
	}
	size := uintptr(lo)

	if size > a.pPos {
		return 0, a.fail(&AllocError{Op: opAllocPages, Size: size, Pages: numPages, Align: align, Err: ErrInvalidParam})
	}
	newPPos := alignDown(a.pPos-size, align)

	if newPPos < a.bPos {
		return 0, a.fail(&AllocError{Op: opAllocPages, Size: size, Pages: numPages, Align: align, Err: ErrNoMemory})
	}

	a.pPos = newPPos
	return a.pPos, nil
}

// DeallocPages does nothing. Early pages live until the arena is superseded.
func (a *Arena) DeallocPages(addr uintptr, numPages int) {}
