package earlyalloc

// Alloc bumps the byte cursor and returns the aligned address of a block of
// layout.Size bytes.
//
// Errors (both *AllocError):
//   - ErrInvalidParam: alignment is not a power of two, or the end of the
//     block does not fit in the address space
//   - ErrNoMemory: the block would run into the page region
func (a *Arena) Alloc(layout Layout) (uintptr, error) {
	if !isPowerOfTwo(layout.Align) {
		return 0, a.fail(&AllocError{Op: opAlloc, Size: layout.Size, Align: layout.Align, Err: ErrInvalidParam})
	}

	aligned, ok := alignUp(a.bPos, layout.Align)
	if !ok {
		return 0, a.fail(&AllocError{Op: opAlloc, Size: layout.Size, Align: layout.Align, Err: ErrInvalidParam})
	}
	newBPos := aligned + layout.Size
	if newBPos < aligned {
		return 0, a.fail(&AllocError{Op: opAlloc, Size: layout.Size, Align: layout.Align, Err: ErrInvalidParam})
	}

	if newBPos > a.pPos {
		return 0, a.fail(&AllocError{Op: opAlloc, Size: layout.Size, Align: layout.Align, Err: ErrNoMemory})
	}

	a.bPos = newBPos
	a.count++
	return aligned, nil
}

// Dealloc releases one byte allocation. Extents are not tracked: the address
// and layout are ignored, and the whole byte region is reclaimed only when the
// last outstanding allocation is released.
//
// Dealloc panics when nothing is outstanding (a double free).
func (a *Arena) Dealloc(addr uintptr, layout Layout) {
	if a.count == 0 {
		panic("earlyalloc: dealloc with no outstanding allocations")
	}
	a.count--
	if a.count == 0 {
		a.bPos = a.start
	}
}
