package earlyalloc

// BaseAllocator is the lifecycle capability: taking ownership of a region and
// (optionally) growing it.
type BaseAllocator interface {
	// Init hands the region [start, start+size) to the allocator.
	Init(start, size uintptr)

	// AddMemory adds the region [start, start+size) to the allocator.
	AddMemory(start, size uintptr) error
}

// ByteAllocator is the byte-granularity allocation capability.
type ByteAllocator interface {
	BaseAllocator

	// Alloc returns the address of a block satisfying layout.
	Alloc(layout Layout) (uintptr, error)

	// Dealloc releases a block previously returned by Alloc.
	Dealloc(addr uintptr, layout Layout)

	TotalBytes() uintptr
	UsedBytes() uintptr
	AvailableBytes() uintptr
}

// PageAllocator is the page-granularity allocation capability.
type PageAllocator interface {
	BaseAllocator

	// PageSize returns the allocation granularity in bytes.
	PageSize() uintptr

	// AllocPages returns the base address of numPages contiguous pages
	// aligned to 1<<alignPow2.
	AllocPages(numPages, alignPow2 int) (uintptr, error)

	// DeallocPages releases pages previously returned by AllocPages.
	DeallocPages(addr uintptr, numPages int)

	TotalPages() int
	UsedPages() int
	AvailablePages() int
}

// Compile-time interface checks
var (
	_ ByteAllocator = (*Arena)(nil)
	_ PageAllocator = (*Arena)(nil)
	_ ByteAllocator = (*SafeArena)(nil)
	_ PageAllocator = (*SafeArena)(nil)
)
