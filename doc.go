// Package earlyalloc implements a double-ended bump allocator for the early
// boot window, before the general heap and page allocators are running.
//
// # Overview
//
// An Arena owns one contiguous region and serves two kinds of requests from
// it: byte allocations for early data structures, bumped forward from the
// start, and page allocations for page tables and frame bookkeeping, bumped
// backward from the end. There is no fixed boundary between the two; the
// region is full when the cursors meet.
//
//	[ bytes-used | available | pages-used ]
//	|            | -->   <-- |            |
//	start       bPos       pPos          end
//
// # Basic Usage
//
//	a, err := earlyalloc.New(earlyalloc.WithPageSize(4096))
//	if err != nil {
//	    return err
//	}
//	a.Init(regionStart, regionSize) // region reported by the boot memory map
//
//	// Byte allocations
//	p, err := a.Alloc(earlyalloc.MustLayout(64, 8))
//	q, err := earlyalloc.AllocFor[bootInfo](a)
//
//	// Page allocations (two pages, 4 KiB aligned)
//	base, err := a.AllocPages(2, 12)
//
// # Freeing
//
// Byte allocations are reference counted, not tracked. Dealloc only
// decrements the outstanding count; the whole byte region is reclaimed when
// the count reaches zero. Byte allocations are therefore released as a
// cohort. Calling Dealloc with nothing outstanding panics.
//
// Pages are a permanent reservation. DeallocPages is a no-op and the page
// cursor only ever moves down.
//
// # Errors
//
// Allocation failures are *AllocError values that unwrap to one of:
//
//   - ErrInvalidParam: the request's address arithmetic is not
//     representable (byte cursor overflow, page cursor underflow, bad
//     alignment)
//   - ErrNoMemory: the byte and page regions would collide
//
// Note that exhausting the page region down to address zero is reported as
// ErrInvalidParam, because the page cursor would underflow.
//
// # Capabilities
//
// The arena is exposed to later allocator layers through three interfaces:
// BaseAllocator (lifecycle), ByteAllocator and PageAllocator. The boot
// sequence can swap the arena for another implementation without changing
// call sites.
//
// # Thread Safety
//
// Arena is not thread-safe and does no locking. When more than one context
// must allocate, wrap it in a SafeArena:
//
//	shared := earlyalloc.NewSafeArena(a)
//	p, err := shared.Alloc(layout)
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Pages in use: %d of %d\n", m.UsedPages, m.TotalPages)
package earlyalloc
