package earlyalloc

import (
	"fmt"
	"log/slog"
)

// DefaultPageSize is the page granularity used when WithPageSize is not given (4 KiB).
const DefaultPageSize = 1 << 12

// Arena is a double-ended early allocator over the region [start, end).
// Bytes are handed out forward from start, pages backward from end:
//
//	[ bytes-used | available | pages-used ]
//	|            | -->   <-- |            |
//	start       bPos       pPos          end
//
// The zero value is an uninitialized arena with DefaultPageSize pages and
// logging discarded.
//
// Not goroutine-safe. Wrap it in a SafeArena once more than one context
// allocates from it.
type Arena struct {
	start uintptr
	end   uintptr
	bPos  uintptr // next free byte, grows up from start
	pPos  uintptr // lowest reserved page boundary, shrinks down from end
	count uintptr // outstanding byte allocations

	pageSize uintptr
	log      *slog.Logger
}

// New creates an uninitialized Arena. Call Init before allocating.
// Returns ErrInvalidPageSize if the configured page size is not a power of two.
func New(opts ...Option) (*Arena, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !isPowerOfTwo(o.pageSize) {
		return nil, fmt.Errorf("%w: got %#x", ErrInvalidPageSize, o.pageSize)
	}
	return &Arena{pageSize: o.pageSize, log: o.logger}, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(opts ...Option) *Arena {
	a, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Init hands the region [start, start+size) to the arena and resets both
// cursors and the outstanding count. Calling it again discards prior state.
//
// Init panics if the region wraps around the address space.
func (a *Arena) Init(start, size uintptr) {
	end := start + size
	if end < start {
		panic(fmt.Sprintf("earlyalloc: region [%s, +%s) overflows the address space", hex(start), hex(size)))
	}
	a.start = start
	a.end = end
	a.bPos = start
	a.pPos = end
	a.count = 0

	a.logger().Info("early allocator initialized",
		addrAttr("start", start),
		addrAttr("end", end),
		slog.Uint64("total_kb", uint64(size/1024)),
	)
}

// AddMemory is accepted for interface compatibility only. The early arena
// never grows; the call reports success and changes nothing.
func (a *Arena) AddMemory(start, size uintptr) error {
	return nil
}

func (a *Arena) fail(e *AllocError) error {
	a.logger().Debug("early allocation failed",
		slog.String("op", e.Op),
		addrAttr("size", e.Size),
		addrAttr("align", e.Align),
		addrAttr("b_pos", a.bPos),
		addrAttr("p_pos", a.pPos),
		slog.Any("error", e.Err),
	)
	return e
}

func (a *Arena) logger() *slog.Logger {
	if a.log == nil {
		return discardLogger()
	}
	return a.log
}

// pageSz returns the page size, defaulting for a zero-value Arena.
func (a *Arena) pageSz() uintptr {
	if a.pageSize == 0 {
		return DefaultPageSize
	}
	return a.pageSize
}

func hex(v uintptr) string {
	return fmt.Sprintf("%#x", v)
}
