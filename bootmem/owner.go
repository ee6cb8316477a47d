// Package bootmem owns the one early arena of a boot sequence.
//
// The boot code creates a single Owner, starts it with the region reported
// by the memory map, hands its byte and page capabilities to early
// subsystems, and retires it once the real allocators take over. Nothing in
// this package is reachable as package-level state; the Owner is passed
// explicitly.
package bootmem

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pavanmanishd/earlyalloc"
	"github.com/pavanmanishd/earlyalloc/region"
)

var (
	// ErrNotStarted is returned when capabilities are requested before Start.
	ErrNotStarted = errors.New("bootmem: early allocator not started")

	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("bootmem: early allocator already started")

	// ErrRetired is returned for any use of an Owner after Retire.
	ErrRetired = errors.New("bootmem: early allocator retired")
)

type state uint8

const (
	stateIdle state = iota
	stateActive
	stateRetired
)

// Config configures an Owner.
type Config struct {
	// PageSize is the page granularity. Zero means earlyalloc.DefaultPageSize.
	PageSize uintptr

	// Logger receives lifecycle records. Nil discards them.
	Logger *slog.Logger
}

// Owner holds the single early arena for the boot window.
//
// Owner is not goroutine-safe: it is driven by the boot sequence alone.
// After Promote, the capabilities it hands out are.
type Owner struct {
	arena  *earlyalloc.Arena
	shared *earlyalloc.SafeArena
	state  state
	log    *slog.Logger
}

// NewOwner creates an idle Owner.
func NewOwner(cfg Config) (*Owner, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := []earlyalloc.Option{earlyalloc.WithLogger(log)}
	if cfg.PageSize != 0 {
		opts = append(opts, earlyalloc.WithPageSize(cfg.PageSize))
	}
	a, err := earlyalloc.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("bootmem: %w", err)
	}
	return &Owner{arena: a, log: log}, nil
}

// Start initializes the arena over [start, start+size). It may be called once.
func (o *Owner) Start(start, size uintptr) error {
	switch o.state {
	case stateActive:
		return ErrAlreadyStarted
	case stateRetired:
		return ErrRetired
	}
	if start+size < start {
		return fmt.Errorf("bootmem: region [%#x, +%#x) overflows the address space", start, size)
	}
	o.arena.Init(start, size)
	o.state = stateActive
	return nil
}

// StartRegion starts the arena over a mapped region. A nil or closed region
// is rejected with region.ErrClosed.
func (o *Owner) StartRegion(r *region.Region) error {
	if r == nil || r.Size() == 0 {
		return fmt.Errorf("bootmem: %w", region.ErrClosed)
	}
	return o.Start(r.Start(), r.Size())
}

// AddMemory forwards a region extension to the arena, which ignores it.
func (o *Owner) AddMemory(start, size uintptr) error {
	if err := o.active(); err != nil {
		return err
	}
	if o.shared != nil {
		return o.shared.AddMemory(start, size)
	}
	return o.arena.AddMemory(start, size)
}

// Bytes returns the byte-allocation capability.
func (o *Owner) Bytes() (earlyalloc.ByteAllocator, error) {
	if err := o.active(); err != nil {
		return nil, err
	}
	if o.shared != nil {
		return o.shared, nil
	}
	return o.arena, nil
}

// Pages returns the page-allocation capability.
func (o *Owner) Pages() (earlyalloc.PageAllocator, error) {
	if err := o.active(); err != nil {
		return nil, err
	}
	if o.shared != nil {
		return o.shared, nil
	}
	return o.arena, nil
}

// Promote wraps the arena in a lock. Capabilities handed out afterwards are
// safe for concurrent use; ones handed out before must be dropped.
// Promoting twice is a no-op.
func (o *Owner) Promote() error {
	if err := o.active(); err != nil {
		return err
	}
	if o.shared == nil {
		o.shared = earlyalloc.NewSafeArena(o.arena)
		o.log.Info("early allocator promoted to shared use")
	}
	return nil
}

// Metrics returns current arena statistics.
func (o *Owner) Metrics() (earlyalloc.Metrics, error) {
	if err := o.active(); err != nil {
		return earlyalloc.Metrics{}, err
	}
	return o.inspect().Metrics(), nil
}

// Handoff describes the arena at retirement, for the allocator that
// supersedes it. Reserved pages in [Cursors.PagePos, Cursors.End) must be
// kept; [FreeStart, FreeEnd) may be reused.
type Handoff struct {
	Cursors   earlyalloc.Cursors
	Metrics   earlyalloc.Metrics
	FreeStart uintptr
	FreeEnd   uintptr
}

// Retire ends the boot window. The arena's invariants are checked; a
// violation is returned wrapped in earlyalloc.ErrCorrupt and the Owner stays
// active. On success every later call fails with ErrRetired.
func (o *Owner) Retire() (Handoff, error) {
	if err := o.active(); err != nil {
		return Handoff{}, err
	}
	in := o.inspect()
	if err := in.Validate(); err != nil {
		return Handoff{}, fmt.Errorf("bootmem: retire: %w", err)
	}
	cur, m := in.Cursors(), in.Metrics()

	h := Handoff{Cursors: cur, Metrics: m, FreeStart: cur.BytePos, FreeEnd: cur.PagePos}
	if cur.Outstanding > 0 {
		o.log.Warn("retiring early allocator with live byte allocations",
			slog.Int("outstanding", cur.Outstanding),
			slog.String("byte_region_end", fmt.Sprintf("%#x", cur.BytePos)),
		)
	}
	o.log.Info("early allocator retired",
		slog.String("free_start", fmt.Sprintf("%#x", h.FreeStart)),
		slog.String("free_end", fmt.Sprintf("%#x", h.FreeEnd)),
		slog.Int("used_pages", m.UsedPages),
		slog.Uint64("used_bytes", uint64(m.UsedBytes)),
	)

	o.state = stateRetired
	o.shared = nil
	return h, nil
}

type inspector interface {
	Validate() error
	Cursors() earlyalloc.Cursors
	Metrics() earlyalloc.Metrics
}

func (o *Owner) inspect() inspector {
	if o.shared != nil {
		return o.shared
	}
	return o.arena
}

func (o *Owner) active() error {
	switch o.state {
	case stateIdle:
		return ErrNotStarted
	case stateRetired:
		return ErrRetired
	}
	return nil
}
