package earlyalloc

import "fmt"

// TotalBytes returns the size of the managed region.
func (a *Arena) TotalBytes() uintptr {
	return a.end - a.start
}

// UsedBytes returns the extent of the byte region, alignment padding included.
func (a *Arena) UsedBytes() uintptr {
	return a.bPos - a.start
}

// AvailableBytes returns the gap between the byte and page cursors.
func (a *Arena) AvailableBytes() uintptr {
	if a.pPos < a.bPos {
		return 0
	}
	return a.pPos - a.bPos
}

// PageSize returns the page-allocation granularity.
func (a *Arena) PageSize() uintptr {
	return a.pageSz()
}

// TotalPages returns the number of whole pages in the region.
func (a *Arena) TotalPages() int {
	return int(a.TotalBytes() / a.pageSz())
}

// UsedPages returns the number of pages between the page cursor and the end
// of the region, alignment padding included.
func (a *Arena) UsedPages() int {
	return int((a.end - a.pPos) / a.pageSz())
}

// AvailablePages returns how many whole pages fit in the available gap.
func (a *Arena) AvailablePages() int {
	return int(a.AvailableBytes() / a.pageSz())
}

// Outstanding returns the number of byte allocations not yet released.
func (a *Arena) Outstanding() int {
	return int(a.count)
}

// Utilization returns the reserved share of the region (0.0 to 1.0), counting
// both the byte region and the page region.
// Returns 0.0 for an empty region.
func (a *Arena) Utilization() float64 {
	total := a.TotalBytes()
	if total == 0 {
		return 0
	}
	reserved := a.UsedBytes() + (a.end - a.pPos)
	return float64(reserved) / float64(total)
}

// Cursors is a snapshot of the arena's bounds and cursors.
type Cursors struct {
	Start       uintptr
	End         uintptr
	BytePos     uintptr
	PagePos     uintptr
	Outstanding int
}

func (c Cursors) String() string {
	return fmt.Sprintf("[%s %s|%s %s) count=%d",
		hex(c.Start), hex(c.BytePos), hex(c.PagePos), hex(c.End), c.Outstanding)
}

// Cursors returns a snapshot of the arena's bounds and cursors.
func (a *Arena) Cursors() Cursors {
	return Cursors{
		Start:       a.start,
		End:         a.end,
		BytePos:     a.bPos,
		PagePos:     a.pPos,
		Outstanding: int(a.count),
	}
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		TotalBytes:     a.TotalBytes(),
		UsedBytes:      a.UsedBytes(),
		AvailableBytes: a.AvailableBytes(),
		PageSize:       a.pageSz(),
		TotalPages:     a.TotalPages(),
		UsedPages:      a.UsedPages(),
		AvailablePages: a.AvailablePages(),
		Outstanding:    a.Outstanding(),
		Utilization:    a.Utilization(),
	}
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	TotalBytes     uintptr // Size of the region
	UsedBytes      uintptr // Extent of the byte region
	AvailableBytes uintptr // Gap between the cursors
	PageSize       uintptr
	TotalPages     int
	UsedPages      int
	AvailablePages int
	Outstanding    int     // Live byte allocations
	Utilization    float64 // Reserved share of the region (0.0-1.0)
}

// Validate checks the cursor invariants and reports the first one violated,
// wrapped in ErrCorrupt.
func (a *Arena) Validate() error {
	switch {
	case a.start > a.bPos:
		return fmt.Errorf("%w: start %s > b_pos %s", ErrCorrupt, hex(a.start), hex(a.bPos))
	case a.bPos > a.pPos:
		return fmt.Errorf("%w: b_pos %s > p_pos %s", ErrCorrupt, hex(a.bPos), hex(a.pPos))
	case a.pPos > a.end:
		return fmt.Errorf("%w: p_pos %s > end %s", ErrCorrupt, hex(a.pPos), hex(a.end))
	case a.count == 0 && a.bPos != a.start:
		return fmt.Errorf("%w: no outstanding allocations but b_pos %s != start %s", ErrCorrupt, hex(a.bPos), hex(a.start))
	}
	return nil
}
