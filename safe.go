package earlyalloc

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// The Arena itself never locks; owners that promote it to shared use wrap it
// here and stop touching the bare Arena.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena wraps a. The caller must not use a directly afterwards.
func NewSafeArena(a *Arena) *SafeArena {
	return &SafeArena{a: a}
}

// Init thread-safely (re)initializes the wrapped arena.
func (s *SafeArena) Init(start, size uintptr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Init(start, size)
}

// AddMemory thread-safely forwards to Arena.AddMemory.
func (s *SafeArena) AddMemory(start, size uintptr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AddMemory(start, size)
}

// Alloc thread-safely allocates a byte block.
func (s *SafeArena) Alloc(layout Layout) (uintptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(layout)
}

// Dealloc thread-safely releases a byte block.
func (s *SafeArena) Dealloc(addr uintptr, layout Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Dealloc(addr, layout)
}

// AllocPages thread-safely reserves pages.
func (s *SafeArena) AllocPages(numPages, alignPow2 int) (uintptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocPages(numPages, alignPow2)
}

// DeallocPages is a no-op, as on Arena.
func (s *SafeArena) DeallocPages(addr uintptr, numPages int) {}

// PageSize returns the page granularity. It is fixed at construction.
func (s *SafeArena) PageSize() uintptr {
	return s.a.PageSize()
}

// TotalBytes thread-safely returns the size of the managed region.
func (s *SafeArena) TotalBytes() uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.TotalBytes()
}

// UsedBytes thread-safely returns the extent of the byte region.
func (s *SafeArena) UsedBytes() uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.UsedBytes()
}

// AvailableBytes thread-safely returns the gap between the cursors.
func (s *SafeArena) AvailableBytes() uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AvailableBytes()
}

// TotalPages thread-safely returns the number of whole pages in the region.
func (s *SafeArena) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.TotalPages()
}

// UsedPages thread-safely returns the number of reserved pages.
func (s *SafeArena) UsedPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.UsedPages()
}

// AvailablePages thread-safely returns how many whole pages fit in the gap.
func (s *SafeArena) AvailablePages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AvailablePages()
}

// Cursors thread-safely returns a snapshot of the bounds and cursors.
func (s *SafeArena) Cursors() Cursors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Cursors()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}

// Validate thread-safely checks the cursor invariants.
func (s *SafeArena) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Validate()
}
