package earlyalloc_test

import (
	"fmt"
	"testing"

	"github.com/pavanmanishd/earlyalloc"
)

// BenchmarkByteAllocations measures the bump path for common early structure sizes.
// The cohort is released every 1000 allocations, which resets the byte cursor.
func BenchmarkByteAllocations(b *testing.B) {
	sizes := []uintptr{8, 64, 256, 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Arena_%dB", size), func(b *testing.B) {
			a := earlyalloc.MustNew()
			a.Init(0, 1<<30)
			l := earlyalloc.MustLayout(size, 8)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := a.Alloc(l); err != nil {
					b.Fatal(err)
				}
				if i%1000 == 999 {
					for _i := 0; _i < 1000; _i++ {
						a.Dealloc(0, l)
					}
				}
			}
		})

		b.Run(fmt.Sprintf("Builtin_%dB", size), func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = make([]byte, size)
			}
		})
	}
}

// BenchmarkAlignments measures the cost of alignment padding on the byte cursor.
func BenchmarkAlignments(b *testing.B) {
	for _, align := range []uintptr{1, 8, 64, 4096} {
		b.Run(fmt.Sprintf("Align_%d", align), func(b *testing.B) {
			a := earlyalloc.MustNew()
			a.Init(0, 1<<30)
			l := earlyalloc.MustLayout(24, align)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := a.Alloc(l); err != nil {
					b.Fatal(err)
				}
				a.Dealloc(0, l)
			}
		})
	}
}

// BenchmarkPageAllocations measures page reservations from the top of the region.
func BenchmarkPageAllocations(b *testing.B) {
	for _, pages := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("Pages_%d", pages), func(b *testing.B) {
			a := earlyalloc.MustNew()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if i%64 == 0 {
					a.Init(0, uintptr(pages)*64*earlyalloc.DefaultPageSize)
				}
				if _, err := a.AllocPages(pages, 12); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
