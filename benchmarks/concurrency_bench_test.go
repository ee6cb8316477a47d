package earlyalloc_test

import (
	"testing"

	"github.com/pavanmanishd/earlyalloc"
)

// BenchmarkConcurrencyPatterns compares the bare arena with the locked wrapper.
func BenchmarkConcurrencyPatterns(b *testing.B) {
	l := earlyalloc.MustLayout(64, 8)

	b.Run("Arena_Sequential", func(b *testing.B) {
		a := earlyalloc.MustNew()
		a.Init(0, 1<<30)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			addr, err := a.Alloc(l)
			if err != nil {
				b.Fatal(err)
			}
			a.Dealloc(addr, l)
		}
	})

	b.Run("SafeArena_Sequential", func(b *testing.B) {
		a := earlyalloc.MustNew()
		a.Init(0, 1<<30)
		s := earlyalloc.NewSafeArena(a)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			addr, err := s.Alloc(l)
			if err != nil {
				b.Fatal(err)
			}
			s.Dealloc(addr, l)
		}
	})

	// The byte region only resets when every goroutine is between calls, so
	// exhaustion is possible here and is not treated as a failure.
	b.Run("SafeArena_Parallel", func(b *testing.B) {
		a := earlyalloc.MustNew()
		a.Init(0, 1<<30)
		s := earlyalloc.NewSafeArena(a)

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				addr, err := s.Alloc(l)
				if err == nil {
					s.Dealloc(addr, l)
				}
			}
		})
	})
}
