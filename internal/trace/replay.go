package trace

import (
	"errors"
	"fmt"

	"github.com/pavanmanishd/earlyalloc"
)

// ErrFatal is wrapped when the allocator panics during replay, for example
// on a dealloc with nothing outstanding. Replay stops at that operation.
var ErrFatal = errors.New("trace: fatal allocator error")

// Target is what a script is replayed against. *earlyalloc.Arena and
// *earlyalloc.SafeArena both satisfy it.
type Target interface {
	earlyalloc.ByteAllocator
	earlyalloc.PageAllocator
	Cursors() earlyalloc.Cursors
}

// Step is the outcome of one operation.
type Step struct {
	Op      Op
	Addr    uintptr // valid when HasAddr
	HasAddr bool
	Err     error // recoverable allocation error, replay continues
	After   earlyalloc.Cursors
}

// Replay applies ops in order. Allocation failures are recorded in the
// step and replay continues; an allocator panic ends replay with ErrFatal,
// returning the steps completed before it.
func Replay(t Target, ops []Op) ([]Step, error) {
	steps := make([]Step, 0, len(ops))
	for _, op := range ops {
		st, err := apply(t, op)
		if err != nil {
			return steps, err
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func apply(t Target, op Op) (st Step, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: line %d: %s: %v", ErrFatal, op.Line, op, r)
		}
	}()

	st.Op = op
	switch op.Kind {
	case KindInit:
		t.Init(op.Args[0], op.Args[1])
	case KindAddMemory:
		st.Err = t.AddMemory(op.Args[0], op.Args[1])
	case KindAlloc:
		st.Addr, st.Err = t.Alloc(earlyalloc.Layout{Size: op.Args[0], Align: op.Args[1]})
		st.HasAddr = st.Err == nil
	case KindDealloc:
		t.Dealloc(op.Args[0], earlyalloc.Layout{Size: op.Args[1], Align: op.Args[2]})
	case KindAllocPages:
		st.Addr, st.Err = t.AllocPages(int(op.Args[0]), int(op.Args[1]))
		st.HasAddr = st.Err == nil
	case KindDeallocPages:
		t.DeallocPages(op.Args[0], int(op.Args[1]))
	default:
		return st, fmt.Errorf("%w: line %d: unknown operation %s", ErrSyntax, op.Line, op.Kind)
	}
	st.After = t.Cursors()
	return st, nil
}
