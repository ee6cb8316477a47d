package earlyalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestArena returns an arena with 4 KiB pages initialized over [start, start+size).
func newTestArena(t *testing.T, start, size uintptr, opts ...Option) *Arena {
	t.Helper()
	a, err := New(append([]Option{WithPageSize(0x1000)}, opts...)...)
	require.NoError(t, err)
	a.Init(start, size)
	return a
}

// requireInvariants checks the cursor invariants after an operation.
func requireInvariants(t *testing.T, a *Arena, msgAndArgs ...any) {
	t.Helper()
	require.NoError(t, a.Validate(), msgAndArgs...)
}
