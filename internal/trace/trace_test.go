package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/earlyalloc"
)

const script = `
# comment line
init 0 0x2000
alloc 16 8        # trailing comment
PAGES 1 12
dealloc 0 16 8
freepages 0x1000 1
add 0x2000 0x1000
pages 1 12
pages 1 12
`

func TestParse(t *testing.T) {
	ops, err := ParseString(script)
	require.NoError(t, err)
	require.Len(t, ops, 8)

	assert.Equal(t, Op{Line: 3, Kind: KindInit, Args: []uintptr{0, 0x2000}}, ops[0])
	assert.Equal(t, Op{Line: 4, Kind: KindAlloc, Args: []uintptr{16, 8}}, ops[1])
	assert.Equal(t, KindAllocPages, ops[2].Kind, "operation names are case-insensitive")
	assert.Equal(t, Op{Line: 6, Kind: KindDealloc, Args: []uintptr{0, 16, 8}}, ops[3])
	assert.Equal(t, KindDeallocPages, ops[4].Kind)
	assert.Equal(t, KindAddMemory, ops[5].Kind)

	assert.Equal(t, "dealloc 0x0 0x10 0x8", ops[3].String())
	assert.Equal(t, "pages", KindAllocPages.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unknown op", "init 0 16\nfree 1\n", `line 2: unknown operation "free"`},
		{"missing argument", "alloc 16\n", "line 1: alloc takes 2 argument(s), got 1"},
		{"extra argument", "pages 1 12 3\n", "line 1: pages takes 2 argument(s), got 3"},
		{"bad number", "alloc sixteen 8\n", "line 1: argument 1"},
		{"negative number", "alloc -1 8\n", "line 1: argument 1"},
		{"page count too large", "pages 0xffffffffffffffff 12\n", "does not fit in an int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReplay(t *testing.T) {
	ops, err := ParseString(script)
	require.NoError(t, err)

	a := earlyalloc.MustNew(earlyalloc.WithPageSize(0x1000))
	steps, err := Replay(a, ops)
	require.NoError(t, err)
	require.Len(t, steps, len(ops))

	assert.Equal(t, earlyalloc.Cursors{End: 0x2000, PagePos: 0x2000}, steps[0].After)

	assert.True(t, steps[1].HasAddr)
	assert.Equal(t, uintptr(0), steps[1].Addr)
	assert.Equal(t, 1, steps[1].After.Outstanding)

	assert.Equal(t, uintptr(0x1000), steps[2].Addr)
	assert.Equal(t, uintptr(0), steps[3].After.BytePos)
	assert.Equal(t, steps[3].After, steps[4].After, "freepages changes nothing")
	assert.NoError(t, steps[5].Err)

	assert.Equal(t, uintptr(0), steps[6].Addr)
	assert.True(t, steps[6].HasAddr)

	assert.False(t, steps[7].HasAddr)
	assert.ErrorIs(t, steps[7].Err, earlyalloc.ErrInvalidParam)
}

func TestReplayStopsOnFatal(t *testing.T) {
	ops, err := ParseString("init 0 0x1000\nalloc 8 8\ndealloc 0 8 8\ndealloc 0 8 8\nalloc 8 8\n")
	require.NoError(t, err)

	steps, err := Replay(earlyalloc.MustNew(), ops)
	require.ErrorIs(t, err, ErrFatal)
	assert.Contains(t, err.Error(), "line 4")
	assert.Contains(t, err.Error(), "no outstanding allocations")
	assert.Len(t, steps, 3)
}

func TestReplaySafeArena(t *testing.T) {
	ops, err := ParseString("alloc 8 8\npages 1 12\n")
	require.NoError(t, err)

	a := earlyalloc.MustNew()
	a.Init(0, 0x4000)
	steps, err := Replay(earlyalloc.NewSafeArena(a), ops)
	require.NoError(t, err)
	assert.Equal(t, uintptr(0x3000), steps[1].Addr)
}

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		c    earlyalloc.Cursors
		want string
	}{
		{"uninitialized", earlyalloc.Cursors{}, "|        |"},
		{"empty", earlyalloc.Cursors{End: 0x800, PagePos: 0x800}, "|........|"},
		{"both regions", earlyalloc.Cursors{End: 0x800, BytePos: 0x200, PagePos: 0x600}, "|##....==|"},
		{"tiny byte region", earlyalloc.Cursors{End: 0x800, BytePos: 1, PagePos: 0x800}, "|#.......|"},
		{"full", earlyalloc.Cursors{End: 0x800, BytePos: 0x400, PagePos: 0x400}, "|####====|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Map(tt.c, 8))
		})
	}
	assert.Equal(t, "||", Map(earlyalloc.Cursors{}, 0))
}
