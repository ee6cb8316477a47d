package earlyalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaMetrics(t *testing.T) {
	a := MustNew(WithPageSize(0x1000))

	// Uninitialized arena reports nothing.
	assert.Equal(t, Metrics{PageSize: 0x1000}, a.Metrics())

	a.Init(0, 0x4000)
	assert.Equal(t, Metrics{
		TotalBytes:     0x4000,
		AvailableBytes: 0x4000,
		PageSize:       0x1000,
		TotalPages:     4,
		AvailablePages: 4,
	}, a.Metrics())

	_, err := a.Alloc(MustLayout(0x100, 8))
	require.NoError(t, err)
	assert.Equal(t, uintptr(0x100), a.UsedBytes())
	assert.Equal(t, uintptr(0x3F00), a.AvailableBytes())
	assert.Equal(t, 3, a.AvailablePages())
	assert.Zero(t, a.UsedPages(), "byte allocations never count as pages")

	_, err = a.AllocPages(1, 12)
	require.NoError(t, err)

	m := a.Metrics()
	assert.Equal(t, uintptr(0x4000), m.TotalBytes)
	assert.Equal(t, uintptr(0x100), m.UsedBytes)
	assert.Equal(t, uintptr(0x2F00), m.AvailableBytes)
	assert.Equal(t, 4, m.TotalPages)
	assert.Equal(t, 1, m.UsedPages)
	assert.Equal(t, 2, m.AvailablePages)
	assert.Equal(t, 1, m.Outstanding)
	assert.InDelta(t, 0.265625, m.Utilization, 1e-9)
}

func TestArenaTotalPagesMatchesTotalBytes(t *testing.T) {
	for _, pages := range []uintptr{0, 1, 7, 512} {
		a := newTestArena(t, 0x100000, pages*0x1000)
		assert.Equal(t, a.TotalBytes(), uintptr(a.TotalPages())*a.PageSize())
	}

	a := newTestArena(t, 0, 0x1800)
	assert.Equal(t, 1, a.TotalPages(), "partial trailing page is not counted")
}

func TestArenaUtilization(t *testing.T) {
	a := MustNew()
	assert.Zero(t, a.Utilization(), "empty region")

	a = newTestArena(t, 0, 0x2000)
	_, err := a.AllocPages(2, 12)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a.Utilization(), 1e-9)
}

func TestCursorsString(t *testing.T) {
	a := newTestArena(t, 0, 0x4000)
	_, err := a.Alloc(MustLayout(0x100, 8))
	require.NoError(t, err)
	_, err = a.AllocPages(1, 12)
	require.NoError(t, err)

	assert.Equal(t, "[0x0 0x100|0x3000 0x4000) count=1", a.Cursors().String())
}

func TestArenaValidate(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(a *Arena)
		want    string
	}{
		{"byte cursor below start", func(a *Arena) { a.bPos = a.start - 1; a.count = 1 }, "start 0x1000 > b_pos 0xfff"},
		{"cursors crossed", func(a *Arena) { a.bPos = a.pPos + 1; a.count = 1 }, "b_pos 0x3001 > p_pos 0x3000"},
		{"page cursor past end", func(a *Arena) { a.pPos = a.end + 1 }, "p_pos 0x3001 > end 0x3000"},
		{"stale byte cursor", func(a *Arena) { a.bPos = a.start + 8 }, "no outstanding allocations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestArena(t, 0x1000, 0x2000)
			require.NoError(t, a.Validate())

			tt.corrupt(a)
			err := a.Validate()
			require.ErrorIs(t, err, ErrCorrupt)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
