package trace

import (
	"math"
	"strings"

	"github.com/pavanmanishd/earlyalloc"
)

// Map draws the arena as a bar of width cells: '#' for the byte region,
// '.' for the free gap and '=' for the page region.
func Map(c earlyalloc.Cursors, width int) string {
	if width <= 0 {
		return "||"
	}
	total := c.End - c.Start
	if total == 0 {
		return "|" + strings.Repeat(" ", width) + "|"
	}

	byteCells := cells(c.BytePos-c.Start, total, width)
	pageCells := cells(c.End-c.PagePos, total, width)
	if byteCells+pageCells > width {
		pageCells = width - byteCells
	}

	var b strings.Builder
	b.Grow(width + 2)
	b.WriteByte('|')
	b.WriteString(strings.Repeat("#", byteCells))
	b.WriteString(strings.Repeat(".", width-byteCells-pageCells))
	b.WriteString(strings.Repeat("=", pageCells))
	b.WriteByte('|')
	return b.String()
}

// cells scales n out of total onto width cells. Any non-empty extent gets at
// least one cell.
func cells(n, total uintptr, width int) int {
	if n == 0 {
		return 0
	}
	c := int(math.Round(float64(n) / float64(total) * float64(width)))
	return max(c, 1)
}
