package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pavanmanishd/earlyalloc"
	"github.com/pavanmanishd/earlyalloc/internal/trace"
)

type stepJSON struct {
	Line        int    `json:"line"`
	Op          string `json:"op"`
	Addr        string `json:"addr,omitempty"`
	Error       string `json:"error,omitempty"`
	BytePos     string `json:"b_pos"`
	PagePos     string `json:"p_pos"`
	Outstanding int    `json:"count"`
}

type metricsJSON struct {
	TotalBytes     uint64  `json:"total_bytes"`
	UsedBytes      uint64  `json:"used_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	PageSize       uint64  `json:"page_size"`
	TotalPages     int     `json:"total_pages"`
	UsedPages      int     `json:"used_pages"`
	AvailablePages int     `json:"available_pages"`
	Outstanding    int     `json:"outstanding"`
	Utilization    float64 `json:"utilization"`
}

func newMetricsJSON(m earlyalloc.Metrics) metricsJSON {
	return metricsJSON{
		TotalBytes:     uint64(m.TotalBytes),
		UsedBytes:      uint64(m.UsedBytes),
		AvailableBytes: uint64(m.AvailableBytes),
		PageSize:       uint64(m.PageSize),
		TotalPages:     m.TotalPages,
		UsedPages:      m.UsedPages,
		AvailablePages: m.AvailablePages,
		Outstanding:    m.Outstanding,
		Utilization:    m.Utilization,
	}
}

type reportJSON struct {
	Steps   []stepJSON  `json:"steps"`
	Metrics metricsJSON `json:"metrics"`
	Fatal   string      `json:"fatal,omitempty"`
}

func toJSON(steps []trace.Step, m earlyalloc.Metrics, fatal error) reportJSON {
	rep := reportJSON{Steps: make([]stepJSON, 0, len(steps)), Metrics: newMetricsJSON(m)}
	for _, st := range steps {
		sj := stepJSON{
			Line:        st.Op.Line,
			Op:          st.Op.String(),
			BytePos:     fmt.Sprintf("%#x", st.After.BytePos),
			PagePos:     fmt.Sprintf("%#x", st.After.PagePos),
			Outstanding: st.After.Outstanding,
		}
		if st.HasAddr {
			sj.Addr = fmt.Sprintf("%#x", st.Addr)
		}
		if st.Err != nil {
			sj.Error = st.Err.Error()
		}
		rep.Steps = append(rep.Steps, sj)
	}
	if fatal != nil {
		rep.Fatal = fatal.Error()
	}
	return rep
}

func printSteps(w io.Writer, steps []trace.Step) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tOP\tRESULT\tB_POS\tP_POS\tCOUNT")
	for _, st := range steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%#x\t%#x\t%d\n",
			st.Op.Line, st.Op, result(st), st.After.BytePos, st.After.PagePos, st.After.Outstanding)
	}
	return tw.Flush()
}

func result(st trace.Step) string {
	switch {
	case st.Err != nil:
		return "error: " + st.Err.Error()
	case st.HasAddr:
		return fmt.Sprintf("%#x", st.Addr)
	default:
		return "ok"
	}
}

func printMetrics(w io.Writer, m earlyalloc.Metrics) {
	fmt.Fprintf(w, "bytes: used %d, available %d, total %d\n", m.UsedBytes, m.AvailableBytes, m.TotalBytes)
	fmt.Fprintf(w, "pages: used %d, available %d, total %d (page size %d)\n", m.UsedPages, m.AvailablePages, m.TotalPages, m.PageSize)
	fmt.Fprintf(w, "outstanding: %d, utilization: %.2f%%\n", m.Outstanding, m.Utilization*100)
}
