package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bietkhonhungvandi212/pagesim/internal/paging"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 10, 0, 2, ' ', 0)
}

func renderState(w io.Writer, st paging.State) {
	if !st.Active {
		fmt.Fprintf(w, "No active process (algorithm %s). Use 'new' or 'start'.\n", st.Algorithm)
		return
	}
	fmt.Fprintf(w, "Process %d [%s] algorithm=%s frames=%d pages=%d\n",
		st.Process.Number, st.Process.ID, st.Algorithm, st.Capacity, len(st.PageTable))

	tw := newTable(w)
	fmt.Fprintln(tw, "FRAME\tPAGE")
	for _, f := range st.Frames {
		page := "-"
		if f.Occupied {
			page = string(f.Page)
		}
		fmt.Fprintf(tw, "%d\t%s\n", f.Index, page)
	}
	tw.Flush()

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "PAGE\tFRAME")
	for _, m := range st.PageTable {
		frame := "disk"
		if m.Resident() {
			frame = fmt.Sprint(m.Frame)
		}
		fmt.Fprintf(tw, "%s\t%s\n", m.Page, frame)
	}
	tw.Flush()

	resident := make([]string, len(st.Resident))
	for i, id := range st.Resident {
		resident[i] = string(id)
	}
	fmt.Fprintf(w, "\nReplacement order: [%s]\n", strings.Join(resident, " "))
}

func renderStats(w io.Writer, stats paging.Statistics, withHistory bool) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Accesses\t%d\n", stats.Total())
	fmt.Fprintf(tw, "Faults\t%d\n", stats.Faults)
	fmt.Fprintf(tw, "Hits\t%d\n", stats.Hits)
	fmt.Fprintf(tw, "Evictions\t%d\n", stats.Evictions)
	fmt.Fprintf(tw, "Hit rate\t%.2f%%\n", stats.HitRate*100)
	tw.Flush()

	if !withHistory || len(stats.History) == 0 {
		return
	}
	fmt.Fprintln(w)
	renderRecords(w, stats.History)
}

func renderRecords(w io.Writer, records []paging.AccessRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "SEQ\tPAGE\tOUTCOME\tFRAME\tEVICTED")
	for _, rec := range records {
		writeRecordRow(tw, rec)
	}
	tw.Flush()
}

func writeRecordRow(w io.Writer, rec paging.AccessRecord) {
	evicted := "-"
	if rec.Evicted != "" {
		evicted = string(rec.Evicted)
	}
	fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", rec.Seq, rec.Page, rec.Outcome, rec.Frame, evicted)
}
