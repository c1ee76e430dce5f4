package paging

import (
	"errors"
	"fmt"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

// Validate cross-checks the page table, the frame pool, the replacer and the statistics,
// recounting the whole history. It returns nil when no process is active.
func (e *Engine) Validate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validateLocked(true)
}

// validateLocked costs O(capacity + pages). recount adds an O(history) pass over the
// access records, so the per-access check leaves it off.
func (e *Engine) validateLocked(recount bool) error {
	p := e.proc
	if p == nil {
		return nil
	}
	var errs []error
	violation := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{util.ErrInvariantViolation}, args...)...))
	}

	capacity := p.handle.Capacity
	if n := p.table.ResidentCount(); n > capacity {
		violation("%d resident pages exceed capacity %d", n, capacity)
	}
	if n := p.pool.Used(); n != p.table.ResidentCount() {
		violation("%d occupied frames but %d resident pages", n, p.table.ResidentCount())
	}

	// every occupied frame is mapped back by its page
	for frameIdx, id := range p.pool.Occupants() {
		if id == "" {
			continue
		}
		mapped, err := p.table.Lookup(id)
		if err != nil {
			violation("frame %d holds undeclared page %q", frameIdx, id)
			continue
		}
		if mapped != frameIdx {
			violation("frame %d holds %q but the page table says %d", frameIdx, id, mapped)
		}
	}

	// every resident page owns the frame it points at
	resident := make(map[util.PageID]struct{}, capacity)
	for _, id := range p.table.Pages() {
		frameIdx, _ := p.table.Lookup(id)
		if frameIdx == util.NoFrame {
			continue
		}
		resident[id] = struct{}{}
		if frameIdx >= capacity {
			violation("page %q mapped to frame %d outside capacity %d", id, frameIdx, capacity)
			continue
		}
		if occupant, _ := p.pool.Occupant(frameIdx); occupant != id {
			violation("page %q mapped to frame %d which holds %q", id, frameIdx, occupant)
		}
	}

	tracked := p.replacer.Resident()
	if len(tracked) != p.replacer.Size() {
		violation("replacer lists %d pages but reports size %d", len(tracked), p.replacer.Size())
	}
	seen := make(map[util.PageID]struct{}, len(tracked))
	for _, id := range tracked {
		if _, dup := seen[id]; dup {
			violation("replacer tracks %q twice", id)
		}
		seen[id] = struct{}{}
		if _, ok := resident[id]; !ok {
			violation("replacer tracks non-resident page %q", id)
		}
	}
	if len(seen) != len(resident) {
		violation("replacer tracks %d pages, %d are resident", len(seen), len(resident))
	}

	st := p.stats
	if total := st.hits + st.faults; total != uint64(st.Len()) {
		violation("hits+faults=%d but history holds %d records", total, st.Len())
	}
	if uint64(st.Len()) != p.seq {
		violation("history holds %d records but %d accesses were accepted", st.Len(), p.seq)
	}
	if recount {
		if sum := Summarize(st.history); sum.Hits != st.hits || sum.Faults != st.faults || sum.Evictions != st.evictions {
			violation("counters %d/%d/%d disagree with history %d/%d/%d",
				st.hits, st.faults, st.evictions, sum.Hits, sum.Faults, sum.Evictions)
		}
	}

	return errors.Join(errs...)
}
