package paging

import (
	"testing"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestStatisticsTracker(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		st := NewStatisticsTracker()
		snap := st.Snapshot()
		assert.Equal(t, uint64(0), snap.Total())
		assert.Equal(t, 0.0, snap.HitRate, "no division by zero")
		assert.Equal(t, Summarize(nil), snap)
	})

	t.Run("IncrementalMatchesSummary", func(t *testing.T) {
		st := NewStatisticsTracker()
		records := []AccessRecord{
			{Seq: 1, Page: "A", Outcome: util.OutcomeFault, Frame: 0},
			{Seq: 2, Page: "A", Outcome: util.OutcomeHit, Frame: 0},
			{Seq: 3, Page: "B", Outcome: util.OutcomeFault, Frame: 0, Evicted: "A"},
			{Seq: 4, Page: "B", Outcome: util.OutcomeHit, Frame: 0},
		}
		for _, rec := range records {
			st.Record(rec)
		}

		snap := st.Snapshot()
		assert.Equal(t, uint64(2), snap.Hits)
		assert.Equal(t, uint64(2), snap.Faults)
		assert.Equal(t, uint64(1), snap.Evictions)
		assert.InDelta(t, 0.5, snap.HitRate, 1e-9)
		assert.Equal(t, 4, st.Len())
		assert.Equal(t, Summarize(records), snap)
	})

	t.Run("SnapshotIsCopy", func(t *testing.T) {
		st := NewStatisticsTracker()
		st.Record(AccessRecord{Seq: 1, Page: "A", Outcome: util.OutcomeFault})
		snap := st.Snapshot()
		snap.History[0].Page = "Z"
		assert.Equal(t, util.PageID("A"), st.Snapshot().History[0].Page, "caller cannot rewrite history")
	})
}

func TestAccessRecordString(t *testing.T) {
	assert.Equal(t, "#1 Fault(A) frame=0", AccessRecord{Seq: 1, Page: "A", Outcome: util.OutcomeFault}.String())
	assert.Equal(t, "#7 Fault(C) frame=2 evicted=B",
		AccessRecord{Seq: 7, Page: "C", Outcome: util.OutcomeFault, Frame: 2, Evicted: "B"}.String())
	assert.Equal(t, "#2 Hit(A) frame=1", AccessRecord{Seq: 2, Page: "A", Outcome: util.OutcomeHit, Frame: 1}.String())
}
