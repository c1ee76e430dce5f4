package paging

import (
	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

type Statistics struct {
	Faults    uint64
	Hits      uint64
	Evictions uint64
	HitRate   float64 // hits / (hits+faults), 0 before any access
	History   []AccessRecord
}

func (s Statistics) Total() uint64 {
	return s.Hits + s.Faults
}

// StatisticsTracker keeps counters incrementally next to the access history.
type StatisticsTracker struct {
	faults    uint64
	hits      uint64
	evictions uint64
	history   []AccessRecord
}

func NewStatisticsTracker() *StatisticsTracker {
	return &StatisticsTracker{}
}

func (st *StatisticsTracker) Record(rec AccessRecord) {
	switch rec.Outcome {
	case util.OutcomeHit:
		st.hits++
	case util.OutcomeFault:
		st.faults++
	}
	if rec.Evicted != "" {
		st.evictions++
	}
	st.history = append(st.history, rec)
}

func (st *StatisticsTracker) Snapshot() Statistics {
	history := make([]AccessRecord, len(st.history))
	copy(history, st.history)
	return Statistics{
		Faults:    st.faults,
		Hits:      st.hits,
		Evictions: st.evictions,
		HitRate:   hitRate(st.hits, st.faults),
		History:   history,
	}
}

func (st *StatisticsTracker) Len() int {
	return len(st.history)
}

// Summarize recomputes statistics from the history alone.
func Summarize(history []AccessRecord) Statistics {
	s := Statistics{History: make([]AccessRecord, len(history))}
	copy(s.History, history)
	for _, rec := range history {
		switch rec.Outcome {
		case util.OutcomeHit:
			s.Hits++
		case util.OutcomeFault:
			s.Faults++
		}
		if rec.Evicted != "" {
			s.Evictions++
		}
	}
	s.HitRate = hitRate(s.Hits, s.Faults)
	return s
}

func hitRate(hits, faults uint64) float64 {
	if hits+faults == 0 {
		return 0
	}
	return float64(hits) / float64(hits+faults)
}
