package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

// OptimalReplacer evicts the resident page whose next reference lies furthest in the future
// (Belady). It needs the reference string up front through SetFuture; without it a capacity
// fault fails with util.ErrPolicyNotImplemented.
type OptimalReplacer struct {
	frames    []util.PageID // page per frame, "" when not tracked
	pageToIdx map[util.PageID]int
	trace     []util.PageID
	pos       int // trace index of the access being served
	hasTrace  bool
	poolSize  int
}

func (opt *OptimalReplacer) Init(size int) {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	opt.frames = make([]util.PageID, size)
	opt.poolSize = size
	opt.ResetBuffer()
}

func (opt *OptimalReplacer) Algorithm() util.Algorithm {
	return util.AlgorithmOptimal
}

// SetFuture installs the references still to come; trace[0] is the next access.
func (opt *OptimalReplacer) SetFuture(trace []util.PageID) {
	opt.trace = make([]util.PageID, len(trace))
	copy(opt.trace, trace)
	opt.pos = 0
	opt.hasTrace = true
}

// HasFuture reports whether the next access is covered by a known trace
func (opt *OptimalReplacer) HasFuture() bool {
	return opt.hasTrace && opt.pos < len(opt.trace)
}

func (opt *OptimalReplacer) OnLoad(id util.PageID, frameIdx int) error {
	if frameIdx >= opt.poolSize || frameIdx < 0 {
		return fmt.Errorf("[Optimal] load %q: %w: %d", id, util.ErrOutBoundOfFrame, frameIdx)
	}
	if opt.frames[frameIdx] != "" {
		return fmt.Errorf("[Optimal] load %q: frame %d already tracks %q", id, frameIdx, opt.frames[frameIdx])
	}
	if _, exist := opt.pageToIdx[id]; exist {
		return fmt.Errorf("[Optimal] load %q: %w", id, util.ErrPageAlreadyTracked)
	}

	opt.frames[frameIdx] = id
	opt.pageToIdx[id] = frameIdx
	opt.advance(id)
	return nil
}

func (opt *OptimalReplacer) OnHit(id util.PageID) error {
	if _, exist := opt.pageToIdx[id]; !exist {
		return fmt.Errorf("[Optimal] hit %q: %w", id, util.ErrPageNotFound)
	}
	opt.advance(id)
	return nil
}

func (opt *OptimalReplacer) Victim(loading util.PageID) (util.PageID, int, error) {
	if !opt.HasFuture() || opt.trace[opt.pos] != loading {
		return "", -1, fmt.Errorf("[Optimal] no known future references at %q: %w", loading, util.ErrPolicyNotImplemented)
	}
	if len(opt.pageToIdx) == 0 {
		return "", -1, fmt.Errorf("[Evict Optimal] %w", util.ErrNoEvictableFrame)
	}

	// Walk forward until every resident page has been seen once; the last one seen is
	// referenced furthest away.
	pending := make(map[util.PageID]struct{}, len(opt.pageToIdx))
	for id := range opt.pageToIdx {
		pending[id] = struct{}{}
	}
	var last util.PageID
	for _, id := range opt.trace[opt.pos+1:] {
		if _, ok := pending[id]; !ok {
			continue
		}
		delete(pending, id)
		last = id
		if len(pending) == 0 {
			break
		}
	}

	victim := last
	if len(pending) > 0 {
		// never referenced again: lowest frame index wins
		for frameIdx := range opt.poolSize {
			if _, ok := pending[opt.frames[frameIdx]]; ok && opt.frames[frameIdx] != "" {
				victim = opt.frames[frameIdx]
				break
			}
		}
	}

	frameIdx := opt.pageToIdx[victim]
	opt.frames[frameIdx] = ""
	delete(opt.pageToIdx, victim)
	return victim, frameIdx, nil
}

// Resident lists pages in frame order.
func (opt *OptimalReplacer) Resident() []util.PageID {
	out := make([]util.PageID, 0, len(opt.pageToIdx))
	for _, id := range opt.frames {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

func (opt *OptimalReplacer) Size() int {
	return len(opt.pageToIdx)
}

func (opt *OptimalReplacer) ResetBuffer() {
	for i := range opt.frames {
		opt.frames[i] = ""
	}
	opt.pageToIdx = make(map[util.PageID]int, opt.poolSize)
	opt.trace = nil
	opt.pos = 0
	opt.hasTrace = false
}

// advance consumes the trace when id is the expected reference and drops it otherwise.
func (opt *OptimalReplacer) advance(id util.PageID) {
	if !opt.hasTrace {
		return
	}
	if opt.pos < len(opt.trace) && opt.trace[opt.pos] == id {
		opt.pos++
		return
	}
	opt.trace = nil
	opt.pos = 0
	opt.hasTrace = false
}
