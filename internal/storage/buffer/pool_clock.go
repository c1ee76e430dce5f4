package buffer

import (
	"errors"
	"fmt"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

type ClockDesc struct {
	page       util.PageID
	usageCount int32
}

// ClockReplacer is a second-chance policy: the hand sweeps the frames, spending one unit of
// usage per visit, and evicts the first frame found at zero.
type ClockReplacer struct {
	frames        []*ClockDesc // Indexed by frame, nil when empty
	pageToIdx     map[util.PageID]int
	nextVictimIdx int // clock hand
	maxUsage      int32
	maxLoop       int
	poolSize      int
}

func (cr *ClockReplacer) Init(size int, maxUsage int) {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	if maxUsage <= 0 {
		maxUsage = 1
	}

	cr.frames = make([]*ClockDesc, size)
	cr.poolSize = size
	cr.maxUsage = int32(maxUsage)
	// every sweep lowers each usage count by one, so maxUsage+1 sweeps always find a victim
	cr.maxLoop = maxUsage + 1
	cr.ResetBuffer()
}

func (cr *ClockReplacer) Algorithm() util.Algorithm {
	return util.AlgorithmClock
}

func (cr *ClockReplacer) OnLoad(id util.PageID, frameIdx int) error {
	if frameIdx >= cr.poolSize || frameIdx < 0 {
		return fmt.Errorf("[Clock] load %q: %w: %d", id, util.ErrOutBoundOfFrame, frameIdx)
	}
	if cr.frames[frameIdx] != nil {
		return fmt.Errorf("[Clock] load %q: frame %d already tracks %q", id, frameIdx, cr.frames[frameIdx].page)
	}
	if _, exist := cr.pageToIdx[id]; exist {
		return fmt.Errorf("[Clock] load %q: %w", id, util.ErrPageAlreadyTracked)
	}

	cr.frames[frameIdx] = &ClockDesc{page: id, usageCount: 1}
	cr.pageToIdx[id] = frameIdx
	return nil
}

func (cr *ClockReplacer) OnHit(id util.PageID) error {
	frameIdx, exist := cr.pageToIdx[id]
	if !exist {
		return fmt.Errorf("[Clock] hit %q: %w", id, util.ErrPageNotFound)
	}

	node := cr.frames[frameIdx]
	if node.usageCount < cr.maxUsage {
		node.usageCount++
	}
	return nil
}

func (cr *ClockReplacer) Victim(_ util.PageID) (util.PageID, int, error) {
	for range cr.poolSize * cr.maxLoop {
		victimIdx := cr.nextVictimIdx
		cr.nextVictimIdx = (cr.nextVictimIdx + 1) % cr.poolSize

		desc := cr.frames[victimIdx]
		if desc == nil {
			continue
		}
		if desc.usageCount > 0 {
			desc.usageCount--
			continue
		}

		cr.frames[victimIdx] = nil
		delete(cr.pageToIdx, desc.page)
		return desc.page, victimIdx, nil
	}

	return "", -1, errors.Join(util.ErrNoEvictableFrame, errors.New("[Evict Clock] can not find the victim with maxLoop"))
}

// Resident lists pages in hand order, starting from the frame the hand points at.
func (cr *ClockReplacer) Resident() []util.PageID {
	out := make([]util.PageID, 0, len(cr.pageToIdx))
	for i := range cr.poolSize {
		if desc := cr.frames[(cr.nextVictimIdx+i)%cr.poolSize]; desc != nil {
			out = append(out, desc.page)
		}
	}
	return out
}

func (cr *ClockReplacer) Size() int {
	return len(cr.pageToIdx)
}

func (cr *ClockReplacer) ResetBuffer() {
	for i := range cr.frames {
		cr.frames[i] = nil
	}
	cr.pageToIdx = make(map[util.PageID]int, cr.poolSize)
	cr.nextVictimIdx = 0
}
