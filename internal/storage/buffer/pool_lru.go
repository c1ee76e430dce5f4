package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

// LRUReplacer evicts the resident page whose last load or hit lies furthest in the past.
type LRUReplacer struct {
	*ReplacerShared
}

func (lr *LRUReplacer) Init(size int, replacerShared *ReplacerShared) {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	if replacerShared == nil || replacerShared.poolSize != size {
		panic(fmt.Sprintf("[LRU] shared state does not match pool size %d", size))
	}

	lr.ReplacerShared = replacerShared
}

func (lr *LRUReplacer) Algorithm() util.Algorithm {
	return util.AlgorithmLRU
}

// OnLoad inserts the page at the most-recent end
func (lr *LRUReplacer) OnLoad(id util.PageID, frameIdx int) error {
	return lr.addToTail(frameIdx, id)
}

// OnHit refreshes the page to the most-recent end, keeping its frame
func (lr *LRUReplacer) OnHit(id util.PageID) error {
	frameIdx, err := lr.frameOf(id)
	if err != nil {
		return fmt.Errorf("[LRU] hit: %w", err)
	}
	return lr.moveToTail(frameIdx)
}

func (lr *LRUReplacer) Victim(_ util.PageID) (util.PageID, int, error) {
	id, frameIdx, err := lr.popHead()
	if err != nil {
		return "", -1, fmt.Errorf("[Evict LRU] %w", err)
	}
	return id, frameIdx, nil
}

// Resident lists pages least-recently-used first.
func (lr *LRUReplacer) Resident() []util.PageID {
	return lr.order()
}

func (lr *LRUReplacer) ResetBuffer() {
	lr.reset()
}
