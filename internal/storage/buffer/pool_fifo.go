package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

// FIFOReplacer evicts pages in arrival order. Hits never reorder the queue.
type FIFOReplacer struct {
	*ReplacerShared
}

func (fr *FIFOReplacer) Init(size int, replacerShared *ReplacerShared) {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	if replacerShared == nil || replacerShared.poolSize != size {
		panic(fmt.Sprintf("[FIFO] shared state does not match pool size %d", size))
	}

	fr.ReplacerShared = replacerShared
}

func (fr *FIFOReplacer) Algorithm() util.Algorithm {
	return util.AlgorithmFIFO
}

func (fr *FIFOReplacer) OnLoad(id util.PageID, frameIdx int) error {
	return fr.addToTail(frameIdx, id)
}

func (fr *FIFOReplacer) OnHit(id util.PageID) error {
	if _, err := fr.frameOf(id); err != nil {
		return fmt.Errorf("[FIFO] hit: %w", err)
	}
	return nil
}

func (fr *FIFOReplacer) Victim(_ util.PageID) (util.PageID, int, error) {
	id, frameIdx, err := fr.popHead()
	if err != nil {
		return "", -1, fmt.Errorf("[Evict FIFO] %w", err)
	}
	return id, frameIdx, nil
}

// Resident lists pages in arrival order, oldest first.
func (fr *FIFOReplacer) Resident() []util.PageID {
	return fr.order()
}

func (fr *FIFOReplacer) ResetBuffer() {
	fr.reset()
}
