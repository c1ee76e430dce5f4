package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

// FramePool holds the fixed set of physical frames and the page occupying each one.
// Empty frames sit on a free list kept in ascending index order.
type FramePool struct {
	frames   []util.PageID // occupant per frame, "" when empty
	nextFree []int         // Free list for allocation
	freeHead int           // Head of free list (lowest empty frame)
	poolSize int           // Total frames
	used     int
}

func NewFramePool(size int) *FramePool {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	fp := FramePool{
		frames:   make([]util.PageID, size),
		nextFree: make([]int, size),
		poolSize: size,
	}
	fp.ResetBuffer()

	return &fp
}

// FindFree returns the lowest-indexed empty frame, or -1 when the pool is full.
func (fp *FramePool) FindFree() int {
	return fp.freeHead
}

// Place loads id into an empty frame. Placing into an occupied frame is a bookkeeping bug.
func (fp *FramePool) Place(frameIdx int, id util.PageID) {
	fp.checkBound("Place", frameIdx)
	if fp.frames[frameIdx] != "" {
		panic(fmt.Sprintf("[pool] [Place] frame %d already holds %q", frameIdx, fp.frames[frameIdx]))
	}
	if !fp.unlinkFree(frameIdx) {
		panic(fmt.Sprintf("[pool] [Place] frame %d is empty but not on the free list", frameIdx))
	}

	fp.frames[frameIdx] = id
	fp.used++
}

// Evict empties frameIdx and returns the page that occupied it.
func (fp *FramePool) Evict(frameIdx int) util.PageID {
	fp.checkBound("Evict", frameIdx)
	id := fp.frames[frameIdx]
	if id == "" {
		panic(fmt.Sprintf("[pool] [Evict] frame %d is already empty", frameIdx))
	}

	fp.frames[frameIdx] = ""
	fp.used--
	fp.returnFrameToFree(frameIdx)
	return id
}

func (fp *FramePool) Occupant(frameIdx int) (util.PageID, bool) {
	if frameIdx >= fp.poolSize || frameIdx < 0 {
		return "", false
	}
	id := fp.frames[frameIdx]
	return id, id != ""
}

// Occupants copies the frame slots; "" marks an empty frame.
func (fp *FramePool) Occupants() []util.PageID {
	out := make([]util.PageID, fp.poolSize)
	copy(out, fp.frames)
	return out
}

func (fp *FramePool) Size() int {
	return fp.poolSize
}

func (fp *FramePool) Used() int {
	return fp.used
}

func (fp *FramePool) ResetBuffer() {
	for i := range fp.poolSize {
		fp.frames[i] = ""
		fp.nextFree[i] = i + 1
	}
	fp.nextFree[fp.poolSize-1] = -1
	fp.freeHead = 0
	fp.used = 0
}

// ===================== HELPER FUNCTION =====================
func (fp *FramePool) checkBound(op string, frameIdx int) {
	if frameIdx >= fp.poolSize || frameIdx < 0 {
		panic(fmt.Sprintf("[pool] [%s] frame index out of bound: %d", op, frameIdx))
	}
}

func (fp *FramePool) allocFromFree() int {
	if fp.freeHead == -1 {
		return -1
	}

	freeIdx := fp.freeHead
	fp.freeHead = fp.nextFree[freeIdx]
	fp.nextFree[freeIdx] = -1

	return freeIdx
}

// unlinkFree removes frameIdx from the free list wherever it sits.
func (fp *FramePool) unlinkFree(frameIdx int) bool {
	if fp.freeHead == frameIdx {
		fp.allocFromFree()
		return true
	}

	prev := fp.freeHead
	for prev != -1 {
		next := fp.nextFree[prev]
		if next == frameIdx {
			fp.nextFree[prev] = fp.nextFree[frameIdx]
			fp.nextFree[frameIdx] = -1
			return true
		}
		prev = next
	}
	return false
}

// returnFrameToFree puts frameIdx back keeping the list ascending.
func (fp *FramePool) returnFrameToFree(frameIdx int) {
	if fp.freeHead == -1 || frameIdx < fp.freeHead {
		fp.nextFree[frameIdx] = fp.freeHead
		fp.freeHead = frameIdx
		return
	}

	prev := fp.freeHead
	for fp.nextFree[prev] != -1 && fp.nextFree[prev] < frameIdx {
		prev = fp.nextFree[prev]
	}
	fp.nextFree[frameIdx] = fp.nextFree[prev]
	fp.nextFree[prev] = frameIdx
}
