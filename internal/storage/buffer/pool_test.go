package buffer

import (
	"testing"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestNewFramePool(t *testing.T) {
	t.Run("ValidSize", func(t *testing.T) {
		size := 100
		fp := NewFramePool(size)
		assert.Equal(t, size, fp.Size(), "pool size")
		assert.Equal(t, size, len(fp.frames), "frames length")
		assert.Equal(t, size, len(fp.nextFree), "nextFree length")
		assert.Equal(t, 0, fp.freeHead, "freeHead")
		assert.Equal(t, 0, fp.Used(), "nothing used")

		// Free list: 0→1→...→size-1→-1
		idx := fp.freeHead
		for i := 0; i < size; i++ {
			assert.Equal(t, i, idx, "free list at %d", i)
			idx = fp.nextFree[idx]
		}
		assert.Equal(t, -1, idx, "free list end")
	})

	t.Run("ZeroSize", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic for size=0")
			}
		}()
		NewFramePool(0)
	})
}

func TestFramePoolPlaceEvict(t *testing.T) {
	fp := NewFramePool(4)

	t.Run("FillLowestFirst", func(t *testing.T) {
		fp.ResetBuffer()
		for i, id := range []util.PageID{"A", "B", "C", "D"} {
			free := fp.FindFree()
			assert.Equal(t, i, free, "lowest free frame")
			fp.Place(free, id)
		}
		assert.Equal(t, -1, fp.FindFree(), "pool full")
		assert.Equal(t, 4, fp.Used(), "all used")
		assert.Equal(t, []util.PageID{"A", "B", "C", "D"}, fp.Occupants())
	})

	t.Run("EvictReturnsFrameInOrder", func(t *testing.T) {
		fp.ResetBuffer()
		for i, id := range []util.PageID{"A", "B", "C", "D"} {
			fp.Place(i, id)
		}

		assert.Equal(t, util.PageID("C"), fp.Evict(2), "evict C")
		assert.Equal(t, util.PageID("A"), fp.Evict(0), "evict A")
		assert.Equal(t, 0, fp.FindFree(), "frame 0 is the lowest free")

		id, ok := fp.Occupant(2)
		assert.False(t, ok, "frame 2 empty")
		assert.Equal(t, util.PageID(""), id)

		// free list must be 0 → 2
		assert.Equal(t, 2, fp.nextFree[0], "0 points to 2")
		assert.Equal(t, -1, fp.nextFree[2], "2 is the end")

		fp.Place(2, "E")
		assert.Equal(t, 0, fp.FindFree(), "placing into 2 keeps 0 free")
		assert.Equal(t, -1, fp.nextFree[0], "free list holds only 0")
		fp.Place(0, "F")
		assert.Equal(t, -1, fp.FindFree(), "full again")
		assert.Equal(t, []util.PageID{"F", "B", "E", "D"}, fp.Occupants())
	})

	t.Run("ReturnToMiddleOfFreeList", func(t *testing.T) {
		fp.ResetBuffer()
		for i, id := range []util.PageID{"A", "B", "C", "D"} {
			fp.Place(i, id)
		}
		fp.Evict(3)
		fp.Evict(0)
		fp.Evict(2)

		idx := fp.freeHead
		var got []int
		for idx != -1 {
			got = append(got, idx)
			idx = fp.nextFree[idx]
		}
		assert.Equal(t, []int{0, 2, 3}, got, "ascending free list")
	})

	t.Run("PlaceOccupiedPanics", func(t *testing.T) {
		fp.ResetBuffer()
		fp.Place(0, "A")
		assert.Panics(t, func() { fp.Place(0, "B") }, "frame already holds A")
	})

	t.Run("EvictEmptyPanics", func(t *testing.T) {
		fp.ResetBuffer()
		assert.Panics(t, func() { fp.Evict(1) }, "frame 1 is empty")
	})

	t.Run("OutOfBound", func(t *testing.T) {
		fp.ResetBuffer()
		assert.Panics(t, func() { fp.Place(4, "A") }, "index too large")
		assert.Panics(t, func() { fp.Evict(-1) }, "negative index")
		_, ok := fp.Occupant(9)
		assert.False(t, ok, "out of bound occupant")
	})
}
