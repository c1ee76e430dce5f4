package buffer

import (
	"testing"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestReplacerSharedList(t *testing.T) {
	rs := NewReplacerShared(5)

	t.Run("AddToTail_Err", func(t *testing.T) {
		rs.reset()
		assert.ErrorIs(t, rs.addToTail(-1, "A"), util.ErrOutBoundOfFrame, "negative idx")
		assert.ErrorIs(t, rs.addToTail(5, "A"), util.ErrOutBoundOfFrame, "idx too large")

		assert.NoError(t, rs.addToTail(0, "A"))
		assert.Error(t, rs.addToTail(0, "B"), "frame already tracked")
		assert.ErrorIs(t, rs.addToTail(1, "A"), util.ErrPageAlreadyTracked, "page already tracked")
	})

	t.Run("AddToTail_NoErr", func(t *testing.T) {
		rs.reset()

		assert.NoError(t, rs.addToTail(0, "A"))
		assert.Equal(t, 0, rs.head, "[0] head")
		assert.Equal(t, 0, rs.tail, "[0] tail")
		assert.Equal(t, -1, rs.nodes[0].nextIdx, "[0] next -1")
		assert.Equal(t, -1, rs.nodes[0].prevIdx, "[0] prev -1")

		assert.NoError(t, rs.addToTail(1, "B"))
		assert.Equal(t, 0, rs.head, "[1] head")
		assert.Equal(t, 1, rs.tail, "[1] tail")
		assert.Equal(t, 1, rs.nodes[0].nextIdx, "next[0]")
		assert.Equal(t, 0, rs.nodes[1].prevIdx, "prev[1]")
		assert.Equal(t, 2, rs.Size(), "two tracked")
	})

	t.Run("RemoveByIndex", func(t *testing.T) {
		rs.reset()
		assert.Error(t, rs.removeByIndex(0), "remove from empty list")

		// Setup list: 0 ↔ 1 ↔ 2
		assert.NoError(t, rs.addToTail(0, "A"))
		assert.NoError(t, rs.addToTail(1, "B"))
		assert.NoError(t, rs.addToTail(2, "C"))

		// Remove middle node (1): 0 ↔ 2
		assert.NoError(t, rs.removeByIndex(1), "remove middle")
		assert.Equal(t, 0, rs.head, "head after remove middle")
		assert.Equal(t, 2, rs.tail, "tail after remove middle")
		assert.Equal(t, 2, rs.nodes[0].nextIdx, "next[0]")
		assert.Equal(t, 0, rs.nodes[2].prevIdx, "prev[2]")
		assert.Nil(t, rs.nodes[1], "frame 1 untracked")
		assert.NotContains(t, rs.pageToIdx, util.PageID("B"))

		// Remove head (0): just 2
		assert.NoError(t, rs.removeByIndex(0), "remove head")
		assert.Equal(t, 2, rs.head, "head after remove head")
		assert.Equal(t, 2, rs.tail, "tail after remove head")
		assert.Equal(t, -1, rs.nodes[2].nextIdx, "next[2] at single frame")
		assert.Equal(t, -1, rs.nodes[2].prevIdx, "prev[2] at single frame")

		assert.NoError(t, rs.removeByIndex(2), "remove last")
		assert.Equal(t, -1, rs.head, "empty head")
		assert.Equal(t, -1, rs.tail, "empty tail")
	})

	t.Run("MoveToTail_Head", func(t *testing.T) {
		rs.reset()

		// Setup: 0 ↔ 1 ↔ 2
		assert.NoError(t, rs.addToTail(0, "A"))
		assert.NoError(t, rs.addToTail(1, "B"))
		assert.NoError(t, rs.addToTail(2, "C"))

		// Move head (0) to tail: 1 ↔ 2 ↔ 0
		assert.NoError(t, rs.moveToTail(0), "move head to tail")
		assert.Equal(t, 1, rs.head, "new head is 1")
		assert.Equal(t, 0, rs.tail, "new tail is 0")
		assert.Equal(t, []util.PageID{"B", "C", "A"}, rs.order())
		assert.Equal(t, 0, rs.pageToIdx["A"], "A keeps its frame")
	})

	t.Run("MoveToTail_AlreadyTail", func(t *testing.T) {
		rs.reset()
		assert.NoError(t, rs.addToTail(0, "A"))
		assert.NoError(t, rs.addToTail(1, "B"))

		assert.NoError(t, rs.moveToTail(1), "move tail to tail")
		assert.Equal(t, []util.PageID{"A", "B"}, rs.order(), "order unchanged")
	})

	t.Run("MoveToTail_Errors", func(t *testing.T) {
		rs.reset()
		assert.NoError(t, rs.addToTail(0, "A"))
		assert.Error(t, rs.moveToTail(3), "move non-existent node")
		assert.Error(t, rs.moveToTail(-2), "negative index")
	})

	t.Run("PopHead", func(t *testing.T) {
		rs.reset()
		_, _, err := rs.popHead()
		assert.ErrorIs(t, err, util.ErrNoEvictableFrame, "empty list")

		assert.NoError(t, rs.addToTail(3, "A"))
		assert.NoError(t, rs.addToTail(1, "B"))
		id, frameIdx, err := rs.popHead()
		assert.NoError(t, err)
		assert.Equal(t, util.PageID("A"), id, "oldest entry")
		assert.Equal(t, 3, frameIdx, "its frame")
		assert.Equal(t, []util.PageID{"B"}, rs.order())
	})

	t.Run("FrameOf", func(t *testing.T) {
		rs.reset()
		assert.NoError(t, rs.addToTail(4, "A"))
		frameIdx, err := rs.frameOf("A")
		assert.NoError(t, err)
		assert.Equal(t, 4, frameIdx)
		_, err = rs.frameOf("Z")
		assert.ErrorIs(t, err, util.ErrPageNotFound)
	})
}
