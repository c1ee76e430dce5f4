package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

type listDesc struct {
	page    util.PageID
	nextIdx int
	prevIdx int
}

// ReplacerShared is a doubly linked list threaded through frame indexes, shared by the
// queue-ordered policies (FIFO and LRU). Head is evicted first, tail is the newest entry.
type ReplacerShared struct {
	nodes     []*listDesc         // Indexed by frame, nil when not tracked
	pageToIdx map[util.PageID]int // Map PageID to frame index
	head      int                 // Head of list (evict first)
	tail      int                 // Tail of list (most recent)
	poolSize  int                 // Total frames
}

// NewReplacerShared initializes the shared replacer state.
func NewReplacerShared(size int) *ReplacerShared {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	rs := &ReplacerShared{
		nodes:    make([]*listDesc, size),
		poolSize: size,
	}
	rs.reset()
	return rs
}

func (rs *ReplacerShared) addToTail(frameIdx int, id util.PageID) error {
	if frameIdx >= rs.poolSize || frameIdx < 0 {
		return fmt.Errorf("add %q: %w: %d", id, util.ErrOutBoundOfFrame, frameIdx)
	}
	if rs.nodes[frameIdx] != nil {
		return fmt.Errorf("add %q: frame %d already tracks %q", id, frameIdx, rs.nodes[frameIdx].page)
	}
	if _, exist := rs.pageToIdx[id]; exist {
		return fmt.Errorf("add %q: %w", id, util.ErrPageAlreadyTracked)
	}

	tmp := rs.tail
	rs.tail = frameIdx
	rs.nodes[frameIdx] = &listDesc{
		page:    id,
		prevIdx: tmp,
		nextIdx: -1,
	}
	if tmp != -1 {
		rs.nodes[tmp].nextIdx = frameIdx
	}
	if rs.head == -1 {
		rs.head = frameIdx
	}
	rs.pageToIdx[id] = frameIdx

	return nil
}

func (rs *ReplacerShared) removeByIndex(frameIdx int) error {
	if frameIdx >= rs.poolSize || frameIdx < 0 {
		return fmt.Errorf("remove: %w: %d", util.ErrOutBoundOfFrame, frameIdx)
	}
	node := rs.nodes[frameIdx]
	if rs.head == -1 || node == nil {
		return fmt.Errorf("invalid list state for frame %d", frameIdx)
	}
	prev := node.prevIdx
	next := node.nextIdx
	isHead := prev == -1
	isTail := next == -1

	switch {
	case isHead && isTail:
		// Only one node in the list
		rs.head = -1
		rs.tail = -1
	case isHead && !isTail:
		// Removing head, next becomes new head
		rs.head = next
		rs.nodes[next].prevIdx = -1
	case !isHead && isTail:
		// Removing tail, prev becomes new tail
		rs.tail = prev
		rs.nodes[prev].nextIdx = -1
	case !isHead && !isTail:
		// Removing middle node, connect prev and next
		rs.nodes[prev].nextIdx = next
		rs.nodes[next].prevIdx = prev
	}

	delete(rs.pageToIdx, node.page)
	rs.nodes[frameIdx] = nil
	return nil
}

func (rs *ReplacerShared) moveToTail(frameIdx int) error {
	if frameIdx == rs.tail {
		return nil
	}
	if frameIdx >= rs.poolSize || frameIdx < 0 || rs.nodes[frameIdx] == nil {
		return fmt.Errorf("move: invalid list state for frame %d", frameIdx)
	}
	id := rs.nodes[frameIdx].page
	if err := rs.removeByIndex(frameIdx); err != nil {
		return err
	}
	return rs.addToTail(frameIdx, id)
}

// popHead unlinks the oldest entry.
func (rs *ReplacerShared) popHead() (util.PageID, int, error) {
	if rs.head == -1 {
		return "", -1, util.ErrNoEvictableFrame
	}
	frameIdx := rs.head
	id := rs.nodes[frameIdx].page
	if err := rs.removeByIndex(frameIdx); err != nil {
		return "", -1, err
	}
	return id, frameIdx, nil
}

func (rs *ReplacerShared) frameOf(id util.PageID) (int, error) {
	frameIdx, exist := rs.pageToIdx[id]
	if !exist {
		return -1, fmt.Errorf("%q: %w", id, util.ErrPageNotFound)
	}
	return frameIdx, nil
}

// order walks the list from head to tail.
func (rs *ReplacerShared) order() []util.PageID {
	out := make([]util.PageID, 0, len(rs.pageToIdx))
	for cur := rs.head; cur != -1; cur = rs.nodes[cur].nextIdx {
		out = append(out, rs.nodes[cur].page)
	}
	return out
}

func (rs *ReplacerShared) Size() int {
	return len(rs.pageToIdx)
}

func (rs *ReplacerShared) reset() {
	for i := range rs.nodes {
		rs.nodes[i] = nil
	}
	rs.pageToIdx = make(map[util.PageID]int, rs.poolSize)
	rs.head = -1
	rs.tail = -1
}
