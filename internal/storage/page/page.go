package page

import (
	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

// PageTable maps every declared page to its frame, or util.NoFrame when it is on backing store.
// Keys are fixed when the table is built.
type PageTable struct {
	order    []util.PageID       // declaration order, for rendering
	pageToFr map[util.PageID]int // frame index or util.NoFrame
	resident int
}

// NewPageTable declares ids as the pages of a process, all of them non-resident.
func NewPageTable(ids []util.PageID) (*PageTable, error) {
	pt := &PageTable{
		order:    make([]util.PageID, 0, len(ids)),
		pageToFr: make(map[util.PageID]int, len(ids)),
	}
	for _, id := range ids {
		if id == "" {
			return nil, util.NewPagingError(util.ErrTypeInvalidPage, id, util.ErrEmptyPageID)
		}
		if _, exist := pt.pageToFr[id]; exist {
			return nil, util.NewPagingError(util.ErrTypeInvalidPage, id, util.ErrDuplicatePage)
		}
		pt.pageToFr[id] = util.NoFrame
		pt.order = append(pt.order, id)
	}
	return pt, nil
}

// Contains reports whether id was declared for this process
func (pt *PageTable) Contains(id util.PageID) bool {
	_, exist := pt.pageToFr[id]
	return exist
}

// Lookup returns the frame holding id, or util.NoFrame.
func (pt *PageTable) Lookup(id util.PageID) (int, error) {
	frameIdx, exist := pt.pageToFr[id]
	if !exist {
		return util.NoFrame, util.NewPagingError(util.ErrTypeUnknownPage, id, util.ErrUnknownPage)
	}
	return frameIdx, nil
}

func (pt *PageTable) IsResident(id util.PageID) (bool, error) {
	frameIdx, err := pt.Lookup(id)
	if err != nil {
		return false, err
	}
	return frameIdx != util.NoFrame, nil
}

// Map records that id now lives in frameIdx. The caller owns the frame pool side.
func (pt *PageTable) Map(id util.PageID, frameIdx int) error {
	cur, exist := pt.pageToFr[id]
	if !exist {
		return util.NewPagingError(util.ErrTypeUnknownPage, id, util.ErrUnknownPage)
	}
	if frameIdx < 0 {
		return util.ErrOutBoundOfFrame
	}
	if cur == util.NoFrame {
		pt.resident++
	}
	pt.pageToFr[id] = frameIdx
	return nil
}

// Unmap sends id back to backing store
func (pt *PageTable) Unmap(id util.PageID) error {
	cur, exist := pt.pageToFr[id]
	if !exist {
		return util.NewPagingError(util.ErrTypeUnknownPage, id, util.ErrUnknownPage)
	}
	if cur != util.NoFrame {
		pt.resident--
	}
	pt.pageToFr[id] = util.NoFrame
	return nil
}

// Pages returns the declared pages in declaration order.
func (pt *PageTable) Pages() []util.PageID {
	out := make([]util.PageID, len(pt.order))
	copy(out, pt.order)
	return out
}

func (pt *PageTable) Len() int {
	return len(pt.order)
}

func (pt *PageTable) ResidentCount() int {
	return pt.resident
}
