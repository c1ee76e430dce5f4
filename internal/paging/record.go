package paging

import (
	"fmt"
	"time"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"github.com/google/uuid"
)

// AccessRecord is the immutable result of one accepted access.
type AccessRecord struct {
	Seq     uint64
	Page    util.PageID
	Outcome util.Outcome
	Frame   int         // frame holding Page after the access
	Evicted util.PageID // victim of a capacity fault, "" otherwise
}

func (r AccessRecord) String() string {
	s := fmt.Sprintf("#%d %s(%s) frame=%d", r.Seq, r.Outcome, r.Page, r.Frame)
	if r.Evicted != "" {
		s += fmt.Sprintf(" evicted=%s", r.Evicted)
	}
	return s
}

// ProcessHandle describes the process an engine is currently simulating.
type ProcessHandle struct {
	ID        uuid.UUID
	Number    int
	Capacity  int
	Pages     []util.PageID
	Algorithm util.Algorithm
	StartedAt time.Time
}

type FrameSlot struct {
	Index    int
	Page     util.PageID
	Occupied bool
}

// PageMapping is one page table row. Frame is util.NoFrame while the page is on backing store.
type PageMapping struct {
	Page  util.PageID
	Frame int
}

func (m PageMapping) Resident() bool {
	return m.Frame != util.NoFrame
}

// State is a read-only snapshot for rendering.
type State struct {
	Active    bool
	Process   ProcessHandle
	Algorithm util.Algorithm
	Capacity  int
	Frames    []FrameSlot
	PageTable []PageMapping
	// Resident pages in replacement order, next victim first where the policy has one.
	Resident []util.PageID
}
