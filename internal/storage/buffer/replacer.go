package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

// Replacer defines the contract for page replacement policies.
type Replacer interface {
	Algorithm() util.Algorithm
	// OnLoad starts tracking a page that was just placed in frameIdx.
	OnLoad(id util.PageID, frameIdx int) error
	// OnHit notes an access to a page that is already resident.
	OnHit(id util.PageID) error
	// Victim picks the resident page to evict so that loading can take its frame, and stops
	// tracking it. On error nothing changes.
	Victim(loading util.PageID) (util.PageID, int, error)
	// Resident lists tracked pages, next victim first when the policy keeps an order.
	Resident() []util.PageID
	Size() int
	ResetBuffer()
}

// Lookahead is implemented by policies that need the future reference string.
type Lookahead interface {
	SetFuture(trace []util.PageID)
}

// NewReplacer builds the policy named by alg for a pool of size frames.
func NewReplacer(alg util.Algorithm, size int, opts util.Options) (Replacer, error) {
	switch alg {
	case util.AlgorithmFIFO:
		r := &FIFOReplacer{}
		r.Init(size, NewReplacerShared(size))
		return r, nil
	case util.AlgorithmLRU:
		r := &LRUReplacer{}
		r.Init(size, NewReplacerShared(size))
		return r, nil
	case util.AlgorithmOptimal:
		r := &OptimalReplacer{}
		r.Init(size)
		return r, nil
	case util.AlgorithmClock:
		r := &ClockReplacer{}
		r.Init(size, opts.ClockMaxUsage)
		return r, nil
	}
	return nil, fmt.Errorf("%w: %q", util.ErrUnknownAlgorithm, alg)
}
