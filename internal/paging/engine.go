package paging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bietkhonhungvandi212/pagesim/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/pagesim/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine owns at most one simulated process and applies page accesses to it.
// All methods are safe for concurrent use; each operation is atomic with respect to the others.
type Engine struct {
	mu        sync.Mutex
	opts      util.Options
	algorithm util.Algorithm
	logger    *zap.Logger
	metrics   *Metrics
	now       func() time.Time

	proc      *process
	procCount int
}

type process struct {
	handle   ProcessHandle
	table    *page.PageTable
	pool     *buffer.FramePool
	replacer buffer.Replacer
	stats    *StatisticsTracker
	seq      uint64
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithClock overrides the time source used for ProcessHandle.StartedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine validates opts and returns an idle engine selecting opts.Algorithm.
func NewEngine(opts util.Options, options ...Option) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine options: %w", err)
	}
	e := &Engine{
		opts:      opts,
		algorithm: opts.Algorithm,
		logger:    zap.NewNop(),
		metrics:   NoopMetrics(),
		now:       time.Now,
	}
	for _, opt := range options {
		opt(e)
	}
	return e, nil
}

// Options returns the validated options the engine was built with.
func (e *Engine) Options() util.Options {
	return e.opts
}

func (e *Engine) Algorithm() util.Algorithm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.algorithm
}

// StartProcess discards any current process and starts a new one owning capacity frames
// and the given pages, all non-resident. Ids go through page.NormalizePageID, so
// surrounding whitespace is dropped; empty and duplicate ids are rejected.
// On error the engine is unchanged.
func (e *Engine) StartProcess(capacity int, pageIDs []string) (ProcessHandle, error) {
	ids, err := page.ParsePageIDs(pageIDs)
	if err != nil {
		return ProcessHandle{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startLocked(capacity, ids)
}

// SpawnProcess starts a process whose pages are named after the process number.
func (e *Engine) SpawnProcess(capacity int, numPages int) (ProcessHandle, error) {
	if numPages < 0 {
		return ProcessHandle{}, fmt.Errorf("%d pages: %w", numPages, util.ErrNegativePageCount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startLocked(capacity, page.GeneratePageIDs(e.procCount+1, numPages))
}

func (e *Engine) startLocked(capacity int, ids []util.PageID) (ProcessHandle, error) {
	if capacity <= 0 {
		return ProcessHandle{}, util.NewPagingError(util.ErrTypeInvalidCapacity, "",
			fmt.Errorf("capacity %d: %w", capacity, util.ErrInvalidCapacity))
	}
	table, err := page.NewPageTable(ids)
	if err != nil {
		return ProcessHandle{}, err
	}
	replacer, err := buffer.NewReplacer(e.algorithm, capacity, e.opts)
	if err != nil {
		return ProcessHandle{}, err
	}

	e.discardLocked()
	e.procCount++
	e.proc = &process{
		handle: ProcessHandle{
			ID:        uuid.New(),
			Number:    e.procCount,
			Capacity:  capacity,
			Pages:     table.Pages(),
			Algorithm: e.algorithm,
			StartedAt: e.now(),
		},
		table:    table,
		pool:     buffer.NewFramePool(capacity),
		replacer: replacer,
		stats:    NewStatisticsTracker(),
	}
	e.metrics.recordStart(context.Background(), e.algorithm)
	e.logger.Info("process started",
		zap.Stringer("process_id", e.proc.handle.ID),
		zap.Int("number", e.procCount),
		zap.Int("capacity", capacity),
		zap.Int("pages", len(ids)),
		zap.String("algorithm", string(e.algorithm)),
	)
	return e.copyHandle(), nil
}

// SetAlgorithm selects the policy for the next process. It is rejected while a process is active.
func (e *Engine) SetAlgorithm(name string) error {
	alg, err := util.ParseAlgorithm(name)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.proc != nil {
		return fmt.Errorf("set algorithm %s: %w", alg, util.ErrProcessActive)
	}
	e.algorithm = alg
	e.logger.Info("algorithm selected", zap.String("algorithm", string(alg)))
	return nil
}

// Access references one page of the active process. pageID is normalized the same way
// StartProcess normalized the declared pages.
func (e *Engine) Access(pageID string) (AccessRecord, error) {
	id := page.NormalizePageID(pageID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.proc == nil {
		return AccessRecord{}, util.NewPagingError(util.ErrTypeNoActiveProcess, id, util.ErrNoActiveProcess)
	}
	return e.accessLocked(id)
}

// RunSequence applies ids in order as one atomic operation. Every id is checked before the
// first access, so an unknown page rejects the whole sequence without side effects.
func (e *Engine) RunSequence(pageIDs []string) ([]AccessRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.proc == nil {
		return nil, util.NewPagingError(util.ErrTypeNoActiveProcess, "", util.ErrNoActiveProcess)
	}
	ids, err := e.resolveLocked(pageIDs)
	if err != nil {
		return nil, err
	}
	e.installFutureLocked(ids)

	records := make([]AccessRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := e.accessLocked(id)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Lookahead gives policies that need it the upcoming reference string.
// Policies that do not look ahead ignore it.
func (e *Engine) Lookahead(pageIDs []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.proc == nil {
		return util.NewPagingError(util.ErrTypeNoActiveProcess, "", util.ErrNoActiveProcess)
	}
	ids, err := e.resolveLocked(pageIDs)
	if err != nil {
		return err
	}
	e.installFutureLocked(ids)
	return nil
}

func (e *Engine) resolveLocked(pageIDs []string) ([]util.PageID, error) {
	ids := make([]util.PageID, len(pageIDs))
	for i, raw := range pageIDs {
		id := page.NormalizePageID(raw)
		if !e.proc.table.Contains(id) {
			return nil, util.NewPagingError(util.ErrTypeUnknownPage, id, util.ErrUnknownPage)
		}
		ids[i] = id
	}
	return ids, nil
}

func (e *Engine) installFutureLocked(ids []util.PageID) {
	if la, ok := e.proc.replacer.(buffer.Lookahead); ok {
		la.SetFuture(ids)
		e.logger.Debug("lookahead installed", zap.Int("references", len(ids)))
	}
}

func (e *Engine) accessLocked(id util.PageID) (AccessRecord, error) {
	p := e.proc
	frameIdx, err := p.table.Lookup(id)
	if err != nil {
		e.logger.Warn("access rejected", zap.String("page", string(id)), zap.Error(err))
		return AccessRecord{}, err
	}

	rec := AccessRecord{Seq: p.seq + 1, Page: id, Frame: frameIdx}
	if frameIdx != util.NoFrame {
		rec.Outcome = util.OutcomeHit
		if err := p.replacer.OnHit(id); err != nil {
			e.corrupted("OnHit", err)
		}
	} else {
		rec.Outcome = util.OutcomeFault
		target := p.pool.FindFree()
		if target == -1 {
			victim, victimIdx, err := p.replacer.Victim(id)
			if err != nil {
				if errors.Is(err, util.ErrPolicyNotImplemented) {
					e.logger.Warn("no victim selected",
						zap.String("page", string(id)),
						zap.String("algorithm", string(p.replacer.Algorithm())),
						zap.Error(err),
					)
					return AccessRecord{}, util.NewPagingError(util.ErrTypePolicyNotImplemented, id, util.ErrPolicyNotImplemented)
				}
				e.corrupted("Victim", err)
			}
			if mapped, _ := p.table.Lookup(victim); mapped != victimIdx {
				e.corrupted("Victim", fmt.Errorf("victim %q reported in frame %d, page table says %d", victim, victimIdx, mapped))
			}
			if err := p.table.Unmap(victim); err != nil {
				e.corrupted("Unmap", err)
			}
			p.pool.Evict(victimIdx)
			rec.Evicted = victim
			target = victimIdx
		}

		p.pool.Place(target, id)
		if err := p.table.Map(id, target); err != nil {
			e.corrupted("Map", err)
		}
		if err := p.replacer.OnLoad(id, target); err != nil {
			e.corrupted("OnLoad", err)
		}
		rec.Frame = target
	}

	p.seq = rec.Seq
	p.stats.Record(rec)
	e.metrics.recordAccess(context.Background(), p.handle.Algorithm, rec)
	if ce := e.logger.Check(zap.DebugLevel, "page access"); ce != nil {
		ce.Write(
			zap.Uint64("seq", rec.Seq),
			zap.String("page", string(id)),
			zap.Stringer("outcome", rec.Outcome),
			zap.Int("frame", rec.Frame),
			zap.String("evicted", string(rec.Evicted)),
		)
	}

	if e.opts.CheckInvariants {
		if err := e.validateLocked(false); err != nil {
			e.corrupted("Validate", err)
		}
	}
	return rec, nil
}

// corrupted reports an internal inconsistency. Accepted accesses never leave the
// engine half-updated, so there is nothing to recover.
func (e *Engine) corrupted(op string, err error) {
	e.logger.Error("paging bookkeeping corrupted", zap.String("op", op), zap.Error(err))
	panic(fmt.Sprintf("[engine] [%s] %v", op, err))
}

// GetState returns a snapshot of the active process, or an inactive State.
func (e *Engine) GetState() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := State{Algorithm: e.algorithm}
	p := e.proc
	if p == nil {
		return st
	}

	st.Active = true
	st.Process = e.copyHandle()
	st.Algorithm = p.handle.Algorithm
	st.Capacity = p.handle.Capacity
	st.Frames = make([]FrameSlot, p.pool.Size())
	for i := range st.Frames {
		id, occupied := p.pool.Occupant(i)
		st.Frames[i] = FrameSlot{Index: i, Page: id, Occupied: occupied}
	}
	for _, id := range p.table.Pages() {
		frameIdx, _ := p.table.Lookup(id)
		st.PageTable = append(st.PageTable, PageMapping{Page: id, Frame: frameIdx})
	}
	st.Resident = p.replacer.Resident()
	return st
}

// GetStatistics returns the counters and history of the active process.
func (e *Engine) GetStatistics() Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.proc == nil {
		return Statistics{}
	}
	return e.proc.stats.Snapshot()
}

// Current returns the handle of the active process.
func (e *Engine) Current() (ProcessHandle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.proc == nil {
		return ProcessHandle{}, false
	}
	return e.copyHandle(), true
}

// Reset discards the active process and rewinds process numbering. The algorithm selection is kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discardLocked()
	e.procCount = 0
	e.logger.Info("engine reset", zap.String("algorithm", string(e.algorithm)))
}

func (e *Engine) discardLocked() {
	if e.proc == nil {
		return
	}
	e.metrics.recordDiscard(context.Background(), e.proc.pool.Used())
	e.logger.Debug("process discarded",
		zap.Stringer("process_id", e.proc.handle.ID),
		zap.Uint64("accesses", e.proc.seq),
	)
	e.proc = nil
}

func (e *Engine) copyHandle() ProcessHandle {
	h := e.proc.handle
	h.Pages = make([]util.PageID, len(e.proc.handle.Pages))
	copy(h.Pages, e.proc.handle.Pages)
	return h
}
