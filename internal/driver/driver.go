// Package driver feeds an engine with random processes, random references and paced
// playback. The engine itself stays deterministic.
package driver

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/bietkhonhungvandi212/pagesim/internal/paging"
	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	MinPages int `yaml:"min_pages"`
	MaxPages int `yaml:"max_pages"`
	// StepDelay paces Play. 0 plays as fast as possible.
	StepDelay time.Duration `yaml:"step_delay"`
	// Seed for the random source, 0 means time based.
	Seed int64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		MinPages:  3,
		MaxPages:  10,
		StepDelay: 500 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	if c.MinPages < 0 || c.MaxPages < c.MinPages {
		return fmt.Errorf("%w: page range [%d, %d]", util.ErrInvalidDriverConfig, c.MinPages, c.MaxPages)
	}
	if c.StepDelay < 0 {
		return fmt.Errorf("%w: negative step delay %v", util.ErrInvalidDriverConfig, c.StepDelay)
	}
	return nil
}

// Simulator is the part of the engine the driver needs.
type Simulator interface {
	SpawnProcess(capacity int, numPages int) (paging.ProcessHandle, error)
	Current() (paging.ProcessHandle, bool)
	Access(pageID string) (paging.AccessRecord, error)
	Lookahead(pageIDs []string) error
}

type Driver struct {
	sim     Simulator
	cfg     Config
	limiter *rate.Limiter
	logger  *zap.Logger
	tracer  trace.Tracer

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

type Option func(*Driver)

func WithLogger(logger *zap.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(d *Driver) {
		if tracer != nil {
			d.tracer = tracer
		}
	}
}

func New(sim Simulator, cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	limit := rate.Inf
	if cfg.StepDelay > 0 {
		limit = rate.Every(cfg.StepDelay)
	}

	d := &Driver{
		sim:     sim,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  zap.NewNop(),
		tracer:  nooptrace.NewTracerProvider().Tracer(""),
		rng:     rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewProcess spawns a process with a random page count in [MinPages, MaxPages].
func (d *Driver) NewProcess(capacity int) (paging.ProcessHandle, error) {
	d.mu.Lock()
	numPages := d.cfg.MinPages + d.rng.Intn(d.cfg.MaxPages-d.cfg.MinPages+1)
	d.mu.Unlock()

	h, err := d.sim.SpawnProcess(capacity, numPages)
	if err != nil {
		return paging.ProcessHandle{}, err
	}
	d.logger.Debug("random process spawned", zap.Int("number", h.Number), zap.Int("pages", numPages))
	return h, nil
}

// RandomSequence draws n page ids of the current process uniformly.
func (d *Driver) RandomSequence(n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("%d references: %w", n, util.ErrNegativePageCount)
	}
	h, ok := d.sim.Current()
	if !ok {
		return nil, util.NewPagingError(util.ErrTypeNoActiveProcess, "", util.ErrNoActiveProcess)
	}
	if len(h.Pages) == 0 {
		return nil, fmt.Errorf("process %d: %w", h.Number, util.ErrNoPages)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = string(h.Pages[d.rng.Intn(len(h.Pages))])
	}
	return ids, nil
}

// RandomAccess references one uniformly chosen page of the current process.
func (d *Driver) RandomAccess() (paging.AccessRecord, error) {
	ids, err := d.RandomSequence(1)
	if err != nil {
		return paging.AccessRecord{}, err
	}
	return d.sim.Access(ids[0])
}

// Play hands ids to the engine as lookahead, then accesses them one by one, waiting
// StepDelay between steps. onStep may be nil. Records of the steps already applied are
// returned with the error that stopped playback.
func (d *Driver) Play(ctx context.Context, ids []string, onStep func(paging.AccessRecord)) ([]paging.AccessRecord, error) {
	ctx, span := d.tracer.Start(ctx, "driver.play", trace.WithAttributes(attribute.Int("pagesim.references", len(ids))))
	defer span.End()

	if err := d.sim.Lookahead(ids); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookahead rejected")
		return nil, err
	}

	records := make([]paging.AccessRecord, 0, len(ids))
	var faults int
	for _, id := range ids {
		if err := d.limiter.Wait(ctx); err != nil {
			span.SetStatus(codes.Error, "playback interrupted")
			d.logger.Info("playback interrupted", zap.Int("played", len(records)), zap.Error(err))
			return records, err
		}
		rec, err := d.sim.Access(id)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "access rejected")
			return records, err
		}
		if rec.Outcome == util.OutcomeFault {
			faults++
		}
		records = append(records, rec)
		if onStep != nil {
			onStep(rec)
		}
	}

	span.SetAttributes(
		attribute.Int("pagesim.faults", faults),
		attribute.Int("pagesim.hits", len(records)-faults),
	)
	d.logger.Debug("playback finished", zap.Int("played", len(records)), zap.Int("faults", faults))
	return records, nil
}
