package paging

import (
	"context"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics holds the metric instruments fed by the engine.
type Metrics struct {
	AccessesCounter         metric.Int64Counter
	EvictionsCounter        metric.Int64Counter
	ProcessesCounter        metric.Int64Counter
	ResidentPagesUpDownCntr metric.Int64UpDownCounter
}

// NewMetrics creates and registers the engine metrics on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	accesses, err := meter.Int64Counter(
		"pagesim.accesses",
		metric.WithDescription("Page accesses, labelled by outcome and algorithm."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		"pagesim.evictions",
		metric.WithDescription("Resident pages evicted to make room for a faulting page."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	processes, err := meter.Int64Counter(
		"pagesim.processes_started",
		metric.WithDescription("Processes started on the engine."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	resident, err := meter.Int64UpDownCounter(
		"pagesim.resident_pages",
		metric.WithDescription("Pages currently mapped to a frame."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		AccessesCounter:         accesses,
		EvictionsCounter:        evictions,
		ProcessesCounter:        processes,
		ResidentPagesUpDownCntr: resident,
	}, nil
}

// NoopMetrics returns instruments that record nothing.
func NoopMetrics() *Metrics {
	m, err := NewMetrics(noop.NewMeterProvider().Meter(""))
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Metrics) recordAccess(ctx context.Context, alg util.Algorithm, rec AccessRecord) {
	algAttr := attribute.String("algorithm", string(alg))
	m.AccessesCounter.Add(ctx, 1, metric.WithAttributes(algAttr, attribute.String("outcome", rec.Outcome.String())))
	if rec.Outcome != util.OutcomeFault {
		return
	}
	if rec.Evicted != "" {
		m.EvictionsCounter.Add(ctx, 1, metric.WithAttributes(algAttr))
		return
	}
	m.ResidentPagesUpDownCntr.Add(ctx, 1)
}

func (m *Metrics) recordStart(ctx context.Context, alg util.Algorithm) {
	m.ProcessesCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("algorithm", string(alg))))
}

func (m *Metrics) recordDiscard(ctx context.Context, resident int) {
	if resident > 0 {
		m.ResidentPagesUpDownCntr.Add(ctx, -int64(resident))
	}
}
