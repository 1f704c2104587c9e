package memo

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName identifies this instrumentation scope.
const meterName = "github.com/jonwraymond/memocache/memo"

// Attribute values for the outcome of a lookup.
var (
	outcomeHit  = metric.WithAttributes(attribute.String("outcome", "hit"))
	outcomeMiss = metric.WithAttributes(attribute.String("outcome", "miss"))
)

// engineMetrics records cache outcomes to OpenTelemetry counters.
// A nil *engineMetrics is a valid no-op recorder.
type engineMetrics struct {
	lookups   metric.Int64Counter
	evictions metric.Int64Counter
}

// newEngineMetrics creates the counters on the given meter.
func newEngineMetrics(meter metric.Meter) (*engineMetrics, error) {
	lookups, err := meter.Int64Counter(
		"memo.cache.lookups",
		metric.WithDescription("Cache lookups, partitioned by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		"memo.cache.evictions",
		metric.WithDescription("Entries evicted to satisfy the capacity bound"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &engineMetrics{
		lookups:   lookups,
		evictions: evictions,
	}, nil
}

func (m *engineMetrics) recordHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.lookups.Add(ctx, 1, outcomeHit)
}

func (m *engineMetrics) recordMiss(ctx context.Context) {
	if m == nil {
		return
	}
	m.lookups.Add(ctx, 1, outcomeMiss)
}

func (m *engineMetrics) recordEviction(ctx context.Context) {
	if m == nil {
		return
	}
	m.evictions.Add(ctx, 1)
}
