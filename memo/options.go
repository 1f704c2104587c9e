package memo

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/metric"
)

// config holds constructor settings resolved from options.
type config[V any] struct {
	ttl           time.Duration
	clock         clockwork.Clock
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	sweepEvery    time.Duration
	onEvict       func(key string, value V)
}

// Option configures an Engine.
type Option[V any] func(*config[V])

// WithTTL sets the time-to-live for cached values, measured from
// insertion and not refreshed on access. Zero (the default) disables
// expiration. Negative values are rejected by New.
func WithTTL[V any](ttl time.Duration) Option[V] {
	return func(c *config[V]) {
		c.ttl = ttl
	}
}

// WithClock sets the time source used for TTL arithmetic. Production
// code uses the default real clock; tests inject clockwork.NewFakeClock
// so expiration is deterministic.
func WithClock[V any](clock clockwork.Clock) Option[V] {
	return func(c *config[V]) {
		c.clock = clock
	}
}

// WithLogger sets the logger for eviction and sweep activity, logged
// at Debug. Passing nil disables logging. Default: slog.Default().
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(c *config[V]) {
		c.logger = logger
	}
}

// WithMeterProvider enables hit/miss/eviction counters on the given
// OpenTelemetry meter provider. The default is no metrics.
func WithMeterProvider[V any](mp metric.MeterProvider) Option[V] {
	return func(c *config[V]) {
		c.meterProvider = mp
	}
}

// WithSweepInterval starts a background goroutine that removes expired
// entries every interval. Correctness never depends on the sweep; lazy
// expiration on read already hides stale entries. The sweep only bounds
// the memory held by entries that are written once and never read
// again. Call Close to stop the goroutine. Zero (the default) disables
// the sweep.
func WithSweepInterval[V any](interval time.Duration) Option[V] {
	return func(c *config[V]) {
		c.sweepEvery = interval
	}
}

// WithOnEvict sets a callback invoked after an entry is evicted to
// satisfy the capacity bound. The callback runs outside the engine's
// internal lock, so it may safely call back into the engine.
func WithOnEvict[V any](fn func(key string, value V)) Option[V] {
	return func(c *config[V]) {
		c.onEvict = fn
	}
}
