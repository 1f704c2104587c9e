package memo

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/memocache/store"
)

// Producer computes the value for a single key. It may perform
// arbitrary I/O; the engine only guarantees it is invoked at most once
// per key while a result is outstanding.
type Producer[V any] func(ctx context.Context) (V, error)

// Engine is a bounded memoizing cache with LRU eviction, optional TTL
// expiration, and single-flight computation per key.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Errors: producer errors are returned verbatim and never cached.
// - The lock covers only store mutation, never the producer itself.
type Engine[V any] struct {
	mu    sync.Mutex
	store *store.Store[V]

	capacity int
	ttl      time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	onEvict  func(key string, value V)

	// group deduplicates in-flight computations per key.
	group singleflight.Group

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64

	metrics *engineMetrics

	closed     atomic.Bool
	closeOnce  sync.Once
	sweepEvery time.Duration
	stop       chan struct{}
	wg         sync.WaitGroup
}

// New creates an engine holding at most capacity entries.
//
// Returns ErrInvalidCapacity if capacity <= 0, ErrInvalidTTL if a
// negative TTL was configured, and ErrInvalidSweepInterval for a
// negative sweep interval.
func New[V any](capacity int, opts ...Option[V]) (*Engine[V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	cfg := config[V]{
		clock:  clockwork.NewRealClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.ttl < 0 {
		return nil, ErrInvalidTTL
	}
	if cfg.sweepEvery < 0 {
		return nil, ErrInvalidSweepInterval
	}
	if cfg.clock == nil {
		cfg.clock = clockwork.NewRealClock()
	}

	e := &Engine[V]{
		store:      store.New[V](),
		capacity:   capacity,
		ttl:        cfg.ttl,
		clock:      cfg.clock,
		logger:     cfg.logger,
		onEvict:    cfg.onEvict,
		sweepEvery: cfg.sweepEvery,
	}

	if cfg.meterProvider != nil {
		m, err := newEngineMetrics(cfg.meterProvider.Meter(meterName))
		if err != nil {
			return nil, err
		}
		e.metrics = m
	}

	if e.sweepEvery > 0 {
		e.stop = make(chan struct{})
		e.wg.Add(1)
		go e.sweepLoop()
	}

	return e, nil
}

// GetOrCompute returns the cached value for key, or computes, stores,
// and returns a fresh one.
//
// On a valid hit the entry is moved to the MRU position and producer
// is not invoked. On a miss (or an expired entry, which is reaped and
// treated as a miss) at most one producer runs per key; concurrent
// callers for the same key wait for that one computation and share its
// result. Producer errors are returned to every waiter unchanged and
// nothing is cached, so a later call retries from scratch.
//
// The computation runs on a context detached from the caller's
// cancellation: a caller whose ctx expires receives ErrWaitTimeout (for
// a deadline) or the ctx error (for cancellation), while the
// computation keeps running for other waiters and future population.
func (e *Engine[V]) GetOrCompute(ctx context.Context, key string, producer Producer[V]) (V, error) {
	var zero V
	if e.closed.Load() {
		return zero, ErrClosed
	}

	if v, ok := e.lookup(ctx, key, true); ok {
		return v, nil
	}

	ch := e.group.DoChan(key, func() (any, error) {
		// A flight that settled between the caller's miss and this
		// point may already have populated the store.
		if v, ok := e.lookup(ctx, key, false); ok {
			return v, nil
		}

		v, err := producer(detach(ctx))
		if err != nil {
			return nil, err
		}

		e.insert(ctx, key, v)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrWaitTimeout
		}
		return zero, ctx.Err()
	}
}

// Peek returns the cached value for key without touching recency,
// triggering computation, or mutating any state. Expired entries are
// reported absent but left in place for the normal reap paths.
func (e *Engine[V]) Peek(key string) (V, bool) {
	var zero V

	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.store.Get(key)
	if !ok {
		return zero, false
	}
	if !validAt(ent.ExpiresAt, e.clock.Now()) {
		return zero, false
	}
	return ent.Value, true
}

// Invalidate removes the entry for key. Returns true if an entry was
// resident, expired or not.
func (e *Engine[V]) Invalidate(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.store.Remove(key)
	return ok
}

// Clear removes all entries. Counters are preserved.
func (e *Engine[V]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Clear()
}

// Len returns the number of resident entries, including expired entries
// not yet reaped.
func (e *Engine[V]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Len()
}

// Keys returns resident keys in MRU -> LRU order. Intended for
// diagnostics and tests.
func (e *Engine[V]) Keys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Keys()
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine[V]) Stats() Stats {
	e.mu.Lock()
	size := e.store.Len()
	e.mu.Unlock()

	return Stats{
		Hits:      e.hits.Load(),
		Misses:    e.misses.Load(),
		Evictions: e.evictions.Load(),
		Size:      size,
	}
}

// Close stops the background sweep goroutine, if any, and marks the
// engine closed. Subsequent GetOrCompute calls return ErrClosed; reads
// and explicit removal remain usable. Close is idempotent.
func (e *Engine[V]) Close() error {
	e.closed.Store(true)
	e.closeOnce.Do(func() {
		if e.stop != nil {
			close(e.stop)
			e.wg.Wait()
		}
	})
	return nil
}

// lookup checks the store for a valid entry, touching it on a hit and
// reaping it when expired. With record set, hit/miss counters are
// updated; the single-flight re-check passes false so one logical call
// is not counted twice.
func (e *Engine[V]) lookup(ctx context.Context, key string, record bool) (V, bool) {
	var zero V

	e.mu.Lock()

	ent, ok := e.store.Get(key)
	if !ok {
		e.mu.Unlock()
		if record {
			e.misses.Add(1)
			e.metrics.recordMiss(ctx)
		}
		return zero, false
	}

	if !validAt(ent.ExpiresAt, e.clock.Now()) {
		// Expired: reap and treat as a miss.
		e.store.Remove(key)
		e.mu.Unlock()
		if record {
			e.misses.Add(1)
			e.metrics.recordMiss(ctx)
		}
		return zero, false
	}

	e.store.Touch(key)
	v := ent.Value
	e.mu.Unlock()

	if record {
		e.hits.Add(1)
		e.metrics.recordHit(ctx)
	}
	return v, true
}

// insert stores a freshly computed value and enforces the capacity
// bound, evicting from the LRU end until size <= capacity.
func (e *Engine[V]) insert(ctx context.Context, key string, value V) {
	var evicted []*store.Entry[V]

	e.mu.Lock()
	now := e.clock.Now()
	var expiresAt time.Time
	if e.ttl > 0 {
		expiresAt = now.Add(e.ttl)
	}
	e.store.Put(key, value, now, expiresAt)

	for e.store.Len() > e.capacity {
		ent, ok := e.store.EvictOldest()
		if !ok {
			break
		}
		evicted = append(evicted, ent)
	}
	e.mu.Unlock()

	for _, ent := range evicted {
		e.evictions.Add(1)
		e.metrics.recordEviction(ctx)
		e.logDebug("evicted entry", slog.String("key", ent.Key))
		if e.onEvict != nil {
			e.onEvict(ent.Key, ent.Value)
		}
	}
}

func (e *Engine[V]) logDebug(msg string, args ...any) {
	if e.logger == nil {
		return
	}
	e.logger.Debug(msg, args...)
}

// detachedCtx keeps the values of its parent but drops cancellation and
// deadline, so a caller abandoning a flight does not cancel the
// computation other waiters share.
type detachedCtx struct {
	context.Context
}

func (detachedCtx) Deadline() (time.Time, bool) { return time.Time{}, false }
func (detachedCtx) Done() <-chan struct{}       { return nil }
func (detachedCtx) Err() error                  { return nil }

func detach(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return detachedCtx{Context: ctx}
}
