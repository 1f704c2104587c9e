package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/jonwraymond/memocache/keyer"
	"github.com/jonwraymond/memocache/memo"
)

func main() {
	// Signal-aware context so Ctrl+C produces a clean shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stdout))
	if err != nil {
		log.Fatalf("stdout metric exporter: %v", err)
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
	)
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Printf("meter provider shutdown: %v", err)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	engine, err := memo.New[string](2,
		memo.WithTTL[string](300*time.Millisecond),
		memo.WithMeterProvider[string](provider),
		memo.WithSweepInterval[string](100*time.Millisecond),
		memo.WithLogger[string](logger),
	)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			log.Printf("engine close: %v", err)
		}
	}()

	var produced atomic.Int32
	lookup := memo.Memoize(engine, keyer.NewJSONKeyer(), "slow.lookup",
		func(_ context.Context, args ...any) (string, error) {
			produced.Add(1)
			time.Sleep(50 * time.Millisecond) // stand-in for a slow backend
			return fmt.Sprintf("value-for-%v", args[0]), nil
		}, nil)

	log.Println("memocache demo starting (capacity=2, ttl=300ms)")

	// -------------------------------------------------------------------
	// 1) Single-flight: 10 concurrent callers, one producer run
	// -------------------------------------------------------------------
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := lookup(ctx, "a"); err != nil {
				log.Printf("lookup a: %v", err)
			}
		}()
	}
	wg.Wait()
	log.Printf("10 concurrent lookups of %q -> %d producer run(s)", "a", produced.Load())

	// -------------------------------------------------------------------
	// 2) LRU eviction: touch a, insert b and c, expect b evicted
	// -------------------------------------------------------------------
	_, _ = lookup(ctx, "b")
	_, _ = lookup(ctx, "a") // touches a, b becomes LRU
	_, _ = lookup(ctx, "c") // overflows capacity, evicts b
	log.Printf("keys after eviction (MRU->LRU): %v", engine.Keys())

	// -------------------------------------------------------------------
	// 3) TTL expiry: wait past the TTL, lookup recomputes
	// -------------------------------------------------------------------
	before := produced.Load()
	select {
	case <-ctx.Done():
		log.Println("received shutdown signal")
		return
	case <-time.After(400 * time.Millisecond):
	}
	if _, err := lookup(ctx, "a"); err != nil {
		log.Printf("lookup a after ttl: %v", err)
	}
	log.Printf("lookup of %q after ttl: %d extra producer run(s)", "a", produced.Load()-before)

	stats := engine.Stats()
	log.Printf("stats: hits=%d misses=%d evictions=%d size=%d hit-ratio=%.2f",
		stats.Hits, stats.Misses, stats.Evictions, stats.Size, stats.HitRatio())
}
