package memo

import "log/slog"

// sweepLoop periodically removes expired entries.
//
// A ticker-driven full scan is intentional: it needs no per-entry
// timers, and an O(n) pass at a coarse interval is cheap next to the
// computations being memoized. Lazy expiration on read already hides
// stale entries; the sweep only reclaims memory for keys that are
// never read again.
func (e *Engine[V]) sweepLoop() {
	defer e.wg.Done()

	ticker := e.clock.NewTicker(e.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.Chan():
			if n := e.removeExpired(); n > 0 {
				e.logDebug("sweep removed expired entries", slog.Int("count", n))
			}
		}
	}
}

// removeExpired reaps all entries whose expiry has passed and returns
// how many were removed.
func (e *Engine[V]) removeExpired() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	removed := 0
	for _, key := range e.store.Keys() {
		ent, ok := e.store.Get(key)
		if !ok {
			continue
		}
		if !validAt(ent.ExpiresAt, now) {
			e.store.Remove(key)
			removed++
		}
	}
	return removed
}
