package memo

// Stats is a snapshot of the engine's operational counters.
//
// Hits and Misses count GetOrCompute lookups against valid entries;
// an expired entry counts as a miss. Evictions counts only removals
// forced by the capacity bound, not expiry or explicit invalidation.
// Size includes expired entries that have not yet been reaped.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// HitRatio returns Hits / (Hits + Misses), or 0 before any lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
