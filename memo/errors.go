package memo

import "errors"

// Sentinel errors for engine operations.
var (
	// ErrInvalidCapacity is returned by New when capacity is not positive.
	ErrInvalidCapacity = errors.New("memo: capacity must be positive")

	// ErrInvalidTTL is returned by New when the TTL is negative.
	ErrInvalidTTL = errors.New("memo: ttl must not be negative")

	// ErrInvalidSweepInterval is returned by New when the sweep interval
	// is negative.
	ErrInvalidSweepInterval = errors.New("memo: sweep interval must not be negative")

	// ErrWaitTimeout is returned to a caller whose deadline expired while
	// waiting for an in-flight computation. The computation itself keeps
	// running for other waiters.
	ErrWaitTimeout = errors.New("memo: timed out waiting for in-flight computation")

	// ErrClosed is returned when the engine has been closed.
	ErrClosed = errors.New("memo: engine is closed")
)
