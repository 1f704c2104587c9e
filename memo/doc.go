// Package memo provides a bounded in-process cache that memoizes the
// results of expensive keyed computations.
//
// It provides an Engine with LRU eviction under a fixed capacity,
// optional TTL expiration measured from insertion time, and
// single-flight semantics: concurrent callers requesting the same
// absent key share one producer invocation instead of stampeding.
// Producer errors are propagated to every waiter and never cached.
package memo
