// Package store provides the bounded key-to-entry mapping backing the
// memoizing engine.
//
// It combines a hash index with a recency-ordered doubly linked list so
// that lookup, insertion, touch, and LRU eviction are all O(1). The store
// knows nothing about time, expiration, or locking: entries carry their
// timestamps opaquely, and the engine that owns the store serializes
// access and interprets expiry.
package store
