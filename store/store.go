package store

import (
	"container/list"
	"time"
)

// Entry is a single cached record.
//
// ExpiresAt is optional: the zero time means "never expires". The store
// never inspects timestamps; they are interpreted by the caller.
type Entry[V any] struct {
	Key        string
	Value      V
	InsertedAt time.Time
	ExpiresAt  time.Time
}

// Store is a bounded key-to-entry mapping with recency ordering.
//
// The hash index gives O(1) key lookup; the doubly linked list keeps
// entries ordered from most recently used (front) to least recently
// used (back).
//
// Contract:
// - Not safe for concurrent use; the owning engine holds the lock.
// - Operations are total over valid keys and never fail.
type Store[V any] struct {
	index map[string]*list.Element
	order *list.List // Front = MRU, Back = LRU
}

// New creates an empty store.
func New[V any]() *Store[V] {
	return &Store[V]{
		index: make(map[string]*list.Element),
		order: list.New(),
	}
}

// Get returns the entry for key without updating recency.
// Returns (nil, false) if the key is absent.
func (s *Store[V]) Get(key string) (*Entry[V], bool) {
	el, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return el.Value.(*Entry[V]), true
}

// Put inserts or replaces the entry for key and moves it to the MRU
// position. Replacing updates the value and both timestamps in place.
func (s *Store[V]) Put(key string, value V, insertedAt, expiresAt time.Time) {
	if el, ok := s.index[key]; ok {
		e := el.Value.(*Entry[V])
		e.Value = value
		e.InsertedAt = insertedAt
		e.ExpiresAt = expiresAt
		s.order.MoveToFront(el)
		return
	}

	e := &Entry[V]{
		Key:        key,
		Value:      value,
		InsertedAt: insertedAt,
		ExpiresAt:  expiresAt,
	}
	s.index[key] = s.order.PushFront(e)
}

// Touch moves an existing key to the MRU position without altering its
// entry. Returns false if the key is absent.
func (s *Store[V]) Touch(key string) bool {
	el, ok := s.index[key]
	if !ok {
		return false
	}
	s.order.MoveToFront(el)
	return true
}

// EvictOldest removes and returns the entry at the LRU end.
// Returns (nil, false) if the store is empty.
func (s *Store[V]) EvictOldest() (*Entry[V], bool) {
	el := s.order.Back()
	if el == nil {
		return nil, false
	}
	e := el.Value.(*Entry[V])
	delete(s.index, e.Key)
	s.order.Remove(el)
	return e, true
}

// Remove deletes the entry for key if present and returns it.
func (s *Store[V]) Remove(key string) (*Entry[V], bool) {
	el, ok := s.index[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*Entry[V])
	delete(s.index, key)
	s.order.Remove(el)
	return e, true
}

// Clear removes all entries.
func (s *Store[V]) Clear() {
	s.index = make(map[string]*list.Element)
	s.order.Init()
}

// Len returns the number of resident entries, including any whose
// ExpiresAt has passed but which have not yet been reaped.
func (s *Store[V]) Len() int {
	return len(s.index)
}

// Keys returns keys in MRU -> LRU order. Intended for diagnostics and
// tests; O(n).
func (s *Store[V]) Keys() []string {
	out := make([]string, 0, s.order.Len())
	for el := s.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*Entry[V]).Key)
	}
	return out
}
