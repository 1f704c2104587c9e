package store

import (
	"testing"
	"time"
)

// TestStore_PutGet tests basic insertion and lookup.
func TestStore_PutGet(t *testing.T) {
	s := New[int]()
	now := time.Now()

	s.Put("a", 1, now, time.Time{})

	e, ok := s.Get("a")
	if !ok {
		t.Fatal("expected a to exist")
	}
	if e.Value != 1 {
		t.Errorf("Value = %d, want 1", e.Value)
	}
	if e.Key != "a" {
		t.Errorf("Key = %q, want %q", e.Key, "a")
	}
	if !e.ExpiresAt.IsZero() {
		t.Errorf("ExpiresAt = %v, want zero", e.ExpiresAt)
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("expected missing key to be absent")
	}
}

// TestStore_PutReplace verifies that replacing a key updates the entry in
// place and moves it to MRU, keeping the key set unique.
func TestStore_PutReplace(t *testing.T) {
	s := New[int]()
	t0 := time.Now()
	t1 := t0.Add(time.Second)

	s.Put("a", 1, t0, time.Time{})
	s.Put("b", 2, t0, time.Time{})
	s.Put("a", 10, t1, t1.Add(time.Minute))

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	e, ok := s.Get("a")
	if !ok {
		t.Fatal("expected a to exist")
	}
	if e.Value != 10 {
		t.Errorf("Value = %d, want 10", e.Value)
	}
	if !e.InsertedAt.Equal(t1) {
		t.Errorf("InsertedAt = %v, want %v", e.InsertedAt, t1)
	}

	keys := s.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys = %v, want [a b]", keys)
	}
}

// TestStore_RecencyOrder verifies MRU ordering across put and touch.
func TestStore_RecencyOrder(t *testing.T) {
	s := New[int]()
	now := time.Now()

	s.Put("a", 1, now, time.Time{})
	s.Put("b", 2, now, time.Time{})
	s.Put("c", 3, now, time.Time{})

	// MRU -> LRU: c, b, a
	keys := s.Keys()
	want := []string{"c", "b", "a"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys = %v, want %v", keys, want)
		}
	}

	if !s.Touch("a") {
		t.Fatal("expected touch of a to succeed")
	}
	if s.Touch("missing") {
		t.Error("expected touch of missing key to fail")
	}

	keys = s.Keys()
	want = []string{"a", "c", "b"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys after touch = %v, want %v", keys, want)
		}
	}
}

// TestStore_EvictOldest tests eviction from the LRU end.
func TestStore_EvictOldest(t *testing.T) {
	s := New[int]()
	now := time.Now()

	if _, ok := s.EvictOldest(); ok {
		t.Error("expected eviction from empty store to fail")
	}

	s.Put("a", 1, now, time.Time{})
	s.Put("b", 2, now, time.Time{})
	s.Touch("a") // b becomes LRU

	e, ok := s.EvictOldest()
	if !ok {
		t.Fatal("expected eviction to succeed")
	}
	if e.Key != "b" {
		t.Errorf("evicted key = %q, want %q", e.Key, "b")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if _, ok := s.Get("b"); ok {
		t.Error("expected b to be gone")
	}
}

// TestStore_Remove tests explicit removal.
func TestStore_Remove(t *testing.T) {
	s := New[string]()
	now := time.Now()

	s.Put("k", "v", now, time.Time{})

	e, ok := s.Remove("k")
	if !ok {
		t.Fatal("expected removal to succeed")
	}
	if e.Value != "v" {
		t.Errorf("removed value = %q, want %q", e.Value, "v")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}

	if _, ok := s.Remove("k"); ok {
		t.Error("expected second removal to fail")
	}
}

// TestStore_Clear tests that Clear empties index and recency list.
func TestStore_Clear(t *testing.T) {
	s := New[int]()
	now := time.Now()

	s.Put("a", 1, now, time.Time{})
	s.Put("b", 2, now, time.Time{})

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if keys := s.Keys(); len(keys) != 0 {
		t.Errorf("Keys = %v, want empty", keys)
	}
	if _, ok := s.EvictOldest(); ok {
		t.Error("expected eviction after clear to fail")
	}

	// Store remains usable after Clear.
	s.Put("c", 3, now, time.Time{})
	if s.Len() != 1 {
		t.Errorf("Len after reuse = %d, want 1", s.Len())
	}
}
