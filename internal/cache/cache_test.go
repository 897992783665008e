package cache

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "cc-line.db")
	s, err := Open(path, 2*time.Minute)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	payload := []byte(`{"five_hour":{"utilization":50}}`)
	if err := s.Put(UsageKey, payload, now); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := s.Get(UsageKey, now.Add(30*time.Second))
	if !ok {
		t.Fatal("Get: snapshot missing")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	s := openTestStore(t)
	if _, ok := s.Get("nope", time.Now()); ok {
		t.Error("Get returned a payload for an absent key")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if err := s.Put(UsageKey, []byte("x"), now); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok := s.Get(UsageKey, now.Add(2*time.Minute)); !ok {
		t.Error("snapshot at exactly the TTL should still be served")
	}
	if _, ok := s.Get(UsageKey, now.Add(2*time.Minute+time.Second)); ok {
		t.Error("snapshot past the TTL should be treated as absent")
	}
}

func TestStore_PutReplaces(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if err := s.Put(UsageKey, []byte("old"), now); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(UsageKey, []byte("new"), now.Add(time.Minute)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := s.Get(UsageKey, now.Add(time.Minute))
	if !ok || string(got) != "new" {
		t.Errorf("Get = %q, %v; want \"new\"", got, ok)
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cc-line.db")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	s, err := Open(path, time.Hour)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Put(UsageKey, []byte("persisted"), now); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path, time.Hour)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, ok := s.Get(UsageKey, now.Add(time.Minute))
	if !ok || string(got) != "persisted" {
		t.Errorf("Get after reopen = %q, %v", got, ok)
	}
}
