package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ololchike/test-app--sub000/internal/tour"
)

func TestCache_Expiry(t *testing.T) {
	c := New[int](nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit, got %d %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be evicted on read")
	}
}

func TestCache_Delete(t *testing.T) {
	c := New[string](nil)
	c.Set("k", "v", time.Hour)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	reg := &tour.Registry{
		Tour:           tour.Summary{ID: "t1", Title: "Serengeti"},
		Accommodations: []tour.AccommodationOption{{ID: "A", Name: "Camp"}},
	}
	s.Set(ctx, "t1", reg, time.Hour)

	reg.Accommodations[0].Name = "mutated after set"

	got, ok := s.Get(ctx, "t1")
	if !ok {
		t.Fatalf("expected hit")
	}
	if got.Accommodations[0].Name != "Camp" {
		t.Fatalf("cache must store a copy, got %q", got.Accommodations[0].Name)
	}

	got.Accommodations[0].Name = "mutated after get"
	again, _ := s.Get(ctx, "t1")
	if again.Accommodations[0].Name != "Camp" {
		t.Fatalf("cache must hand out copies, got %q", again.Accommodations[0].Name)
	}

	s.Delete(ctx, "t1")
	if _, ok := s.Get(ctx, "t1"); ok {
		t.Fatalf("expected miss after delete")
	}
}
