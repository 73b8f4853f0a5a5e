package tour

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// --------------------------------------------------
// Fake cache
// --------------------------------------------------

type mapCache struct {
	entries map[string]*Registry
	deletes int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*Registry)}
}

func (m *mapCache) Get(ctx context.Context, tourID string) (*Registry, bool) {
	reg, ok := m.entries[tourID]
	if !ok {
		return nil, false
	}
	return reg.Clone(), true
}

func (m *mapCache) Set(ctx context.Context, tourID string, reg *Registry, ttl time.Duration) {
	m.entries[tourID] = reg.Clone()
}

func (m *mapCache) Delete(ctx context.Context, tourID string) {
	delete(m.entries, tourID)
	m.deletes++
}

func seededService(t *testing.T) (*Service, *InMemoryRepository, *mapCache) {
	t.Helper()
	repo := NewInMemoryRepository()
	reg := testRegistry()
	reg.Tour.OperatorID = "agent-1"
	if err := repo.Save(context.Background(), reg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cache := newMapCache()
	return NewService(repo, cache, time.Minute), repo, cache
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func TestLoadRegistry_UsesCache(t *testing.T) {
	svc, _, cache := seededService(t)
	ctx := context.Background()

	if _, err := svc.LoadRegistry(ctx, "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.entries["t1"]; !ok {
		t.Fatalf("registry was not cached")
	}

	if _, err := svc.LoadRegistry(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyOp_PersistsAndInvalidates(t *testing.T) {
	svc, repo, cache := seededService(t)
	ctx := context.Background()

	if _, err := svc.LoadRegistry(ctx, "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg, err := svc.ApplyOp(ctx, "t1", "agent-1", Op{Kind: OpToggleDayAccommodation, Day: 2, ID: "A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day, _ := reg.Day(2)
	if *day.DefaultAccommodationID != "B" {
		t.Fatalf("expected default B after op")
	}

	stored, _ := repo.Get(ctx, "t1")
	day, _ = stored.Day(2)
	if *day.DefaultAccommodationID != "B" {
		t.Fatalf("op was not persisted")
	}
	if cache.deletes != 1 {
		t.Fatalf("expected cache invalidation, got %d deletes", cache.deletes)
	}
}

func TestApplyOp_OtherOperatorForbidden(t *testing.T) {
	svc, _, _ := seededService(t)

	_, err := svc.ApplyOp(context.Background(), "t1", "agent-2", Op{Kind: OpAddDay})
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplyOp_UnknownKind(t *testing.T) {
	svc, _, _ := seededService(t)

	_, err := svc.ApplyOp(context.Background(), "t1", "agent-1", Op{Kind: "explode"})
	if err != ErrUnknownOp {
		t.Fatalf("expected ErrUnknownOp, got %v", err)
	}
}

func TestApplyOp_UpsertAssignsID(t *testing.T) {
	svc, _, _ := seededService(t)

	reg, err := svc.ApplyOp(context.Background(), "t1", "agent-1", Op{
		Kind:  OpUpsertAddon,
		Addon: &AddonOption{Name: "Maasai village visit", Price: 40, PriceType: PricePerPerson},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := reg.Addons[len(reg.Addons)-1]
	if last.ID == "" || last.Name != "Maasai village visit" {
		t.Fatalf("unexpected addon %+v", last)
	}
}

func TestSaveDraft_Normalizes(t *testing.T) {
	svc, _, _ := seededService(t)

	in := testRegistry()
	in.Tour.OperatorID = "someone-else"
	in.Days[0].DayNumber = 7
	in.Days[1].AvailableAccommodationIDs = []string{"ghost", "B"}
	in.Vehicles[1].IsDefault = true

	saved, err := svc.SaveDraft(context.Background(), "t1", "agent-1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Tour.OperatorID != "agent-1" {
		t.Fatalf("operator must not change on save")
	}
	if saved.Days[0].DayNumber != 1 {
		t.Fatalf("days must be renumbered")
	}
	day2 := saved.Days[1]
	if len(day2.AvailableAccommodationIDs) != 1 || *day2.DefaultAccommodationID != "B" {
		t.Fatalf("dangling id not repaired: %v", day2.AvailableAccommodationIDs)
	}
	if countDefaults(saved) != 1 {
		t.Fatalf("expected one default vehicle")
	}
}

func TestCreateTour(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil, 0)

	if _, err := svc.CreateTour(context.Background(), "agent-1", Summary{}); err == nil {
		t.Fatalf("expected error for empty title")
	}

	reg, err := svc.CreateTour(context.Background(), "agent-1", Summary{Title: "Masai Mara Express", BasePrice: 800})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Tour.ID == "" || reg.Tour.Currency != "USD" {
		t.Fatalf("unexpected summary %+v", reg.Tour)
	}

	tours, _ := svc.ListMine(context.Background(), "agent-1")
	if len(tours) != 1 {
		t.Fatalf("expected 1 tour, got %d", len(tours))
	}
}

// --------------------------------------------------
// Handler
// --------------------------------------------------

func setupAgentRouter(svc *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	})

	h := NewHandler(svc)
	r.GET("/agent/tours/:id/draft", h.GetDraft)
	r.POST("/agent/tours/:id/draft/ops", h.ApplyOp)
	r.PUT("/agent/tours/:id/draft", h.SaveDraft)
	return r
}

func TestHandler_ApplyOp(t *testing.T) {
	svc, _, _ := seededService(t)
	r := setupAgentRouter(svc, "agent-1")

	body, _ := json.Marshal(map[string]any{"op": "remove_day", "day": 1})
	req := httptest.NewRequest(http.MethodPost, "/agent/tours/t1/draft/ops", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var reg Registry
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(reg.Days) != 2 || reg.Days[0].Title != "Day 1" {
		t.Fatalf("unexpected days %+v", reg.Days)
	}
}

func TestHandler_Statuses(t *testing.T) {
	svc, _, _ := seededService(t)

	cases := []struct {
		name   string
		userID string
		path   string
		want   int
	}{
		{"no user", "", "/agent/tours/t1/draft", http.StatusUnauthorized},
		{"other operator", "agent-2", "/agent/tours/t1/draft", http.StatusForbidden},
		{"missing tour", "agent-1", "/agent/tours/nope/draft", http.StatusNotFound},
		{"ok", "agent-1", "/agent/tours/t1/draft", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupAgentRouter(svc, tc.userID)
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}
