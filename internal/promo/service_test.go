package promo

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

func fixedNow() time.Time {
	return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
}

func testService() (*Service, *InMemoryRepository) {
	tourID := "t1"
	minAmount := 500.0
	maxUses := 2
	until := fixedNow().Add(-time.Hour)

	repo := NewInMemoryRepository(
		Code{ID: "p1", Code: "JAMBO10", DiscountAmount: 10, DiscountType: DiscountPercentage, Active: true},
		Code{ID: "p2", Code: "SERENGETI", DiscountAmount: 150, DiscountType: DiscountFixed, Active: true, TourID: &tourID, MinAmount: &minAmount},
		Code{ID: "p3", Code: "OLD", DiscountAmount: 5, DiscountType: DiscountPercentage, Active: true, ValidUntil: &until},
		Code{ID: "p4", Code: "TWICE", DiscountAmount: 5, DiscountType: DiscountPercentage, Active: true, MaxUses: &maxUses},
		Code{ID: "p5", Code: "OFF", DiscountAmount: 5, DiscountType: DiscountPercentage},
	)
	svc := NewService(repo)
	svc.now = fixedNow
	return svc, repo
}

func TestValidate(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	cases := []struct {
		code   string
		tourID string
		amount float64
		valid  bool
	}{
		{"jambo10", "t1", 100, true},
		{"SERENGETI", "t1", 600, true},
		{"SERENGETI", "t2", 600, false},
		{"SERENGETI", "t1", 400, false},
		{"OLD", "t1", 100, false},
		{"OFF", "t1", 100, false},
		{"NOPE", "t1", 100, false},
		{"  ", "t1", 100, false},
	}

	for _, tc := range cases {
		code, err := svc.Validate(ctx, tc.code, tc.tourID, tc.amount)
		if tc.valid && err != nil {
			t.Fatalf("%s: expected valid, got %v", tc.code, err)
		}
		if !tc.valid && err != ErrInvalidCode {
			t.Fatalf("%s: expected ErrInvalidCode, got %v (%+v)", tc.code, err, code)
		}
	}
}

func TestRedeem_ExhaustsCode(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	for n := 0; n < 2; n++ {
		if _, err := svc.Validate(ctx, "TWICE", "t1", 100); err != nil {
			t.Fatalf("use %d: unexpected error %v", n+1, err)
		}
		if err := svc.Redeem(ctx, "p4"); err != nil {
			t.Fatalf("redeem: %v", err)
		}
	}

	if _, err := svc.Validate(ctx, "TWICE", "t1", 100); err != ErrInvalidCode {
		t.Fatalf("expected exhausted code, got %v", err)
	}
}

func TestHandler_Validate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := testService()
	r := gin.New()
	r.POST("/promos/validate", NewHandler(svc).Validate)

	send := func(payload map[string]any) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/promos/validate", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(map[string]any{"code": "JAMBO10", "tour_id": "t1", "amount": 2835})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp struct {
		Valid bool `json:"valid"`
		Promo Code `json:"promo"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Valid || resp.Promo.ID != "p1" || resp.Promo.DiscountType != DiscountPercentage {
		t.Fatalf("unexpected response %s", w.Body.String())
	}

	w = send(map[string]any{"code": "NOPE", "tour_id": "t1"})
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"valid":false`)) {
		t.Fatalf("expected invalid result, got %d %s", w.Code, w.Body.String())
	}

	w = send(map[string]any{"tour_id": "t1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
