package storage

import (
	"context"
	"testing"
)

func TestPublicURL(t *testing.T) {
	r, err := NewR2Client(context.Background(), Options{
		Endpoint:      "https://account.r2.cloudflarestorage.com",
		AccessKey:     "a",
		SecretKey:     "s",
		Bucket:        "vouchers",
		PublicBaseURL: "https://cdn.example.com/",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := r.PublicURL("/vouchers/b1.pdf")
	if got != "https://cdn.example.com/vouchers/b1.pdf" {
		t.Fatalf("unexpected url %q", got)
	}
}
