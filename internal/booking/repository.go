package booking

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("booking not found")

type Repository interface {
	NextSequence(ctx context.Context, year int) (int, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id string) (*Booking, error)
	UpdatePayment(ctx context.Context, id string, status Status, amountPaid int64) error
	SetVoucherURL(ctx context.Context, id, url string) error
	// ExpireHolds flips unpaid bookings whose hold ended before now to
	// EXPIRED and returns their ids.
	ExpireHolds(ctx context.Context, now time.Time) ([]string, error)
}
