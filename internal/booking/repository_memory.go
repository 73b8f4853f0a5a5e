package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu       sync.Mutex
	bookings map[string]*Booking
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		bookings: make(map[string]*Booking),
	}
}

func (r *InMemoryRepository) NextSequence(ctx context.Context, year int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, b := range r.bookings {
		if b.CreatedAt.Year() == year {
			n++
		}
	}
	return n + 1, nil
}

func (r *InMemoryRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[b.ID]; exists {
		return fmt.Errorf("booking %s already exists", b.ID)
	}
	c, err := deepCopy(b)
	if err != nil {
		return err
	}
	r.bookings[b.ID] = c
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(b)
}

func (r *InMemoryRepository) UpdatePayment(ctx context.Context, id string, status Status, amountPaid int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.AmountPaid = amountPaid
	b.HoldExpiresAt = nil
	b.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) SetVoucherURL(ctx context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.VoucherURL = &url
	return nil
}

func (r *InMemoryRepository) ExpireHolds(ctx context.Context, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for id, b := range r.bookings {
		if b.Status == StatusPendingPayment && b.HoldExpiresAt != nil && b.HoldExpiresAt.Before(now) {
			b.Status = StatusExpired
			b.UpdatedAt = now
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// deepCopy goes through JSON, the same shape the Postgres repository stores.
func deepCopy(b *Booking) (*Booking, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	var c Booking
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
