package payment

import (
	"context"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu       sync.Mutex
	payments map[string]*Payment
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{payments: make(map[string]*Payment)}
}

func (r *InMemoryRepository) Create(ctx context.Context, p *Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *p
	r.payments[p.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetByProviderRef(ctx context.Context, ref string) (*Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.payments {
		if p.ProviderRef == ref {
			copied := *p
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}
