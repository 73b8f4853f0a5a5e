package promo

import (
	"context"
	"strings"
	"sync"
)

type InMemoryRepository struct {
	mu    sync.Mutex
	codes map[string]*Code
}

func NewInMemoryRepository(codes ...Code) *InMemoryRepository {
	r := &InMemoryRepository{codes: make(map[string]*Code)}
	for _, c := range codes {
		c := c
		r.codes[strings.ToUpper(c.Code)] = &c
	}
	return r
}

func (r *InMemoryRepository) FindByCode(ctx context.Context, code string) (*Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codes[strings.ToUpper(code)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *InMemoryRepository) IncrementUses(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.codes {
		if c.ID == id {
			c.Uses++
			return nil
		}
	}
	return ErrNotFound
}
