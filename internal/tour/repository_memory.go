package tour

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	tours map[string]*Registry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tours: make(map[string]*Registry),
	}
}

func (r *InMemoryRepository) Get(ctx context.Context, tourID string) (*Registry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.tours[tourID]
	if !ok {
		return nil, ErrNotFound
	}
	return reg.Clone(), nil
}

func (r *InMemoryRepository) Save(ctx context.Context, reg *Registry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tours[reg.Tour.ID] = reg.Clone()
	return nil
}

func (r *InMemoryRepository) ListByOperator(ctx context.Context, operatorID string) ([]Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Summary
	for _, reg := range r.tours {
		if reg.Tour.OperatorID == operatorID {
			out = append(out, reg.Tour)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}
