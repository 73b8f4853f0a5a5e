package tour

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("tour not found")

// Repository loads and stores whole registries. Save replaces the pools and
// itinerary of the tour in one go; there are no partial writes.
type Repository interface {
	Get(ctx context.Context, tourID string) (*Registry, error)
	Save(ctx context.Context, reg *Registry) error
	ListByOperator(ctx context.Context, operatorID string) ([]Summary, error)
}
