package promo

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("promo code not found")

type Repository interface {
	FindByCode(ctx context.Context, code string) (*Code, error)
	IncrementUses(ctx context.Context, id string) error
}
