package payment

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("payment not found")

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByProviderRef(ctx context.Context, ref string) (*Payment, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
