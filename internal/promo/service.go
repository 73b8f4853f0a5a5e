package promo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

var ErrInvalidCode = errors.New("promo code is not valid")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Validate checks code for tourID against the amount it would discount
// (subtotal plus fee). Every rejection is ErrInvalidCode; lookup failures
// other than a missing code are returned wrapped.
func (s *Service) Validate(ctx context.Context, code, tourID string, amount float64) (*Code, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidCode
	}

	c, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, fmt.Errorf("lookup promo code: %w", err)
	}

	if reason := s.reject(c, tourID, amount); reason != "" {
		log.Printf("[PROMO] rejected code=%s tour=%s reason=%s", c.Code, tourID, reason)
		return nil, ErrInvalidCode
	}
	return c, nil
}

func (s *Service) reject(c *Code, tourID string, amount float64) string {
	now := s.now()
	switch {
	case !c.Active:
		return "inactive"
	case !c.DiscountType.Valid() || c.DiscountAmount <= 0:
		return "malformed"
	case c.ValidFrom != nil && now.Before(*c.ValidFrom):
		return "not started"
	case c.ValidUntil != nil && now.After(*c.ValidUntil):
		return "expired"
	case c.MaxUses != nil && c.Uses >= *c.MaxUses:
		return "exhausted"
	case c.TourID != nil && *c.TourID != tourID:
		return "other tour"
	case c.MinAmount != nil && amount < *c.MinAmount:
		return "below minimum"
	}
	return ""
}

// Redeem counts one use of the code once a booking carrying it is stored.
func (s *Service) Redeem(ctx context.Context, id string) error {
	if err := s.repo.IncrementUses(ctx, id); err != nil {
		return fmt.Errorf("redeem promo code: %w", err)
	}
	return nil
}
