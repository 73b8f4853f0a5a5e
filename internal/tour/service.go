package tour

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("tour belongs to another operator")

// Cache holds loaded registries keyed by tour id. Implementations return
// copies so callers may not corrupt cached entries.
type Cache interface {
	Get(ctx context.Context, tourID string) (*Registry, bool)
	Set(ctx context.Context, tourID string, reg *Registry, ttl time.Duration)
	Delete(ctx context.Context, tourID string)
}

type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
}

// NewService wires the repository with an optional cache (nil disables it).
func NewService(repo Repository, cache Cache, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl}
}

// --------------------------------------------------
// Load tour + pools (read-only, cached)
// --------------------------------------------------
func (s *Service) LoadRegistry(ctx context.Context, tourID string) (*Registry, error) {
	if s.cache != nil {
		if reg, ok := s.cache.Get(ctx, tourID); ok {
			return reg, nil
		}
	}

	reg, err := s.repo.Get(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, tourID, reg, s.ttl)
	}
	return reg, nil
}

// --------------------------------------------------
// Create tour (AGENT)
// --------------------------------------------------
func (s *Service) CreateTour(ctx context.Context, operatorID string, summary Summary) (*Registry, error) {
	if strings.TrimSpace(summary.Title) == "" {
		return nil, errors.New("title is required")
	}
	if summary.BasePrice < 0 {
		return nil, errors.New("base price must not be negative")
	}

	summary.ID = uuid.New().String()
	summary.OperatorID = operatorID
	summary.DurationDays = 0
	if summary.Currency == "" {
		summary.Currency = "USD"
	}

	reg := &Registry{Tour: summary}
	if err := s.repo.Save(ctx, reg); err != nil {
		return nil, fmt.Errorf("create tour: %w", err)
	}

	log.Printf("[TOUR] created id=%s operator=%s", summary.ID, operatorID)
	return reg, nil
}

func (s *Service) ListMine(ctx context.Context, operatorID string) ([]Summary, error) {
	return s.repo.ListByOperator(ctx, operatorID)
}

// --------------------------------------------------
// Authoring draft
// --------------------------------------------------

// Draft reads straight from the repository so authors never edit a stale
// cached copy.
func (s *Service) Draft(ctx context.Context, tourID, operatorID string) (*Draft, error) {
	reg, err := s.repo.Get(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if reg.Tour.OperatorID != operatorID {
		return nil, ErrForbidden
	}
	return NewDraft(reg), nil
}

// ApplyOp runs one maintainer operation against the stored draft and
// persists the result. Last write wins.
func (s *Service) ApplyOp(ctx context.Context, tourID, operatorID string, op Op) (*Registry, error) {
	d, err := s.Draft(ctx, tourID, operatorID)
	if err != nil {
		return nil, err
	}
	if err := d.Apply(op); err != nil {
		return nil, err
	}
	return s.persist(ctx, tourID, d)
}

// SaveDraft replaces the stored tour with reg after repairing it.
func (s *Service) SaveDraft(ctx context.Context, tourID, operatorID string, reg *Registry) (*Registry, error) {
	current, err := s.Draft(ctx, tourID, operatorID)
	if err != nil {
		return nil, err
	}

	d := NewDraft(reg)
	d.reg.Tour.ID = tourID
	d.reg.Tour.OperatorID = current.reg.Tour.OperatorID
	d.Normalize()

	return s.persist(ctx, tourID, d)
}

func (s *Service) persist(ctx context.Context, tourID string, d *Draft) (*Registry, error) {
	reg := d.Registry()
	if err := s.repo.Save(ctx, reg); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	if s.cache != nil {
		s.cache.Delete(ctx, tourID)
	}
	return reg, nil
}
