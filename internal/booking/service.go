package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ololchike/test-app--sub000/internal/selection"
)

type Service struct {
	repo    Repository
	holdTTL time.Duration
	now     func() time.Time
}

func NewService(repo Repository, holdTTL time.Duration) *Service {
	return &Service{repo: repo, holdTTL: holdTTL, now: time.Now}
}

// Create stores a priced booking. Pay-later and zero-total bookings are
// confirmed on submission; the rest wait for payment until the hold ends.
func (s *Service) Create(ctx context.Context, b *Booking) error {
	now := s.now().UTC()

	ref, err := s.reference(ctx, now.Year())
	if err != nil {
		return fmt.Errorf("generate reference: %w", err)
	}

	b.ID = uuid.New().String()
	b.Reference = ref
	b.CreatedAt = now
	b.UpdatedAt = now
	b.AmountPaid = 0

	if b.Selection.PaymentPlan == selection.PlanPayLater || b.Pricing.DueNow == 0 {
		b.Status = StatusConfirmed
		b.HoldExpiresAt = nil
	} else {
		b.Status = StatusPendingPayment
		hold := now.Add(s.holdTTL)
		b.HoldExpiresAt = &hold
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return err
	}

	log.Printf("[BOOKING] created id=%s ref=%s status=%s total=%d", b.ID, b.Reference, b.Status, b.Pricing.Total)
	return nil
}

// reference builds SAF-YYYY-NNNNN from the yearly count, falling back to a
// clock-derived suffix when that number is already taken.
func (s *Service) reference(ctx context.Context, year int) (string, error) {
	seq, err := s.repo.NextSequence(ctx, year)
	if err != nil {
		return "", err
	}
	ref := fmt.Sprintf("SAF-%d-%05d", year, seq)

	exists, err := s.repo.ReferenceExists(ctx, ref)
	if err != nil {
		return "", err
	}
	if exists {
		ref = fmt.Sprintf("SAF-%d-%d", year, s.now().UnixNano()%100000)
	}
	return ref, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.repo.Get(ctx, id)
}

// RecordPayment adds a settled amount. A booking is PAID once nothing is
// outstanding and CONFIRMED while a balance remains.
func (s *Service) RecordPayment(ctx context.Context, id string, amount int64) (*Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	paid := b.AmountPaid + amount
	status := StatusConfirmed
	if paid >= b.Pricing.Total {
		status = StatusPaid
	}

	if err := s.repo.UpdatePayment(ctx, id, status, paid); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	b.AmountPaid = paid
	b.Status = status
	b.HoldExpiresAt = nil
	log.Printf("[BOOKING] payment id=%s amount=%d status=%s", id, amount, status)
	return b, nil
}

func (s *Service) AttachVoucher(ctx context.Context, id, url string) error {
	return s.repo.SetVoucherURL(ctx, id, url)
}

// ExpireHolds releases every unpaid booking whose hold has run out.
func (s *Service) ExpireHolds(ctx context.Context) (int, error) {
	ids, err := s.repo.ExpireHolds(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		log.Printf("HOLD_EXPIRED id=%s", id)
	}
	return len(ids), nil
}
