package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ololchike/test-app--sub000/internal/booking"
	"github.com/ololchike/test-app--sub000/internal/selection"
)

var (
	ErrPaymentNotRequired = errors.New("payment not required")
	ErrBookingExpired     = errors.New("booking hold has expired")
	ErrInvalidType        = errors.New("invalid payment type")
	ErrBadSignature       = errors.New("invalid webhook signature")
)

// Bookings is the slice of the booking service payments need.
type Bookings interface {
	Get(ctx context.Context, id string) (*booking.Booking, error)
	RecordPayment(ctx context.Context, id string, amount int64) (*booking.Booking, error)
	AttachVoucher(ctx context.Context, id, url string) error
}

// VoucherIssuer renders and stores a voucher, returning its public URL.
type VoucherIssuer interface {
	Issue(ctx context.Context, b *booking.Booking) (string, error)
}

type Service struct {
	repo     Repository
	bookings Bookings
	gateway  Gateway
	vouchers VoucherIssuer

	returnURL     string
	webhookSecret string
	now           func() time.Time
}

func NewService(
	repo Repository,
	bookings Bookings,
	gateway Gateway,
	vouchers VoucherIssuer,
	returnURL string,
	webhookSecret string,
) *Service {
	return &Service{
		repo:          repo,
		bookings:      bookings,
		gateway:       gateway,
		vouchers:      vouchers,
		returnURL:     returnURL,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
}

// Initiate opens a gateway checkout for what is due on the booking. An empty
// type follows the booking's payment plan.
func (s *Service) Initiate(ctx context.Context, bookingID, method string, typ Type) (*Initiation, error) {
	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == booking.StatusExpired {
		return nil, ErrBookingExpired
	}

	amount, typ, err := amountDue(b, typ)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p := &Payment{
		ID:        uuid.New().String(),
		BookingID: b.ID,
		Method:    method,
		Type:      typ,
		Amount:    amount,
		Currency:  b.Pricing.Currency,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	redirect, ref, err := s.gateway.CreateCheckout(ctx, CheckoutRequest{
		PaymentID:   p.ID,
		BookingRef:  b.Reference,
		Amount:      amount,
		Currency:    p.Currency,
		Method:      method,
		Email:       b.Contact.Email,
		ReturnURL:   s.returnURL + "?booking=" + b.ID,
		Description: fmt.Sprintf("%s (%s)", b.TourTitle, typ),
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}
	p.RedirectURL = redirect
	p.ProviderRef = ref

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Printf("[PAYMENT] initiated booking=%s payment=%s type=%s amount=%d", b.ID, p.ID, typ, amount)
	return &Initiation{
		PaymentRequired: true,
		PaymentID:       p.ID,
		RedirectURL:     redirect,
		Amount:          amount,
	}, nil
}

func amountDue(b *booking.Booking, typ Type) (int64, Type, error) {
	outstanding := b.Outstanding()
	if outstanding == 0 {
		return 0, typ, ErrPaymentNotRequired
	}

	if typ == "" {
		switch {
		case b.Selection.PaymentPlan == selection.PlanPayLater:
			return 0, typ, ErrPaymentNotRequired
		case b.Selection.PaymentPlan == selection.PlanDeposit && b.AmountPaid == 0:
			typ = TypeDeposit
		case b.AmountPaid > 0:
			typ = TypeBalance
		default:
			typ = TypeFull
		}
	}

	switch typ {
	case TypeDeposit:
		if b.AmountPaid > 0 {
			return 0, typ, ErrInvalidType
		}
		return min(b.Pricing.Deposit, outstanding), typ, nil
	case TypeFull, TypeBalance:
		return outstanding, typ, nil
	default:
		return 0, typ, ErrInvalidType
	}
}

// VerifySignature checks the hex HMAC-SHA256 of the raw webhook body. With
// no secret configured every callback is accepted.
func (s *Service) VerifySignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Confirm applies a gateway callback. Repeated callbacks for a settled
// payment are ignored.
func (s *Service) Confirm(ctx context.Context, ev WebhookEvent) error {
	p, err := s.repo.GetByProviderRef(ctx, ev.Reference)
	if err != nil {
		return err
	}
	if p.Status != StatusPending {
		log.Printf("[PAYMENT] duplicate callback payment=%s status=%s", p.ID, p.Status)
		return nil
	}

	if ev.Status != "succeeded" {
		log.Printf("[PAYMENT] failed payment=%s booking=%s", p.ID, p.BookingID)
		return s.repo.UpdateStatus(ctx, p.ID, StatusFailed)
	}

	if err := s.repo.UpdateStatus(ctx, p.ID, StatusSucceeded); err != nil {
		return err
	}

	b, err := s.bookings.RecordPayment(ctx, p.BookingID, p.Amount)
	if err != nil {
		return err
	}

	if s.vouchers == nil || b.VoucherURL != nil {
		return nil
	}

	// voucher failures leave the payment recorded
	url, err := s.vouchers.Issue(ctx, b)
	if err != nil {
		log.Printf("[PAYMENT] voucher failed booking=%s: %v", b.ID, err)
		return nil
	}
	if err := s.bookings.AttachVoucher(ctx, b.ID, url); err != nil {
		log.Printf("[PAYMENT] voucher attach failed booking=%s: %v", b.ID, err)
	}
	return nil
}
