package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ololchike/test-app--sub000/internal/booking"
	"github.com/ololchike/test-app--sub000/internal/pricing"
	"github.com/ololchike/test-app--sub000/internal/promo"
	"github.com/ololchike/test-app--sub000/internal/selection"
	"github.com/ololchike/test-app--sub000/internal/tour"
	"github.com/ololchike/test-app--sub000/internal/vehicle"
)

var ErrStaleQuote = errors.New("quote is stale")

// ValidationError carries the per-field result of a rejected submission.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return "checkout form is invalid"
}

type Service struct {
	tours    *tour.Service
	promos   *promo.Service
	bookings *booking.Service
	now      func() time.Time
}

func NewService(tours *tour.Service, promos *promo.Service, bookings *booking.Service) *Service {
	return &Service{
		tours:    tours,
		promos:   promos,
		bookings: bookings,
		now:      time.Now,
	}
}

// TourView is everything the customize view needs to render a tour.
type TourView struct {
	Registry         *tour.Registry       `json:"registry"`
	PricingConfig    pricing.Config       `json:"pricing_config"`
	InitialSelection *selection.Selection `json:"initial_selection"`
}

func (s *Service) GetTour(ctx context.Context, tourID string) (*TourView, error) {
	reg, err := s.tours.LoadRegistry(ctx, tourID)
	if err != nil {
		return nil, err
	}
	return &TourView{
		Registry:         reg,
		PricingConfig:    pricing.ForTour(reg),
		InitialSelection: selection.Seed(reg),
	}, nil
}

// QuoteRequest is a traveler's selection. Any promo object on the selection
// is ignored; only PromoCode is looked up.
type QuoteRequest struct {
	Selection *selection.Selection `json:"selection"`
	PromoCode string               `json:"promo_code"`
}

type Quote struct {
	Selection  *selection.Selection `json:"selection"`
	Pricing    pricing.Breakdown    `json:"pricing"`
	Vehicles   vehicle.Advice       `json:"vehicles"`
	PromoError string               `json:"promo_error,omitempty"`
}

// --------------------------------------------------
// Quote (reconcile + price)
// --------------------------------------------------

// Quote heals the selection against the current registry and prices it.
// A rejected promo code is reported on the quote, not as an error.
func (s *Service) Quote(ctx context.Context, tourID string, req QuoteRequest) (*Quote, error) {
	reg, err := s.tours.LoadRegistry(ctx, tourID)
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, reg, req, false)
}

func (s *Service) quote(ctx context.Context, reg *tour.Registry, req QuoteRequest, strictPromo bool) (*Quote, error) {
	in := req.Selection
	if in == nil {
		in = selection.Seed(reg)
	}
	sel := selection.Reconcile(in, reg)
	sel.ClearPromo()

	cfg := pricing.ForTour(reg)
	asOf := s.now().UTC()
	q := &Quote{}

	if req.PromoCode != "" {
		// the promo minimum is checked against subtotal plus fee
		pre := pricing.Compute(pricing.Input{Registry: reg, Selection: sel, Config: cfg, AsOf: asOf})
		code, err := s.promos.Validate(ctx, req.PromoCode, reg.Tour.ID, float64(pre.Subtotal+pre.ServiceFee))
		switch {
		case err == nil:
			sel.SetPromo(code)
		case errors.Is(err, promo.ErrInvalidCode) && !strictPromo:
			q.PromoError = err.Error()
		default:
			return nil, err
		}
	}

	q.Selection = sel
	q.Pricing = pricing.Compute(pricing.Input{Registry: reg, Selection: sel, Config: cfg, AsOf: asOf})
	q.Vehicles = vehicle.Compare(sel.Vehicles, reg.Vehicles, sel.GroupSize())
	return q, nil
}

// SuggestVehicles returns the cheapest cover for groupSize on the tour.
func (s *Service) SuggestVehicles(ctx context.Context, tourID string, groupSize int) (vehicle.Advice, error) {
	reg, err := s.tours.LoadRegistry(ctx, tourID)
	if err != nil {
		return vehicle.Advice{}, err
	}
	suggested := vehicle.Suggest(reg.Vehicles, groupSize)
	return vehicle.Compare(suggested, reg.Vehicles, groupSize), nil
}

// --------------------------------------------------
// Submit
// --------------------------------------------------

type SubmitRequest struct {
	Selection     selection.Selection `json:"selection"`
	PromoCode     string              `json:"promo_code"`
	Contact       booking.Contact     `json:"contact"`
	Travelers     []booking.Traveler  `json:"travelers"`
	AcceptTerms   bool                `json:"accept_terms"`
	ExpectedTotal *int64              `json:"expected_total"`
}

// Submit re-prices the selection on the server and stores the booking.
// A client total that no longer matches is ErrStaleQuote.
func (s *Service) Submit(ctx context.Context, tourID, userID string, req SubmitRequest) (*booking.Booking, error) {
	if res := validateSubmission(&req); !res.IsValid {
		return nil, &ValidationError{Result: res}
	}
	if start, ok := req.Selection.Start(); ok && start.Before(today(s.now())) {
		return nil, &ValidationError{Result: invalid("start_date", "must not be in the past")}
	}

	reg, err := s.tours.LoadRegistry(ctx, tourID)
	if err != nil {
		return nil, err
	}

	sel := req.Selection
	q, err := s.quote(ctx, reg, QuoteRequest{Selection: &sel, PromoCode: req.PromoCode}, true)
	if err != nil {
		return nil, err
	}

	if req.ExpectedTotal != nil && *req.ExpectedTotal != q.Pricing.Total {
		log.Printf("[CHECKOUT] stale quote tour=%s expected=%d actual=%d", tourID, *req.ExpectedTotal, q.Pricing.Total)
		return nil, ErrStaleQuote
	}

	b := &booking.Booking{
		TourID:    reg.Tour.ID,
		TourTitle: reg.Tour.Title,
		UserID:    userID,
		Contact:   req.Contact,
		Travelers: req.Travelers,
		Selection: *q.Selection,
		Pricing:   q.Pricing,
	}
	if q.Selection.Promo != nil {
		id := q.Selection.Promo.ID
		b.PromoCodeID = &id
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if b.PromoCodeID != nil {
		if err := s.promos.Redeem(ctx, *b.PromoCodeID); err != nil {
			log.Printf("[CHECKOUT] booking=%s promo redeem failed: %v", b.ID, err)
		}
	}

	log.Printf("[CHECKOUT] booking=%s ref=%s tour=%s total=%d due_now=%d",
		b.ID, b.Reference, b.TourID, b.Pricing.Total, b.Pricing.DueNow)
	return b, nil
}

func today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
