package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Reference sequence
// --------------------------------------------------
func (r *PostgresRepository) NextSequence(ctx context.Context, year int) (int, error) {
	var next int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) + 1
		FROM bookings
		WHERE EXTRACT(YEAR FROM created_at) = $1
	`, year).Scan(&next)
	return next, err
}

func (r *PostgresRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM bookings WHERE reference = $1)
	`, reference).Scan(&exists)
	return exists, err
}

// --------------------------------------------------
// Create booking with its pricing snapshot
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, b *Booking) error {
	contact, err := json.Marshal(b.Contact)
	if err != nil {
		return err
	}
	travelers, err := json.Marshal(b.Travelers)
	if err != nil {
		return err
	}
	sel, err := json.Marshal(b.Selection)
	if err != nil {
		return err
	}
	snapshot, err := json.Marshal(b.Pricing)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO bookings (
			id,
			reference,
			tour_id,
			tour_title,
			user_id,
			status,
			contact,
			travelers,
			selection,
			pricing,
			total,
			promo_code_id,
			amount_paid,
			hold_expires_at,
			created_at,
			updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		b.ID,
		b.Reference,
		b.TourID,
		b.TourTitle,
		nullable(b.UserID),
		b.Status,
		contact,
		travelers,
		sel,
		snapshot,
		b.Pricing.Total,
		b.PromoCodeID,
		b.AmountPaid,
		b.HoldExpiresAt,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Load booking (snapshot, no recompute)
// --------------------------------------------------
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	var userID *string
	var contact, travelers, sel, snapshot []byte

	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			reference,
			tour_id,
			tour_title,
			user_id,
			status,
			contact,
			travelers,
			selection,
			pricing,
			promo_code_id,
			amount_paid,
			voucher_url,
			hold_expires_at,
			created_at,
			updated_at
		FROM bookings
		WHERE id = $1
	`, id).Scan(
		&b.ID,
		&b.Reference,
		&b.TourID,
		&b.TourTitle,
		&userID,
		&b.Status,
		&contact,
		&travelers,
		&sel,
		&snapshot,
		&b.PromoCodeID,
		&b.AmountPaid,
		&b.VoucherURL,
		&b.HoldExpiresAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if userID != nil {
		b.UserID = *userID
	}

	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{contact, &b.Contact},
		{travelers, &b.Travelers},
		{sel, &b.Selection},
		{snapshot, &b.Pricing},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode booking %s: %w", id, err)
		}
	}
	return &b, nil
}

func (r *PostgresRepository) UpdatePayment(ctx context.Context, id string, status Status, amountPaid int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET status = $2,
			amount_paid = $3,
			hold_expires_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`, id, status, amountPaid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetVoucherURL(ctx context.Context, id, url string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET voucher_url = $2, updated_at = NOW()
		WHERE id = $1
	`, id, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Hold expiry (worker)
// --------------------------------------------------
func (r *PostgresRepository) ExpireHolds(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE status = $2
		  AND hold_expires_at IS NOT NULL
		  AND hold_expires_at < $3
		RETURNING id
	`, StatusExpired, StatusPendingPayment, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
