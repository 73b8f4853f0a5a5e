package payment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (
			id,
			booking_id,
			method,
			type,
			amount,
			currency,
			status,
			provider_ref,
			redirect_url,
			created_at,
			updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.BookingID,
		p.Method,
		p.Type,
		p.Amount,
		p.Currency,
		p.Status,
		p.ProviderRef,
		p.RedirectURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) GetByProviderRef(ctx context.Context, ref string) (*Payment, error) {
	var p Payment
	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			booking_id,
			method,
			type,
			amount,
			currency,
			status,
			provider_ref,
			redirect_url,
			created_at,
			updated_at
		FROM payments
		WHERE provider_ref = $1
	`, ref).Scan(
		&p.ID,
		&p.BookingID,
		&p.Method,
		&p.Type,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.ProviderRef,
		&p.RedirectURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
