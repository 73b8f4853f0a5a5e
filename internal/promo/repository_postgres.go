package promo

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

func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (*Code, error) {
	var c Code
	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			code,
			discount_amount,
			discount_type,
			tour_id,
			min_amount,
			max_uses,
			uses,
			valid_from,
			valid_until,
			active
		FROM promo_codes
		WHERE UPPER(code) = UPPER($1)
	`, code).Scan(
		&c.ID,
		&c.Code,
		&c.DiscountAmount,
		&c.DiscountType,
		&c.TourID,
		&c.MinAmount,
		&c.MaxUses,
		&c.Uses,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) IncrementUses(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE promo_codes
		SET uses = uses + 1
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
