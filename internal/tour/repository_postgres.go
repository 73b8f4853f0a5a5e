package tour

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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
// Load tour + pools
// --------------------------------------------------
func (r *PostgresRepository) Get(ctx context.Context, tourID string) (*Registry, error) {
	reg := &Registry{}
	var pricingRaw []byte

	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			operator_id,
			title,
			slug,
			currency,
			duration_days,
			base_price,
			child_price,
			infant_price,
			max_group_size,
			deposit_enabled,
			deposit_percentage,
			pricing_config
		FROM tours
		WHERE id = $1
	`, tourID).Scan(
		&reg.Tour.ID,
		&reg.Tour.OperatorID,
		&reg.Tour.Title,
		&reg.Tour.Slug,
		&reg.Tour.Currency,
		&reg.Tour.DurationDays,
		&reg.Tour.BasePrice,
		&reg.Tour.ChildPrice,
		&reg.Tour.InfantPrice,
		&reg.Tour.MaxGroupSize,
		&reg.Tour.DepositEnabled,
		&reg.Tour.DepositPercentage,
		&pricingRaw,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load tour: %w", err)
	}

	if len(pricingRaw) > 0 {
		var rules PricingRules
		if err := json.Unmarshal(pricingRaw, &rules); err != nil {
			return nil, fmt.Errorf("decode pricing config: %w", err)
		}
		reg.Pricing = &rules
	}

	if reg.Accommodations, err = r.accommodations(ctx, tourID); err != nil {
		return nil, err
	}
	if reg.Addons, err = r.addons(ctx, tourID); err != nil {
		return nil, err
	}
	if reg.Vehicles, err = r.vehicles(ctx, tourID); err != nil {
		return nil, err
	}
	if reg.Days, err = r.days(ctx, tourID); err != nil {
		return nil, err
	}

	return reg, nil
}

func (r *PostgresRepository) accommodations(ctx context.Context, tourID string) ([]AccommodationOption, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, tier, price_per_night, amenities, rating, location
		FROM accommodation_options
		WHERE tour_id = $1
		ORDER BY position
	`, tourID)
	if err != nil {
		return nil, fmt.Errorf("load accommodations: %w", err)
	}
	defer rows.Close()

	var out []AccommodationOption
	for rows.Next() {
		var a AccommodationOption
		var amenities []byte
		if err := rows.Scan(&a.ID, &a.Name, &a.Tier, &a.PricePerNight, &amenities, &a.Rating, &a.Location); err != nil {
			return nil, err
		}
		if err := decodeJSON(amenities, &a.Amenities); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) addons(ctx context.Context, tourID string) ([]AddonOption, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price, price_type, child_price, duration, max_capacity, days, popular
		FROM addon_options
		WHERE tour_id = $1
		ORDER BY position
	`, tourID)
	if err != nil {
		return nil, fmt.Errorf("load addons: %w", err)
	}
	defer rows.Close()

	var out []AddonOption
	for rows.Next() {
		var a AddonOption
		var days []byte
		if err := rows.Scan(&a.ID, &a.Name, &a.Price, &a.PriceType, &a.ChildPrice, &a.Duration, &a.MaxCapacity, &days, &a.Popular); err != nil {
			return nil, err
		}
		if err := decodeJSON(days, &a.Days); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) vehicles(ctx context.Context, tourID string) ([]VehicleOption, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, type, name, max_passengers, price_per_day, features, is_default
		FROM vehicle_options
		WHERE tour_id = $1
		ORDER BY position
	`, tourID)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	defer rows.Close()

	var out []VehicleOption
	for rows.Next() {
		var v VehicleOption
		var features []byte
		if err := rows.Scan(&v.ID, &v.Type, &v.Name, &v.MaxPassengers, &v.PricePerDay, &features, &v.IsDefault); err != nil {
			return nil, err
		}
		if err := decodeJSON(features, &v.Features); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) days(ctx context.Context, tourID string) ([]ItineraryDay, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			day_number,
			title,
			description,
			location,
			overnight,
			meals,
			activities,
			available_accommodation_ids,
			default_accommodation_id,
			available_addon_ids
		FROM itinerary_days
		WHERE tour_id = $1
		ORDER BY day_number
	`, tourID)
	if err != nil {
		return nil, fmt.Errorf("load itinerary: %w", err)
	}
	defer rows.Close()

	var out []ItineraryDay
	for rows.Next() {
		var d ItineraryDay
		var meals, activities, accIDs, addonIDs []byte
		if err := rows.Scan(
			&d.DayNumber,
			&d.Title,
			&d.Description,
			&d.Location,
			&d.Overnight,
			&meals,
			&activities,
			&accIDs,
			&d.DefaultAccommodationID,
			&addonIDs,
		); err != nil {
			return nil, err
		}
		for _, f := range []struct {
			raw []byte
			dst any
		}{
			{meals, &d.Meals},
			{activities, &d.Activities},
			{accIDs, &d.AvailableAccommodationIDs},
			{addonIDs, &d.AvailableAddonIDs},
		} {
			if err := decodeJSON(f.raw, f.dst); err != nil {
				return nil, err
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// --------------------------------------------------
// Save tour + pools (replace)
// --------------------------------------------------
func (r *PostgresRepository) Save(ctx context.Context, reg *Registry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var pricing []byte
	if reg.Pricing != nil {
		if pricing, err = json.Marshal(reg.Pricing); err != nil {
			return err
		}
	}

	t := reg.Tour
	_, err = tx.Exec(ctx, `
		INSERT INTO tours (
			id,
			operator_id,
			title,
			slug,
			currency,
			duration_days,
			base_price,
			child_price,
			infant_price,
			max_group_size,
			deposit_enabled,
			deposit_percentage,
			pricing_config
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			currency = EXCLUDED.currency,
			duration_days = EXCLUDED.duration_days,
			base_price = EXCLUDED.base_price,
			child_price = EXCLUDED.child_price,
			infant_price = EXCLUDED.infant_price,
			max_group_size = EXCLUDED.max_group_size,
			deposit_enabled = EXCLUDED.deposit_enabled,
			deposit_percentage = EXCLUDED.deposit_percentage,
			pricing_config = EXCLUDED.pricing_config,
			updated_at = NOW()
	`,
		t.ID,
		t.OperatorID,
		t.Title,
		t.Slug,
		t.Currency,
		t.DurationDays,
		t.BasePrice,
		t.ChildPrice,
		t.InfantPrice,
		t.MaxGroupSize,
		t.DepositEnabled,
		t.DepositPercentage,
		pricing,
	)
	if err != nil {
		return fmt.Errorf("upsert tour: %w", err)
	}

	for _, table := range []string{"accommodation_options", "addon_options", "vehicle_options", "itinerary_days"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE tour_id = $1", t.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	batch := &pgx.Batch{}
	for i, a := range reg.Accommodations {
		batch.Queue(`
			INSERT INTO accommodation_options (tour_id, id, position, name, tier, price_per_night, amenities, rating, location)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, t.ID, a.ID, i, a.Name, a.Tier, a.PricePerNight, encodeJSON(a.Amenities), a.Rating, a.Location)
	}
	for i, a := range reg.Addons {
		batch.Queue(`
			INSERT INTO addon_options (tour_id, id, position, name, price, price_type, child_price, duration, max_capacity, days, popular)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, t.ID, a.ID, i, a.Name, a.Price, a.PriceType, a.ChildPrice, a.Duration, a.MaxCapacity, encodeJSON(a.Days), a.Popular)
	}
	for i, v := range reg.Vehicles {
		batch.Queue(`
			INSERT INTO vehicle_options (tour_id, id, position, type, name, max_passengers, price_per_day, features, is_default)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, t.ID, v.ID, i, v.Type, v.Name, v.MaxPassengers, v.PricePerDay, encodeJSON(v.Features), v.IsDefault)
	}
	for _, d := range reg.Days {
		batch.Queue(`
			INSERT INTO itinerary_days (
				tour_id, day_number, title, description, location, overnight,
				meals, activities, available_accommodation_ids, default_accommodation_id, available_addon_ids
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, t.ID, d.DayNumber, d.Title, d.Description, d.Location, d.Overnight,
			encodeJSON(d.Meals), encodeJSON(d.Activities), encodeJSON(d.AvailableAccommodationIDs),
			d.DefaultAccommodationID, encodeJSON(d.AvailableAddonIDs))
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert pools: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// List tours of an operator
// --------------------------------------------------
func (r *PostgresRepository) ListByOperator(ctx context.Context, operatorID string) ([]Summary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			operator_id,
			title,
			slug,
			currency,
			duration_days,
			base_price,
			child_price,
			infant_price,
			max_group_size,
			deposit_enabled,
			deposit_percentage
		FROM tours
		WHERE operator_id = $1
		ORDER BY title
	`, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []Summary
	for rows.Next() {
		var t Summary
		if err := rows.Scan(
			&t.ID,
			&t.OperatorID,
			&t.Title,
			&t.Slug,
			&t.Currency,
			&t.DurationDays,
			&t.BasePrice,
			&t.ChildPrice,
			&t.InfantPrice,
			&t.MaxGroupSize,
			&t.DepositEnabled,
			&t.DepositPercentage,
		); err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, rows.Err()
}

// JSONB array columns are NOT NULL; nil slices are stored as [].
func encodeJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return []byte("[]")
	}
	return b
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
