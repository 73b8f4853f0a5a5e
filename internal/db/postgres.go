package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres(ctx context.Context, dsn string) *pgxpool.Pool {
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(ctx); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(ctx, db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

type table struct {
	name string
	sql  string
}

// schema is applied in order; later tables reference earlier ones.
var schema = []table{
	// -------------------------------
	// USERS
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'TRAVELER',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`},

	// -------------------------------
	// TOURS + POOLS
	// -------------------------------
	{"tours", `
		CREATE TABLE IF NOT EXISTS tours (
			id TEXT PRIMARY KEY,
			operator_id TEXT NOT NULL,
			title VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL DEFAULT '',
			currency VARCHAR(3) NOT NULL DEFAULT 'USD',
			duration_days INT NOT NULL DEFAULT 0,
			base_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			child_price NUMERIC(12,2),
			infant_price NUMERIC(12,2),
			max_group_size INT NOT NULL DEFAULT 0,
			deposit_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			deposit_percentage NUMERIC(5,2) NOT NULL DEFAULT 0,
			pricing_config JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`},
	{"accommodation_options", `
		CREATE TABLE IF NOT EXISTS accommodation_options (
			tour_id TEXT NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			position INT NOT NULL,
			name VARCHAR(255) NOT NULL,
			tier VARCHAR(20) NOT NULL,
			price_per_night NUMERIC(12,2) NOT NULL DEFAULT 0,
			amenities JSONB NOT NULL DEFAULT '[]',
			rating NUMERIC(2,1),
			location TEXT,
			PRIMARY KEY (tour_id, id)
		)
	`},
	{"addon_options", `
		CREATE TABLE IF NOT EXISTS addon_options (
			tour_id TEXT NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			position INT NOT NULL,
			name VARCHAR(255) NOT NULL,
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			price_type VARCHAR(20) NOT NULL,
			child_price NUMERIC(12,2),
			duration VARCHAR(100) NOT NULL DEFAULT '',
			max_capacity INT,
			days JSONB NOT NULL DEFAULT '[]',
			popular BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (tour_id, id)
		)
	`},
	{"vehicle_options", `
		CREATE TABLE IF NOT EXISTS vehicle_options (
			tour_id TEXT NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			position INT NOT NULL,
			type VARCHAR(30) NOT NULL,
			name VARCHAR(255) NOT NULL,
			max_passengers INT NOT NULL,
			price_per_day NUMERIC(12,2) NOT NULL DEFAULT 0,
			features JSONB NOT NULL DEFAULT '[]',
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (tour_id, id)
		)
	`},
	{"itinerary_days", `
		CREATE TABLE IF NOT EXISTS itinerary_days (
			tour_id TEXT NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
			day_number INT NOT NULL,
			title VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			location VARCHAR(255) NOT NULL DEFAULT '',
			overnight VARCHAR(255) NOT NULL DEFAULT '',
			meals JSONB NOT NULL DEFAULT '[]',
			activities JSONB NOT NULL DEFAULT '[]',
			available_accommodation_ids JSONB NOT NULL DEFAULT '[]',
			default_accommodation_id TEXT,
			available_addon_ids JSONB NOT NULL DEFAULT '[]',
			PRIMARY KEY (tour_id, day_number)
		)
	`},

	// -------------------------------
	// PROMO CODES
	// -------------------------------
	{"promo_codes", `
		CREATE TABLE IF NOT EXISTS promo_codes (
			id TEXT PRIMARY KEY,
			code VARCHAR(50) NOT NULL,
			discount_amount NUMERIC(12,2) NOT NULL,
			discount_type VARCHAR(20) NOT NULL,
			tour_id TEXT REFERENCES tours(id) ON DELETE CASCADE,
			min_amount NUMERIC(12,2),
			max_uses INT,
			uses INT NOT NULL DEFAULT 0,
			valid_from TIMESTAMPTZ,
			valid_until TIMESTAMPTZ,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE UNIQUE INDEX IF NOT EXISTS promo_codes_code_idx ON promo_codes (UPPER(code))
	`},

	// -------------------------------
	// BOOKINGS + PAYMENTS
	// -------------------------------
	{"bookings", `
		CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			reference VARCHAR(30) UNIQUE NOT NULL,
			tour_id TEXT NOT NULL REFERENCES tours(id),
			tour_title VARCHAR(255) NOT NULL,
			user_id TEXT,
			status VARCHAR(30) NOT NULL,
			contact JSONB NOT NULL,
			travelers JSONB NOT NULL DEFAULT '[]',
			selection JSONB NOT NULL,
			pricing JSONB NOT NULL,
			total BIGINT NOT NULL,
			promo_code_id TEXT,
			amount_paid BIGINT NOT NULL DEFAULT 0,
			voucher_url TEXT,
			hold_expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS bookings_hold_idx ON bookings (status, hold_expires_at)
	`},
	{"payments", `
		CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			booking_id TEXT NOT NULL REFERENCES bookings(id),
			method VARCHAR(30) NOT NULL,
			type VARCHAR(20) NOT NULL,
			amount BIGINT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			status VARCHAR(20) NOT NULL,
			provider_ref TEXT NOT NULL DEFAULT '',
			redirect_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS payments_provider_ref_idx ON payments (provider_ref)
	`},
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, t := range schema {
		if _, err := db.Exec(ctx, t.sql); err != nil {
			return fmt.Errorf("create %s: %w", t.name, err)
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
