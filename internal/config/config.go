package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	DatabaseURL string
	JWTSecret   string

	RedisURL      string
	RedisPassword string
	CacheTTL      time.Duration

	HoldTTL         time.Duration
	HoldSweepEvery  time.Duration
	PromoRatePerMin int
	CORSOrigins     []string

	PaymentGatewayURL    string
	PaymentGatewayKey    string
	PaymentReturnURL     string
	PaymentWebhookSecret string

	R2Endpoint      string
	R2AccessKey     string
	R2SecretKey     string
	R2Bucket        string
	R2PublicBaseURL string
}

// Load reads the environment, pulling in a local .env outside production.
func Load() Config {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("Note: no .env file found, using environment variables")
		}
	}

	return Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      time.Duration(getInt("CACHE_TTL_SECONDS", 300)) * time.Second,

		HoldTTL:         time.Duration(getInt("HOLD_TTL_MINUTES", 30)) * time.Minute,
		HoldSweepEvery:  time.Duration(getInt("HOLD_SWEEP_SECONDS", 60)) * time.Second,
		PromoRatePerMin: getInt("PROMO_RATE_PER_MIN", 20),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),

		PaymentGatewayURL:    os.Getenv("PAYMENT_GATEWAY_URL"),
		PaymentGatewayKey:    os.Getenv("PAYMENT_GATEWAY_KEY"),
		PaymentReturnURL:     getEnv("PAYMENT_RETURN_URL", "http://localhost:3000/booking/confirmation"),
		PaymentWebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),

		R2Endpoint:      os.Getenv("R2_ENDPOINT"),
		R2AccessKey:     os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey:     os.Getenv("R2_SECRET_KEY"),
		R2Bucket:        os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
	}
}

// Require reports the first missing variable the api cannot start without.
func (c Config) Require() error {
	required := map[string]string{
		"JWT_SECRET":   c.JWTSecret,
		"DATABASE_URL": c.DatabaseURL,
	}
	for _, k := range []string{"JWT_SECRET", "DATABASE_URL"} {
		if required[k] == "" {
			return errors.New("missing env var: " + k)
		}
	}
	return nil
}

// StorageEnabled is true when every R2 setting is present.
func (c Config) StorageEnabled() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != "" &&
		c.R2Bucket != "" && c.R2PublicBaseURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Note: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
