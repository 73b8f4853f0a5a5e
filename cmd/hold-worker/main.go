package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/ololchike/test-app--sub000/internal/booking"
	"github.com/ololchike/test-app--sub000/internal/config"
	"github.com/ololchike/test-app--sub000/internal/db"
)

func main() {
	cfg := config.Load()

	log.Println("⏳ Hold worker starting...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgDB := db.ConnectPostgres(ctx, cfg.DatabaseURL)
	defer pgDB.Close()

	service := booking.NewService(booking.NewPostgresRepository(pgDB), cfg.HoldTTL)

	log.Printf("✅ Releasing unpaid bookings every %s. Press Ctrl+C to stop.", cfg.HoldSweepEvery)

	ticker := time.NewTicker(cfg.HoldSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Hold worker stopped")
			return
		case <-ticker.C:
			n, err := service.ExpireHolds(ctx)
			if err != nil {
				log.Printf("⚠️  hold sweep error: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("released %d expired holds", n)
			}
		}
	}
}
