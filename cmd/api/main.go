package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ololchike/test-app--sub000/internal/auth"
	"github.com/ololchike/test-app--sub000/internal/booking"
	"github.com/ololchike/test-app--sub000/internal/cache"
	"github.com/ololchike/test-app--sub000/internal/checkout"
	"github.com/ololchike/test-app--sub000/internal/config"
	"github.com/ololchike/test-app--sub000/internal/db"
	"github.com/ololchike/test-app--sub000/internal/payment"
	"github.com/ololchike/test-app--sub000/internal/promo"
	"github.com/ololchike/test-app--sub000/internal/router"
	"github.com/ololchike/test-app--sub000/internal/storage"
	"github.com/ololchike/test-app--sub000/internal/tour"
	"github.com/ololchike/test-app--sub000/internal/voucher"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg := config.Load()
	if err := cfg.Require(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx := context.Background()

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres(ctx, cfg.DatabaseURL)
	defer pgDB.Close()

	// ───────────────────────── CACHE ─────────────────────────
	var tourCache tour.Cache = cache.NewMemoryStore()
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Fatal("❌ Redis init failed:", err)
		}
		defer client.Close()
		tourCache = cache.NewRedisStore(client)
		log.Println("✅ Using Redis tour cache")
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var vouchers payment.VoucherIssuer
	if cfg.StorageEnabled() {
		r2Client, err := storage.NewR2Client(ctx, storage.Options{
			Endpoint:      cfg.R2Endpoint,
			AccessKey:     cfg.R2AccessKey,
			SecretKey:     cfg.R2SecretKey,
			Bucket:        cfg.R2Bucket,
			PublicBaseURL: cfg.R2PublicBaseURL,
		})
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		vouchers = voucher.NewIssuer(r2Client)
	} else {
		log.Println("Note: R2 not configured, vouchers are disabled")
	}

	// ───────────────────────── SERVICES ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)

	tourService := tour.NewService(tour.NewPostgresRepository(pgDB), tourCache, cfg.CacheTTL)
	promoService := promo.NewService(promo.NewPostgresRepository(pgDB))
	bookingService := booking.NewService(booking.NewPostgresRepository(pgDB), cfg.HoldTTL)
	checkoutService := checkout.NewService(tourService, promoService, bookingService)

	paymentService := payment.NewService(
		payment.NewPostgresRepository(pgDB),
		bookingService,
		payment.NewHTTPGateway(cfg.PaymentGatewayURL, cfg.PaymentGatewayKey),
		vouchers,
		cfg.PaymentReturnURL,
		cfg.PaymentWebhookSecret,
	)

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Deps{
		Auth:            auth.NewHandler(authService),
		Tours:           tour.NewHandler(tourService),
		Checkout:        checkout.NewHandler(checkoutService),
		Promos:          promo.NewHandler(promoService),
		Bookings:        booking.NewHandler(bookingService),
		Payments:        payment.NewHandler(paymentService),
		CORSOrigins:     cfg.CORSOrigins,
		PromoRatePerMin: cfg.PromoRatePerMin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 API running at http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// ───────────────────────── SHUTDOWN ─────────────────────────
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
