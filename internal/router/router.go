package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ololchike/test-app--sub000/internal/auth"
	"github.com/ololchike/test-app--sub000/internal/booking"
	"github.com/ololchike/test-app--sub000/internal/checkout"
	"github.com/ololchike/test-app--sub000/internal/middleware"
	"github.com/ololchike/test-app--sub000/internal/payment"
	"github.com/ololchike/test-app--sub000/internal/promo"
	"github.com/ololchike/test-app--sub000/internal/tour"
)

// Deps are the handlers the api serves.
type Deps struct {
	Auth     *auth.Handler
	Tours    *tour.Handler
	Checkout *checkout.Handler
	Promos   *promo.Handler
	Bookings *booking.Handler
	Payments *payment.Handler

	CORSOrigins     []string
	PromoRatePerMin int
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
	}

	// ───────────────────────── TOURS (PUBLIC) ─────────────────────────
	tours := r.Group("/tours/:id")
	{
		tours.GET("", d.Checkout.GetTour)
		tours.POST("/quote", d.Checkout.Quote)
		tours.GET("/quote/ws", d.Checkout.QuoteWS)
		tours.POST("/vehicles/suggest", d.Checkout.SuggestVehicles)
		tours.POST("/checkout/validate", d.Checkout.ValidateStep)
	}

	limiter := middleware.NewRateLimiter(d.PromoRatePerMin)
	r.POST("/promos/validate", limiter.Limit(), d.Promos.Validate)

	// ───────────────────────── BOOKINGS ─────────────────────────
	bookings := r.Group("/bookings")
	bookings.Use(middleware.OptionalAuth())
	{
		bookings.POST("", d.Checkout.Submit)
		bookings.GET("/:id", d.Bookings.GetBooking)
		bookings.POST("/:id/payments", d.Payments.Initiate)
	}

	r.POST("/payments/webhook", d.Payments.Webhook)

	// ───────────────────────── AGENT WIZARD ─────────────────────────
	agent := r.Group("/agent/tours")
	agent.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAgent),
	)
	{
		agent.POST("", d.Tours.CreateTour)
		agent.GET("", d.Tours.ListMine)
		agent.GET("/:id/draft", d.Tours.GetDraft)
		agent.POST("/:id/draft/ops", d.Tours.ApplyOp)
		agent.PUT("/:id/draft", d.Tours.SaveDraft)
	}

	return r
}
