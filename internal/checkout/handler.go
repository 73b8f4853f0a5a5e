package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ololchike/test-app--sub000/internal/promo"
	"github.com/ololchike/test-app--sub000/internal/tour"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /tours/:id
func (h *Handler) GetTour(c *gin.Context) {
	view, err := h.service.GetTour(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /tours/:id/quote
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	q, err := h.service.Quote(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// POST /tours/:id/vehicles/suggest
func (h *Handler) SuggestVehicles(c *gin.Context) {
	var req struct {
		GroupSize int `json:"group_size" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_size must be at least 1"})
		return
	}

	advice, err := h.service.SuggestVehicles(c.Request.Context(), c.Param("id"), req.GroupSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, advice)
}

// POST /tours/:id/checkout/validate
func (h *Handler) ValidateStep(c *gin.Context) {
	var req struct {
		Step Step            `json:"step"`
		Form json.RawMessage `json:"form"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, ValidateStep(req.Step, req.Form))
}

// POST /bookings
func (h *Handler) Submit(c *gin.Context) {
	var req struct {
		TourID string `json:"tour_id" binding:"required"`
		SubmitRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// guests may book without an account
	userID := c.GetString("userID")

	b, err := h.service.Submit(c.Request.Context(), req.TourID, userID, req.SubmitRequest)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking_id": b.ID,
		"reference":  b.Reference,
		"status":     b.Status,
		"pricing":    b.Pricing,
	})
}

func writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, verr.Result)
	case errors.Is(err, tour.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrStaleQuote):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, promo.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
