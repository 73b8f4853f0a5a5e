package promo

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /promos/validate
// --------------------------------------------------
func (h *Handler) Validate(c *gin.Context) {
	var req struct {
		Code   string  `json:"code" binding:"required"`
		TourID string  `json:"tour_id" binding:"required"`
		Amount float64 `json:"amount"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	code, err := h.service.Validate(c.Request.Context(), req.Code, req.TourID, req.Amount)
	if errors.Is(err, ErrInvalidCode) {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to validate promo code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"promo": gin.H{
			"id":              code.ID,
			"code":            code.Code,
			"discount_amount": code.DiscountAmount,
			"discount_type":   code.DiscountType,
		},
	})
}
