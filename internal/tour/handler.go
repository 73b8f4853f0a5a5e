package tour

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

func operatorID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok && userID != ""
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUnknownOp):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update tour"})
	}
}

// --------------------------------------------------
// POST /agent/tours
// --------------------------------------------------
func (h *Handler) CreateTour(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req Summary
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reg, err := h.service.CreateTour(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// --------------------------------------------------
// GET /agent/tours
// --------------------------------------------------
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tours, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tours"})
		return
	}
	if tours == nil {
		tours = []Summary{}
	}

	c.JSON(http.StatusOK, tours)
}

// --------------------------------------------------
// GET /agent/tours/:id/draft
// --------------------------------------------------
func (h *Handler) GetDraft(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	d, err := h.service.Draft(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, d.Registry())
}

// --------------------------------------------------
// POST /agent/tours/:id/draft/ops
// --------------------------------------------------
func (h *Handler) ApplyOp(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var op Op
	if err := c.ShouldBindJSON(&op); err != nil || op.Kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reg, err := h.service.ApplyOp(c.Request.Context(), c.Param("id"), userID, op)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reg)
}

// --------------------------------------------------
// PUT /agent/tours/:id/draft
// --------------------------------------------------
func (h *Handler) SaveDraft(c *gin.Context) {
	userID, ok := operatorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var reg Registry
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.service.SaveDraft(c.Request.Context(), c.Param("id"), userID, &reg)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}
