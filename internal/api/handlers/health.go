package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/asset-divider/internal/api/dto"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	ledger bool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(ledger bool) *HealthHandler {
	return &HealthHandler{ledger: ledger}
}

// Get handles GET /health.
func (h *HealthHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewHealthResponse(h.ledger))
}
