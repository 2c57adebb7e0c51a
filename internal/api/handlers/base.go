package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/asset-divider/internal/api/dto"
	"github.com/eshaffer321/asset-divider/internal/infrastructure/storage"
)

// Base provides shared functionality for all handlers.
type Base struct {
	repo storage.Repository
}

// NewBase creates a new base handler with the given repository.
// repo may be nil when the run ledger is disabled.
func NewBase(repo storage.Repository) *Base {
	return &Base{repo: repo}
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(c *gin.Context, status int, err dto.APIError) {
	c.JSON(status, err)
}

// requireRepo writes 503 and returns false when there is no ledger.
func (b *Base) requireRepo(c *gin.Context) bool {
	if b.repo == nil {
		b.WriteError(c, http.StatusServiceUnavailable, dto.LedgerDisabledError())
		return false
	}
	return true
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(c *gin.Context, name string, defaultVal int) int {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
