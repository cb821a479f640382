package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/utils"
	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by every storage backend
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	BaseHandler
	storage Pinger
	now     func() time.Time
}

func NewHealthHandler(storage Pinger, logger utils.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger),
		storage:     storage,
		now:         time.Now,
	}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    statusSuccess,
		"message":   "Server is healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}

// Ready handles GET /api/health/ready and reports whether storage answers
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			h.RespondWithError(c, http.StatusServiceUnavailable, "Storage unavailable", err)
			return
		}
	}
	h.RespondWithSuccess(c, http.StatusOK, "Server is ready", nil)
}
