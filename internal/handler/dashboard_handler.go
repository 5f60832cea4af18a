package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
	"github.com/s-ao213/next-task-app/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context, viewerID string) (*models.DashboardSummary, bool, error)
}

// DashboardHandler wires the dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Per-user upcoming items, urgent task count and completion tally
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	start := time.Now()
	summary, cacheHit, err := h.service.Summary(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := map[string]interface{}{
		"cache_hit":  cacheHit,
		"latency_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, summary, nil, meta)
}
