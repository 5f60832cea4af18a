package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/s-ao213/next-task-app/internal/middleware"
	"github.com/s-ao213/next-task-app/internal/models"
)

type fakeDashboardSrv struct {
	summary *models.DashboardSummary
	hit     bool
	err     error
}

func (f *fakeDashboardSrv) Summary(context.Context, string) (*models.DashboardSummary, bool, error) {
	return f.summary, f.hit, f.err
}

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func TestDashboardHandlerRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardHandlerSummarySuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{
		summary: &models.DashboardSummary{UrgentTaskCount: 2, TotalTasks: 5, GeneratedAt: time.Now().UTC()},
		hit:     true,
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})

	handler.Summary(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, true, envelope.Meta["cache_hit"])

	var summary models.DashboardSummary
	_ = json.Unmarshal(envelope.Data, &summary)
	assert.Equal(t, 2, summary.UrgentTaskCount)
	assert.Equal(t, 5, summary.TotalTasks)
}
