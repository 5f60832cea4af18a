package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/s-ao213/next-task-app/internal/service"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
	"github.com/s-ao213/next-task-app/pkg/response"
)

// TestHandler exposes scheduled-exam endpoints.
type TestHandler struct {
	tests *service.TestService
}

// NewTestHandler constructs TestHandler.
func NewTestHandler(tests *service.TestService) *TestHandler {
	return &TestHandler{tests: tests}
}

// List godoc
// @Summary List tests
// @Tags Tests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tests [get]
func (h *TestHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	tests, err := h.tests.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	// The caller's opt-ins ride along so the list can render toggles.
	toggles, err := h.tests.NotificationsForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"notifications": toggles}
	response.JSON(c, http.StatusOK, tests, nil, meta)
}

// Get godoc
// @Summary Get test detail
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tests/{id} [get]
func (h *TestHandler) Get(c *gin.Context) {
	test, err := h.tests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, test, nil)
}

// Create godoc
// @Summary Create test
// @Tags Tests
// @Accept json
// @Produce json
// @Param payload body service.CreateTestRequest true "Test payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tests [post]
func (h *TestHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	test, err := h.tests.Create(c.Request.Context(), req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, test)
}

// Update godoc
// @Summary Update test
// @Tags Tests
// @Accept json
// @Produce json
// @Param id path string true "Test ID"
// @Param payload body service.UpdateTestRequest true "Test payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tests/{id} [put]
func (h *TestHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.UpdateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	test, err := h.tests.Update(c.Request.Context(), c.Param("id"), req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, test, nil)
}

// Delete godoc
// @Summary Delete test
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tests/{id} [delete]
func (h *TestHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.tests.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ToggleNotification godoc
// @Summary Toggle reminder opt-in
// @Description Upsert the caller's reminder flag for a test
// @Tags Tests
// @Accept json
// @Produce json
// @Param id path string true "Test ID"
// @Param payload body service.ToggleNotificationRequest true "Notification payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tests/{id}/notification [put]
func (h *TestHandler) ToggleNotification(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.ToggleNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	n, err := h.tests.ToggleNotification(c.Request.Context(), c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, n, nil)
}
