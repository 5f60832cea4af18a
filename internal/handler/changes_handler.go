package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/s-ao213/next-task-app/internal/service"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
	"github.com/s-ao213/next-task-app/pkg/response"
)

// ChangesHandler streams change envelopes to clients over SSE.
type ChangesHandler struct {
	notifier *service.NotifierService
}

// NewChangesHandler constructs ChangesHandler.
func NewChangesHandler(notifier *service.NotifierService) *ChangesHandler {
	return &ChangesHandler{notifier: notifier}
}

// Stream godoc
// @Summary Change feed
// @Description Server-sent events stream of change envelopes; clients re-fetch on receipt
// @Tags Changes
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /changes [get]
func (h *ChangesHandler) Stream(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if !h.notifier.Enabled() {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "realtime feed is disabled"))
		return
	}

	changes, cancel := h.notifier.Subscribe(c.Request.Context())
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case change, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("change", change)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
