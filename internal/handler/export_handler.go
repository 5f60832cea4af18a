package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/s-ao213/next-task-app/internal/service"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
	"github.com/s-ao213/next-task-app/pkg/response"
)

// ExportHandler serves rendered task list exports.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// TaskList godoc
// @Summary Export the caller's task list
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /tasks/export [get]
func (h *ExportHandler) TaskList(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.exports.TaskList(c.Request.Context(), claims.UserID, service.ExportFormat(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+res.Filename)
	c.Data(http.StatusOK, res.ContentType, res.Data)
}
