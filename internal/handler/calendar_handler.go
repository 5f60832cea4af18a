package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/s-ao213/next-task-app/internal/service"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
	"github.com/s-ao213/next-task-app/pkg/response"
)

// CalendarHandler exposes the month grid endpoint.
type CalendarHandler struct {
	calendar *service.CalendarService
}

// NewCalendarHandler constructs CalendarHandler.
func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// MonthGrid godoc
// @Summary Month grid
// @Description 42-cell month grid with the caller's visible items bucketed by local day
// @Tags Calendar
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param tz query string false "IANA timezone, defaults to UTC"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /calendar [get]
func (h *CalendarHandler) MonthGrid(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be an integer"))
		return
	}
	monthNum, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month must be an integer"))
		return
	}

	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown timezone"))
			return
		}
	}

	grid, err := h.calendar.MonthGrid(c.Request.Context(), claims.UserID, year, time.Month(monthNum), loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}
