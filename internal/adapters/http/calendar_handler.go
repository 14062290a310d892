package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/siesta-zumi/teamtask/internal/application/services"
	"github.com/siesta-zumi/teamtask/internal/domain/calendar"
	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
)

// CalendarHandler serves the Gantt-style calendar view
type CalendarHandler struct {
	calendarService *services.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *services.CalendarService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

// GetView computes the window for ?date=YYYY-MM-DD&view=day|week|month and
// returns per-member rows of positioned bars. Date defaults to today and
// view to week, the calendar page's initial state.
func (h *CalendarHandler) GetView(c echo.Context) error {
	mode, err := calendar.ParseViewMode(c.QueryParam("view"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ref := entities.DateOf(time.Now())
	if raw := c.QueryParam("date"); raw != "" {
		ref, err = entities.ParseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date parameter, expected YYYY-MM-DD")
		}
	}

	view, err := h.calendarService.BuildView(c.Request().Context(), ref, mode)
	if err != nil {
		h.logger.Errorw("Calendar view failed", "error", err, "view", mode, "date", ref)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, view)
}
