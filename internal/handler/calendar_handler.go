package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/middleware"
	"github.com/budgety/budgety-backend/internal/service"
)

// CalendarHandler handles calendar view HTTP requests
type CalendarHandler struct {
	calendarService *service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
	}
}

// GetMonth handles GET /api/v1/calendar/:year/:month
// An optional accountId query param scopes the view to a single account;
// without it the view covers all accounts.
func (h *CalendarHandler) GetMonth(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Must be an integer between 2000 and 2100"},
		})
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be an integer between 1 and 12"},
		})
	}

	var accountID *string
	if param := c.QueryParam("accountId"); param != "" {
		accountID = &param
	}

	view, err := h.calendarService.GetMonthView(userID, year, time.Month(month), accountID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int("year", year).Int("month", month).Msg("Failed to build month view")
		return NewInternalError(c, "Failed to build month view")
	}

	return c.JSON(http.StatusOK, view)
}
