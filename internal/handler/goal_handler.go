package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/middleware"
	"github.com/budgety/budgety-backend/internal/service"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// GoalRequest represents the create/update goal request body
type GoalRequest struct {
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount,omitempty"`
	Color         string `json:"color"`
}

// ContributeRequest represents the goal contribution request body
type ContributeRequest struct {
	Amount string `json:"amount"`
}

// GoalResponse represents a savings goal in API responses
type GoalResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	Color         string `json:"color"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// toInput parses and converts the request body to a service input
func (req *GoalRequest) toInput() (service.GoalInput, []ValidationError) {
	var input service.GoalInput

	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return input, []ValidationError{
			{Field: "targetAmount", Message: "Must be a valid decimal number"},
		}
	}

	current := decimal.Zero
	if req.CurrentAmount != "" {
		current, err = decimal.NewFromString(req.CurrentAmount)
		if err != nil {
			return input, []ValidationError{
				{Field: "currentAmount", Message: "Must be a valid decimal number"},
			}
		}
	}

	return service.GoalInput{
		Name:          req.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		Color:         domain.GoalColor(req.Color),
	}, nil
}

// goalErrorResponse maps service validation errors to API responses
func goalErrorResponse(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		}), true
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		}), true
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetAmount", Message: "Amounts must be non-negative"},
		}), true
	case errors.Is(err, domain.ErrInvalidGoalColor):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "color", Message: "Color must be one of: blue, green, purple, orange, red"},
		}), true
	}
	return nil, false
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, validationErrs := req.toInput()
	if validationErrs != nil {
		return NewValidationError(c, "Validation failed", validationErrs)
	}

	goal, err := h.goalService.CreateGoal(userID, input)
	if err != nil {
		if resp, handled := goalErrorResponse(c, err); handled {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create goal")
		return NewInternalError(c, "Failed to create goal")
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID).Str("name", goal.Name).Msg("Goal created")

	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// GetGoals handles GET /api/v1/goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	goals, err := h.goalService.GetGoals(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get goals")
		return NewInternalError(c, "Failed to get goals")
	}

	response := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		response[i] = toGoalResponse(goal)
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateGoal handles PUT /api/v1/goals/:id
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id := c.Param("id")

	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, validationErrs := req.toInput()
	if validationErrs != nil {
		return NewValidationError(c, "Validation failed", validationErrs)
	}

	goal, err := h.goalService.UpdateGoal(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if resp, handled := goalErrorResponse(c, err); handled {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("goal_id", id).Msg("Failed to update goal")
		return NewInternalError(c, "Failed to update goal")
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID).Msg("Goal updated")
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// ContributeToGoal handles POST /api/v1/goals/:id/contribute
func (h *GoalHandler) ContributeToGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id := c.Param("id")

	var req ContributeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	goal, err := h.goalService.Contribute(userID, id, amount)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Contribution would make the saved amount negative"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("goal_id", id).Msg("Failed to contribute to goal")
		return NewInternalError(c, "Failed to contribute to goal")
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID).Str("amount", amount.String()).Msg("Goal contribution recorded")
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal handles DELETE /api/v1/goals/:id
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id := c.Param("id")

	if err := h.goalService.DeleteGoal(userID, id); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("goal_id", id).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal")
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", id).Msg("Goal deleted")
	return c.NoContent(http.StatusNoContent)
}

// Helper function to convert domain.SavingsGoal to GoalResponse
func toGoalResponse(goal *domain.SavingsGoal) GoalResponse {
	return GoalResponse{
		ID:            goal.ID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount.StringFixed(2),
		CurrentAmount: goal.CurrentAmount.StringFixed(2),
		Color:         string(goal.Color),
		CreatedAt:     goal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     goal.UpdatedAt.Format(time.RFC3339),
	}
}
