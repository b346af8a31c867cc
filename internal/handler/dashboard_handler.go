package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/budgety/budgety-backend/internal/middleware"
	"github.com/budgety/budgety-backend/internal/service"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// DashboardSummaryResponse represents the dashboard summary API response
type DashboardSummaryResponse struct {
	CheckingBalance    string                `json:"checkingBalance"`
	SavingsBalance     string                `json:"savingsBalance"`
	TotalBalance       string                `json:"totalBalance"`
	Accounts           []AccountResponse     `json:"accounts"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
	UpcomingBills      []TransactionResponse `json:"upcomingBills"`
	Goals              []GoalResponse        `json:"goals"`
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.dashboardService.GetSummary(userID, time.Now())
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard summary")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	response := DashboardSummaryResponse{
		CheckingBalance:    summary.CheckingBalance.StringFixed(2),
		SavingsBalance:     summary.SavingsBalance.StringFixed(2),
		TotalBalance:       summary.TotalBalance.StringFixed(2),
		Accounts:           make([]AccountResponse, len(summary.Accounts)),
		RecentTransactions: make([]TransactionResponse, len(summary.RecentTransactions)),
		UpcomingBills:      make([]TransactionResponse, len(summary.UpcomingBills)),
		Goals:              make([]GoalResponse, len(summary.Goals)),
	}
	for i, account := range summary.Accounts {
		response.Accounts[i] = toAccountResponse(account)
	}
	for i, transaction := range summary.RecentTransactions {
		response.RecentTransactions[i] = toTransactionResponse(transaction)
	}
	for i := range summary.UpcomingBills {
		response.UpcomingBills[i] = toTransactionResponse(&summary.UpcomingBills[i])
	}
	for i, goal := range summary.Goals {
		response.Goals[i] = toGoalResponse(goal)
	}

	return c.JSON(http.StatusOK, response)
}
