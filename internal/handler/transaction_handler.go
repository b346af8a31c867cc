package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/middleware"
	"github.com/budgety/budgety-backend/internal/service"
)

// dateLayout is the wire format for civil dates
const dateLayout = "2006-01-02"

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// TransactionRequest represents the create/update transaction request body
type TransactionRequest struct {
	AccountID   string  `json:"accountId"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	IsRecurring bool    `json:"isRecurring"`
	Frequency   *string `json:"recurrenceFrequency,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID                  string  `json:"id"`
	AccountID           string  `json:"accountId"`
	Type                string  `json:"type"`
	Category            string  `json:"category"`
	Description         string  `json:"description"`
	Amount              string  `json:"amount"`
	Date                string  `json:"date"`
	IsRecurring         bool    `json:"isRecurring"`
	RecurrenceFrequency *string `json:"recurrenceFrequency,omitempty"`
	YearlyMonth         *int    `json:"yearlyMonth,omitempty"`
	YearlyDay           *int    `json:"yearlyDay,omitempty"`
	ReceiptURL          *string `json:"receiptUrl,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// toInput parses and converts the request body to a service input
func (req *TransactionRequest) toInput() (service.TransactionInput, []ValidationError) {
	var input service.TransactionInput

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return input, []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		}
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		// Accept full timestamps too; the service normalizes to the civil date
		date, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return input, []ValidationError{
				{Field: "date", Message: "Must be a date in YYYY-MM-DD format"},
			}
		}
	}

	input = service.TransactionInput{
		AccountID:   req.AccountID,
		Type:        domain.TransactionType(req.Type),
		Category:    req.Category,
		Description: req.Description,
		Amount:      amount,
		Date:        date,
		IsRecurring: req.IsRecurring,
	}
	if req.Frequency != nil {
		f := domain.Frequency(*req.Frequency)
		input.Frequency = &f
	}
	return input, nil
}

// transactionErrorResponse maps service validation errors to API responses
func transactionErrorResponse(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "accountId", Message: "Account not found"},
		}), true
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: income, expense"},
		}), true
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Category is required"},
		}), true
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be non-negative"},
		}), true
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		}), true
	case errors.Is(err, domain.ErrInvalidFrequency):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "recurrenceFrequency", Message: "Frequency must be one of: daily, weekly, biweekly, monthly, yearly"},
		}), true
	}
	return nil, false
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, validationErrs := req.toInput()
	if validationErrs != nil {
		return NewValidationError(c, "Validation failed", validationErrs)
	}

	transaction, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		if resp, handled := transactionErrorResponse(c, err); handled {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Str("user_id", userID.String()).Str("transaction_id", transaction.ID).Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions handles GET /api/v1/transactions
// Supports accountId, type, startDate, endDate and limit query params
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters := &domain.TransactionFilters{}

	if accountID := c.QueryParam("accountId"); accountID != "" {
		filters.AccountID = &accountID
	}
	if typeParam := c.QueryParam("type"); typeParam != "" {
		transactionType := domain.TransactionType(typeParam)
		if !transactionType.Valid() {
			return NewValidationError(c, "Invalid type filter", []ValidationError{
				{Field: "type", Message: "Type must be one of: income, expense"},
			})
		}
		filters.Type = &transactionType
	}
	if startDate := c.QueryParam("startDate"); startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return NewValidationError(c, "Invalid startDate filter", []ValidationError{
				{Field: "startDate", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		filters.StartDate = &parsed
	}
	if endDate := c.QueryParam("endDate"); endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return NewValidationError(c, "Invalid endDate filter", []ValidationError{
				{Field: "endDate", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		filters.EndDate = &parsed
	}
	if limit := c.QueryParam("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 1 {
			return NewValidationError(c, "Invalid limit", []ValidationError{
				{Field: "limit", Message: "Must be a positive integer"},
			})
		}
		filters.Limit = int32(parsed)
	}

	transactions, err := h.transactionService.GetTransactions(userID, filters)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		response[i] = toTransactionResponse(transaction)
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id := c.Param("id")

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, validationErrs := req.toInput()
	if validationErrs != nil {
		return NewValidationError(c, "Validation failed", validationErrs)
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if resp, handled := transactionErrorResponse(c, err); handled {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	log.Info().Str("user_id", userID.String()).Str("transaction_id", transaction.ID).Msg("Transaction updated")
	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id := c.Param("id")

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Str("user_id", userID.String()).Str("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

// Helper function to convert domain.Transaction to TransactionResponse
func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          transaction.ID,
		AccountID:   transaction.AccountID,
		Type:        string(transaction.Type),
		Category:    transaction.Category,
		Description: transaction.Description,
		Amount:      transaction.Amount.StringFixed(2),
		Date:        transaction.Date.Format(dateLayout),
		IsRecurring: transaction.IsRecurring,
		YearlyMonth: transaction.YearlyMonth,
		YearlyDay:   transaction.YearlyDay,
		ReceiptURL:  transaction.ReceiptURL,
		CreatedAt:   transaction.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   transaction.UpdatedAt.Format(time.RFC3339),
	}
	if transaction.RecurrenceFrequency != nil {
		frequency := string(*transaction.RecurrenceFrequency)
		resp.RecurrenceFrequency = &frequency
	}
	return resp
}
