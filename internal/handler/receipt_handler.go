package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/middleware"
	"github.com/budgety/budgety-backend/internal/service"
)

// ReceiptHandler handles receipt image HTTP requests
type ReceiptHandler struct {
	receiptService     *service.ReceiptService
	transactionService *service.TransactionService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService, transactionService *service.TransactionService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService:     receiptService,
		transactionService: transactionService,
	}
}

// UploadReceiptResponse represents the upload response
type UploadReceiptResponse struct {
	ID          string              `json:"id"`
	ReceiptURL  string              `json:"receiptUrl"`
	Transaction TransactionResponse `json:"transaction"`
}

// ReceiptURLsResponse represents presigned download URLs for a receipt
type ReceiptURLsResponse struct {
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	DisplayURL   string `json:"displayUrl,omitempty"`
	OriginalURL  string `json:"originalUrl,omitempty"`
}

// UploadReceipt handles POST /api/v1/transactions/:id/receipt
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	// If storage isn't configured, don't attempt to process/upload (would panic on nil storage).
	if !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	}

	transactionID := c.Param("id")

	// Verify transaction ownership before touching storage
	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("transaction_id", transactionID).Msg("Failed to load transaction")
		return NewInternalError(c, "Failed to load transaction")
	}

	// Parse multipart form
	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	// Replace any existing receipt
	if transaction.ReceiptURL != nil {
		if err := h.receiptService.DeleteAllVariants(c.Request().Context(), *transaction.ReceiptURL); err != nil {
			log.Warn().Err(err).Str("transaction_id", transactionID).Msg("Failed to delete previous receipt")
		}
	}

	metadata, err := h.receiptService.ProcessAndUpload(c.Request().Context(), userID, transactionID, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReceiptTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 5MB"},
			})
		case errors.Is(err, service.ErrInvalidFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: JPEG, PNG, WebP"},
			})
		case errors.Is(err, service.ErrImageTooSmall):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Image too small. Minimum 50x50 pixels"},
			})
		case errors.Is(err, service.ErrInvalidImageData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid image data"},
			})
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Str("transaction_id", transactionID).Msg("Failed to upload receipt")
			return NewInternalError(c, "Failed to upload receipt")
		}
	}

	// Record the display variant's object path on the transaction
	updated, err := h.transactionService.SetReceiptURL(userID, transactionID, &metadata.DisplayKey)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("Failed to attach receipt to transaction")
		return NewInternalError(c, "Failed to attach receipt to transaction")
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("transaction_id", transactionID).
		Str("receipt_id", metadata.ID).
		Msg("Receipt uploaded")

	return c.JSON(http.StatusCreated, UploadReceiptResponse{
		ID:          metadata.ID,
		ReceiptURL:  metadata.DisplayKey,
		Transaction: toTransactionResponse(updated),
	})
}

// GetReceipt handles GET /api/v1/transactions/:id/receipt
// Returns short-lived presigned download URLs for the receipt variants.
func (h *ReceiptHandler) GetReceipt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt downloads are disabled (storage not configured)")
	}

	transactionID := c.Param("id")

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("transaction_id", transactionID).Msg("Failed to load transaction")
		return NewInternalError(c, "Failed to load transaction")
	}

	if transaction.ReceiptURL == nil {
		return NewNotFoundError(c, "Transaction has no receipt")
	}

	urls, err := h.receiptService.PresignVariants(c.Request().Context(), *transaction.ReceiptURL)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("Failed to presign receipt URLs")
		return NewInternalError(c, "Failed to generate receipt URLs")
	}

	return c.JSON(http.StatusOK, ReceiptURLsResponse{
		ThumbnailURL: urls["thumb"],
		DisplayURL:   urls["display"],
		OriginalURL:  urls["original"],
	})
}

// DeleteReceipt handles DELETE /api/v1/transactions/:id/receipt
func (h *ReceiptHandler) DeleteReceipt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt deletion is disabled (storage not configured)")
	}

	transactionID := c.Param("id")

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("transaction_id", transactionID).Msg("Failed to load transaction")
		return NewInternalError(c, "Failed to load transaction")
	}

	if transaction.ReceiptURL == nil {
		return NewNotFoundError(c, "Transaction has no receipt")
	}

	if err := h.receiptService.DeleteAllVariants(c.Request().Context(), *transaction.ReceiptURL); err != nil {
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("Failed to delete receipt")
		return NewInternalError(c, "Failed to delete receipt")
	}

	if _, err := h.transactionService.SetReceiptURL(userID, transactionID, nil); err != nil {
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("Failed to detach receipt from transaction")
		return NewInternalError(c, "Failed to detach receipt from transaction")
	}

	log.Info().Str("user_id", userID.String()).Str("transaction_id", transactionID).Msg("Receipt deleted")
	return c.NoContent(http.StatusNoContent)
}
