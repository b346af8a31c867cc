package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/util"
	"github.com/budgety/budgety-backend/internal/websocket"
)

// TransactionService handles transaction-related business logic.
// Every write keeps the owning account's cached balance in step with the
// transaction log.
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	eventPublisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, accountRepo domain.AccountRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *TransactionService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// TransactionInput holds the input for creating or updating a transaction
type TransactionInput struct {
	AccountID   string
	Type        domain.TransactionType
	Category    string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	IsRecurring bool
	Frequency   *domain.Frequency
}

// validate checks the input and normalizes it in place
func (in *TransactionInput) validate() error {
	if !in.Type.Valid() {
		return domain.ErrInvalidTransactionType
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return domain.ErrCategoryRequired
	}
	if len(in.Category) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}
	if len(in.Description) > domain.MaxDescriptionLength {
		return domain.ErrNameTooLong
	}
	if in.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if in.Date.IsZero() {
		return domain.ErrInvalidDate
	}
	if in.IsRecurring {
		if in.Frequency == nil || !in.Frequency.Valid() {
			return domain.ErrInvalidFrequency
		}
	} else {
		in.Frequency = nil
	}
	// Normalize to a civil date at UTC midnight
	in.Date = util.Date(in.Date.Year(), in.Date.Month(), in.Date.Day())
	return nil
}

// apply copies the input onto a transaction, deriving the yearly anchor
// fields from the date. The derived fields can never diverge from Date.
func (in *TransactionInput) apply(t *domain.Transaction) {
	t.AccountID = in.AccountID
	t.Type = in.Type
	t.Category = in.Category
	t.Description = in.Description
	t.Amount = in.Amount
	t.Date = in.Date
	t.IsRecurring = in.IsRecurring
	t.RecurrenceFrequency = in.Frequency
	t.YearlyMonth = nil
	t.YearlyDay = nil
	if in.IsRecurring && in.Frequency != nil && *in.Frequency == domain.FrequencyYearly {
		month := int(in.Date.Month())
		day := in.Date.Day()
		t.YearlyMonth = &month
		t.YearlyDay = &day
	}
}

// CreateTransaction creates a new transaction and applies its signed amount
// to the account's cached balance
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input TransactionInput) (*domain.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Account must exist and belong to the user
	if _, err := s.accountRepo.GetByID(userID, input.AccountID); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{UserID: userID}
	input.apply(transaction)

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.AdjustBalance(userID, created.AccountID, created.Signed()); err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.TransactionCreated(created))
	return created, nil
}

// GetTransactions retrieves transactions for a user with optional filters
func (s *TransactionService) GetTransactions(userID uuid.UUID, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if filters == nil {
		filters = &domain.TransactionFilters{}
	}
	if filters.Limit <= 0 {
		filters.Limit = domain.DefaultListLimit
	}
	if filters.Limit > domain.MaxListLimit {
		filters.Limit = domain.MaxListLimit
	}
	return s.transactionRepo.GetAllByUser(userID, filters)
}

// GetTransactionByID retrieves a transaction by ID for a user
func (s *TransactionService) GetTransactionByID(userID uuid.UUID, id string) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(userID, id)
}

// UpdateTransaction replaces a transaction's fields. The old signed amount is
// reverted on the old account and the new one applied, which also covers
// moves between accounts.
func (s *TransactionService) UpdateTransaction(userID uuid.UUID, id string, input TransactionInput) (*domain.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if input.AccountID != existing.AccountID {
		if _, err := s.accountRepo.GetByID(userID, input.AccountID); err != nil {
			return nil, err
		}
	}

	oldAccountID := existing.AccountID
	oldSigned := existing.Signed()

	updated := *existing
	input.apply(&updated)

	result, err := s.transactionRepo.Update(&updated)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.AdjustBalance(userID, oldAccountID, oldSigned.Neg()); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.AdjustBalance(userID, result.AccountID, result.Signed()); err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.TransactionUpdated(result))
	return result, nil
}

// DeleteTransaction removes a transaction and reverts its signed amount from
// the account's cached balance
func (s *TransactionService) DeleteTransaction(userID uuid.UUID, id string) error {
	existing, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(userID, id); err != nil {
		return err
	}

	if _, err := s.accountRepo.AdjustBalance(userID, existing.AccountID, existing.Signed().Neg()); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.TransactionDeleted(map[string]string{"id": id}))
	return nil
}

// SetReceiptURL attaches or clears a receipt object path on a transaction
func (s *TransactionService) SetReceiptURL(userID uuid.UUID, id string, receiptURL *string) (*domain.Transaction, error) {
	updated, err := s.transactionRepo.SetReceiptURL(userID, id, receiptURL)
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.TransactionUpdated(updated))
	return updated, nil
}
