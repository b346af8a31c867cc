package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/websocket"
)

// AccountService handles account-related business logic
type AccountService struct {
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
	eventPublisher  websocket.EventPublisher
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *AccountService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *AccountService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateAccountInput holds the input for creating an account
type CreateAccountInput struct {
	Name           string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new account. The initial balance seeds the cached
// current balance.
func (s *AccountService) CreateAccount(userID uuid.UUID, input CreateAccountInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	account := &domain.Account{
		UserID:         userID,
		Name:           name,
		Type:           input.Type,
		InitialBalance: input.InitialBalance,
		CurrentBalance: input.InitialBalance,
	}

	created, err := s.accountRepo.Create(account)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.AccountCreated(created))
	return created, nil
}

// GetAccounts retrieves all accounts for a user
func (s *AccountService) GetAccounts(userID uuid.UUID) ([]*domain.Account, error) {
	return s.accountRepo.GetAllByUser(userID)
}

// GetAccountByID retrieves an account by ID for a user
func (s *AccountService) GetAccountByID(userID uuid.UUID, id string) (*domain.Account, error) {
	return s.accountRepo.GetByID(userID, id)
}

// UpdateAccount updates an account's name and type
func (s *AccountService) UpdateAccount(userID uuid.UUID, id string, name string, accountType domain.AccountType) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !accountType.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	updated, err := s.accountRepo.Update(userID, id, name, accountType)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.AccountUpdated(updated))
	return updated, nil
}

// DeleteAccount removes an account
func (s *AccountService) DeleteAccount(userID uuid.UUID, id string) error {
	if err := s.accountRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.AccountDeleted(map[string]string{"id": id}))
	return nil
}

// ReconcileResult reports a balance reconciliation check
type ReconcileResult struct {
	Account         *domain.Account `json:"account"`
	DerivedBalance  decimal.Decimal `json:"derivedBalance"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	Drift           decimal.Decimal `json:"drift"`
	Repaired        bool            `json:"repaired"`
}

// Reconcile recomputes an account's balance from its transaction log
// (initial balance plus signed sum) and repairs the cached balance if it
// has drifted.
func (s *AccountService) Reconcile(userID uuid.UUID, id string) (*ReconcileResult, error) {
	account, err := s.accountRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	sum, err := s.transactionRepo.SumSignedByAccount(userID, id)
	if err != nil {
		return nil, err
	}

	derived := account.InitialBalance.Add(sum)
	drift := account.CurrentBalance.Sub(derived)

	result := &ReconcileResult{
		Account:         account,
		DerivedBalance:  derived,
		PreviousBalance: account.CurrentBalance,
		Drift:           drift,
	}

	if !drift.IsZero() {
		repaired, err := s.accountRepo.SetBalance(userID, id, derived)
		if err != nil {
			return nil, err
		}
		log.Warn().
			Str("user_id", userID.String()).
			Str("account_id", id).
			Str("drift", drift.String()).
			Msg("Repaired drifted account balance")
		result.Account = repaired
		result.Repaired = true
		s.publishEvent(userID, websocket.AccountUpdated(repaired))
	}

	return result, nil
}
