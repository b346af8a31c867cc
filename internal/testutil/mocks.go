package testutil

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name, pictureURL *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name, pictureURL)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// UpdateName updates only the user's name by Auth0 ID
func (m *MockUserRepository) UpdateName(auth0ID string, name string) (*domain.User, error) {
	user, ok := m.Users[auth0ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Name = &name
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts  map[string]*domain.Account
	ByUser    map[uuid.UUID][]*domain.Account
	CreateFn  func(account *domain.Account) (*domain.Account, error)
	GetByIDFn func(userID uuid.UUID, id string) (*domain.Account, error)
	GetAllFn  func(userID uuid.UUID) ([]*domain.Account, error)
	UpdateFn  func(userID uuid.UUID, id string, name string, accountType domain.AccountType) (*domain.Account, error)
	DeleteFn  func(userID uuid.UUID, id string) error
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[string]*domain.Account),
		ByUser:   make(map[uuid.UUID][]*domain.Account),
	}
}

// Create creates a new account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	if m.CreateFn != nil {
		return m.CreateFn(account)
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	m.Accounts[account.ID] = account
	m.ByUser[account.UserID] = append(m.ByUser[account.UserID], account)
	return account, nil
}

// GetByID retrieves an account by its ID for a user
func (m *MockAccountRepository) GetByID(userID uuid.UUID, id string) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(userID, id)
	}
	account, ok := m.Accounts[id]
	if !ok || account.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// GetAllByUser retrieves all accounts for a user
func (m *MockAccountRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Account, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(userID)
	}
	accounts := m.ByUser[userID]
	if accounts == nil {
		return []*domain.Account{}, nil
	}
	return accounts, nil
}

// Update updates an account's name and type
func (m *MockAccountRepository) Update(userID uuid.UUID, id string, name string, accountType domain.AccountType) (*domain.Account, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(userID, id, name, accountType)
	}
	account, ok := m.Accounts[id]
	if !ok || account.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	account.Name = name
	account.Type = accountType
	return account, nil
}

// Delete removes an account
func (m *MockAccountRepository) Delete(userID uuid.UUID, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	account, ok := m.Accounts[id]
	if !ok || account.UserID != userID {
		return domain.ErrAccountNotFound
	}
	delete(m.Accounts, id)
	accounts := m.ByUser[userID]
	for i, acc := range accounts {
		if acc.ID == id {
			m.ByUser[userID] = append(accounts[:i], accounts[i+1:]...)
			break
		}
	}
	return nil
}

// AdjustBalance applies a signed delta to the cached current balance
func (m *MockAccountRepository) AdjustBalance(userID uuid.UUID, id string, delta decimal.Decimal) (*domain.Account, error) {
	account, ok := m.Accounts[id]
	if !ok || account.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	account.CurrentBalance = account.CurrentBalance.Add(delta)
	return account, nil
}

// SetBalance overwrites the cached current balance
func (m *MockAccountRepository) SetBalance(userID uuid.UUID, id string, balance decimal.Decimal) (*domain.Account, error) {
	account, ok := m.Accounts[id]
	if !ok || account.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	account.CurrentBalance = balance
	return account, nil
}

// AddAccount adds an account to the mock repository (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.Accounts[account.ID] = account
	m.ByUser[account.UserID] = append(m.ByUser[account.UserID], account)
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[string]*domain.Transaction
	ByUser       map[uuid.UUID][]*domain.Transaction
	CreateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	GetByIDFn    func(userID uuid.UUID, id string) (*domain.Transaction, error)
	GetAllFn     func(userID uuid.UUID, filters *domain.TransactionFilters) ([]*domain.Transaction, error)
	UpdateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	DeleteFn     func(userID uuid.UUID, id string) error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[string]*domain.Transaction),
		ByUser:       make(map[uuid.UUID][]*domain.Transaction),
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction)
	}
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	m.Transactions[transaction.ID] = transaction
	m.ByUser[transaction.UserID] = append(m.ByUser[transaction.UserID], transaction)
	return transaction, nil
}

// GetByID retrieves a transaction by its ID for a user
func (m *MockTransactionRepository) GetByID(userID uuid.UUID, id string) (*domain.Transaction, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(userID, id)
	}
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

// GetAllByUser retrieves all transactions for a user with optional filters
func (m *MockTransactionRepository) GetAllByUser(userID uuid.UUID, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(userID, filters)
	}
	transactions := m.ByUser[userID]
	var filtered []*domain.Transaction
	for _, t := range transactions {
		if filters != nil {
			if filters.AccountID != nil && t.AccountID != *filters.AccountID {
				continue
			}
			if filters.Type != nil && t.Type != *filters.Type {
				continue
			}
			if filters.StartDate != nil && t.Date.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && t.Date.After(*filters.EndDate) {
				continue
			}
		}
		filtered = append(filtered, t)
	}
	if filtered == nil {
		return []*domain.Transaction{}, nil
	}
	if filters != nil && filters.Limit > 0 && int32(len(filtered)) > filters.Limit {
		filtered = filtered[:filters.Limit]
	}
	return filtered, nil
}

// Update updates a transaction
func (m *MockTransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(transaction)
	}
	existing, ok := m.Transactions[transaction.ID]
	if !ok || existing.UserID != transaction.UserID {
		return nil, domain.ErrTransactionNotFound
	}
	*existing = *transaction
	return existing, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(userID uuid.UUID, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	transactions := m.ByUser[userID]
	for i, t := range transactions {
		if t.ID == id {
			m.ByUser[userID] = append(transactions[:i], transactions[i+1:]...)
			break
		}
	}
	return nil
}

// SumSignedByAccount returns income minus expenses over an account's transaction log
func (m *MockTransactionRepository) SumSignedByAccount(userID uuid.UUID, accountID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range m.ByUser[userID] {
		if t.AccountID != accountID {
			continue
		}
		total = total.Add(t.Signed())
	}
	return total, nil
}

// SetReceiptURL sets or clears a transaction's receipt URL
func (m *MockTransactionRepository) SetReceiptURL(userID uuid.UUID, id string, receiptURL *string) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	transaction.ReceiptURL = receiptURL
	return transaction, nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	m.Transactions[transaction.ID] = transaction
	m.ByUser[transaction.UserID] = append(m.ByUser[transaction.UserID], transaction)
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	Goals     map[string]*domain.SavingsGoal
	ByUser    map[uuid.UUID][]*domain.SavingsGoal
	CreateFn  func(goal *domain.SavingsGoal) (*domain.SavingsGoal, error)
	GetByIDFn func(userID uuid.UUID, id string) (*domain.SavingsGoal, error)
	GetAllFn  func(userID uuid.UUID) ([]*domain.SavingsGoal, error)
	UpdateFn  func(goal *domain.SavingsGoal) (*domain.SavingsGoal, error)
	DeleteFn  func(userID uuid.UUID, id string) error
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		Goals:  make(map[string]*domain.SavingsGoal),
		ByUser: make(map[uuid.UUID][]*domain.SavingsGoal),
	}
}

// Create creates a new savings goal
func (m *MockGoalRepository) Create(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	if m.CreateFn != nil {
		return m.CreateFn(goal)
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	m.Goals[goal.ID] = goal
	m.ByUser[goal.UserID] = append(m.ByUser[goal.UserID], goal)
	return goal, nil
}

// GetByID retrieves a savings goal by its ID for a user
func (m *MockGoalRepository) GetByID(userID uuid.UUID, id string) (*domain.SavingsGoal, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(userID, id)
	}
	goal, ok := m.Goals[id]
	if !ok || goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

// GetAllByUser retrieves all savings goals for a user
func (m *MockGoalRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(userID)
	}
	goals := m.ByUser[userID]
	if goals == nil {
		return []*domain.SavingsGoal{}, nil
	}
	return goals, nil
}

// Update updates a savings goal
func (m *MockGoalRepository) Update(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(goal)
	}
	existing, ok := m.Goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return nil, domain.ErrGoalNotFound
	}
	*existing = *goal
	return existing, nil
}

// Delete removes a savings goal
func (m *MockGoalRepository) Delete(userID uuid.UUID, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	goal, ok := m.Goals[id]
	if !ok || goal.UserID != userID {
		return domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	goals := m.ByUser[userID]
	for i, g := range goals {
		if g.ID == id {
			m.ByUser[userID] = append(goals[:i], goals[i+1:]...)
			break
		}
	}
	return nil
}

// AddGoal adds a savings goal to the mock repository (helper for tests)
func (m *MockGoalRepository) AddGoal(goal *domain.SavingsGoal) {
	m.Goals[goal.ID] = goal
	m.ByUser[goal.UserID] = append(m.ByUser[goal.UserID], goal)
}
