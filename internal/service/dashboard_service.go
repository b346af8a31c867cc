package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/schedule"
)

const recentTransactionLimit = 10

// DashboardService aggregates the dashboard summary
type DashboardService struct {
	transactionRepo   domain.TransactionRepository
	accountRepo       domain.AccountRepository
	goalRepo          domain.GoalRepository
	upcomingBillsDays int
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	transactionRepo domain.TransactionRepository,
	accountRepo domain.AccountRepository,
	goalRepo domain.GoalRepository,
	upcomingBillsDays int,
) *DashboardService {
	return &DashboardService{
		transactionRepo:   transactionRepo,
		accountRepo:       accountRepo,
		goalRepo:          goalRepo,
		upcomingBillsDays: upcomingBillsDays,
	}
}

// DashboardSummary is the dashboard payload
type DashboardSummary struct {
	CheckingBalance    decimal.Decimal       `json:"checkingBalance"`
	SavingsBalance     decimal.Decimal       `json:"savingsBalance"`
	TotalBalance       decimal.Decimal       `json:"totalBalance"`
	Accounts           []*domain.Account     `json:"accounts"`
	RecentTransactions []*domain.Transaction `json:"recentTransactions"`
	UpcomingBills      []domain.Transaction  `json:"upcomingBills"`
	Goals              []*domain.SavingsGoal `json:"goals"`
}

// GetSummary assembles account balances, recent activity, upcoming bills
// within the configured horizon, and goal progress
func (s *DashboardService) GetSummary(userID uuid.UUID, today time.Time) (*DashboardSummary, error) {
	accounts, err := s.accountRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	checking := decimal.Zero
	savings := decimal.Zero
	for _, account := range accounts {
		switch account.Type {
		case domain.AccountTypeChecking:
			checking = checking.Add(account.CurrentBalance)
		case domain.AccountTypeSavings:
			savings = savings.Add(account.CurrentBalance)
		}
	}

	recent, err := s.transactionRepo.GetAllByUser(userID, &domain.TransactionFilters{Limit: recentTransactionLimit})
	if err != nil {
		return nil, err
	}

	all, err := s.transactionRepo.GetAllByUser(userID, &domain.TransactionFilters{Limit: domain.MaxListLimit})
	if err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		CheckingBalance:    checking,
		SavingsBalance:     savings,
		TotalBalance:       checking.Add(savings),
		Accounts:           accounts,
		RecentTransactions: recent,
		UpcomingBills:      schedule.UpcomingBills(derefTransactions(all), s.upcomingBillsDays, today),
		Goals:              goals,
	}, nil
}
