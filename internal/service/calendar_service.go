package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/schedule"
)

// CalendarService assembles the month calendar view: per-day transaction
// occurrences with running balances plus the monthly summary.
type CalendarService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	goalRepo        domain.GoalRepository
	buckets         domain.BucketMap
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(
	transactionRepo domain.TransactionRepository,
	accountRepo domain.AccountRepository,
	goalRepo domain.GoalRepository,
	buckets domain.BucketMap,
) *CalendarService {
	return &CalendarService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		goalRepo:        goalRepo,
		buckets:         buckets,
	}
}

// MonthView is the full calendar payload for one month
type MonthView struct {
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	StartBalance decimal.Decimal       `json:"startBalance"`
	Days         []schedule.DaySummary `json:"days"`
	Summary      schedule.Summary      `json:"summary"`
	AccountID    *string               `json:"accountId,omitempty"`
}

// GetMonthView builds the calendar for a month. When accountID is set the
// view is scoped to that account and seeded with its balance; otherwise all
// transactions are included and the seed is the sum of account balances.
func (s *CalendarService) GetMonthView(userID uuid.UUID, year int, month time.Month, accountID *string, today time.Time) (*MonthView, error) {
	seed, err := s.seedBalance(userID, accountID)
	if err != nil {
		return nil, err
	}

	filters := &domain.TransactionFilters{AccountID: accountID, Limit: domain.MaxListLimit}
	rows, err := s.transactionRepo.GetAllByUser(userID, filters)
	if err != nil {
		return nil, err
	}
	transactions := derefTransactions(rows)

	goalRows, err := s.goalRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}
	goals := make([]domain.SavingsGoal, len(goalRows))
	for i, g := range goalRows {
		goals[i] = *g
	}

	return &MonthView{
		Year:         year,
		Month:        int(month),
		StartBalance: seed,
		Days:         schedule.DayList(transactions, year, month, seed, today),
		Summary:      schedule.MonthlySummary(transactions, goals, s.buckets, year, month),
		AccountID:    accountID,
	}, nil
}

// seedBalance resolves the balance the month's running totals start from
func (s *CalendarService) seedBalance(userID uuid.UUID, accountID *string) (decimal.Decimal, error) {
	if accountID != nil {
		account, err := s.accountRepo.GetByID(userID, *accountID)
		if err != nil {
			return decimal.Zero, err
		}
		return account.CurrentBalance, nil
	}

	accounts, err := s.accountRepo.GetAllByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.CurrentBalance)
	}
	return total, nil
}

func derefTransactions(rows []*domain.Transaction) []domain.Transaction {
	transactions := make([]domain.Transaction, len(rows))
	for i, t := range rows {
		transactions[i] = *t
	}
	return transactions
}
