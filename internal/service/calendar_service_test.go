package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/testutil"
	"github.com/budgety/budgety-backend/internal/util"
)

func setupCalendarService(t *testing.T) (*CalendarService, *testutil.MockAccountRepository, *testutil.MockTransactionRepository, *testutil.MockGoalRepository, uuid.UUID) {
	t.Helper()
	accountRepo := testutil.NewMockAccountRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	goalRepo := testutil.NewMockGoalRepository()
	svc := NewCalendarService(transactionRepo, accountRepo, goalRepo, domain.DefaultBucketMap())
	return svc, accountRepo, transactionRepo, goalRepo, uuid.New()
}

func TestGetMonthView(t *testing.T) {
	svc, accountRepo, transactionRepo, _, userID := setupCalendarService(t)

	accountRepo.AddAccount(&domain.Account{
		ID:             "acc-1",
		UserID:         userID,
		Name:           "Main",
		Type:           domain.AccountTypeChecking,
		CurrentBalance: decimal.NewFromInt(500),
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		ID:        "inc",
		UserID:    userID,
		AccountID: "acc-1",
		Type:      domain.TransactionTypeIncome,
		Category:  "Salary",
		Amount:    decimal.NewFromInt(2000),
		Date:      util.Date(2024, time.March, 1),
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		ID:        "rent",
		UserID:    userID,
		AccountID: "acc-1",
		Type:      domain.TransactionTypeExpense,
		Category:  "Rent",
		Amount:    decimal.NewFromInt(1200),
		Date:      util.Date(2024, time.March, 5),
	})

	view, err := svc.GetMonthView(userID, 2024, time.March, nil, util.Date(2024, time.March, 3))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if view.Year != 2024 || view.Month != 3 {
		t.Errorf("Expected 2024-03, got %d-%d", view.Year, view.Month)
	}
	if !view.StartBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected seed 500, got %s", view.StartBalance.String())
	}
	if len(view.Days) != 31 {
		t.Fatalf("Expected 31 days, got %d", len(view.Days))
	}
	if !view.Days[0].EndingBalance.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("Expected day 1 ending balance 2500, got %s", view.Days[0].EndingBalance.String())
	}
	if !view.Days[4].EndingBalance.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("Expected day 5 ending balance 1300, got %s", view.Days[4].EndingBalance.String())
	}
	if !view.Days[2].IsToday {
		t.Error("Expected day 3 flagged as today")
	}
	if !view.Summary.TotalIncome.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected total income 2000, got %s", view.Summary.TotalIncome.String())
	}
}

func TestGetMonthView_AccountScoped(t *testing.T) {
	svc, accountRepo, transactionRepo, _, userID := setupCalendarService(t)

	accountRepo.AddAccount(&domain.Account{
		ID: "acc-1", UserID: userID, Name: "Main",
		Type: domain.AccountTypeChecking, CurrentBalance: decimal.NewFromInt(100),
	})
	accountRepo.AddAccount(&domain.Account{
		ID: "acc-2", UserID: userID, Name: "Savings",
		Type: domain.AccountTypeSavings, CurrentBalance: decimal.NewFromInt(900),
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		ID: "t1", UserID: userID, AccountID: "acc-2",
		Type: domain.TransactionTypeExpense, Category: "Fees",
		Amount: decimal.NewFromInt(10), Date: util.Date(2024, time.March, 10),
	})

	accID := "acc-1"
	view, err := svc.GetMonthView(userID, 2024, time.March, &accID, util.Date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !view.StartBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected seed from acc-1 only, got %s", view.StartBalance.String())
	}
	for _, day := range view.Days {
		if len(day.Transactions) != 0 {
			t.Fatalf("Expected no acc-2 transactions in scoped view, day %d has %d", day.Day, len(day.Transactions))
		}
	}
}

func TestGetMonthView_UnknownAccount(t *testing.T) {
	svc, _, _, _, userID := setupCalendarService(t)

	accID := "missing"
	_, err := svc.GetMonthView(userID, 2024, time.March, &accID, util.Date(2024, time.March, 1))
	if err == nil {
		t.Fatal("Expected error for unknown account")
	}
}

func TestGetMonthView_GivingGoal(t *testing.T) {
	svc, accountRepo, _, goalRepo, userID := setupCalendarService(t)

	accountRepo.AddAccount(&domain.Account{
		ID: "acc-1", UserID: userID, Name: "Main",
		Type: domain.AccountTypeChecking, CurrentBalance: decimal.Zero,
	})
	goalRepo.AddGoal(&domain.SavingsGoal{
		ID: "g1", UserID: userID, Name: "giving",
		TargetAmount: decimal.NewFromInt(1200), Color: domain.GoalColorPurple,
	})

	view, err := svc.GetMonthView(userID, 2024, time.March, nil, util.Date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := decimal.NewFromInt(1200).Div(decimal.NewFromInt(12))
	if !view.Summary.MonthlyGiving.Equal(want) {
		t.Errorf("Expected monthly giving %s, got %s", want.String(), view.Summary.MonthlyGiving.String())
	}
}
