package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/testutil"
	"github.com/budgety/budgety-backend/internal/util"
)

func setupTransactionService(t *testing.T) (*TransactionService, *testutil.MockAccountRepository, *testutil.MockTransactionRepository, uuid.UUID) {
	t.Helper()
	accountRepo := testutil.NewMockAccountRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	svc := NewTransactionService(transactionRepo, accountRepo)
	userID := uuid.New()
	accountRepo.AddAccount(&domain.Account{
		ID:             "acc-1",
		UserID:         userID,
		Name:           "Main",
		Type:           domain.AccountTypeChecking,
		InitialBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(1000),
	})
	return svc, accountRepo, transactionRepo, userID
}

func TestCreateTransaction_AdjustsBalance(t *testing.T) {
	svc, accountRepo, _, userID := setupTransactionService(t)

	created, err := svc.CreateTransaction(userID, TransactionInput{
		AccountID: "acc-1",
		Type:      domain.TransactionTypeExpense,
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(120),
		Date:      util.Date(2024, time.March, 5),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created.ID == "" {
		t.Error("Expected an assigned id")
	}

	account := accountRepo.Accounts["acc-1"]
	if !account.CurrentBalance.Equal(decimal.NewFromInt(880)) {
		t.Errorf("Expected balance 880 after expense, got %s", account.CurrentBalance.String())
	}
}

func TestCreateTransaction_NormalizesDate(t *testing.T) {
	svc, _, _, userID := setupTransactionService(t)

	loc := time.FixedZone("EST", -5*3600)
	created, err := svc.CreateTransaction(userID, TransactionInput{
		AccountID: "acc-1",
		Type:      domain.TransactionTypeIncome,
		Category:  "Salary",
		Amount:    decimal.NewFromInt(2000),
		Date:      time.Date(2024, time.March, 1, 18, 30, 0, 0, loc),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !created.Date.Equal(util.Date(2024, time.March, 1)) {
		t.Errorf("Expected date normalized to UTC midnight, got %v", created.Date)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	svc, _, _, userID := setupTransactionService(t)
	monthly := domain.FrequencyMonthly
	bogus := domain.Frequency("fortnightly")

	valid := TransactionInput{
		AccountID: "acc-1",
		Type:      domain.TransactionTypeExpense,
		Category:  "Rent",
		Amount:    decimal.NewFromInt(1200),
		Date:      util.Date(2024, time.January, 5),
	}

	tests := []struct {
		name    string
		mutate  func(*TransactionInput)
		wantErr error
	}{
		{"bad type", func(in *TransactionInput) { in.Type = "transfer" }, domain.ErrInvalidTransactionType},
		{"empty category", func(in *TransactionInput) { in.Category = "  " }, domain.ErrCategoryRequired},
		{"negative amount", func(in *TransactionInput) { in.Amount = decimal.NewFromInt(-5) }, domain.ErrInvalidAmount},
		{"zero date", func(in *TransactionInput) { in.Date = time.Time{} }, domain.ErrInvalidDate},
		{"recurring without frequency", func(in *TransactionInput) { in.IsRecurring = true }, domain.ErrInvalidFrequency},
		{"recurring with bad frequency", func(in *TransactionInput) { in.IsRecurring = true; in.Frequency = &bogus }, domain.ErrInvalidFrequency},
		{"unknown account", func(in *TransactionInput) { in.AccountID = "missing"; in.IsRecurring = true; in.Frequency = &monthly }, domain.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			_, err := svc.CreateTransaction(userID, input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateTransaction_DerivesYearlyFields(t *testing.T) {
	svc, _, _, userID := setupTransactionService(t)
	yearly := domain.FrequencyYearly

	created, err := svc.CreateTransaction(userID, TransactionInput{
		AccountID:   "acc-1",
		Type:        domain.TransactionTypeExpense,
		Category:    "Insurance",
		Amount:      decimal.NewFromInt(600),
		Date:        util.Date(2024, time.July, 14),
		IsRecurring: true,
		Frequency:   &yearly,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created.YearlyMonth == nil || *created.YearlyMonth != 7 {
		t.Errorf("Expected yearly month 7, got %v", created.YearlyMonth)
	}
	if created.YearlyDay == nil || *created.YearlyDay != 14 {
		t.Errorf("Expected yearly day 14, got %v", created.YearlyDay)
	}
}

func TestCreateTransaction_NonYearlyClearsAnchorFields(t *testing.T) {
	svc, _, _, userID := setupTransactionService(t)
	monthly := domain.FrequencyMonthly

	created, err := svc.CreateTransaction(userID, TransactionInput{
		AccountID:   "acc-1",
		Type:        domain.TransactionTypeExpense,
		Category:    "Rent",
		Amount:      decimal.NewFromInt(1200),
		Date:        util.Date(2024, time.January, 5),
		IsRecurring: true,
		Frequency:   &monthly,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created.YearlyMonth != nil || created.YearlyDay != nil {
		t.Error("Expected yearly fields unset for monthly recurrence")
	}
}

func TestUpdateTransaction_RevertsAndApplies(t *testing.T) {
	svc, accountRepo, _, userID := setupTransactionService(t)

	created, err := svc.CreateTransaction(userID, TransactionInput{
		AccountID: "acc-1",
		Type:      domain.TransactionTypeExpense,
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(100),
		Date:      util.Date(2024, time.March, 5),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// 1000 - 100 = 900

	_, err = svc.UpdateTransaction(userID, created.ID, TransactionInput{
		AccountID: "acc-1",
		Type:      domain.TransactionTypeIncome,
		Category:  "Refund",
		Amount:    decimal.NewFromInt(100),
		Date:      util.Date(2024, time.March, 6),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	account := accountRepo.Accounts["acc-1"]
	// 900 + 100 (revert) + 100 (income) = 1100
	if !account.CurrentBalance.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("Expected balance 1100 after update, got %s", account.CurrentBalance.String())
	}
}

func TestUpdateTransaction_MovesBetweenAccounts(t *testing.T) {
	svc, accountRepo, _, userID := setupTransactionService(t)
	accountRepo.AddAccount(&domain.Account{
		ID:             "acc-2",
		UserID:         userID,
		Name:           "Savings",
		Type:           domain.AccountTypeSavings,
		InitialBalance: decimal.NewFromInt(500),
		CurrentBalance: decimal.NewFromInt(500),
	})

	created, err := svc.CreateTransaction(userID, TransactionInput{
		AccountID: "acc-1",
		Type:      domain.TransactionTypeExpense,
		Category:  "Transfer Out",
		Amount:    decimal.NewFromInt(200),
		Date:      util.Date(2024, time.March, 5),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// acc-1: 800

	_, err = svc.UpdateTransaction(userID, created.ID, TransactionInput{
		AccountID: "acc-2",
		Type:      domain.TransactionTypeExpense,
		Category:  "Transfer Out",
		Amount:    decimal.NewFromInt(200),
		Date:      util.Date(2024, time.March, 5),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := accountRepo.Accounts["acc-1"].CurrentBalance; !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected acc-1 restored to 1000, got %s", got.String())
	}
	if got := accountRepo.Accounts["acc-2"].CurrentBalance; !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected acc-2 at 300, got %s", got.String())
	}
}

func TestDeleteTransaction_RevertsBalance(t *testing.T) {
	svc, accountRepo, _, userID := setupTransactionService(t)

	created, err := svc.CreateTransaction(userID, TransactionInput{
		AccountID: "acc-1",
		Type:      domain.TransactionTypeIncome,
		Category:  "Salary",
		Amount:    decimal.NewFromInt(2000),
		Date:      util.Date(2024, time.March, 1),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := svc.DeleteTransaction(userID, created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	account := accountRepo.Accounts["acc-1"]
	if !account.CurrentBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected balance restored to 1000, got %s", account.CurrentBalance.String())
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	svc, _, _, userID := setupTransactionService(t)

	err := svc.DeleteTransaction(userID, "missing")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestGetTransactions_LimitClamping(t *testing.T) {
	svc, _, transactionRepo, userID := setupTransactionService(t)

	var captured *domain.TransactionFilters
	transactionRepo.GetAllFn = func(id uuid.UUID, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
		captured = filters
		return []*domain.Transaction{}, nil
	}

	if _, err := svc.GetTransactions(userID, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if captured.Limit != domain.DefaultListLimit {
		t.Errorf("Expected default limit %d, got %d", domain.DefaultListLimit, captured.Limit)
	}

	if _, err := svc.GetTransactions(userID, &domain.TransactionFilters{Limit: 9999}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if captured.Limit != domain.MaxListLimit {
		t.Errorf("Expected limit clamped to %d, got %d", domain.MaxListLimit, captured.Limit)
	}
}
