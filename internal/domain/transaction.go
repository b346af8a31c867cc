package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether the transaction type is one of the supported values.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
)

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Transaction is either a concrete cash event or, when IsRecurring is set, a
// template whose Date is the first anchor occurrence. Amount is always
// non-negative; the sign is implied by Type. Date is a civil date held at
// UTC midnight.
//
// YearlyMonth/YearlyDay are set only on yearly templates and are always
// derived from Date on write. The anchor date is authoritative; the derived
// fields exist for form display and can never diverge from it.
type Transaction struct {
	ID                  string          `json:"id"`
	UserID              uuid.UUID       `json:"userId"`
	AccountID           string          `json:"accountId"`
	Type                TransactionType `json:"type"`
	Category            string          `json:"category"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	Date                time.Time       `json:"date"`
	IsRecurring         bool            `json:"isRecurring"`
	RecurrenceFrequency *Frequency      `json:"recurrenceFrequency,omitempty"`
	YearlyMonth         *int            `json:"yearlyMonth,omitempty"`
	YearlyDay           *int            `json:"yearlyDay,omitempty"`
	ReceiptURL          *string         `json:"receiptUrl,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// Signed returns the amount with the sign implied by the transaction type:
// positive for income, negative for expense.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Frequency returns the recurrence frequency, or the empty string for
// non-recurring transactions.
func (t *Transaction) Frequency() Frequency {
	if t.RecurrenceFrequency == nil {
		return ""
	}
	return *t.RecurrenceFrequency
}

// TransactionFilters narrows transaction listings.
type TransactionFilters struct {
	AccountID *string
	Type      *TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int32
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(userID uuid.UUID, id string) (*Transaction, error)
	GetAllByUser(userID uuid.UUID, filters *TransactionFilters) ([]*Transaction, error)
	Update(transaction *Transaction) (*Transaction, error)
	Delete(userID uuid.UUID, id string) error
	// SumSignedByAccount returns income minus expenses over an account's
	// whole transaction log, for balance reconciliation.
	SumSignedByAccount(userID uuid.UUID, accountID string) (decimal.Decimal, error)
	SetReceiptURL(userID uuid.UUID, id string, receiptURL *string) (*Transaction, error)
}
