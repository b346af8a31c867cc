package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// Valid reports whether the account type is one of the supported values.
func (t AccountType) Valid() bool {
	return t == AccountTypeChecking || t == AccountTypeSavings
}

// Account is a single bank account. CurrentBalance is a cached aggregate
// maintained incrementally on every transaction write; InitialBalance is
// fixed at creation so the cache can be reconciled against the transaction
// log (current = initial + signed sum).
type Account struct {
	ID             string          `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByID(userID uuid.UUID, id string) (*Account, error)
	GetAllByUser(userID uuid.UUID) ([]*Account, error)
	Update(userID uuid.UUID, id string, name string, accountType AccountType) (*Account, error)
	Delete(userID uuid.UUID, id string) error
	// AdjustBalance applies a signed delta to the cached current balance.
	AdjustBalance(userID uuid.UUID, id string, delta decimal.Decimal) (*Account, error)
	// SetBalance overwrites the cached current balance (reconciliation repair).
	SetBalance(userID uuid.UUID, id string, balance decimal.Decimal) (*Account, error)
}
