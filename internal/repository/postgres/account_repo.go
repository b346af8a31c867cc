package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, user_id, name, account_type, initial_balance, current_balance, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account        domain.Account
		accountType    string
		initialBalance pgtype.Numeric
		currentBalance pgtype.Numeric
	)
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&accountType,
		&initialBalance,
		&currentBalance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	account.Type = domain.AccountType(accountType)
	account.InitialBalance = pgNumericToDecimal(initialBalance)
	account.CurrentBalance = pgNumericToDecimal(currentBalance)
	return &account, nil
}

// Create creates a new account
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()

	initialBalance, err := decimalToPgNumeric(account.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid initial balance: %w", err)
	}
	currentBalance, err := decimalToPgNumeric(account.CurrentBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid current balance: %w", err)
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, user_id, name, account_type, initial_balance, current_balance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+accountColumns,
		account.ID, account.UserID, account.Name, string(account.Type), initialBalance, currentBalance)
	return scanAccount(row)
}

// GetByID retrieves an account by its ID for a user
func (r *AccountRepository) GetByID(userID uuid.UUID, id string) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 AND id = $2`,
		userID, id)
	return scanAccount(row)
}

// GetAllByUser retrieves all accounts for a user
func (r *AccountRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Account, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Update updates an account's name and type
func (r *AccountRepository) Update(userID uuid.UUID, id string, name string, accountType domain.AccountType) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE accounts SET name = $3, account_type = $4, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+accountColumns,
		userID, id, name, string(accountType))
	return scanAccount(row)
}

// Delete removes an account and its transactions (ON DELETE CASCADE)
func (r *AccountRepository) Delete(userID uuid.UUID, id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM accounts WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// AdjustBalance applies a signed delta to the cached current balance
func (r *AccountRepository) AdjustBalance(userID uuid.UUID, id string, delta decimal.Decimal) (*domain.Account, error) {
	ctx := context.Background()
	pgDelta, err := decimalToPgNumeric(delta)
	if err != nil {
		return nil, fmt.Errorf("invalid delta: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE accounts SET current_balance = current_balance + $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+accountColumns,
		userID, id, pgDelta)
	return scanAccount(row)
}

// SetBalance overwrites the cached current balance (reconciliation repair)
func (r *AccountRepository) SetBalance(userID uuid.UUID, id string, balance decimal.Decimal) (*domain.Account, error) {
	ctx := context.Background()
	pgBalance, err := decimalToPgNumeric(balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE accounts SET current_balance = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+accountColumns,
		userID, id, pgBalance)
	return scanAccount(row)
}
