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

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, account_id, type, category, description, amount,
	transaction_date, is_recurring, recurrence_frequency, yearly_month, yearly_day,
	receipt_url, created_at, updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t         domain.Transaction
		txType    string
		amount    pgtype.Numeric
		frequency *string
	)
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.AccountID,
		&txType,
		&t.Category,
		&t.Description,
		&amount,
		&t.Date,
		&t.IsRecurring,
		&frequency,
		&t.YearlyMonth,
		&t.YearlyDay,
		&t.ReceiptURL,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	t.Type = domain.TransactionType(txType)
	t.Amount = pgNumericToDecimal(amount)
	// The column is DATE, but normalize anyway so a civil date never
	// surfaces re-expressed in the process-local zone
	t.Date = t.Date.UTC()
	if frequency != nil {
		f := domain.Frequency(*frequency)
		t.RecurrenceFrequency = &f
	}
	return &t, nil
}

func frequencyParam(t *domain.Transaction) *string {
	if t.RecurrenceFrequency == nil {
		return nil
	}
	s := string(*t.RecurrenceFrequency)
	return &s
}

// Create creates a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, user_id, account_id, type, category, description, amount,
			transaction_date, is_recurring, recurrence_frequency, yearly_month, yearly_day, receipt_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+transactionColumns,
		transaction.ID, transaction.UserID, transaction.AccountID, string(transaction.Type),
		transaction.Category, transaction.Description, amount, transaction.Date,
		transaction.IsRecurring, frequencyParam(transaction),
		transaction.YearlyMonth, transaction.YearlyDay, transaction.ReceiptURL)
	return scanTransaction(row)
}

// GetByID retrieves a transaction by its ID for a user
func (r *TransactionRepository) GetByID(userID uuid.UUID, id string) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 AND id = $2`,
		userID, id)
	return scanTransaction(row)
}

// GetAllByUser retrieves transactions for a user with optional filters,
// newest first
func (r *TransactionRepository) GetAllByUser(userID uuid.UUID, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	ctx := context.Background()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if filters != nil {
		if filters.AccountID != nil {
			args = append(args, *filters.AccountID)
			query += fmt.Sprintf(" AND account_id = $%d", len(args))
		}
		if filters.Type != nil {
			args = append(args, string(*filters.Type))
			query += fmt.Sprintf(" AND type = $%d", len(args))
		}
		if filters.StartDate != nil {
			args = append(args, *filters.StartDate)
			query += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
		}
		if filters.EndDate != nil {
			args = append(args, *filters.EndDate)
			query += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
		}
	}

	query += " ORDER BY transaction_date DESC, created_at DESC"

	limit := int32(domain.DefaultListLimit)
	if filters != nil && filters.Limit > 0 {
		limit = filters.Limit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// Update replaces a transaction's mutable fields
func (r *TransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions SET
			account_id = $3, type = $4, category = $5, description = $6, amount = $7,
			transaction_date = $8, is_recurring = $9, recurrence_frequency = $10,
			yearly_month = $11, yearly_day = $12, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+transactionColumns,
		transaction.UserID, transaction.ID, transaction.AccountID, string(transaction.Type),
		transaction.Category, transaction.Description, amount, transaction.Date,
		transaction.IsRecurring, frequencyParam(transaction),
		transaction.YearlyMonth, transaction.YearlyDay)
	return scanTransaction(row)
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(userID uuid.UUID, id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transactions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// SumSignedByAccount returns income minus expenses over an account's whole
// transaction log
func (r *TransactionRepository) SumSignedByAccount(userID uuid.UUID, accountID string) (decimal.Decimal, error) {
	ctx := context.Background()
	var sum pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE user_id = $1 AND account_id = $2`,
		userID, accountID).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(sum), nil
}

// SetReceiptURL sets or clears a transaction's receipt object path
func (r *TransactionRepository) SetReceiptURL(userID uuid.UUID, id string, receiptURL *string) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE transactions SET receipt_url = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+transactionColumns,
		userID, id, receiptURL)
	return scanTransaction(row)
}
