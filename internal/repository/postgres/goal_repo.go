package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budgety/budgety-backend/internal/domain"
)

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, user_id, name, target_amount, current_amount, color, created_at, updated_at`

func scanGoal(row pgx.Row) (*domain.SavingsGoal, error) {
	var (
		g       domain.SavingsGoal
		target  pgtype.Numeric
		current pgtype.Numeric
		color   string
	)
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&target,
		&current,
		&color,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	g.TargetAmount = pgNumericToDecimal(target)
	g.CurrentAmount = pgNumericToDecimal(current)
	g.Color = domain.GoalColor(color)
	return &g, nil
}

// Create creates a new savings goal
func (r *GoalRepository) Create(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	ctx := context.Background()

	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO savings_goals (id, user_id, name, target_amount, current_amount, color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+goalColumns,
		goal.ID, goal.UserID, goal.Name, target, current, string(goal.Color))
	return scanGoal(row)
}

// GetByID retrieves a savings goal by its ID for a user
func (r *GoalRepository) GetByID(userID uuid.UUID, id string) (*domain.SavingsGoal, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE user_id = $1 AND id = $2`,
		userID, id)
	return scanGoal(row)
}

// GetAllByUser retrieves all savings goals for a user
func (r *GoalRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE user_id = $1 ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []*domain.SavingsGoal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update replaces a savings goal's mutable fields
func (r *GoalRepository) Update(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	ctx := context.Background()

	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE savings_goals SET
			name = $3, target_amount = $4, current_amount = $5, color = $6, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+goalColumns,
		goal.UserID, goal.ID, goal.Name, target, current, string(goal.Color))
	return scanGoal(row)
}

// Delete removes a savings goal
func (r *GoalRepository) Delete(userID uuid.UUID, id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM savings_goals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}
