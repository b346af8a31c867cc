package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalColor string

const (
	GoalColorBlue   GoalColor = "blue"
	GoalColorGreen  GoalColor = "green"
	GoalColorPurple GoalColor = "purple"
	GoalColorOrange GoalColor = "orange"
	GoalColorRed    GoalColor = "red"
)

// Valid reports whether the color is one of the supported values.
func (c GoalColor) Valid() bool {
	switch c {
	case GoalColorBlue, GoalColorGreen, GoalColorPurple, GoalColorOrange, GoalColorRed:
		return true
	}
	return false
}

// SavingsGoal tracks progress toward a named savings target.
type SavingsGoal struct {
	ID            string          `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Color         GoalColor       `json:"color"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type GoalRepository interface {
	Create(goal *SavingsGoal) (*SavingsGoal, error)
	GetByID(userID uuid.UUID, id string) (*SavingsGoal, error)
	GetAllByUser(userID uuid.UUID) ([]*SavingsGoal, error)
	Update(goal *SavingsGoal) (*SavingsGoal, error)
	Delete(userID uuid.UUID, id string) error
}
