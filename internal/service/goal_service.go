package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/websocket"
)

// GoalService handles savings goal business logic
type GoalService struct {
	goalRepo       domain.GoalRepository
	eventPublisher websocket.EventPublisher
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *GoalService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *GoalService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// GoalInput holds the input for creating or updating a savings goal
type GoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Color         domain.GoalColor
}

func (in *GoalInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.ErrNameRequired
	}
	if len(in.Name) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}
	if in.TargetAmount.IsNegative() || in.CurrentAmount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if !in.Color.Valid() {
		return domain.ErrInvalidGoalColor
	}
	return nil
}

// CreateGoal creates a new savings goal
func (s *GoalService) CreateGoal(userID uuid.UUID, input GoalInput) (*domain.SavingsGoal, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	goal := &domain.SavingsGoal{
		UserID:        userID,
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
		Color:         input.Color,
	}

	created, err := s.goalRepo.Create(goal)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.GoalCreated(created))
	return created, nil
}

// GetGoals retrieves all savings goals for a user
func (s *GoalService) GetGoals(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	return s.goalRepo.GetAllByUser(userID)
}

// GetGoalByID retrieves a savings goal by ID for a user
func (s *GoalService) GetGoalByID(userID uuid.UUID, id string) (*domain.SavingsGoal, error) {
	return s.goalRepo.GetByID(userID, id)
}

// UpdateGoal replaces a goal's fields
func (s *GoalService) UpdateGoal(userID uuid.UUID, id string, input GoalInput) (*domain.SavingsGoal, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.TargetAmount = input.TargetAmount
	existing.CurrentAmount = input.CurrentAmount
	existing.Color = input.Color

	updated, err := s.goalRepo.Update(existing)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.GoalUpdated(updated))
	return updated, nil
}

// Contribute adds a signed amount to a goal's progress. Negative amounts
// withdraw; the balance can never go below zero.
func (s *GoalService) Contribute(userID uuid.UUID, id string, amount decimal.Decimal) (*domain.SavingsGoal, error) {
	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	next := goal.CurrentAmount.Add(amount)
	if next.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	goal.CurrentAmount = next

	updated, err := s.goalRepo.Update(goal)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.GoalUpdated(updated))
	return updated, nil
}

// DeleteGoal removes a savings goal
func (s *GoalService) DeleteGoal(userID uuid.UUID, id string) error {
	if err := s.goalRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.GoalDeleted(map[string]string{"id": id}))
	return nil
}
