package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/service"
	"github.com/budgety/budgety-backend/internal/testutil"
)

func newGoalHandler() (*GoalHandler, *testutil.MockGoalRepository) {
	goalRepo := testutil.NewMockGoalRepository()
	goalService := service.NewGoalService(goalRepo)
	return NewGoalHandler(goalService), goalRepo
}

func TestCreateGoal_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newGoalHandler()
	userID := uuid.New()

	reqBody := `{"name": "Vacation", "targetAmount": "3000.00", "color": "green"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupUserContext(c, userID)

	if err := handler.CreateGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Name != "Vacation" {
		t.Errorf("Expected name 'Vacation', got %s", response.Name)
	}
	if response.TargetAmount != "3000.00" {
		t.Errorf("Expected target '3000.00', got %s", response.TargetAmount)
	}
	if response.CurrentAmount != "0.00" {
		t.Errorf("Expected current '0.00', got %s", response.CurrentAmount)
	}
	if response.Color != "green" {
		t.Errorf("Expected color 'green', got %s", response.Color)
	}
}

func TestCreateGoal_Validation(t *testing.T) {
	e := echo.New()
	handler, _ := newGoalHandler()
	userID := uuid.New()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"name": "", "targetAmount": "100", "color": "blue"}`},
		{"bad target", `{"name": "Car", "targetAmount": "lots", "color": "blue"}`},
		{"negative target", `{"name": "Car", "targetAmount": "-100", "color": "blue"}`},
		{"bad color", `{"name": "Car", "targetAmount": "100", "color": "mauve"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			setupUserContext(c, userID)

			if err := handler.CreateGoal(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestContributeToGoal(t *testing.T) {
	e := echo.New()
	handler, goalRepo := newGoalHandler()
	userID := uuid.New()

	goalRepo.AddGoal(&domain.SavingsGoal{
		ID:            "goal-1",
		UserID:        userID,
		Name:          "Emergency Fund",
		TargetAmount:  decimal.NewFromInt(5000),
		CurrentAmount: decimal.NewFromInt(200),
		Color:         domain.GoalColorBlue,
	})

	reqBody := `{"amount": "150.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/goal-1/contribute", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("goal-1")

	setupUserContext(c, userID)

	if err := handler.ContributeToGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.CurrentAmount != "350.00" {
		t.Errorf("Expected current '350.00', got %s", response.CurrentAmount)
	}
}

func TestContributeToGoal_OverdrawRejected(t *testing.T) {
	e := echo.New()
	handler, goalRepo := newGoalHandler()
	userID := uuid.New()

	goalRepo.AddGoal(&domain.SavingsGoal{
		ID:            "goal-1",
		UserID:        userID,
		Name:          "Emergency Fund",
		TargetAmount:  decimal.NewFromInt(5000),
		CurrentAmount: decimal.NewFromInt(100),
		Color:         domain.GoalColorBlue,
	})

	reqBody := `{"amount": "-250.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/goal-1/contribute", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("goal-1")

	setupUserContext(c, userID)

	if err := handler.ContributeToGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDeleteGoal_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newGoalHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/goals/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	setupUserContext(c, uuid.New())

	if err := handler.DeleteGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
