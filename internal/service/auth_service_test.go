package service

import (
	"testing"

	"github.com/budgety/budgety-backend/internal/testutil"
)

func TestAuthenticateUser_NewUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(userRepo)

	name := "Ada"
	result, err := svc.AuthenticateUser("auth0|123", "ada@example.com", &name, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.IsNewUser {
		t.Error("Expected first login to create a new user")
	}
	if result.User.Email != "ada@example.com" {
		t.Errorf("Expected email preserved, got %s", result.User.Email)
	}
}

func TestAuthenticateUser_ExistingUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(userRepo)

	first, err := svc.AuthenticateUser("auth0|123", "ada@example.com", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := svc.AuthenticateUser("auth0|123", "ada@example.com", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if second.IsNewUser {
		t.Error("Expected second login to find the existing user")
	}
	if first.User.ID != second.User.ID {
		t.Error("Expected the same user on repeat login")
	}
}

func TestGetUserIDByAuth0ID(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(userRepo)

	result, err := svc.AuthenticateUser("auth0|123", "ada@example.com", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	id, err := svc.GetUserIDByAuth0ID("auth0|123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != result.User.ID {
		t.Errorf("Expected %s, got %s", result.User.ID, id)
	}

	if _, err := svc.GetUserIDByAuth0ID("auth0|unknown"); err == nil {
		t.Error("Expected error for unknown subject")
	}
}
