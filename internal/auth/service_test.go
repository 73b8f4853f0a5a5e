package auth

import (
	"context"
	"errors"
	"testing"
)

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	password := "Password@123"

	_, err := service.Register(context.Background(), "Test User", "test@example.com", password, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["test@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}

	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
	if user.Role != RoleTraveler {
		t.Fatalf("expected default role %s, got %s", RoleTraveler, user.Role)
	}
}

func TestRegister_Rejections(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	ctx := context.Background()

	if _, err := service.Register(ctx, "Agent", "Agent@Example.com", "Password@123", RoleAgent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name, email, password, role string
		want                        error
	}{
		{"", "a@example.com", "Password@123", "", ErrMissingFields},
		{"A", "b@example.com", "short", "", ErrWeakPassword},
		{"A", "c@example.com", "Password@123", "ADMIN", ErrInvalidRole},
		{"A", "agent@example.com", "Password@123", "", ErrEmailExists},
	}
	for _, tc := range cases {
		if _, err := service.Register(ctx, tc.name, tc.email, tc.password, tc.role); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.email, tc.want, err)
		}
	}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	service := NewService(NewInMemoryUserRepository())
	ctx := context.Background()

	registered, err := service.Register(ctx, "Agent", "agent@example.com", "Password@123", RoleAgent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, token, err := service.Login(ctx, " AGENT@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID || token == "" {
		t.Fatalf("unexpected login result %+v %q", user, token)
	}

	userID, _, role, err := ValidateToken(token)
	if err != nil || userID != registered.ID || role != RoleAgent {
		t.Fatalf("unexpected claims %s %s %v", userID, role, err)
	}

	if _, _, err := service.Login(ctx, "agent@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := service.Login(ctx, "nobody@example.com", "Password@123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
