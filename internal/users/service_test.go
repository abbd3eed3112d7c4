package users

import (
	"context"
	"errors"
	"testing"
)

func TestSignupAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "Tenant@Example.com", "hunter2secret", "Pat Tenant", "")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.Role != RoleTenant {
		t.Fatalf("expected default role tenant, got %q", user.Role)
	}
	if user.Email != "tenant@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.PasswordHash == "hunter2secret" {
		t.Fatal("password stored in the clear")
	}

	got, _, err := svc.Login(ctx, "tenant@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("login returned user %q, want %q", got.ID, user.ID)
	}

	if _, _, err := svc.Login(ctx, "tenant@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "a@example.com", "password123", "A", RoleLandlord); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, _, err := svc.Signup(ctx, "A@example.com", "password456", "B", RoleTenant); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{name: "bad email", email: "not-an-email", password: "password123", role: RoleTenant},
		{name: "short password", email: "ok@example.com", password: "short", role: RoleTenant},
		{name: "unknown role", email: "ok@example.com", password: "password123", role: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Signup(ctx, tt.email, tt.password, "X", tt.role); err == nil {
				t.Fatal("expected signup to fail")
			}
		})
	}
}
