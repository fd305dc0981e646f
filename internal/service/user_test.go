package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tradeline/jobtrack/api/internal/model"
)

// ============================================================================
// Mock Repository
// ============================================================================

type mockUserRepo struct {
	getFunc    func(ctx context.Context) (*model.User, error)
	updateFunc func(ctx context.Context, user *model.User) (*model.User, error)
}

func (m *mockUserRepo) Get(ctx context.Context) (*model.User, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) (*model.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return user, nil
}

func storedUser() *model.User {
	phone := "555-0100"
	return &model.User{
		ID:           "user:1",
		Name:         "Sam Porter",
		Email:        "sam@example.com",
		Phone:        &phone,
		PasswordHash: "old-hash",
	}
}

// ============================================================================
// Profile Tests
// ============================================================================

func TestGetProfile_Missing_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewUserService(UserServiceConfig{Repo: &mockUserRepo{}})

	_, err := svc.GetProfile(ctx)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateProfile_PartialUpdateKeepsOtherFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &mockUserRepo{
		getFunc: func(ctx context.Context) (*model.User, error) {
			return storedUser(), nil
		},
	}
	svc := NewUserService(UserServiceConfig{Repo: repo})

	name := "Sam P. Porter"
	user, err := svc.UpdateProfile(ctx, &model.UpdateUserRequest{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != name {
		t.Errorf("expected updated name, got %q", user.Name)
	}
	if user.Email != "sam@example.com" {
		t.Errorf("expected email untouched, got %q", user.Email)
	}
	if user.PasswordHash != "old-hash" {
		t.Error("expected password hash untouched without a new password")
	}
}

func TestUpdateProfile_PasswordHashed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &mockUserRepo{
		getFunc: func(ctx context.Context) (*model.User, error) {
			return storedUser(), nil
		},
	}
	svc := NewUserService(UserServiceConfig{Repo: repo})

	password := "correct horse battery"
	user, err := svc.UpdateProfile(ctx, &model.UpdateUserRequest{Password: &password})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordHash == password {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestUpdateProfile_ShortPassword_Rejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &mockUserRepo{
		getFunc: func(ctx context.Context) (*model.User, error) {
			return storedUser(), nil
		},
	}
	svc := NewUserService(UserServiceConfig{Repo: repo})

	password := "short"
	_, err := svc.UpdateProfile(ctx, &model.UpdateUserRequest{Password: &password})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}
