package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/repository"
)

func TestUserServiceRegisterGeneratesID(t *testing.T) {
	svc := NewUserService(zap.NewNop(), repository.NewDocUserRepository(repository.NewMemoryDocumentStore()))

	u, err := svc.Register(context.Background(), RegisterUserInput{Intake: domain.Intake{
		Name: " Asha ", Stage: "Class 12", Locale: "Pune", Language: "English",
	}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected generated id")
	}
	if u.Intake.Name != "Asha" {
		t.Fatalf("expected trimmed name, got %q", u.Intake.Name)
	}

	got, err := svc.Get(context.Background(), u.ID)
	if err != nil || got.ID != u.ID {
		t.Fatalf("expected stored user, got %+v (%v)", got, err)
	}
}

func TestUserServiceRegisterKeepsCreatedAt(t *testing.T) {
	svc := NewUserService(zap.NewNop(), repository.NewDocUserRepository(repository.NewMemoryDocumentStore()))
	first := fixedNow()
	svc.now = func() time.Time { return first }

	if _, err := svc.Register(context.Background(), RegisterUserInput{UserID: "asha", Intake: ashaIntake}); err != nil {
		t.Fatalf("register: %v", err)
	}
	svc.now = func() time.Time { return first.Add(time.Hour) }
	updated := ashaIntake
	updated.Locale = "Mumbai"
	u, err := svc.Register(context.Background(), RegisterUserInput{UserID: "asha", Intake: updated})
	if err != nil {
		t.Fatalf("register again: %v", err)
	}
	if !u.CreatedAt.Equal(first) || !u.UpdatedAt.Equal(first.Add(time.Hour)) {
		t.Fatalf("unexpected timestamps: %+v", u)
	}
	if u.Intake.Locale != "Mumbai" {
		t.Fatalf("expected intake update, got %+v", u.Intake)
	}
}

func TestUserServiceValidationAndNotFound(t *testing.T) {
	svc := NewUserService(zap.NewNop(), repository.NewDocUserRepository(repository.NewMemoryDocumentStore()))

	if _, err := svc.Register(context.Background(), RegisterUserInput{Intake: domain.Intake{Name: "Asha"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserServiceStoreFailure(t *testing.T) {
	svc := NewUserService(zap.NewNop(), repository.NewDocUserRepository(failingStore{}))
	_, err := svc.Register(context.Background(), RegisterUserInput{UserID: "asha", Intake: ashaIntake})
	if err == nil || errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected store error, got %v", err)
	}
}
