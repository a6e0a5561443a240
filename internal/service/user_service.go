package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/repository"
)

// UserService registra usuarios y sus datos de ingreso.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
	now    func() time.Time
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type RegisterUserInput struct {
	UserID string
	Intake domain.Intake
}

// Register crea el usuario o actualiza su intake si ya existia. Sin UserID se genera un UUID.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (domain.User, error) {
	if missing := in.Intake.Missing(); len(missing) > 0 {
		return domain.User{}, fmt.Errorf("%w: missing fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	id := strings.TrimSpace(in.UserID)
	if id == "" {
		id = uuid.NewString()
	}

	now := s.now()
	user := domain.User{ID: id, CreatedAt: now}
	existing, err := s.users.GetByID(ctx, id)
	switch {
	case err == nil:
		user.CreatedAt = existing.CreatedAt
	case !errors.Is(err, repository.ErrNotFound):
		return domain.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	user.Intake = trimIntake(in.Intake)
	user.UpdatedAt = now

	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("user save failed", zap.String("user_id", id), zap.Error(err))
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	s.logger.Info("user registered", zap.String("user_id", id))
	return user, nil
}

// Get devuelve el usuario o ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

func trimIntake(in domain.Intake) domain.Intake {
	return domain.Intake{
		Name:     strings.TrimSpace(in.Name),
		Stage:    strings.TrimSpace(in.Stage),
		Locale:   strings.TrimSpace(in.Locale),
		Language: strings.TrimSpace(in.Language),
	}
}
