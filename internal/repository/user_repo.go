package repository

import (
	"context"

	"career-compass/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// DocUserRepository implementa UserRepository sobre un DocumentStore.
type DocUserRepository struct {
	store DocumentStore
}

func NewDocUserRepository(store DocumentStore) *DocUserRepository {
	return &DocUserRepository{store: store}
}

func (r *DocUserRepository) Save(ctx context.Context, user domain.User) error {
	return setJSON(ctx, r.store, domain.CollectionUsers, user.ID, user)
}

func (r *DocUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return getJSON[domain.User](ctx, r.store, domain.CollectionUsers, id)
}
