package repository

import (
	"context"

	"career-compass/internal/domain"
)

type CareerAdviceRepository interface {
	Save(ctx context.Context, doc domain.StoredCareerAdvice) error
	GetByUserID(ctx context.Context, userID string) (domain.StoredCareerAdvice, error)
}

type DocCareerAdviceRepository struct {
	store DocumentStore
}

func NewDocCareerAdviceRepository(store DocumentStore) *DocCareerAdviceRepository {
	return &DocCareerAdviceRepository{store: store}
}

// Save conserva el created_at original si ya existia un documento para el usuario.
func (r *DocCareerAdviceRepository) Save(ctx context.Context, doc domain.StoredCareerAdvice) error {
	if prev, err := r.GetByUserID(ctx, doc.UserID); err == nil && !prev.CreatedAt.IsZero() {
		doc.CreatedAt = prev.CreatedAt
	}
	return setJSON(ctx, r.store, domain.CollectionCareerAdvice, doc.UserID, doc)
}

func (r *DocCareerAdviceRepository) GetByUserID(ctx context.Context, userID string) (domain.StoredCareerAdvice, error) {
	return getJSON[domain.StoredCareerAdvice](ctx, r.store, domain.CollectionCareerAdvice, userID)
}
