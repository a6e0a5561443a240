package repository

import (
	"context"

	"career-compass/internal/domain"
)

type ProfileRepository interface {
	Save(ctx context.Context, doc domain.StoredProfile) error
	GetByUserID(ctx context.Context, userID string) (domain.StoredProfile, error)
}

type DocProfileRepository struct {
	store DocumentStore
}

func NewDocProfileRepository(store DocumentStore) *DocProfileRepository {
	return &DocProfileRepository{store: store}
}

func (r *DocProfileRepository) Save(ctx context.Context, doc domain.StoredProfile) error {
	return setJSON(ctx, r.store, domain.CollectionUserProfiles, doc.UserID, doc)
}

func (r *DocProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.StoredProfile, error) {
	return getJSON[domain.StoredProfile](ctx, r.store, domain.CollectionUserProfiles, userID)
}
