package repository

import (
	"context"

	"career-compass/internal/domain"
)

type TranscriptRepository interface {
	Save(ctx context.Context, doc domain.GameTranscript) error
	GetByUserID(ctx context.Context, userID string) (domain.GameTranscript, error)
}

type DocTranscriptRepository struct {
	store DocumentStore
}

func NewDocTranscriptRepository(store DocumentStore) *DocTranscriptRepository {
	return &DocTranscriptRepository{store: store}
}

func (r *DocTranscriptRepository) Save(ctx context.Context, doc domain.GameTranscript) error {
	return setJSON(ctx, r.store, domain.CollectionGameTranscript, doc.UserID, doc)
}

func (r *DocTranscriptRepository) GetByUserID(ctx context.Context, userID string) (domain.GameTranscript, error) {
	return getJSON[domain.GameTranscript](ctx, r.store, domain.CollectionGameTranscript, userID)
}
