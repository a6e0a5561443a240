package repository

import (
	"context"
	"errors"
	"time"

	"career-compass/internal/domain"
)

// SkillAnalysisRepository es la fuente de verdad del cache de analisis por usuario.
type SkillAnalysisRepository interface {
	Get(ctx context.Context, userID, pathTitle string) (domain.CachedSkillAnalysis, error)
	Put(ctx context.Context, userID string, entry domain.CachedSkillAnalysis) error
	List(ctx context.Context, userID string) (domain.SkillAnalysisDoc, error)
}

type DocSkillAnalysisRepository struct {
	store DocumentStore
	now   func() time.Time
}

func NewDocSkillAnalysisRepository(store DocumentStore) *DocSkillAnalysisRepository {
	return &DocSkillAnalysisRepository{store: store, now: time.Now}
}

func (r *DocSkillAnalysisRepository) Get(ctx context.Context, userID, pathTitle string) (domain.CachedSkillAnalysis, error) {
	doc, err := r.List(ctx, userID)
	if err != nil {
		return domain.CachedSkillAnalysis{}, err
	}
	entry, ok := doc.Entries[pathTitle]
	if !ok {
		return domain.CachedSkillAnalysis{}, ErrNotFound
	}
	return entry, nil
}

// Put agrega la entrada sin tocar las demas; si el titulo ya existia lo reemplaza.
func (r *DocSkillAnalysisRepository) Put(ctx context.Context, userID string, entry domain.CachedSkillAnalysis) error {
	doc, err := r.List(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]domain.CachedSkillAnalysis)
	}
	doc.UserID = userID
	doc.Entries[entry.PathTitle] = entry
	doc.UpdatedAt = r.now().UTC()
	return setJSON(ctx, r.store, domain.CollectionSkillAnalysis, userID, doc)
}

func (r *DocSkillAnalysisRepository) List(ctx context.Context, userID string) (domain.SkillAnalysisDoc, error) {
	return getJSON[domain.SkillAnalysisDoc](ctx, r.store, domain.CollectionSkillAnalysis, userID)
}
