package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgDocumentStore implementa DocumentStore sobre la tabla documents (JSONB).
type PgDocumentStore struct {
	pool *pgxpool.Pool
}

func NewPgDocumentStore(pool *pgxpool.Pool) *PgDocumentStore {
	return &PgDocumentStore{pool: pool}
}

func (s *PgDocumentStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	const query = `
		SELECT data
		FROM documents
		WHERE collection = $1 AND doc_key = $2
	`
	var data []byte
	err := s.pool.QueryRow(ctx, query, collection, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *PgDocumentStore) Set(ctx context.Context, collection, key string, data []byte) error {
	const query = `
		INSERT INTO documents (collection, doc_key, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW(), NOW())
		ON CONFLICT (collection, doc_key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	_, err := s.pool.Exec(ctx, query, collection, key, string(data))
	return err
}
