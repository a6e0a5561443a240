package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV es el subconjunto de go-redis que usan los stores; *redis.Client lo implementa.
type RedisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisDocumentStore implementa DocumentStore en Redis, sin expiracion.
type RedisDocumentStore struct {
	client RedisKV
	prefix string
}

func NewRedisDocumentStore(client RedisKV) *RedisDocumentStore {
	return &RedisDocumentStore{
		client: client,
		prefix: "docs:",
	}
}

func (s *RedisDocumentStore) key(collection, key string) string {
	return s.prefix + collection + ":" + key
}

func (s *RedisDocumentStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.key(collection, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *RedisDocumentStore) Set(ctx context.Context, collection, key string, data []byte) error {
	return s.client.Set(ctx, s.key(collection, key), data, 0).Err()
}
