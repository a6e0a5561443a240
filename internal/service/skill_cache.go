package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"career-compass/internal/domain"
	"career-compass/internal/repository"
)

// SkillCache es la capa rapida delante del documento skillAnalysis. Es solo una optimizacion de latencia:
// un miss o un error nunca cambia el resultado, solo obliga a leer el documento.
type SkillCache interface {
	Get(ctx context.Context, userID, pathTitle string) (domain.CachedSkillAnalysis, bool, error)
	Set(ctx context.Context, userID string, entry domain.CachedSkillAnalysis) error
}

type memorySkillCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memorySkillItem
}

type memorySkillItem struct {
	entry     domain.CachedSkillAnalysis
	expiresAt time.Time
}

// NewMemorySkillCache crea un cache en proceso; ttl <= 0 significa sin expiracion.
func NewMemorySkillCache(ttl time.Duration) SkillCache {
	return &memorySkillCache{
		ttl:   ttl,
		items: make(map[string]memorySkillItem),
	}
}

func skillCacheKey(userID, pathTitle string) string {
	return userID + "\x00" + pathTitle
}

func (c *memorySkillCache) Get(_ context.Context, userID, pathTitle string) (domain.CachedSkillAnalysis, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := skillCacheKey(userID, pathTitle)
	item, ok := c.items[key]
	if !ok {
		return domain.CachedSkillAnalysis{}, false, nil
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		delete(c.items, key)
		return domain.CachedSkillAnalysis{}, false, nil
	}
	return item.entry, true, nil
}

func (c *memorySkillCache) Set(_ context.Context, userID string, entry domain.CachedSkillAnalysis) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	item := memorySkillItem{entry: entry}
	if c.ttl > 0 {
		item.expiresAt = time.Now().Add(c.ttl)
	}
	c.items[skillCacheKey(userID, entry.PathTitle)] = item
	return nil
}

type redisSkillCache struct {
	client repository.RedisKV
	prefix string
	ttl    time.Duration
}

// NewRedisSkillCache crea el cache sobre Redis; devuelve nil si no hay cliente.
func NewRedisSkillCache(client repository.RedisKV, ttl time.Duration) SkillCache {
	if client == nil {
		return nil
	}
	return &redisSkillCache{
		client: client,
		prefix: "skill:analysis:",
		ttl:    ttl,
	}
}

func (c *redisSkillCache) key(userID, pathTitle string) string {
	return c.prefix + userID + ":" + pathTitle
}

func (c *redisSkillCache) Get(ctx context.Context, userID, pathTitle string) (domain.CachedSkillAnalysis, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.key(userID, pathTitle)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CachedSkillAnalysis{}, false, nil
	}
	if err != nil {
		return domain.CachedSkillAnalysis{}, false, err
	}
	var entry domain.CachedSkillAnalysis
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.CachedSkillAnalysis{}, false, err
	}
	return entry, true, nil
}

func (c *redisSkillCache) Set(ctx context.Context, userID string, entry domain.CachedSkillAnalysis) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.key(userID, entry.PathTitle), raw, c.ttl).Err()
}
