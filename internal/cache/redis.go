package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ololchike/test-app--sub000/internal/tour"
)

const keyPrefix = "safari:tour:"

// RedisStore shares cached registries between api instances. Redis errors
// degrade to a miss; the repository stays the source of truth.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient accepts a redis:// URL or a bare host:port.
func NewRedisClient(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{
			Addr:     url,
			Password: password,
			DB:       0,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, tourID string) (*tour.Registry, bool) {
	val, err := s.client.Get(ctx, keyPrefix+tourID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("[CACHE] redis get %s: %v", tourID, err)
		return nil, false
	}

	var reg tour.Registry
	if err := json.Unmarshal(val, &reg); err != nil {
		log.Printf("[CACHE] corrupt entry %s: %v", tourID, err)
		return nil, false
	}
	return &reg, true
}

func (s *RedisStore) Set(ctx context.Context, tourID string, reg *tour.Registry, ttl time.Duration) {
	data, err := json.Marshal(reg)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, keyPrefix+tourID, data, ttl).Err(); err != nil {
		log.Printf("[CACHE] redis set %s: %v", tourID, err)
	}
}

func (s *RedisStore) Delete(ctx context.Context, tourID string) {
	if err := s.client.Del(ctx, keyPrefix+tourID).Err(); err != nil {
		log.Printf("[CACHE] redis del %s: %v", tourID, err)
	}
}
