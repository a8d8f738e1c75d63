package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/redis/go-redis/v9"
)

const imageKeyPrefix = "image:key:"

type RedisDB struct {
	Client *redis.Client
}

func NewRedisDB(redisURL string) (*RedisDB, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.L().Info("Connected to Redis")
	return &RedisDB{Client: client}, nil
}

func (r *RedisDB) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

func (r *RedisDB) Close() {
	if r.Client != nil {
		r.Client.Close()
		logger.L().Info("Redis connection closed")
	}
}

// Image key index

// SaveImageKey records the object key issued for imageID. A zero ttl keeps
// the entry forever.
func (r *RedisDB) SaveImageKey(ctx context.Context, imageID, key string, ttl time.Duration) error {
	return r.Client.Set(ctx, imageKeyPrefix+imageID, key, ttl).Err()
}

// LookupImageKey returns "" when imageID was never indexed.
func (r *RedisDB) LookupImageKey(ctx context.Context, imageID string) (string, error) {
	key, err := r.Client.Get(ctx, imageKeyPrefix+imageID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return key, err
}
