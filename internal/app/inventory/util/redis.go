package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sweetshop/internal/app/inventory/entity"
	"sweetshop/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const sweetsCacheKey = "sweets:all"

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromExisting оборачивает готовый клиент (для тестов с miniredis)
func NewRedisClientFromExisting(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func (r *RedisClient) SetSweets(ctx context.Context, sweets []entity.Sweet, ttl time.Duration) error {
	data, err := json.Marshal(sweets)
	if err != nil {
		return fmt.Errorf("failed to marshal sweets: %w", err)
	}

	if err := r.client.Set(ctx, sweetsCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpSet)
		return fmt.Errorf("failed to set sweets in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetSweets(ctx context.Context) ([]entity.Sweet, error) {
	data, err := r.client.Get(ctx, sweetsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		metrics.RecordRedisError(metricsService, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get sweets from cache: %w", err)
	}

	var sweets []entity.Sweet
	if err := json.Unmarshal(data, &sweets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sweets: %w", err)
	}

	return sweets, nil
}

func (r *RedisClient) DeleteSweets(ctx context.Context) error {
	if err := r.client.Del(ctx, sweetsCacheKey).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete sweets from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
