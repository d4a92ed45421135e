// SPDX-License-Identifier: GPL-3.0-only

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"presspass-server/commons"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the redis instance configured through the
// environment and pings it once to fail fast on bad configuration.
func NewRedisCache(ctx context.Context) (*RedisCache, error) {
	db := 0
	if v := commons.GetEnv("REDIS_DB", "0"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			db = i
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     commons.GetEnv("REDIS_ADDR", "localhost:6379"),
		Username: commons.GetEnv("REDIS_USERNAME"),
		Password: commons.GetEnv("REDIS_PASSWORD"),
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(key string, result any) (bool, error) {
	val, err := c.client.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(key string, value any, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(context.Background(), key, jsonData, expiration).Err()
}
