package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "userLocation:"

// RedisStore keeps locations in Redis as JSON under "userLocation:<key>" with the policy TTL.
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (UserLocation, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return UserLocation{}, ErrNotCached
	}
	if err != nil {
		return UserLocation{}, fmt.Errorf("redis get location: %w", err)
	}

	var loc UserLocation
	if err := json.Unmarshal(raw, &loc); err != nil {
		return UserLocation{}, fmt.Errorf("decode cached location: %w", err)
	}
	return loc, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, loc UserLocation, ttl time.Duration) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set location: %w", err)
	}
	return nil
}
