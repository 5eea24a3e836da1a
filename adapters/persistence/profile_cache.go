package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/internal/domain/profile"
)

const profileCachePrefix = "profile:"

type redisProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProfileCache(rdb *redis.Client, ttl time.Duration) service.ProfileCache {
	return &redisProfileCache{rdb: rdb, ttl: ttl}
}

func profileCacheKey(userID uuid.UUID) string {
	return profileCachePrefix + userID.String()
}

func (c *redisProfileCache) Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, bool, error) {
	raw, err := c.rdb.Get(ctx, profileCacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	p := &profile.Profile{}
	if err := json.Unmarshal(raw, p); err != nil {
		// corrupt entry, treat as a miss
		_ = c.rdb.Del(ctx, profileCacheKey(userID)).Err()
		return nil, false, nil
	}
	return p, true, nil
}

func (c *redisProfileCache) Set(ctx context.Context, p *profile.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, profileCacheKey(p.UserID), b, c.ttl).Err()
}

func (c *redisProfileCache) SetIfAbsent(ctx context.Context, p *profile.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.SetNX(ctx, profileCacheKey(p.UserID), b, c.ttl).Err()
}

func (c *redisProfileCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, profileCacheKey(userID)).Err()
}
