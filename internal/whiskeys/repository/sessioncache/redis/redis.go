package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/redistools"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/sessioncache"
	"github.com/redis/go-redis/v9"
)

// SessionCache keeps the ids of live tokens so that they can be revoked
// before they expire.
type SessionCache struct {
	rdb *redis.Client
}

func New(ctx context.Context, cfg config.Sessions) (SessionCache, error) {
	rdb, err := redistools.NewClient(ctx, cfg)
	if err != nil {
		return SessionCache{}, fmt.Errorf("connect error: %w", err)
	}

	return SessionCache{
		rdb: rdb,
	}, nil
}

func (sc SessionCache) CreateSession(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	_, err := sc.rdb.Set(ctx, key(tokenID), userID, ttl).Result()
	if err != nil {
		return fmt.Errorf("set error: %w", err)
	}

	return nil
}

func (sc SessionCache) GetSession(ctx context.Context, tokenID string) (int64, error) {
	val, err := sc.rdb.Get(ctx, key(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, sessioncache.ErrNotFound
	} else if err != nil {
		return 0, fmt.Errorf("get error: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse user id error: %w", err)
	}

	return userID, nil
}

func (sc SessionCache) DeleteSession(ctx context.Context, tokenID string) error {
	deleted, err := sc.rdb.Del(ctx, key(tokenID)).Result()
	if err != nil {
		return fmt.Errorf("del error: %w", err)
	}

	if deleted == 0 {
		return sessioncache.ErrNotFound
	}

	return nil
}

func (sc SessionCache) Shutdown(_ context.Context) error {
	if err := sc.rdb.Close(); err != nil {
		return fmt.Errorf("close error: %w", err)
	}

	return nil
}

func key(tokenID string) string {
	return "session:" + tokenID
}
