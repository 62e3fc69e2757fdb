package redistools

import (
	"context"
	"fmt"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/redis/go-redis/v9"
)

const maxDelay = time.Second * 10

// NewClient builds a client for cfg and waits until the server answers.
func NewClient(ctx context.Context, cfg config.Sessions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{ //nolint:exhaustruct
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := Connect(ctx, rdb); err != nil {
		rdb.Close() //nolint:errcheck

		return nil, err
	}

	return rdb, nil
}

// Connect pings rdb, waiting a second longer after every failed attempt.
func Connect(ctx context.Context, rdb *redis.Client) error {
	delay := time.Second

	for {
		err := rdb.Ping(ctx).Err()
		if err == nil {
			return nil
		}

		if delay > maxDelay {
			return fmt.Errorf("cannot ping redis db error: %w", err)
		}

		t := time.NewTimer(delay)

		select {
		case <-ctx.Done():
			t.Stop()

			return fmt.Errorf("context error: %w", ctx.Err())
		case <-t.C:
		}

		delay += time.Second
	}
}
