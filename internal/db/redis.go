package db

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"adselect/internal/config/configs"
)

// NewRedisClient creates a rueidis client for the creative index and
// verifies connectivity with a 5 second ping timeout. The caller must close
// the returned client when it is no longer needed.
func NewRedisClient(ctx context.Context, cfg configs.Redis) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{cfg.Addr},
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, err
	}

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = client.Do(ctxPing, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
