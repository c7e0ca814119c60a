// Package cache provides the Redis client shared by the OTP ledger.
package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"cinefellas/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client and checks it with a ping.
func NewClient(ctx context.Context, cfg utils.RedisConfig) (*redis.Client, error) {
	options := &redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	if cfg.TLS {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", options.Addr, err)
	}

	return client, nil
}
