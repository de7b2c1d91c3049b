// Package redis stores collection snapshots in Redis, one string key per
// (session, collection) pair.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// Backend implements store.Backend on a Redis client. Keys are written with
// no expiry.
type Backend struct {
	client *goredis.Client
	prefix string
}

// NewBackend wraps an existing client. prefix is prepended to every key.
func NewBackend(client *goredis.Client, prefix string) *Backend {
	return &Backend{client: client, prefix: prefix}
}

// Connect opens a client from options and verifies it with PING.
func Connect(ctx context.Context, opts *goredis.Options, prefix string) (*Backend, error) {
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewBackend(client, prefix), nil
}

func (b *Backend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

func (b *Backend) Save(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, b.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// CheckReadiness pings the server.
func (b *Backend) CheckReadiness(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (b *Backend) Close() error {
	return b.client.Close()
}
