package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a thin wrapper around go-redis used for caching the listings
// collection. A cache outage degrades to direct document-store reads.
type Client struct {
	Rdb *redis.Client
}

// New creates a redis client for the given address.
func New(addr, password string, db int) *Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	return &Client{Rdb: rdb}
}

// Ping verifies connectivity to the redis server.
func (c *Client) Ping(ctx context.Context) error {
	return c.Rdb.Ping(ctx).Err()
}

// Get returns the value stored at key, or an error on a miss.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Rdb.Get(ctx, key).Result()
}

// Set stores val at key with the given TTL.
func (c *Client) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	return c.Rdb.Set(ctx, key, val, ttl).Err()
}

// Delete removes key. Used to invalidate the listings cache after a write.
func (c *Client) Delete(ctx context.Context, key string) error {
	return c.Rdb.Del(ctx, key).Err()
}
