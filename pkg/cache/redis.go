package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a thin byte cache over redis used for product read caching.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient connects to redis and verifies the connection with a ping.
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Get returns the cached bytes for key. redis.Nil is returned on a miss.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	return c.rdb.Get(ctx, key).Bytes()
}

// Set stores data under key with the configured TTL.
func (c *Client) Set(ctx context.Context, key string, data []byte) error {
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Delete removes keys, used for invalidation on writes.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// IsMiss reports whether err is a cache miss.
func IsMiss(err error) bool {
	return err == redis.Nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
