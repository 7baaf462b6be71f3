package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"worldranks/internal/platform/config"
)

// Client is the shared go-redis client plus health reporting.
type Client struct {
	*redis.Client
}

// PoolStatus summarises the connection pool for health output.
type PoolStatus struct {
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	Timeouts   uint32 `json:"timeouts"`
}

// New connects using cfg and verifies the server answers PING within ctx.
// It returns (nil, nil) when no URL is configured, so callers fall back to
// in-memory storage.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	applyOverrides(opts, cfg)

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

// applyOverrides copies the non-zero pool and timeout settings; zero keeps
// the go-redis default.
func applyOverrides(opts *redis.Options, cfg config.RedisConfig) {
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Pool() PoolStatus {
	st := c.PoolStats()
	return PoolStatus{TotalConns: st.TotalConns, IdleConns: st.IdleConns, Timeouts: st.Timeouts}
}

func (c *Client) Close() error {
	return c.Client.Close()
}
