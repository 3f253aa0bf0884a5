package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config describes a Redis connection.
// Zero durations and counts fall back to the package defaults.
type Config struct {
	URL             string        `yaml:"url"`
	PoolSize        int           `yaml:"pool_size"`
	MinIdleConns    int           `yaml:"min_idle_conns"`
	DialTimeout     time.Duration `yaml:"dial_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ConnectAttempts int           `yaml:"connect_attempts"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff"`
}

const (
	defaultPoolSize        = 10
	defaultMinIdleConns    = 2
	defaultDialTimeout     = 5 * time.Second
	defaultIOTimeout       = 3 * time.Second
	defaultConnectAttempts = 3
	defaultConnectBackoff  = 2 * time.Second
)

func (c Config) withDefaults() Config {
	if c.PoolSize <= 0 {
		c.PoolSize = defaultPoolSize
	}
	if c.MinIdleConns <= 0 {
		c.MinIdleConns = defaultMinIdleConns
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaultIOTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultIOTimeout
	}
	if c.ConnectAttempts <= 0 {
		c.ConnectAttempts = defaultConnectAttempts
	}
	if c.ConnectBackoff <= 0 {
		c.ConnectBackoff = defaultConnectBackoff
	}
	return c
}

// Options converts cfg into go-redis client options.
func (c Config) Options() (*redis.Options, error) {
	if c.URL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(c.URL, "redis://") && !strings.HasPrefix(c.URL, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	c = c.withDefaults()
	opts, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	opts.PoolSize = c.PoolSize
	opts.MinIdleConns = c.MinIdleConns
	opts.DialTimeout = c.DialTimeout
	opts.ReadTimeout = c.ReadTimeout
	opts.WriteTimeout = c.WriteTimeout
	return opts, nil
}

// Open connects to Redis and verifies the connection with PING.
// Failed pings are retried with linearly growing backoff.
//
// Example:
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
func Open(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= cfg.ConnectAttempts; attempt++ {
		client := redis.NewClient(opts)
		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if attempt == cfg.ConnectAttempts {
			break
		}
		timer := time.NewTimer(time.Duration(attempt) * cfg.ConnectBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-timer.C:
		}
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}
