package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of redis.UniversalClient used by the Redis backend.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis stores sessions as JSON strings in a remote key/value store.
// Keys do not expire.
type Redis struct {
	client RedisClient
	opts   options
}

// NewRedis creates a backend over client.
// Keys are "<prefix><id>", see WithPrefix.
func NewRedis(client RedisClient, opts ...Option) *Redis {
	return &Redis{
		client: client,
		opts:   buildOptions(opts),
	}
}

// Load fetches the data stored for id. A missing key yields empty data.
func (r *Redis) Load(ctx context.Context, id string) (Data, error) {
	if id == "" {
		return Data{}, nil
	}
	b, err := r.client.Get(ctx, r.opts.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, nil
	}
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}
	return decode(b)
}

// Save writes data under id without expiration.
func (r *Redis) Save(ctx context.Context, id string, data Data) error {
	if id == "" {
		return nil
	}
	b, err := encode(data)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.opts.prefix+id, b, 0).Err(); err != nil {
		return errors.Join(ErrSave, err)
	}
	return nil
}

// NewID returns a fresh identifier.
func (r *Redis) NewID() string {
	return r.opts.newID()
}
