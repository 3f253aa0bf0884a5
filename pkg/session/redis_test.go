package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/bskqd/uniweb/pkg/session"
)

// fakeRedis is an in-memory RedisClient.
type fakeRedis struct {
	items  map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
	mu     sync.Mutex
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		items: make(map[string]string),
		ttls:  make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.items[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.items[key] = string(v)
	case string:
		f.items[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedis(t *testing.T) {
	t.Parallel()

	backendContract(t, func(t *testing.T) session.Backend {
		return session.NewRedis(newFakeRedis())
	})
}

func TestRedis_Keys(t *testing.T) {
	t.Parallel()

	t.Run("stores bare ids without expiration", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		b := session.NewRedis(client)

		require.NoError(t, b.Save(context.Background(), "abc", session.Data{"username": "ann"}))
		require.JSONEq(t, `{"username":"ann"}`, client.items["abc"])
		require.Zero(t, client.ttls["abc"])
	})

	t.Run("prefix is prepended to keys", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		b := session.NewRedis(client, session.WithPrefix("quiz:"))

		require.NoError(t, b.Save(context.Background(), "abc", session.Data{}))
		require.Contains(t, client.items, "quiz:abc")
	})
}

func TestRedis_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")

	t.Run("load surfaces transport errors", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		client.getErr = boom
		b := session.NewRedis(client)

		_, err := b.Load(context.Background(), "abc")
		require.ErrorIs(t, err, session.ErrLoad)
		require.ErrorIs(t, err, boom)
	})

	t.Run("save surfaces transport errors", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		client.setErr = boom
		b := session.NewRedis(client)

		err := b.Save(context.Background(), "abc", session.Data{})
		require.ErrorIs(t, err, session.ErrSave)
	})

	t.Run("non-object payload fails to decode", func(t *testing.T) {
		t.Parallel()

		client := newFakeRedis()
		client.items["abc"] = "[1,2]"
		b := session.NewRedis(client)

		_, err := b.Load(context.Background(), "abc")
		require.ErrorIs(t, err, session.ErrDecode)
	})
}
