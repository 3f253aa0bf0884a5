package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bskqd/uniweb/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		c := cache.NewMemory[string]()

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)

		require.NoError(t, c.Set(ctx, "k", "v", 0))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v", v)

		require.NoError(t, c.Delete(ctx, "k"))
		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		c := cache.NewMemory[int](
			cache.WithClock(func() time.Time { return now }),
			cache.WithDefaultTTL(time.Minute),
		)

		require.NoError(t, c.Set(ctx, "default", 1, 0))
		require.NoError(t, c.Set(ctx, "short", 2, time.Second))
		require.NoError(t, c.Set(ctx, "forever", 3, -1))

		now = now.Add(2 * time.Second)
		_, err := c.Get(ctx, "short")
		require.ErrorIs(t, err, cache.ErrNotFound)
		v, err := c.Get(ctx, "default")
		require.NoError(t, err)
		require.Equal(t, 1, v)

		now = now.Add(24 * time.Hour)
		_, err = c.Get(ctx, "default")
		require.ErrorIs(t, err, cache.ErrNotFound)
		v, err = c.Get(ctx, "forever")
		require.NoError(t, err)
		require.Equal(t, 3, v)
		require.Equal(t, 1, c.Len())
	})
}

func TestLoader(t *testing.T) {
	t.Parallel()

	t.Run("loads once and caches", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		loader := cache.NewLoader[string](cache.NewMemory[string](), 0)

		var calls atomic.Int32
		fn := func(context.Context) (string, error) {
			calls.Add(1)
			return "loaded", nil
		}

		for range 3 {
			v, err := loader.Load(ctx, "k", fn)
			require.NoError(t, err)
			require.Equal(t, "loaded", v)
		}
		require.EqualValues(t, 1, calls.Load())

		require.NoError(t, loader.Forget(ctx, "k"))
		_, err := loader.Load(ctx, "k", fn)
		require.NoError(t, err)
		require.EqualValues(t, 2, calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		loader := cache.NewLoader[int](cache.NewMemory[int](), 0)
		boom := errors.New("boom")

		_, err := loader.Load(ctx, "k", func(context.Context) (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)

		v, err := loader.Load(ctx, "k", func(context.Context) (int, error) { return 7, nil })
		require.NoError(t, err)
		require.Equal(t, 7, v)
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		loader := cache.NewLoader[int](cache.NewMemory[int](), 0)

		release := make(chan struct{})
		var calls atomic.Int32
		fn := func(context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 42, nil
		}

		var wg sync.WaitGroup
		for range 8 {
			wg.Go(func() {
				v, err := loader.Load(ctx, "k", fn)
				assert.NoError(t, err)
				assert.Equal(t, 42, v)
			})
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		require.EqualValues(t, 1, calls.Load())
		v, err := loader.Load(ctx, "k", fn)
		require.NoError(t, err)
		require.Equal(t, 42, v)
	})
}

type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
	mu   sync.Mutex
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(n)
	return cmd
}

func TestRedis(t *testing.T) {
	t.Parallel()

	type item struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}

	ctx := context.Background()
	client := newFakeRedis()
	c := cache.NewRedis[[]item](client, "app:", time.Minute)

	_, err := c.Get(ctx, "items")
	require.ErrorIs(t, err, cache.ErrNotFound)

	want := []item{{Name: "a", N: 1}, {Name: "b", N: 2}}
	require.NoError(t, c.Set(ctx, "items", want, 0))
	require.Equal(t, `[{"name":"a","n":1},{"name":"b","n":2}]`, client.data["app:items"])
	require.Equal(t, time.Minute, client.ttls["app:items"])

	got, err := c.Get(ctx, "items")
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.NoError(t, c.Set(ctx, "items", want, -1))
	require.Zero(t, client.ttls["app:items"])

	client.data["app:broken"] = "{"
	_, err = c.Get(ctx, "broken")
	require.ErrorIs(t, err, cache.ErrUnmarshal)

	require.NoError(t, c.Delete(ctx, "items"))
	_, err = c.Get(ctx, "items")
	require.ErrorIs(t, err, cache.ErrNotFound)
}
