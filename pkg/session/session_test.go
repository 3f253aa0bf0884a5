package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bskqd/uniweb/pkg/session"
)

func TestNewID(t *testing.T) {
	t.Parallel()

	t.Run("returns 32 hex characters", func(t *testing.T) {
		t.Parallel()

		id := session.NewID()
		require.Len(t, id, 32)
		require.Regexp(t, `^[0-9a-f]{32}$`, id)
	})

	t.Run("returns distinct values", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 100)
		for range 100 {
			id := session.NewID()
			_, dup := seen[id]
			require.False(t, dup)
			seen[id] = struct{}{}
		}
	})
}

func TestValidID(t *testing.T) {
	t.Parallel()

	require.True(t, session.ValidID(session.NewID()))
	require.True(t, session.ValidID("abc-DEF_123"))
	require.False(t, session.ValidID(""))
	require.False(t, session.ValidID("../etc/passwd"))
	require.False(t, session.ValidID("a/b"))
	require.False(t, session.ValidID("a b"))
}

func TestData_Clone(t *testing.T) {
	t.Parallel()

	var nilData session.Data
	require.Equal(t, session.Data{}, nilData.Clone())

	orig := session.Data{"username": "ann"}
	clone := orig.Clone()
	clone["username"] = "bob"
	require.Equal(t, "ann", orig["username"])
}

// backendContract exercises behavior every Backend must share.
func backendContract(t *testing.T, newBackend func(t *testing.T) session.Backend) {
	t.Helper()

	t.Run("empty id loads empty data", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		data, err := b.Load(context.Background(), "")
		require.NoError(t, err)
		require.Empty(t, data)
		require.NotNil(t, data)
	})

	t.Run("unknown id loads empty data", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		data, err := b.Load(context.Background(), b.NewID())
		require.NoError(t, err)
		require.Empty(t, data)
	})

	t.Run("save then load round trips", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		ctx := context.Background()
		id := b.NewID()

		require.NoError(t, b.Save(ctx, id, session.Data{"username": "ann", "score": 3}))

		data, err := b.Load(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "ann", data["username"])
		require.InDelta(t, 3, data["score"], 0)
	})

	t.Run("save replaces previous data", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		ctx := context.Background()
		id := b.NewID()

		require.NoError(t, b.Save(ctx, id, session.Data{"username": "ann", "lang": "en"}))
		require.NoError(t, b.Save(ctx, id, session.Data{"username": "bob"}))

		data, err := b.Load(ctx, id)
		require.NoError(t, err)
		require.Equal(t, session.Data{"username": "bob"}, data)
	})

	t.Run("save with empty id is a no-op", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		require.NoError(t, b.Save(context.Background(), "", session.Data{"x": 1}))
	})

	t.Run("loaded data is not shared with the store", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		ctx := context.Background()
		id := b.NewID()
		require.NoError(t, b.Save(ctx, id, session.Data{"username": "ann"}))

		data, err := b.Load(ctx, id)
		require.NoError(t, err)
		data["username"] = "mallory"

		again, err := b.Load(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "ann", again["username"])
	})

	t.Run("unencodable data fails", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		err := b.Save(context.Background(), b.NewID(), session.Data{"ch": make(chan int)})
		require.ErrorIs(t, err, session.ErrEncode)
	})
}
