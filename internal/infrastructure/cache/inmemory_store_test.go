package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_GetSet(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("returns stored value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k1", []byte("v1"), time.Hour))
		got, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), got)
	})

	t.Run("stored value is copied", func(t *testing.T) {
		buf := []byte("abc")
		require.NoError(t, store.Set(ctx, "k2", buf, time.Hour))
		buf[0] = 'z'

		got, err := store.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k3", []byte("v"), 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		_, err := store.Get(ctx, "k3")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k4", []byte("v"), 0))
		store.cleanup()
		_, err := store.Get(ctx, "k4")
		assert.NoError(t, err)
	})
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, store.Delete(ctx, "a", "missing"))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = store.Get(ctx, "b")
	assert.NoError(t, err)
}

func TestInMemoryStore_Cleanup(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("x"), time.Millisecond))
	require.NoError(t, store.Set(ctx, "long", []byte("y"), time.Hour))
	time.Sleep(5 * time.Millisecond)

	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

type category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRemember(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]category, error) {
		calls++
		return []category{{ID: "1", Name: "Shoes"}}, nil
	}

	first, err := Remember(ctx, store, KeyCategoryList, time.Minute, load)
	require.NoError(t, err)
	second, err := Remember(ctx, store, KeyCategoryList, time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	require.NoError(t, store.Delete(ctx, KeyCategoryList))
	_, err = Remember(ctx, store, KeyCategoryList, time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemember_LoadErrorIsNotCached(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()
	ctx := context.Background()

	boom := errors.New("db down")
	_, err := Remember(ctx, store, "k", time.Minute, func(context.Context) ([]category, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Size())
}

func TestRemember_NilStoreLoadsDirectly(t *testing.T) {
	got, err := Remember(context.Background(), nil, "k", time.Minute, func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestStoreFactory_FallsBackToMemory(t *testing.T) {
	store := NewStoreFactory(nil).CreateStore()
	defer store.Close()
	_, ok := store.(*InMemoryStore)
	assert.True(t, ok)
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	s := NewRedisStore(nil, "")
	assert.Equal(t, defaultKeyPrefix, s.keyPrefix)
	assert.NoError(t, s.Delete(context.Background()))
}
