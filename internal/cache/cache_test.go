package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("returns stored body until deleted", func(t *testing.T) {
		store := NewStore(time.Minute)
		store.Set(KeyAllMechanics, []byte(`[{"id":1}]`), time.Minute)

		body, ok := store.Get(KeyAllMechanics)
		require.True(t, ok)
		assert.Equal(t, []byte(`[{"id":1}]`), body)

		store.Delete(KeyAllMechanics)
		_, ok = store.Get(KeyAllMechanics)
		assert.False(t, ok)
	})

	t.Run("misses on unknown key", func(t *testing.T) {
		store := NewStore(time.Minute)
		_, ok := store.Get("nope")
		assert.False(t, ok)
	})

	t.Run("expires entries after their TTL", func(t *testing.T) {
		store := NewStore(time.Minute)
		store.Set("short", []byte("x"), 30*time.Millisecond)

		_, ok := store.Get("short")
		require.True(t, ok)

		time.Sleep(60 * time.Millisecond)
		_, ok = store.Get("short")
		assert.False(t, ok)
	})

	t.Run("applies the default TTL via SetDefault", func(t *testing.T) {
		store := NewStore(40 * time.Millisecond)
		store.SetDefault("short", []byte("x"))

		_, ok := store.Get("short")
		require.True(t, ok)

		time.Sleep(80 * time.Millisecond)
		_, ok = store.Get("short")
		assert.False(t, ok)
	})

	t.Run("overwrites an existing key", func(t *testing.T) {
		store := NewStore(time.Minute)
		store.Set("k", []byte("old"), time.Minute)
		store.Set("k", []byte("new"), time.Minute)

		body, ok := store.Get("k")
		require.True(t, ok)
		assert.Equal(t, []byte("new"), body)
	})
}
