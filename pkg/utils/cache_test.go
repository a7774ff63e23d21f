package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_SetAndGet(t *testing.T) {
	cache := NewTTLCache[string](time.Minute)

	cache.Set("steam:profile", `{"personaname":"yuriko"}`)

	value, ok := cache.Get("steam:profile")
	assert.True(t, ok)
	assert.Equal(t, `{"personaname":"yuriko"}`, value)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	cache := NewTTLCache[int](time.Minute)

	cache.SetWithTTL("short", 42, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := cache.Get("short")
	assert.False(t, ok)
	// The expired read also evicts the entry.
	assert.Equal(t, 0, cache.Size())
}

func TestTTLCache_CleanupExpired(t *testing.T) {
	cache := NewTTLCache[int](time.Minute)

	cache.SetWithTTL("a", 1, 10*time.Millisecond)
	cache.SetWithTTL("b", 2, 10*time.Millisecond)
	cache.Set("keep", 3)

	time.Sleep(20 * time.Millisecond)

	dropped := cache.CleanupExpired()
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 1, cache.Size())

	value, ok := cache.Get("keep")
	assert.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestTTLCache_DeleteAndClear(t *testing.T) {
	cache := NewTTLCache[int](time.Minute)

	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Delete("a")
	_, ok := cache.Get("a")
	assert.False(t, ok)

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}
