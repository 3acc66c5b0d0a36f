package memo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	cache := NewCache(time.Minute)

	cache.Set("k", 42)

	value, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, value)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	cache := NewCache(time.Minute)

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Set("k", "v")

	current = current.Add(2 * time.Minute)

	_, ok := cache.Get("k")
	assert.False(t, ok)

	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 1, cache.Prune())
	assert.Equal(t, 0, cache.Len())
}

func TestKey_InsensitiveToMapKeyOrder(t *testing.T) {
	a := map[string]float64{"alpha": 1, "beta": 2, "gamma": 3}
	b := map[string]float64{"gamma": 3, "alpha": 1, "beta": 2}

	keyA, err := Key(a)
	require.NoError(t, err)

	keyB, err := Key(b)
	require.NoError(t, err)

	assert.Equal(t, keyA, keyB)
}

func TestKey_DistinguishesInputs(t *testing.T) {
	keyA, err := Key("term-a", "term-b", 20)
	require.NoError(t, err)

	keyB, err := Key("term-a", "term-b", 21)
	require.NoError(t, err)

	assert.NotEqual(t, keyA, keyB)
}

func TestKey_PartBoundaries(t *testing.T) {
	// "ab" + "c" must not collide with "a" + "bc".
	keyA, err := Key("ab", "c")
	require.NoError(t, err)

	keyB, err := Key("a", "bc")
	require.NoError(t, err)

	assert.NotEqual(t, keyA, keyB)
}
