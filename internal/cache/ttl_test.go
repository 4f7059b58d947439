package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetMiss(t *testing.T) {
	c := NewTTL[string](time.Minute)
	_, ok := c.Get("absent")
	require.False(t, ok)
}

func TestEntriesExpire(t *testing.T) {
	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTL[int](30 * time.Second)
	c.now = func() time.Time { return current }

	c.Set("k", 7)
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 7, v)

	current = current.Add(30 * time.Second)
	v, ok = c.Get("k")
	require.True(t, ok, "an entry at exactly its deadline is still served")
	require.Equal(t, 7, v)

	current = current.Add(time.Second)
	_, ok = c.Get("k")
	require.False(t, ok)
}

func TestSetRefreshesDeadline(t *testing.T) {
	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTL[int](30 * time.Second)
	c.now = func() time.Time { return current }

	c.Set("k", 1)
	current = current.Add(20 * time.Second)
	c.Set("k", 2)
	current = current.Add(20 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestInvalidate(t *testing.T) {
	c := NewTTL[string](time.Minute)
	c.Set("k", "v")
	c.Invalidate("k")
	_, ok := c.Get("k")
	require.False(t, ok)
}
