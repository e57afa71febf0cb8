package keycache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheHitAndMiss(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("alice", "openai")
	assert.False(t, ok)

	c.Put("alice", "openai", "sk-test")
	got, ok := c.Get("alice", "openai")
	assert.True(t, ok)
	assert.Equal(t, "sk-test", got)

	// same user, different provider is a different entry
	_, ok = c.Get("alice", "anthropic")
	assert.False(t, ok)

	// different user, same provider too
	_, ok = c.Get("bob", "openai")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewWithClock(5*time.Minute, clock)

	c.Put("alice", "openai", "sk-test")

	now = now.Add(4 * time.Minute)
	_, ok := c.Get("alice", "openai")
	assert.True(t, ok, "entry expired early")

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("alice", "openai")
	assert.False(t, ok, "entry outlived its TTL")
}

func TestCachePutRefreshesTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewWithClock(5*time.Minute, clock)

	c.Put("alice", "openai", "sk-old")
	now = now.Add(4 * time.Minute)
	c.Put("alice", "openai", "sk-new")

	now = now.Add(3 * time.Minute)
	got, ok := c.Get("alice", "openai")
	assert.True(t, ok)
	assert.Equal(t, "sk-new", got)
}

func TestCachePurge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewWithClock(time.Minute, clock)

	c.Put("alice", "openai", "a")
	c.Put("bob", "openai", "b")
	assert.Equal(t, 2, c.Len())

	now = now.Add(30 * time.Second)
	c.Put("carol", "openai", "c")

	now = now.Add(45 * time.Second)
	c.Purge()
	assert.Equal(t, 1, c.Len(), "only the fresh entry survives the purge")

	_, ok := c.Get("carol", "openai")
	assert.True(t, ok)
}
