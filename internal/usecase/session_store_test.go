package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStorePutGetDelete(t *testing.T) {
	store := NewSessionStore(time.Minute)

	_, ok := store.Get("user-1")
	assert.False(t, ok)

	store.Put(&ReviewSession{UserID: "user-1", ProductName: "Logo", StartedAt: time.Now()})

	session, ok := store.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, "Logo", session.ProductName)

	store.Delete("user-1")
	_, ok = store.Get("user-1")
	assert.False(t, ok)
}

func TestSessionStoreOverwrite(t *testing.T) {
	store := NewSessionStore(time.Minute)

	store.Put(&ReviewSession{UserID: "user-1", ProductName: "Logo", Rating: 4, RatingSet: true, StartedAt: time.Now()})
	store.Put(&ReviewSession{UserID: "user-1", ProductName: "Banner", StartedAt: time.Now()})

	session, ok := store.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, "Banner", session.ProductName)
	assert.False(t, session.RatingSet)
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(20 * time.Millisecond)

	store.Put(&ReviewSession{UserID: "user-1", ProductName: "Logo", StartedAt: time.Now()})

	_, ok := store.Get("user-1")
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	// Expiry is observable on read, without waiting for the sweeper.
	_, ok = store.Get("user-1")
	assert.False(t, ok)
}

func TestSessionStoreSweep(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)

	store.Put(&ReviewSession{UserID: "user-1", StartedAt: time.Now().Add(-time.Minute)})
	store.Put(&ReviewSession{UserID: "user-2", StartedAt: time.Now()})

	removed := store.sweep()
	assert.Equal(t, 1, removed)

	_, ok := store.Get("user-2")
	assert.True(t, ok)
}
