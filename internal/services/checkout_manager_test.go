package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutManagerEvictsIdleSessions(t *testing.T) {
	m := NewCheckoutManager(nil, nil)
	m.ttl = 10 * time.Millisecond

	stale := m.Session("tok", "user-stale")
	time.Sleep(20 * time.Millisecond)

	// Touching another user sweeps the idle session out of the map.
	m.Session("tok", "user-fresh")
	m.mu.Lock()
	_, ok := m.sessions["user-stale"]
	m.mu.Unlock()
	assert.False(t, ok)

	// The stale user starts over with a fresh flow at step 1.
	assert.NotSame(t, stale, m.Session("tok", "user-stale"))
}

func TestCheckoutManagerKeepsActiveSessions(t *testing.T) {
	m := NewCheckoutManager(nil, nil)
	m.ttl = 50 * time.Millisecond

	first := m.Session("tok", "user-1")
	time.Sleep(30 * time.Millisecond)

	// Each access refreshes lastSeen, so an active flow outlives the TTL.
	assert.Same(t, first, m.Session("tok", "user-1"))
	time.Sleep(30 * time.Millisecond)
	assert.Same(t, first, m.Session("tok", "user-1"))
}
