package services

import (
	"sync"
	"time"

	"agusstore/internal/backend"
)

// sessionTTL bounds how long an idle checkout flow is kept. Flows that end
// in a payment redirect are removed explicitly; this covers the ones the
// user simply walks away from.
const sessionTTL = 30 * time.Minute

type checkoutSession struct {
	svc      *CheckoutService
	lastSeen time.Time
}

// CheckoutManager keeps one in-memory checkout session per user. Sessions
// are transient: restarting the process, calling Reset, or sitting idle
// past the TTL starts a flow over at step 1, the equivalent of a page
// reload in the browser UI.
type CheckoutManager struct {
	api    backend.CheckoutAPI
	events EventPublisher
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]*checkoutSession
}

// NewCheckoutManager creates the session registry.
func NewCheckoutManager(api backend.CheckoutAPI, events EventPublisher) *CheckoutManager {
	return &CheckoutManager{
		api:      api,
		events:   events,
		ttl:      sessionTTL,
		sessions: make(map[string]*checkoutSession),
	}
}

// Session returns the user's current checkout flow, creating one at step 1
// if none exists or the previous one sat idle past the TTL. The token is
// refreshed on every call so a re-login mid shopping does not strand the
// session with a stale credential.
func (m *CheckoutManager) Session(tok, userID string) *CheckoutService {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.evictLocked(now)

	if e, ok := m.sessions[userID]; ok {
		e.lastSeen = now
		e.svc.mu.Lock()
		e.svc.token = tok
		e.svc.mu.Unlock()
		return e.svc
	}
	svc := NewCheckoutService(m.api, m.events, tok, userID)
	m.sessions[userID] = &checkoutSession{svc: svc, lastSeen: now}
	return svc
}

// evictLocked drops sessions idle longer than the TTL. Callers hold m.mu.
func (m *CheckoutManager) evictLocked(now time.Time) {
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

// Reset discards the user's flow so the next Session call starts fresh.
func (m *CheckoutManager) Reset(userID string) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}
