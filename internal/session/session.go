// Package session issues and validates opaque bearer tokens carried in the
// casino_session cookie.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// CookieName is the session cookie the API sets and reads.
const CookieName = "casino_session"

// DefaultTTL is how long a session lives without being refreshed.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned for unknown or expired tokens.
var ErrNotFound = errors.New("session: not found or expired")

// Session ties a token to a user until it expires.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// Manager holds active sessions in memory. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	clock    quartz.Clock
}

// NewManager builds a manager with the given TTL. A zero ttl uses DefaultTTL.
func NewManager(ttl time.Duration, clock quartz.Clock) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]Session),
		ttl:      ttl,
		clock:    clock,
	}
}

// Create issues a fresh token for the user.
func (m *Manager) Create(userID int64) Session {
	s := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: m.clock.Now().Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s
}

// Get resolves a token to its session. Expired sessions are removed on
// lookup.
func (m *Manager) Get(token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	if !m.clock.Now().Before(s.ExpiresAt) {
		delete(m.sessions, token)
		return Session{}, ErrNotFound
	}
	return s, nil
}

// Delete revokes a token. Deleting an unknown token is a no-op.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Prune drops every expired session and reports how many were removed.
func (m *Manager) Prune() int {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for token, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions, expired ones included until the
// next Prune or lookup.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
