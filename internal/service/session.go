package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Session state keys. The checkout and wishlist services own their keys;
// handlers never touch the store directly.
const (
	StateCart         = "cart"
	StateOrderDetails = "orderDetails"
	StateUserDetails  = "userDetails"
)

// DefaultSessionTTL matches the session cookie lifetime.
const DefaultSessionTTL = 30 * 24 * time.Hour

// GenerateSessionID generates a cryptographically secure session ID
// Uses 32 bytes of random data encoded as base64 URL-safe string
func GenerateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

type sessionState struct {
	values    map[string]json.RawMessage
	expiresAt time.Time
}

// SessionStore is a per-session string-keyed JSON store. Every access
// slides the session's expiry forward; a background sweeper drops
// sessions that go quiet for the full TTL.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store with the given idle TTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*sessionState),
		ttl:      ttl,
		now:      time.Now,
	}
}

// touch returns the live state for sessionID, creating it if absent and
// sliding its expiry. Callers must hold s.mu.
func (s *SessionStore) touch(sessionID string) *sessionState {
	state, ok := s.sessions[sessionID]
	if !ok || s.now().After(state.expiresAt) {
		state = &sessionState{values: make(map[string]json.RawMessage)}
		s.sessions[sessionID] = state
	}
	state.expiresAt = s.now().Add(s.ttl)
	return state
}

// Set stores v under key for the session, JSON-encoded.
func (s *SessionStore) Set(sessionID, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode session value %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(sessionID).values[key] = data
	return nil
}

// Get decodes the value stored under key into v. Returns false when the
// key is absent or the session has expired.
func (s *SessionStore) Get(sessionID, key string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok || s.now().After(state.expiresAt) {
		return false, nil
	}
	state.expiresAt = s.now().Add(s.ttl)

	data, ok := state.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode session value %q: %w", key, err)
	}
	return true, nil
}

// Delete removes key from the session, if present.
func (s *SessionStore) Delete(sessionID, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.sessions[sessionID]; ok {
		delete(state.values, key)
	}
}

// Sweep drops expired sessions and reports how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, state := range s.sessions {
		if now.After(state.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on every tick until ctx is cancelled.
func (s *SessionStore) StartSweeper(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					logger.Debug("swept expired sessions", "removed", removed)
				}
			}
		}
	}()
}
