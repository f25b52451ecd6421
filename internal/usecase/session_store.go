package usecase

import (
	"context"
	"sync"
	"time"

	"effettobot/pkg/logger"
)

// ReviewSession is the transient per-user state accumulated across the three
// submission phases. It is volatile: a restart discards it and the submitter
// is told to start over.
type ReviewSession struct {
	UserID       string
	ProductName  string
	ProductEmoji string
	Rating       float64
	RatingSet    bool
	StartedAt    time.Time
}

// SessionStore holds at most one session per user. Starting phase 1 while a
// session is in progress overwrites the old one; that overwrite is the
// intended semantics, not an accident. Sessions expire after the TTL and a
// sweeper clears them out so an abandoned submission does not live forever.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*ReviewSession
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*ReviewSession),
	}
}

// StartSweeper clears expired sessions once a minute until ctx is done.
func (s *SessionStore) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.sweep(); n > 0 {
					logger.Debug("Swept %d expired review sessions", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *SessionStore) Put(session *ReviewSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = session
}

// Get returns the user's session if it exists and has not expired. An
// expired session is removed on sight, which makes expiry observable even
// between sweeper runs.
func (s *SessionStore) Get(userID string) (*ReviewSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	if time.Since(session.StartedAt) > s.ttl {
		delete(s.sessions, userID)
		return nil, false
	}
	return session, true
}

func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *SessionStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, session := range s.sessions {
		if time.Since(session.StartedAt) > s.ttl {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}
