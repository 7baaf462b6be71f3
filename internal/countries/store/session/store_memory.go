// Package session keeps browse sessions in memory. Each session owns one
// browse.Store; Session.Do serialises every access to it.
package session

import (
	"context"
	"sync"
	"time"

	"worldranks/internal/countries/browse"
	id "worldranks/pkg/domain"
	"worldranks/pkg/platform/sentinel"
)

// DefaultIdleTTL is how long a session survives without being touched.
const DefaultIdleTTL = 30 * time.Minute

// Session is one user's browse state.
type Session struct {
	ID        id.SessionID
	CreatedAt time.Time

	mu    sync.Mutex
	store *browse.Store

	// guarded by InMemorySessionStore.mu
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's store.
func (s *Session) Do(fn func(st *browse.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.store)
}

// InMemorySessionStore expires sessions after an idle TTL. Lookups refresh
// the idle timer.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*Session
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*InMemorySessionStore)

func WithIdleTTL(ttl time.Duration) Option {
	return func(s *InMemorySessionStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *InMemorySessionStore) {
		s.now = now
	}
}

func New(opts ...Option) *InMemorySessionStore {
	s := &InMemorySessionStore{
		sessions: make(map[id.SessionID]*Session),
		ttl:      DefaultIdleTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new session around st.
func (s *InMemorySessionStore) Create(_ context.Context, st *browse.Store) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess := &Session{
		ID:        id.NewSessionID(),
		CreatedAt: now,
		store:     st,
		lastSeen:  now,
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// FindByID returns the session and refreshes its idle timer. An idle session
// is removed and reported as sentinel.ErrExpired.
func (s *InMemorySessionStore) FindByID(_ context.Context, sessionID id.SessionID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	now := s.now()
	if now.Sub(sess.lastSeen) >= s.ttl {
		delete(s.sessions, sessionID)
		return nil, sentinel.ErrExpired
	}
	sess.lastSeen = now
	return sess, nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// All returns a snapshot of the live sessions.
func (s *InMemorySessionStore) All(_ context.Context) []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// Sweep removes idle sessions and returns how many were removed.
func (s *InMemorySessionStore) Sweep(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for key, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}

func (s *InMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
