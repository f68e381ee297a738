package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

var (
	// ErrNotFound is returned when no session exists for an id.
	ErrNotFound = errors.New("session not found")
)

type entry struct {
	session  *dashboard.Session
	lastSeen time.Time
}

// SessionStore is a concurrency-safe in-memory map of dashboard sessions.
// Nothing survives a restart.
type SessionStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*entry

	// retention configuration
	maxSessions int           // <= 0 means unlimited
	ttl         time.Duration // <= 0 means sessions never expire

	now func() time.Time
}

// NewSessionStore creates a new SessionStore with optional limits.
func NewSessionStore(maxSessions int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		data:        make(map[string]*entry),
		maxSessions: maxSessions,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Create adds a fresh Idle session and returns its id. When the store is at
// capacity the least recently seen session is evicted first.
func (s *SessionStore) Create() (string, *dashboard.Session) {
	id := uuid.NewString()
	sess := dashboard.NewSession()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.data[id] = &entry{session: sess, lastSeen: s.now()}
	return id, sess
}

// Get returns the session for id and marks it as seen.
func (s *SessionStore) Get(id string) (*dashboard.Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = s.now()
	return e.session, nil
}

// Len reports how many sessions are held.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Purge removes sessions not seen since now-ttl and returns how many were
// removed.
func (s *SessionStore) Purge(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.data {
		if e.lastSeen.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.data {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID = id
			oldest = e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.data, oldestID)
	}
}
