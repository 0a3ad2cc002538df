package session

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/wedding-hall-booking/internal/utils"
)

// MemoryStore is a mutex-guarded in-process session store. It serves two
// roles: the fallback when Redis is unreachable at startup (sessions then
// do not survive a restart) and the store used by handler tests. Expired
// entries are dropped lazily on access.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

// NewMemoryStore returns an empty in-memory store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl}
}

func (s *MemoryStore) Create(_ context.Context, sess Session) (string, error) {
	token, err := utils.NewSessionToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.entries[token] = memoryEntry{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (Session, error) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return Session{}, ErrNotFound
	}
	return e.sess, nil
}

func (s *MemoryStore) Update(_ context.Context, token string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.entries, token)
		return ErrNotFound
	}
	e.sess = sess
	s.entries[token] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) TTL() time.Duration { return s.ttl }
