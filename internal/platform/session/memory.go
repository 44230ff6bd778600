package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	adminID   int64
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Used when no REDIS_URL is
// configured and in tests. Sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     normalizeTTL(ttl),
		now:     time.Now,
	}
}

func (s *MemoryStore) Issue(_ context.Context, adminID int64) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	s.entries[token] = memoryEntry{adminID: adminID, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) Validate(_ context.Context, token string) (int64, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return 0, false, nil
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return 0, false, nil
	}
	return entry.adminID, true, nil
}

func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}
