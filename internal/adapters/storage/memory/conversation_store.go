// Package memory provides the default in-memory storage backend. It is
// not persistent: every entry is lost on process restart.
package memory

import (
	"sync"

	"github.com/nutriplan/nutriplan-api/internal/domain"
)

// Compile-time interface check.
var _ domain.ConversationStore = (*ConversationStore)(nil)

// ConversationStore keeps per-session histories in a mutex-guarded map.
// Entries are never evicted; growth is bounded only by the number of
// distinct session ids seen.
type ConversationStore struct {
	mu        sync.RWMutex
	histories map[domain.SessionID][]domain.Turn

	locksMu sync.Mutex
	locks   map[domain.SessionID]*sync.Mutex
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		histories: make(map[domain.SessionID][]domain.Turn),
		locks:     make(map[domain.SessionID]*sync.Mutex),
	}
}

// Get returns a copy of the stored history so callers can't mutate the
// store through the returned slice.
func (s *ConversationStore) Get(id domain.SessionID) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.histories[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	out := make([]domain.Turn, len(history))
	copy(out, history)
	return out, nil
}

func (s *ConversationStore) Put(id domain.SessionID, history []domain.Turn) error {
	stored := make([]domain.Turn, len(history))
	copy(stored, history)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.histories[id] = stored
	return nil
}

func (s *ConversationStore) Delete(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.histories, id)
	return nil
}

// LockSession acquires the per-session mutex, creating it on first use.
// The mutex itself is kept forever, like the session entry it guards.
func (s *ConversationStore) LockSession(id domain.SessionID) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}
