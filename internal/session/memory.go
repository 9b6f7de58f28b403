package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a map-backed Store used by tests and the console gateway.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) Load(ctx context.Context, chatID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return &Session{}, nil
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, chatID int64, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := s.Clone()
	c.UpdatedAt = time.Now()
	m.sessions[chatID] = c
	return nil
}
