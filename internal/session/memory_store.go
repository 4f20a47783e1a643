package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go-session-auth/internal/model"
)

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]Session{},
		now:      time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	if s.ID == "" {
		return errors.New("session: missing id")
	}
	if s.Expired(m.now()) {
		return errors.New("session: expires_at must be in the future")
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || s.Expired(m.now()) {
		return Session{}, model.ErrSessionNotFound
	}
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupExpired drops expired sessions and returns how many were removed.
func (m *MemoryStore) CleanupExpired() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartCleanupTicker runs CleanupExpired every interval until ctx is cancelled.
func (m *MemoryStore) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.CleanupExpired(); removed > 0 {
				slog.Debug("expired sessions evicted", "count", removed)
			}
		}
	}
}
