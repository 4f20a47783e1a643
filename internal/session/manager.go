package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-session-auth/internal/model"
)

const CookieName = "session_id"

// Manager ties a Store to the session cookie carried by the client.
type Manager struct {
	store  Store
	ttl    time.Duration
	cookie CookieOptions
	now    func() time.Time
}

func NewManager(store Store, ttl time.Duration, cookie CookieOptions) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		cookie: cookie,
		now:    time.Now,
	}
}

func (m *Manager) CookieOptions() CookieOptions {
	return m.cookie
}

// Start replaces any session the request already carries with a fresh one for userID.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request, userID int) (Session, error) {
	if previous := CookieValue(r, CookieName); previous != "" {
		if err := m.store.Delete(ctx, previous); err != nil {
			return Session{}, fmt.Errorf("drop previous session: %w", err)
		}
	}

	id, err := GenerateID()
	if err != nil {
		return Session{}, err
	}

	now := m.now().UTC()
	s := Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	SetCookie(w, CookieName, s.ID, s.ExpiresAt, m.cookie)
	return s, nil
}

// Current loads the session referenced by the request cookie.
func (m *Manager) Current(ctx context.Context, r *http.Request) (Session, error) {
	id := CookieValue(r, CookieName)
	if id == "" {
		return Session{}, model.ErrSessionNotFound
	}
	return m.store.Get(ctx, id)
}

// Destroy deletes the request's session, if any, and clears the session cookie.
// The cookie is left untouched when the store fails.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if id := CookieValue(r, CookieName); id != "" {
		if err := m.store.Delete(ctx, id); err != nil {
			return fmt.Errorf("destroy session: %w", err)
		}
	}

	ClearCookie(w, CookieName, m.cookie)
	return nil
}

// IsNotFound reports whether err means the client has no live session.
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrSessionNotFound)
}
