package session

import (
	"context"
	"time"
)

// Session is the server-side half of an authenticated login. Clients only ever hold ID.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions by id. Get reports a missing or expired session as
// model.ErrSessionNotFound; Delete of an unknown id is a no-op.
type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
