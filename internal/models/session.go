package models

import (
	"context"
	"time"
)

type Session struct {
	ID          string
	UserID      int64
	Fingerprint string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the session is over at now. A session expiring
// exactly at now is expired; DeleteExpired uses the same boundary.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions expiring at or before the given moment
	// and reports how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
