package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-planner/internal/models"
)

var _ models.SessionStore = (*SessionStore)(nil)

type SessionStore struct {
	pool *pgxpool.Pool
}

func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

func (s *SessionStore) Create(ctx context.Context, session models.Session) error {
	const insertSessionQuery = `
INSERT INTO sessions (id,
                      user_id,
                      fingerprint,
                      expires_at,
                      created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := s.pool.Exec(
		ctx,
		insertSessionQuery,
		session.ID,
		session.UserID,
		session.Fingerprint,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return mapError("insert session", err)
	}
	return nil
}

func (s *SessionStore) GetByID(ctx context.Context, id string) (models.Session, error) {
	const selectSessionByIDQuery = `
SELECT id,
       user_id,
       fingerprint,
       expires_at,
       created_at
FROM sessions
WHERE id = $1
`
	var session models.Session
	err := s.pool.QueryRow(ctx, selectSessionByIDQuery, id).Scan(
		&session.ID,
		&session.UserID,
		&session.Fingerprint,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return models.Session{}, mapError("select session by id", err)
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	const deleteSessionQuery = `
DELETE FROM sessions
WHERE id = $1
`
	tag, err := s.pool.Exec(ctx, deleteSessionQuery, id)
	if err != nil {
		return mapError("delete session", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *SessionStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const deleteExpiredSessionsQuery = `
DELETE FROM sessions
WHERE expires_at <= $1
`
	tag, err := s.pool.Exec(ctx, deleteExpiredSessionsQuery, before)
	if err != nil {
		return 0, mapError("delete expired sessions", err)
	}
	return tag.RowsAffected(), nil
}
