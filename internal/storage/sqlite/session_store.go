package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/adanyl0v/go-planner/internal/models"
)

var _ models.SessionStore = (*SessionStore)(nil)

type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, session models.Session) error {
	row := sessionRow{
		ID:          session.ID,
		UserID:      session.UserID,
		Fingerprint: session.Fingerprint,
		ExpiresAt:   session.ExpiresAt.UTC(),
		CreatedAt:   session.CreatedAt.UTC(),
	}
	err := s.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return mapError("insert session", err)
	}
	return nil
}

func (s *SessionStore) GetByID(ctx context.Context, id string) (models.Session, error) {
	var row sessionRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return models.Session{}, mapError("select session by id", err)
	}
	return models.Session{
		ID:          row.ID,
		UserID:      row.UserID,
		Fingerprint: row.Fingerprint,
		ExpiresAt:   row.ExpiresAt.UTC(),
		CreatedAt:   row.CreatedAt.UTC(),
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&sessionRow{})
	if res.Error != nil {
		return mapError("delete session", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *SessionStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", before.UTC()).Delete(&sessionRow{})
	if res.Error != nil {
		return 0, mapError("delete expired sessions", res.Error)
	}
	return res.RowsAffected, nil
}
