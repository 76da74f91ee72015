package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-planner/internal/models"
)

type sessionServiceImpl struct {
	logger   zerolog.Logger
	sessions models.SessionStore
	now      func() time.Time
}

func NewSessionService(
	logger zerolog.Logger,
	sessions models.SessionStore,
) SessionService {
	return &sessionServiceImpl{
		logger:   logger,
		sessions: sessions,
		now:      time.Now,
	}
}

func (s *sessionServiceImpl) GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Debug().
				Str("session_id", sessionID).
				Msg("session not found")
			return nil, ErrSessionNotFound
		}

		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to select session by id")
		return nil, err
	}
	s.logger.Debug().
		Str("session_id", session.ID).
		Time("expires_at", session.ExpiresAt).
		Msg("selected session by id")
	return &session, nil
}

func (s *sessionServiceImpl) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	now := s.now()
	affected, err := s.sessions.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to delete expired sessions")
		return 0, err
	}

	s.logger.Info().
		Int64("affected", affected).
		Time("before", now).
		Msg("purged expired sessions")
	return affected, nil
}
