package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-planner/internal/models"
)

type authServiceImpl struct {
	logger         zerolog.Logger
	users          models.UserStore
	sessions       models.SessionStore
	sessionService SessionService
	jwtIssuer      string
	jwtSigningKey  []byte
	sessionTTL     time.Duration
	now            func() time.Time

	// Compared against when the username is unknown so that both
	// login failures cost the same.
	dummyHashOnce sync.Once
	dummyHash     string
}

func NewAuthService(
	logger zerolog.Logger,
	users models.UserStore,
	sessions models.SessionStore,
	sessionService SessionService,
	jwtIssuer string,
	jwtSigningKey []byte,
	sessionTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:         logger,
		users:          users,
		sessions:       sessions,
		sessionService: sessionService,
		jwtIssuer:      jwtIssuer,
		jwtSigningKey:  jwtSigningKey,
		sessionTTL:     sessionTTL,
		now:            time.Now,
	}
}

func (s *authServiceImpl) Signup(ctx context.Context, params SignupParams) (*models.User, error) {
	username := strings.TrimSpace(params.Username)
	switch {
	case username == "":
		return nil, ErrEmptyUsername
	case utf8.RuneCountInString(username) > models.MaxUsernameLength:
		return nil, ErrUsernameTooLong
	case params.Password == "":
		return nil, ErrEmptyPassword
	case params.Password != params.ConfirmPassword:
		s.logger.Debug().
			Str("username", username).
			Msg("passwords do not match")
		return nil, ErrPasswordMismatch
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		s.logger.Error().
			Str("username", username).
			Msg("user with this username already exists")
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error().
			Err(err).
			Str("username", username).
			Msg("failed to select user by username")
		return nil, err
	}

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	now := s.now()
	user, err := s.users.Create(ctx, models.User{
		Username:  username,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			s.logger.Error().
				Str("username", username).
				Msg("user with this username already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("signed up user")
	return &user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := s.verifyCredentials(ctx, strings.TrimSpace(params.Username), params.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sessionUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate session uuid")
		return nil, err
	}

	session := models.Session{
		ID:          sessionUUID.String(),
		UserID:      user.ID,
		Fingerprint: params.Fingerprint,
		ExpiresAt:   now.Add(s.sessionTTL),
		CreatedAt:   now,
	}
	err = s.sessions.Create(ctx, session)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert session")
		return nil, err
	}
	s.logger.Debug().
		Str("session_id", session.ID).
		Time("expires_at", session.ExpiresAt).
		Msg("inserted session")

	token, err := s.generateSessionToken(session)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate session token")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("session_id", session.ID).
		Msg("logged in")
	return &LoginResult{
		UserID:    user.ID,
		SessionID: session.ID,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.parseSessionToken(token, jwt.WithoutClaimsValidation())
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("ignoring unparsable session token")
		return nil
	}

	err = s.sessions.Delete(ctx, claims.Subject)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Error().
			Err(err).
			Str("session_id", claims.Subject).
			Msg("failed to delete session")
		return err
	}

	s.logger.Info().
		Str("session_id", claims.Subject).
		Msg("logged out")
	return nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token, fingerprint string) (*models.Session, error) {
	claims, err := s.parseSessionToken(token,
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		s.logger.Debug().
			Err(err).
			Msg("invalid session token")
		return nil, ErrSessionNotFound
	}

	session, err := s.sessionService.GetSessionByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if session.Expired(s.now()) {
		s.logger.Debug().
			Str("session_id", session.ID).
			Time("expires_at", session.ExpiresAt).
			Msg("session expired")
		return nil, ErrSessionExpired
	}

	if session.Fingerprint != fingerprint {
		s.logger.Warn().
			Str("session_id", session.ID).
			Msg("fingerprint mismatch")
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// verifyCredentials does not tell unknown usernames from wrong passwords.
func (s *authServiceImpl) verifyCredentials(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error().
				Err(err).
				Str("username", username).
				Msg("failed to select user by username")
			return models.User{}, err
		}

		s.dummyHashOnce.Do(func() {
			s.dummyHash, _ = argon2id.CreateHash("dummy-password", argon2id.DefaultParams)
		})
		_, _ = argon2id.ComparePasswordAndHash(password, s.dummyHash)

		s.logger.Info().
			Str("username", username).
			Msg("invalid credentials")
		return models.User{}, ErrInvalidCredentials
	}

	match, err := argon2id.ComparePasswordAndHash(password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return models.User{}, err
	} else if !match {
		s.logger.Info().
			Str("username", username).
			Msg("invalid credentials")
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authServiceImpl) generateSessionToken(session models.Session) (string, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    s.jwtIssuer,
		Subject:   session.ID,
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		NotBefore: jwt.NewNumericDate(session.CreatedAt),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
	})

	signed, err := token.SignedString(s.jwtSigningKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) parseSessionToken(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSigningKey, nil
		},
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, errors.New("failed to parse token: missing subject")
	}
	return claims, nil
}
