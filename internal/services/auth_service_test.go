package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-planner/internal/models"
)

const (
	testIssuer      = "planner-test"
	testFingerprint = `{"client_ip":"192.0.2.1","user_agent":"test"}`
)

var testSigningKey = []byte("test-signing-key")

func newTestAuthService(users *mockUserStore, sessions *mockSessionStore) *authServiceImpl {
	return NewAuthService(
		zerolog.Nop(),
		users,
		sessions,
		NewSessionService(zerolog.Nop(), sessions),
		testIssuer,
		testSigningKey,
		time.Hour,
	).(*authServiceImpl)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	require.NoError(t, err)
	return hash
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByUsername", ctx, "alice").Return(models.User{}, models.ErrNotFound)
		users.On("Create", ctx, mock.MatchedBy(func(u models.User) bool {
			match, err := argon2id.ComparePasswordAndHash("s3cret", u.Password)
			return u.Username == "alice" && err == nil && match
		})).Return(models.User{ID: 1, Username: "alice"}, nil)
		sessions := &mockSessionStore{}

		user, err := newTestAuthService(users, sessions).Signup(ctx, SignupParams{
			Username:        " alice ",
			Password:        "s3cret",
			ConfirmPassword: "s3cret",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		users.AssertExpectations(t)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			params SignupParams
			want   error
		}{
			{
				name:   "empty username",
				params: SignupParams{Username: "  ", Password: "a", ConfirmPassword: "a"},
				want:   ErrEmptyUsername,
			},
			{
				name:   "empty password",
				params: SignupParams{Username: "alice"},
				want:   ErrEmptyPassword,
			},
			{
				name:   "password mismatch",
				params: SignupParams{Username: "alice", Password: "one", ConfirmPassword: "two"},
				want:   ErrPasswordMismatch,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				users := &mockUserStore{}

				_, err := newTestAuthService(users, &mockSessionStore{}).Signup(ctx, tt.params)
				assert.ErrorIs(t, err, tt.want)
				users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("username taken", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByUsername", ctx, "alice").Return(models.User{ID: 1}, nil)

		_, err := newTestAuthService(users, &mockSessionStore{}).Signup(ctx, SignupParams{
			Username:        "alice",
			Password:        "a",
			ConfirmPassword: "a",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("username taken concurrently", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByUsername", ctx, "alice").Return(models.User{}, models.ErrNotFound)
		users.On("Create", ctx, mock.Anything).Return(models.User{}, models.ErrAlreadyExists)

		_, err := newTestAuthService(users, &mockSessionStore{}).Signup(ctx, SignupParams{
			Username:        "alice",
			Password:        "a",
			ConfirmPassword: "a",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	alice := models.User{ID: 3, Username: "alice", Password: mustHash(t, "s3cret")}

	t.Run("success creates a session", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByUsername", ctx, "alice").Return(alice, nil)
		sessions := &mockSessionStore{}
		sessions.On("Create", ctx, mock.MatchedBy(func(s models.Session) bool {
			return s.UserID == 3 && s.Fingerprint == testFingerprint && s.ExpiresAt.After(time.Now())
		})).Return(nil)
		svc := newTestAuthService(users, sessions)

		result, err := svc.Login(ctx, LoginParams{Username: "alice", Password: "s3cret", Fingerprint: testFingerprint})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.UserID)
		assert.NotEmpty(t, result.SessionID)
		sessions.AssertExpectations(t)

		claims, err := svc.parseSessionToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.SessionID, claims.Subject)
		assert.Equal(t, testIssuer, claims.Issuer)
	})

	t.Run("failures are indistinguishable", func(t *testing.T) {
		users := &mockUserStore{}
		users.On("GetByUsername", ctx, "alice").Return(alice, nil)
		users.On("GetByUsername", ctx, "mallory").Return(models.User{}, models.ErrNotFound)
		sessions := &mockSessionStore{}
		svc := newTestAuthService(users, sessions)

		_, wrongPassword := svc.Login(ctx, LoginParams{Username: "alice", Password: "guess"})
		_, unknownUser := svc.Login(ctx, LoginParams{Username: "mallory", Password: "guess"})

		assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		storeErr := errors.New("connection reset")
		users := &mockUserStore{}
		users.On("GetByUsername", ctx, "alice").Return(models.User{}, storeErr)

		_, err := newTestAuthService(users, &mockSessionStore{}).Login(ctx, LoginParams{Username: "alice", Password: "x"})
		assert.ErrorIs(t, err, storeErr)
	})
}

func loginForTest(t *testing.T, svc *authServiceImpl, users *mockUserStore, sessions *mockSessionStore) *LoginResult {
	t.Helper()

	users.On("GetByUsername", mock.Anything, "alice").
		Return(models.User{ID: 3, Username: "alice", Password: mustHash(t, "pw")}, nil)
	sessions.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Login(context.Background(), LoginParams{Username: "alice", Password: "pw", Fingerprint: testFingerprint})
	require.NoError(t, err)
	return result
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent", func(t *testing.T) {
		users, sessions := &mockUserStore{}, &mockSessionStore{}
		svc := newTestAuthService(users, sessions)
		result := loginForTest(t, svc, users, sessions)

		sessions.On("Delete", ctx, result.SessionID).Return(nil).Once()
		sessions.On("Delete", ctx, result.SessionID).Return(models.ErrNotFound).Once()

		require.NoError(t, svc.Logout(ctx, result.Token))
		require.NoError(t, svc.Logout(ctx, result.Token))
		sessions.AssertExpectations(t)
	})

	t.Run("garbage and empty tokens", func(t *testing.T) {
		sessions := &mockSessionStore{}
		svc := newTestAuthService(&mockUserStore{}, sessions)

		assert.NoError(t, svc.Logout(ctx, ""))
		assert.NoError(t, svc.Logout(ctx, "not-a-token"))
		sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("expired token still ends the session", func(t *testing.T) {
		sessions := &mockSessionStore{}
		svc := newTestAuthService(&mockUserStore{}, sessions)
		past := time.Now().Add(-2 * time.Hour)
		token, err := svc.generateSessionToken(models.Session{ID: "old", CreatedAt: past, ExpiresAt: past.Add(time.Hour)})
		require.NoError(t, err)
		sessions.On("Delete", ctx, "old").Return(nil)

		require.NoError(t, svc.Logout(ctx, token))
		sessions.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		storeErr := errors.New("connection reset")
		users, sessions := &mockUserStore{}, &mockSessionStore{}
		svc := newTestAuthService(users, sessions)
		result := loginForTest(t, svc, users, sessions)
		sessions.On("Delete", ctx, result.SessionID).Return(storeErr)

		assert.ErrorIs(t, svc.Logout(ctx, result.Token), storeErr)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid session", func(t *testing.T) {
		users, sessions := &mockUserStore{}, &mockSessionStore{}
		svc := newTestAuthService(users, sessions)
		result := loginForTest(t, svc, users, sessions)
		sessions.On("GetByID", ctx, result.SessionID).Return(models.Session{
			ID:          result.SessionID,
			UserID:      3,
			Fingerprint: testFingerprint,
			ExpiresAt:   result.ExpiresAt,
		}, nil)

		session, err := svc.Authenticate(ctx, result.Token, testFingerprint)
		require.NoError(t, err)
		assert.Equal(t, int64(3), session.UserID)

		_, err = svc.Authenticate(ctx, result.Token, "other device")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("deleted session", func(t *testing.T) {
		users, sessions := &mockUserStore{}, &mockSessionStore{}
		svc := newTestAuthService(users, sessions)
		result := loginForTest(t, svc, users, sessions)
		sessions.On("GetByID", ctx, result.SessionID).Return(models.Session{}, models.ErrNotFound)

		_, err := svc.Authenticate(ctx, result.Token, testFingerprint)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("expired session", func(t *testing.T) {
		users, sessions := &mockUserStore{}, &mockSessionStore{}
		svc := newTestAuthService(users, sessions)
		result := loginForTest(t, svc, users, sessions)
		sessions.On("GetByID", ctx, result.SessionID).Return(models.Session{
			ID:          result.SessionID,
			Fingerprint: testFingerprint,
			ExpiresAt:   time.Now().Add(-time.Minute),
		}, nil)

		_, err := svc.Authenticate(ctx, result.Token, testFingerprint)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("session lookup failure", func(t *testing.T) {
		storeErr := errors.New("connection reset")
		users, sessions := &mockUserStore{}, &mockSessionStore{}
		svc := newTestAuthService(users, sessions)
		result := loginForTest(t, svc, users, sessions)
		sessions.On("GetByID", ctx, result.SessionID).Return(models.Session{}, storeErr)

		_, err := svc.Authenticate(ctx, result.Token, testFingerprint)
		assert.ErrorIs(t, err, storeErr)
		sessions.AssertCalled(t, "GetByID", ctx, result.SessionID)
	})

	t.Run("foreign signature", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "sid",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := token.SignedString([]byte("another-key"))
		require.NoError(t, err)

		_, err = newTestAuthService(&mockUserStore{}, &mockSessionStore{}).Authenticate(ctx, signed, testFingerprint)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestSessionService_PurgeExpiredSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	sessions := &mockSessionStore{}
	sessions.On("DeleteExpired", ctx, now).Return(int64(4), nil)

	svc := NewSessionService(zerolog.Nop(), sessions).(*sessionServiceImpl)
	svc.now = func() time.Time { return now }

	n, err := svc.PurgeExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestSessionService_GetSessionByID(t *testing.T) {
	ctx := context.Background()
	sessions := &mockSessionStore{}
	sessions.On("GetByID", ctx, "sid").Return(models.Session{ID: "sid", UserID: 3}, nil)
	sessions.On("GetByID", ctx, "gone").Return(models.Session{}, models.ErrNotFound)
	svc := NewSessionService(zerolog.Nop(), sessions)

	session, err := svc.GetSessionByID(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, int64(3), session.UserID)

	_, err = svc.GetSessionByID(ctx, "gone")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
