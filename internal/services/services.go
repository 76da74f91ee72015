package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-planner/internal/models"
)

var (
	ErrEmptyUsername      = errors.New("username must not be empty")
	ErrUsernameTooLong    = errors.New("username is too long")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidTask        = errors.New("invalid task")
	ErrInvalidDays        = errors.New("invalid days parameter")
)

type AuthService interface {
	// Signup registers a user with the given username and password.
	//
	// It returns ErrEmptyUsername, ErrUsernameTooLong, ErrEmptyPassword,
	// ErrPasswordMismatch or ErrUserAlreadyExists when the registration is
	// invalid. It does not create a session.
	Signup(ctx context.Context, params SignupParams) (*models.User, error)

	// Login verifies the credentials, creates a session bound to the
	// fingerprint and returns a signed session token.
	//
	// It returns ErrInvalidCredentials both for unknown usernames and for
	// wrong passwords.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Logout deletes the session referenced by the token. Missing, expired
	// or malformed sessions are not an error.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a session token into its session.
	//
	// It returns ErrSessionNotFound if the token is invalid, the session
	// doesn't exist or the fingerprint doesn't match, and ErrSessionExpired
	// if the session is expired.
	Authenticate(ctx context.Context, token, fingerprint string) (*models.Session, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
	// PurgeExpiredSessions deletes every expired session and returns
	// how many were deleted.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type TaskService interface {
	// ListTasks returns tasks ending today or later, ordered by end date.
	// Tasks without an end date are never listed. A non-empty Days limits
	// the result to tasks ending within that many days from today; it
	// returns ErrInvalidDays if Days is not an integer.
	ListTasks(ctx context.Context, params ListTasksParams) ([]*models.Task, error)

	// CreateTask stores a new task, deriving its category from the title
	// unless one is given. It returns ErrUserNotFound if the owner doesn't
	// exist and ErrInvalidTask if the task violates field constraints.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	GetTask(ctx context.Context, taskID int64) (*models.Task, error)

	// UpdateTask applies a partial update. The category is recomputed
	// from the resulting title unless the patch sets it explicitly.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	DeleteTask(ctx context.Context, taskID int64) error
}

type SignupParams struct {
	Username        string
	Password        string
	ConfirmPassword string
}

type LoginParams struct {
	Username    string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID    int64
	SessionID string
	Token     string
	ExpiresAt time.Time
}

type ListTasksParams struct {
	Days string
}

type CreateTaskParams struct {
	UserID      int64
	Title       string
	StartDate   *time.Time
	EndDate     *time.Time
	DueTime     *models.TimeOfDay
	IsCompleted bool
	Category    *string
}

// Field is an optional patch value. Set reports whether the field was
// supplied at all; a supplied nil Value clears the field.
type Field[T any] struct {
	Set   bool
	Value *T
}

func SetField[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

func ClearField[T any]() Field[T] {
	return Field[T]{Set: true}
}

type UpdateTaskParams struct {
	ID          int64
	Title       Field[string]
	StartDate   Field[time.Time]
	EndDate     Field[time.Time]
	DueTime     Field[models.TimeOfDay]
	IsCompleted Field[bool]
	Category    Field[string]
}
