package models

import (
	"context"
	"time"
)

const MaxUsernameLength = 150

type User struct {
	ID        int64
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserStore persists users. Deleting a user removes every task and
// session it owns.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Delete(ctx context.Context, id int64) error
}
