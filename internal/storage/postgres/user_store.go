package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-planner/internal/models"
)

var _ models.UserStore = (*UserStore)(nil)

type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	const insertUserQuery = `
INSERT INTO users (username,
                   password,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	err := s.pool.QueryRow(
		ctx,
		insertUserQuery,
		user.Username,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return models.User{}, mapError("insert user", err)
	}
	return user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (models.User, error) {
	const selectUserByIDQuery = `
SELECT id,
       username,
       password,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	var user models.User
	err := s.pool.QueryRow(ctx, selectUserByIDQuery, id).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, mapError("select user by id", err)
	}
	return user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	const selectUserByUsernameQuery = `
SELECT id,
       username,
       password,
       created_at,
       updated_at
FROM users
WHERE username = $1
`
	var user models.User
	err := s.pool.QueryRow(ctx, selectUserByUsernameQuery, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, mapError("select user by username", err)
	}
	return user, nil
}

// Delete relies on ON DELETE CASCADE to remove the user's tasks and sessions.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	const deleteUserQuery = `
DELETE FROM users
WHERE id = $1
`
	tag, err := s.pool.Exec(ctx, deleteUserQuery, id)
	if err != nil {
		return mapError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
