package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/adanyl0v/go-planner/internal/models"
)

var _ models.UserStore = (*UserStore)(nil)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	row := userRow{
		Username:  user.Username,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	err := s.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return models.User{}, mapError("insert user", err)
	}

	user.ID = row.ID
	return user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).First(&row, id).Error
	if err != nil {
		return models.User{}, mapError("select user by id", err)
	}
	return row.toModel(), nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		return models.User{}, mapError("select user by username", err)
	}
	return row.toModel(), nil
}

// Delete removes the user together with its tasks and sessions in one
// transaction.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", id).Delete(&taskRow{}).Error
		if err != nil {
			return mapError("delete user tasks", err)
		}

		err = tx.Where("user_id = ?", id).Delete(&sessionRow{}).Error
		if err != nil {
			return mapError("delete user sessions", err)
		}

		res := tx.Delete(&userRow{}, id)
		if res.Error != nil {
			return mapError("delete user", res.Error)
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

func (r userRow) toModel() models.User {
	return models.User{
		ID:        r.ID,
		Username:  r.Username,
		Password:  r.Password,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
