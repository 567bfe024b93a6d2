package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"aitravel/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByUsername(ctx context.Context, username string) (*db_models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (u *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

// FindByUsername matches the username exactly, case included.
func (u *userRepository) FindByUsername(ctx context.Context, username string) (*db_models.User, error) {
	return u.findOne(ctx, "username = ?", username)
}

func (u *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return u.exists(ctx, "username = ?", username)
}

func (u *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return u.exists(ctx, "email = ?", email)
}

func (u *userRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (u *userRepository) findOne(ctx context.Context, query string, args ...any) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).Where(query, args...).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&db_models.User{}).Where(query, args...).Count(&count).Error
	return count > 0, err
}
