package repository

import (
	"context"
	"errors"
	"time"

	"harnect/internal/cache"
	"harnect/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByHandle returns (nil, nil) when no user owns the handle.
	GetByHandle(ctx context.Context, handle string) (*models.User, error)
	// GetByHandleForAuth is the credential lookup. It always reads the
	// database: the profile cache round-trips through JSON, which never
	// carries the password hash.
	GetByHandleForAuth(ctx context.Context, handle string) (*models.User, error)
	// Rename updates the handle of one user. The unique index makes the
	// update all-or-nothing; referencing tables key on ID and never change.
	Rename(ctx context.Context, id uint, newHandle string) error
	Update(ctx context.Context, user *models.User) error
	// DeleteGuest removes the user only if the guest flag is set. Returns
	// whether a row was deleted.
	DeleteGuest(ctx context.Context, id uint) (bool, error)
	// StaleGuests lists guest accounts created before the cutoff.
	StaleGuests(ctx context.Context, cutoff time.Time) ([]models.User, error)
	SearchByHandle(ctx context.Context, query string, limit int) ([]models.User, error)
	CountGuests(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateHandleError(user.Handle)
		}
		return storageError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user", id)
		}
		return nil, storageError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.ProfileKey(handle), &user, cache.ProfileTTL, func() error {
		return r.db.WithContext(ctx).Where("handle = ?", handle).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByHandleForAuth(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError(err)
	}
	return &user, nil
}

func (r *userRepository) Rename(ctx context.Context, id uint, newHandle string) error {
	var oldHandle string
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Pluck("handle", &oldHandle).Error; err != nil {
		return storageError(err)
	}
	if oldHandle == "" {
		return models.NewNotFoundError("user", id)
	}

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("handle", newHandle)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return models.NewDuplicateHandleError(newHandle)
		}
		return storageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("user", id)
	}

	cache.InvalidateProfile(ctx, oldHandle)
	cache.InvalidateProfile(ctx, newHandle)
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateHandleError(user.Handle)
		}
		return storageError(err)
	}
	cache.InvalidateProfile(ctx, user.Handle)
	return nil
}

func (r *userRepository) DeleteGuest(ctx context.Context, id uint) (bool, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, storageError(err)
	}

	// The guest flag gate lives in the WHERE clause so this path can never
	// delete a registered account.
	res := r.db.WithContext(ctx).
		Where("id = ? AND guest = ?", id, true).
		Delete(&models.User{})
	if res.Error != nil {
		return false, storageError(res.Error)
	}
	if res.RowsAffected > 0 {
		cache.InvalidateProfile(ctx, user.Handle)
		return true, nil
	}
	return false, nil
}

func (r *userRepository) StaleGuests(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("guest = ? AND created_at < ?", true, cutoff).
		Find(&users).Error; err != nil {
		return nil, storageError(err)
	}
	return users, nil
}

func (r *userRepository) SearchByHandle(ctx context.Context, query string, limit int) ([]models.User, error) {
	var users []models.User
	like := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(handle) LIKE LOWER(?)", like).
		Order("handle ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, storageError(err)
	}
	return users, nil
}

func (r *userRepository) CountGuests(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("guest = ?", true).
		Count(&count).Error; err != nil {
		return 0, storageError(err)
	}
	return count, nil
}
