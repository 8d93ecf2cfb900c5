package repository

import (
	"context"
	"errors"

	"harnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository defines persistence operations for likes and comments.
type EngagementRepository interface {
	// InsertLike is conflict-tolerant: it reports whether a new row was
	// actually written, so concurrent duplicate inserts collapse to one.
	InsertLike(ctx context.Context, userID, contentID uint) (bool, error)
	DeleteLike(ctx context.Context, userID, contentID uint) (bool, error)
	CountLikes(ctx context.Context, contentID uint) (int64, error)
	IsLiked(ctx context.Context, userID, contentID uint) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	ListComments(ctx context.Context, contentID uint, limit, offset int) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) InsertLike(ctx context.Context, userID, contentID uint) (bool, error) {
	like := models.Like{UserID: userID, ContentID: contentID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if result.Error != nil {
		// Some drivers report the conflict instead of swallowing it.
		if isUniqueConstraintError(result.Error) {
			return false, nil
		}
		return false, storageError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) DeleteLike(ctx context.Context, userID, contentID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, storageError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) CountLikes(ctx context.Context, contentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("content_id = ?", contentID).
		Count(&count).Error
	if err != nil {
		return 0, storageError(err)
	}
	return count, nil
}

func (r *engagementRepository) IsLiked(ctx context.Context, userID, contentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	if err != nil {
		return false, storageError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return storageError(err)
	}
	return nil
}

func (r *engagementRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("comment", id)
		}
		return nil, storageError(err)
	}
	return &comment, nil
}

func (r *engagementRepository) ListComments(ctx context.Context, contentID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	// Oldest first, the way a comment thread reads.
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("content_id = ?", contentID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, storageError(err)
	}
	return comments, nil
}

func (r *engagementRepository) DeleteComment(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("comment", id)
	}
	return nil
}
