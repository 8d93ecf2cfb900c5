package repository

import (
	"context"
	"errors"

	"harnect/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository defines persistence operations for feedback entries.
type FeedbackRepository interface {
	Create(ctx context.Context, entry *models.Feedback) error
	GetByID(ctx context.Context, id uint) (*models.Feedback, error)
	Update(ctx context.Context, entry *models.Feedback) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, entry *models.Feedback) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return storageError(err)
	}
	return nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var entry models.Feedback
	err := r.db.WithContext(ctx).Preload("Author").First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("feedback", id)
		}
		return nil, storageError(err)
	}
	return &entry, nil
}

func (r *feedbackRepository) Update(ctx context.Context, entry *models.Feedback) error {
	result := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("id = ?", entry.ID).
		Update("message", entry.Message)
	if result.Error != nil {
		return storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("feedback", entry.ID)
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Feedback{}, id)
	if result.Error != nil {
		return storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("feedback", id)
	}
	return nil
}

func (r *feedbackRepository) List(ctx context.Context, limit, offset int) ([]*models.Feedback, error) {
	var entries []*models.Feedback
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, storageError(err)
	}
	return entries, nil
}
