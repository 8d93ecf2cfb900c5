package repository

import (
	"context"
	"errors"

	"harnect/internal/cache"
	"harnect/internal/models"

	"gorm.io/gorm"
)

// ContentRepository defines persistence operations for posts and stories.
type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.ContentItem, error)
	ListFeed(ctx context.Context, kind string, limit, offset int, currentUserID uint) ([]*models.ContentItem, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.ContentItem, error)
	SearchByCaption(ctx context.Context, query string, limit int) ([]*models.ContentItem, error)
	// DeleteCascade removes the item together with its likes and comments in
	// one transaction. The media blob is the caller's problem.
	DeleteCascade(ctx context.Context, id uint) error
	// Orphaned lists content whose author row no longer exists.
	Orphaned(ctx context.Context) ([]*models.ContentItem, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return storageError(err)
	}
	cache.InvalidateFeed(ctx, item.Kind)
	return nil
}

// applyContentDetails adds subqueries to fetch counts and liked status in a single query.
func (r *contentRepository) applyContentDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "content_items.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.content_id = content_items.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.content_id = content_items.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.content_id = content_items.id AND likes.user_id = ?) as liked", currentUserID)
	}
	return db.Select(selectQuery + ", false as liked")
}

func (r *contentRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.ContentItem, error) {
	var item models.ContentItem
	err := r.applyContentDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("content item", id)
		}
		return nil, storageError(err)
	}
	return &item, nil
}

func (r *contentRepository) ListFeed(ctx context.Context, kind string, limit, offset int, currentUserID uint) ([]*models.ContentItem, error) {
	// The anonymous first page is the hot path; personalized reads carry
	// the viewer's liked flag and cannot be shared.
	if currentUserID == 0 && offset == 0 && limit == cache.FeedPageLimit {
		var items []*models.ContentItem
		err := cache.Aside(ctx, cache.FeedKey(kind), &items, cache.FeedTTL, func() error {
			fetched, ferr := r.listFeed(ctx, kind, limit, offset, currentUserID)
			if ferr != nil {
				return ferr
			}
			items = fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		return items, nil
	}
	return r.listFeed(ctx, kind, limit, offset, currentUserID)
}

func (r *contentRepository) listFeed(ctx context.Context, kind string, limit, offset int, currentUserID uint) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	// The id tie-break keeps ordering stable when timestamps collide.
	err := r.applyContentDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("kind = ?", kind).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, storageError(err)
	}
	return items, nil
}

func (r *contentRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	err := r.applyContentDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, storageError(err)
	}
	return items, nil
}

func (r *contentRepository) SearchByCaption(ctx context.Context, query string, limit int) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	like := "%" + query + "%"
	err := r.applyContentDetails(r.db.WithContext(ctx), 0).
		Preload("Author").
		Where("LOWER(caption) LIKE LOWER(?)", like).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, storageError(err)
	}
	return items, nil
}

func (r *contentRepository) DeleteCascade(ctx context.Context, id uint) error {
	var kind string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.ContentItem
		if err := tx.Select("id", "kind").First(&item, id).Error; err != nil {
			return err
		}
		kind = item.Kind

		if err := tx.Where("content_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("content_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ContentItem{}, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("content item", id)
		}
		return storageError(err)
	}
	cache.InvalidateFeed(ctx, kind)
	return nil
}

func (r *contentRepository) Orphaned(ctx context.Context) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN users ON users.id = content_items.author_id").
		Where("users.id IS NULL").
		Find(&items).Error
	if err != nil {
		return nil, storageError(err)
	}
	return items, nil
}
