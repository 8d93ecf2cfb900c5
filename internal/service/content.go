package service

import (
	"context"
	"log/slog"
	"strings"

	"harnect/internal/models"
	"harnect/internal/observability"
	"harnect/internal/repository"
)

const (
	maxCaptionLen   = 2000
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ContentService struct {
	contentRepo repository.ContentRepository
	userRepo    repository.UserRepository
	// removeBlob deletes the stored media for a reference. Best effort:
	// failures are logged, never surfaced.
	removeBlob func(ref string) error
}

type PublishInput struct {
	AuthorID uint
	MediaRef string
	Caption  string
	Kind     string
}

type RemoveInput struct {
	RequesterID uint
	ItemID      uint
}

func NewContentService(
	contentRepo repository.ContentRepository,
	userRepo repository.UserRepository,
	removeBlob func(ref string) error,
) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		userRepo:    userRepo,
		removeBlob:  removeBlob,
	}
}

func (s *ContentService) Publish(ctx context.Context, in PublishInput) (*models.ContentItem, error) {
	if in.Kind != models.ContentKindPost && in.Kind != models.ContentKindStory {
		return nil, models.NewValidationError("Kind must be post or story")
	}
	if in.MediaRef == "" {
		return nil, models.NewValidationError("Media is required")
	}

	caption := strings.TrimSpace(in.Caption)
	if len(caption) > maxCaptionLen {
		return nil, models.NewValidationError("Caption too long (max 2000 characters)")
	}
	// Stories are caption-less.
	if in.Kind == models.ContentKindStory {
		caption = ""
	}

	// The author must exist at creation time.
	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	item := &models.ContentItem{
		AuthorID: in.AuthorID,
		MediaRef: in.MediaRef,
		Caption:  caption,
		Kind:     in.Kind,
	}
	if err := s.contentRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	observability.ContentPublished.WithLabelValues(in.Kind).Inc()

	return s.contentRepo.GetByID(ctx, item.ID, in.AuthorID)
}

// Remove deletes an item the requester owns, cascading likes and comments.
// The record deletion is authoritative; blob removal afterwards is best
// effort.
func (s *ContentService) Remove(ctx context.Context, in RemoveInput) error {
	item, err := s.contentRepo.GetByID(ctx, in.ItemID, 0)
	if err != nil {
		return err
	}
	if item.AuthorID != in.RequesterID {
		return models.NewForbiddenError("You can only delete your own content")
	}

	if err := s.contentRepo.DeleteCascade(ctx, in.ItemID); err != nil {
		return err
	}
	observability.ContentRemoved.WithLabelValues(item.Kind).Inc()

	if s.removeBlob != nil {
		if err := s.removeBlob(item.MediaRef); err != nil {
			slog.WarnContext(ctx, "media blob removal failed",
				"media_ref", item.MediaRef, "err", err)
		}
	}
	return nil
}

func (s *ContentService) GetItem(ctx context.Context, itemID, viewerID uint) (*models.ContentItem, error) {
	return s.contentRepo.GetByID(ctx, itemID, viewerID)
}

func (s *ContentService) ListFeed(ctx context.Context, kind string, limit, offset int, viewerID uint) ([]*models.ContentItem, error) {
	if kind != models.ContentKindPost && kind != models.ContentKindStory {
		return nil, models.NewValidationError("Kind must be post or story")
	}
	limit = clampLimit(limit)
	return s.contentRepo.ListFeed(ctx, kind, limit, offset, viewerID)
}

func (s *ContentService) ListByAuthor(ctx context.Context, handle string, limit, offset int, viewerID uint) ([]*models.ContentItem, error) {
	author, err := s.userRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("user", handle)
	}
	limit = clampLimit(limit)
	return s.contentRepo.ListByAuthor(ctx, author.ID, limit, offset, viewerID)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
