package service

import (
	"context"
	"strings"

	"harnect/internal/models"
	"harnect/internal/observability"
	"harnect/internal/repository"
)

const maxCommentLen = 1000

type EngagementService struct {
	engagementRepo repository.EngagementRepository
	contentRepo    repository.ContentRepository
}

// LikeState is the outcome of a toggle: the caller's new relation to the
// item and the item's total.
type LikeState struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"total_likes"`
}

type AddCommentInput struct {
	ItemID   uint
	AuthorID uint
	Text     string
}

type RemoveCommentInput struct {
	CommentID   uint
	RequesterID uint
}

func NewEngagementService(
	engagementRepo repository.EngagementRepository,
	contentRepo repository.ContentRepository,
) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		contentRepo:    contentRepo,
	}
}

// ToggleLike flips the caller's like on an item. Insert first: the unique
// index collapses racing duplicates, and a swallowed conflict means the
// like already existed, so the toggle falls through to removal.
func (s *EngagementService) ToggleLike(ctx context.Context, itemID, userID uint) (*LikeState, error) {
	if _, err := s.contentRepo.GetByID(ctx, itemID, 0); err != nil {
		return nil, err
	}

	inserted, err := s.engagementRepo.InsertLike(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	liked := inserted
	if !inserted {
		if _, err := s.engagementRepo.DeleteLike(ctx, userID, itemID); err != nil {
			return nil, err
		}
		liked = false
	}

	total, err := s.engagementRepo.CountLikes(ctx, itemID)
	if err != nil {
		return nil, err
	}
	state := "unliked"
	if liked {
		state = "liked"
	}
	observability.LikeToggles.WithLabelValues(state).Inc()
	return &LikeState{Liked: liked, TotalLikes: total}, nil
}

func (s *EngagementService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	if _, err := s.contentRepo.GetByID(ctx, in.ItemID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ContentID: in.ItemID,
		AuthorID:  in.AuthorID,
		Text:      text,
	}
	if err := s.engagementRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.engagementRepo.GetCommentByID(ctx, comment.ID)
}

func (s *EngagementService) RemoveComment(ctx context.Context, in RemoveCommentInput) error {
	comment, err := s.engagementRepo.GetCommentByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != in.RequesterID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.engagementRepo.DeleteComment(ctx, in.CommentID)
}

func (s *EngagementService) ListComments(ctx context.Context, itemID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.contentRepo.GetByID(ctx, itemID, 0); err != nil {
		return nil, err
	}
	limit = clampLimit(limit)
	return s.engagementRepo.ListComments(ctx, itemID, limit, offset)
}
