package service

import (
	"context"
	"strings"

	"harnect/internal/models"
	"harnect/internal/repository"
)

const maxFeedbackLen = 4000

type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

type SubmitFeedbackInput struct {
	AuthorID uint
	Message  string
}

type EditFeedbackInput struct {
	ID          uint
	RequesterID uint
	Message     string
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

func (s *FeedbackService) Submit(ctx context.Context, in SubmitFeedbackInput) (*models.Feedback, error) {
	message, err := cleanMessage(in.Message)
	if err != nil {
		return nil, err
	}

	entry := &models.Feedback{
		AuthorID: in.AuthorID,
		Message:  message,
	}
	if err := s.feedbackRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return s.feedbackRepo.GetByID(ctx, entry.ID)
}

func (s *FeedbackService) Edit(ctx context.Context, in EditFeedbackInput) (*models.Feedback, error) {
	message, err := cleanMessage(in.Message)
	if err != nil {
		return nil, err
	}

	entry, err := s.feedbackRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if entry.AuthorID != in.RequesterID {
		return nil, models.NewForbiddenError("You can only edit your own feedback")
	}

	entry.Message = message
	if err := s.feedbackRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return s.feedbackRepo.GetByID(ctx, in.ID)
}

func (s *FeedbackService) Remove(ctx context.Context, id, requesterID uint) error {
	entry, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.AuthorID != requesterID {
		return models.NewForbiddenError("You can only delete your own feedback")
	}
	return s.feedbackRepo.Delete(ctx, id)
}

func (s *FeedbackService) List(ctx context.Context, limit, offset int) ([]*models.Feedback, error) {
	limit = clampLimit(limit)
	return s.feedbackRepo.List(ctx, limit, offset)
}

func cleanMessage(raw string) (string, error) {
	message := strings.TrimSpace(raw)
	if message == "" {
		return "", models.NewValidationError("Message is required")
	}
	if len(message) > maxFeedbackLen {
		return "", models.NewValidationError("Message too long (max 4000 characters)")
	}
	return message, nil
}
