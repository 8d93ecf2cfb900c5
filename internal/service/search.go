package service

import (
	"context"
	"strings"

	"harnect/internal/models"
	"harnect/internal/repository"
)

type SearchService struct {
	userRepo    repository.UserRepository
	contentRepo repository.ContentRepository
}

// SearchResult carries both halves of an explore query.
type SearchResult struct {
	Users   []models.User         `json:"users"`
	Content []*models.ContentItem `json:"content"`
}

func NewSearchService(userRepo repository.UserRepository, contentRepo repository.ContentRepository) *SearchService {
	return &SearchService{userRepo: userRepo, contentRepo: contentRepo}
}

// Search matches the query as a case-insensitive substring against handles
// and captions. An empty query falls back to the most recent content page,
// so the explore view is never blank.
func (s *SearchService) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	limit = clampLimit(limit)

	if query == "" {
		recent, err := s.contentRepo.ListFeed(ctx, models.ContentKindPost, limit, 0, 0)
		if err != nil {
			return nil, err
		}
		return &SearchResult{Users: []models.User{}, Content: recent}, nil
	}

	users, err := s.userRepo.SearchByHandle(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	content, err := s.contentRepo.SearchByCaption(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Users: users, Content: content}, nil
}
