package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"harnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn         func(context.Context, *models.User) error
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByHandleFn    func(context.Context, string) (*models.User, error)
	getForAuthFn     func(context.Context, string) (*models.User, error)
	renameFn         func(context.Context, uint, string) error
	updateFn         func(context.Context, *models.User) error
	deleteGuestFn    func(context.Context, uint) (bool, error)
	staleGuestsFn    func(context.Context, time.Time) ([]models.User, error)
	searchByHandleFn func(context.Context, string, int) ([]models.User, error)
	countGuestsFn    func(context.Context) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.getByHandleFn(ctx, handle)
}
func (s *userRepoStub) GetByHandleForAuth(ctx context.Context, handle string) (*models.User, error) {
	return s.getForAuthFn(ctx, handle)
}
func (s *userRepoStub) Rename(ctx context.Context, id uint, newHandle string) error {
	return s.renameFn(ctx, id, newHandle)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) DeleteGuest(ctx context.Context, id uint) (bool, error) {
	return s.deleteGuestFn(ctx, id)
}
func (s *userRepoStub) StaleGuests(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	return s.staleGuestsFn(ctx, cutoff)
}
func (s *userRepoStub) SearchByHandle(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.searchByHandleFn(ctx, query, limit)
}
func (s *userRepoStub) CountGuests(ctx context.Context) (int64, error) {
	return s.countGuestsFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:         func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:        func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByHandleFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getForAuthFn:     func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		renameFn:         func(_ context.Context, _ uint, _ string) error { return nil },
		updateFn:         func(_ context.Context, _ *models.User) error { return nil },
		deleteGuestFn:    func(_ context.Context, _ uint) (bool, error) { return false, nil },
		staleGuestsFn:    func(_ context.Context, _ time.Time) ([]models.User, error) { return nil, nil },
		searchByHandleFn: func(_ context.Context, _ string, _ int) ([]models.User, error) { return nil, nil },
		countGuestsFn:    func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// contentRepoStub is a stub for repository.ContentRepository.
type contentRepoStub struct {
	createFn          func(context.Context, *models.ContentItem) error
	getByIDFn         func(context.Context, uint, uint) (*models.ContentItem, error)
	listFeedFn        func(context.Context, string, int, int, uint) ([]*models.ContentItem, error)
	listByAuthorFn    func(context.Context, uint, int, int, uint) ([]*models.ContentItem, error)
	searchByCaptionFn func(context.Context, string, int) ([]*models.ContentItem, error)
	deleteCascadeFn   func(context.Context, uint) error
	orphanedFn        func(context.Context) ([]*models.ContentItem, error)
}

func (s *contentRepoStub) Create(ctx context.Context, item *models.ContentItem) error {
	return s.createFn(ctx, item)
}
func (s *contentRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.ContentItem, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *contentRepoStub) ListFeed(ctx context.Context, kind string, limit, offset int, viewerID uint) ([]*models.ContentItem, error) {
	return s.listFeedFn(ctx, kind, limit, offset, viewerID)
}
func (s *contentRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.ContentItem, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset, viewerID)
}
func (s *contentRepoStub) SearchByCaption(ctx context.Context, query string, limit int) ([]*models.ContentItem, error) {
	return s.searchByCaptionFn(ctx, query, limit)
}
func (s *contentRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}
func (s *contentRepoStub) Orphaned(ctx context.Context) ([]*models.ContentItem, error) {
	return s.orphanedFn(ctx)
}

func noopContentRepo() *contentRepoStub {
	return &contentRepoStub{
		createFn: func(_ context.Context, _ *models.ContentItem) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.ContentItem, error) {
			return &models.ContentItem{ID: id}, nil
		},
		listFeedFn: func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.ContentItem, error) {
			return nil, nil
		},
		listByAuthorFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.ContentItem, error) {
			return nil, nil
		},
		searchByCaptionFn: func(_ context.Context, _ string, _ int) ([]*models.ContentItem, error) {
			return nil, nil
		},
		deleteCascadeFn: func(_ context.Context, _ uint) error { return nil },
		orphanedFn:      func(_ context.Context) ([]*models.ContentItem, error) { return nil, nil },
	}
}

// engagementRepoStub is a stub for repository.EngagementRepository.
type engagementRepoStub struct {
	insertLikeFn     func(context.Context, uint, uint) (bool, error)
	deleteLikeFn     func(context.Context, uint, uint) (bool, error)
	countLikesFn     func(context.Context, uint) (int64, error)
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	createCommentFn  func(context.Context, *models.Comment) error
	getCommentFn     func(context.Context, uint) (*models.Comment, error)
	listCommentsFn   func(context.Context, uint, int, int) ([]*models.Comment, error)
	deleteCommentFn  func(context.Context, uint) error
}

func (s *engagementRepoStub) InsertLike(ctx context.Context, userID, contentID uint) (bool, error) {
	return s.insertLikeFn(ctx, userID, contentID)
}
func (s *engagementRepoStub) DeleteLike(ctx context.Context, userID, contentID uint) (bool, error) {
	return s.deleteLikeFn(ctx, userID, contentID)
}
func (s *engagementRepoStub) CountLikes(ctx context.Context, contentID uint) (int64, error) {
	return s.countLikesFn(ctx, contentID)
}
func (s *engagementRepoStub) IsLiked(ctx context.Context, userID, contentID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, contentID)
}
func (s *engagementRepoStub) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.createCommentFn(ctx, comment)
}
func (s *engagementRepoStub) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getCommentFn(ctx, id)
}
func (s *engagementRepoStub) ListComments(ctx context.Context, contentID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listCommentsFn(ctx, contentID, limit, offset)
}
func (s *engagementRepoStub) DeleteComment(ctx context.Context, id uint) error {
	return s.deleteCommentFn(ctx, id)
}

func noopEngagementRepo() *engagementRepoStub {
	return &engagementRepoStub{
		insertLikeFn:    func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		deleteLikeFn:    func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		countLikesFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		isLikedFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createCommentFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getCommentFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listCommentsFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		deleteCommentFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	insertEdgeFn     func(context.Context, uint, uint) (bool, error)
	deleteEdgeFn     func(context.Context, uint, uint) (bool, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
}

func (s *followRepoStub) InsertEdge(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.insertEdgeFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) DeleteEdge(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.deleteEdgeFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		insertEdgeFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		deleteEdgeFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		countFollowersFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFollowingFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		isFollowingFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// feedbackRepoStub is a stub for repository.FeedbackRepository.
type feedbackRepoStub struct {
	createFn  func(context.Context, *models.Feedback) error
	getByIDFn func(context.Context, uint) (*models.Feedback, error)
	updateFn  func(context.Context, *models.Feedback) error
	deleteFn  func(context.Context, uint) error
	listFn    func(context.Context, int, int) ([]*models.Feedback, error)
}

func (s *feedbackRepoStub) Create(ctx context.Context, entry *models.Feedback) error {
	return s.createFn(ctx, entry)
}
func (s *feedbackRepoStub) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	return s.getByIDFn(ctx, id)
}
func (s *feedbackRepoStub) Update(ctx context.Context, entry *models.Feedback) error {
	return s.updateFn(ctx, entry)
}
func (s *feedbackRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *feedbackRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Feedback, error) {
	return s.listFn(ctx, limit, offset)
}

func noopFeedbackRepo() *feedbackRepoStub {
	return &feedbackRepoStub{
		createFn: func(_ context.Context, _ *models.Feedback) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Feedback, error) {
			return &models.Feedback{ID: id}, nil
		},
		updateFn: func(_ context.Context, _ *models.Feedback) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		listFn:   func(_ context.Context, _, _ int) ([]*models.Feedback, error) { return nil, nil },
	}
}

// assertCode asserts that err is an AppError carrying the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
