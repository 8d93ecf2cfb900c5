package server

import (
	"context"
	"time"

	"harnect/internal/config"
	"harnect/internal/models"
	"harnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByHandleForAuth(ctx context.Context, handle string) (*models.User, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Rename(ctx context.Context, id uint, newHandle string) error {
	args := m.Called(ctx, id, newHandle)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteGuest(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) StaleGuests(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) SearchByHandle(ctx context.Context, query string, limit int) ([]models.User, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) CountGuests(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockContentRepository is a mock of the ContentRepository interface
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockContentRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.ContentItem, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) ListFeed(ctx context.Context, kind string, limit, offset int, viewerID uint) ([]*models.ContentItem, error) {
	args := m.Called(ctx, kind, limit, offset, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.ContentItem, error) {
	args := m.Called(ctx, authorID, limit, offset, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) SearchByCaption(ctx context.Context, query string, limit int) ([]*models.ContentItem, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) DeleteCascade(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContentRepository) Orphaned(ctx context.Context) ([]*models.ContentItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContentItem), args.Error(1)
}

// MockEngagementRepository is a mock of the EngagementRepository interface
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) InsertLike(ctx context.Context, userID, contentID uint) (bool, error) {
	args := m.Called(ctx, userID, contentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) DeleteLike(ctx context.Context, userID, contentID uint) (bool, error) {
	args := m.Called(ctx, userID, contentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) CountLikes(ctx context.Context, contentID uint) (int64, error) {
	args := m.Called(ctx, contentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) IsLiked(ctx context.Context, userID, contentID uint) (bool, error) {
	args := m.Called(ctx, userID, contentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockEngagementRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockEngagementRepository) ListComments(ctx context.Context, contentID uint, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, contentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockEngagementRepository) DeleteComment(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) InsertEdge(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) DeleteEdge(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

// MockFeedbackRepository is a mock of the FeedbackRepository interface
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, entry *models.Feedback) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFeedbackRepository) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Update(ctx context.Context, entry *models.Feedback) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFeedbackRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFeedbackRepository) List(ctx context.Context, limit, offset int) ([]*models.Feedback, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Feedback), args.Error(1)
}

// testMocks bundles one mock per repository.
type testMocks struct {
	users      *MockUserRepository
	content    *MockContentRepository
	engagement *MockEngagementRepository
	follows    *MockFollowRepository
	feedback   *MockFeedbackRepository
}

// newTestServer assembles a Server whose services run on mock repositories.
func newTestServer() (*Server, *testMocks) {
	m := &testMocks{
		users:      new(MockUserRepository),
		content:    new(MockContentRepository),
		engagement: new(MockEngagementRepository),
		follows:    new(MockFollowRepository),
		feedback:   new(MockFeedbackRepository),
	}

	s := &Server{
		config:         &config.Config{JWTSecret: "test_secret"},
		userRepo:       m.users,
		contentRepo:    m.content,
		engagementRepo: m.engagement,
		followRepo:     m.follows,
		feedbackRepo:   m.feedback,
	}
	s.identityService = service.NewIdentityService(m.users)
	s.contentService = service.NewContentService(m.content, m.users, nil)
	s.engagementService = service.NewEngagementService(m.engagement, m.content)
	s.socialService = service.NewSocialService(m.follows, m.users)
	s.feedbackService = service.NewFeedbackService(m.feedback)
	s.searchService = service.NewSearchService(m.users, m.content)

	return s, m
}

// asUser simulates AuthRequired for a fixed caller.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}
