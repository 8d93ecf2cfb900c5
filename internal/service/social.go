package service

import (
	"context"

	"harnect/internal/models"
	"harnect/internal/observability"
	"harnect/internal/repository"
)

type SocialService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// FollowState is the outcome of a toggle: the caller's new relation to the
// followee and the followee's total.
type FollowState struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"follower_count"`
}

func NewSocialService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *SocialService {
	return &SocialService{followRepo: followRepo, userRepo: userRepo}
}

// ToggleFollow flips the follower's edge to the followee, identified by
// handle. Insert first, same as likes: a swallowed conflict means the edge
// existed and the toggle removes it.
func (s *SocialService) ToggleFollow(ctx context.Context, followeeHandle string, followerID uint) (*FollowState, error) {
	followee, err := s.userRepo.GetByHandle(ctx, followeeHandle)
	if err != nil {
		return nil, err
	}
	if followee == nil {
		return nil, models.NewNotFoundError("user", followeeHandle)
	}
	if followee.ID == followerID {
		return nil, models.NewSelfFollowError()
	}

	inserted, err := s.followRepo.InsertEdge(ctx, followerID, followee.ID)
	if err != nil {
		return nil, err
	}
	following := inserted
	if !inserted {
		if _, err := s.followRepo.DeleteEdge(ctx, followerID, followee.ID); err != nil {
			return nil, err
		}
		following = false
	}

	count, err := s.followRepo.CountFollowers(ctx, followee.ID)
	if err != nil {
		return nil, err
	}

	state := "unfollowed"
	if following {
		state = "followed"
	}
	observability.FollowToggles.WithLabelValues(state).Inc()
	return &FollowState{Following: following, FollowerCount: count}, nil
}

// GetProfile assembles a user's public profile with follow counts and,
// when a viewer is known, whether the viewer follows them.
func (s *SocialService) GetProfile(ctx context.Context, handle string, viewerID uint) (*models.Profile, error) {
	user, err := s.userRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user", handle)
	}

	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		User:           *user,
		FollowerCount:  followers,
		FollowingCount: following,
	}
	if viewerID != 0 && viewerID != user.ID {
		viewerFollows, err := s.followRepo.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		profile.Following = viewerFollows
	}
	return profile, nil
}

func (s *SocialService) IsFollowing(ctx context.Context, followerID uint, followeeHandle string) (bool, error) {
	followee, err := s.userRepo.GetByHandle(ctx, followeeHandle)
	if err != nil {
		return false, err
	}
	if followee == nil {
		return false, models.NewNotFoundError("user", followeeHandle)
	}
	return s.followRepo.IsFollowing(ctx, followerID, followee.ID)
}
