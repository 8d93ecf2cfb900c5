package service

import (
	"context"
	"fmt"
	"math/rand"

	"harnect/internal/models"
	"harnect/internal/observability"
	"harnect/internal/repository"
	"harnect/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// guestAttempts bounds the collision-retry loop for generated guest handles.
const guestAttempts = 20

type IdentityService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Handle   string
	Password string
	Email    string
}

type AuthenticateInput struct {
	Handle   string
	Password string
}

type RenameInput struct {
	UserID    uint
	NewHandle string
}

type UpdateProfileInput struct {
	UserID     uint
	Bio        *string
	Email      *string
	PictureRef string
}

func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateHandle(in.Handle); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Handle:       in.Handle,
		PasswordHash: string(hash),
	}
	if in.Email != "" {
		user.Email = &in.Email
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) Authenticate(ctx context.Context, in AuthenticateInput) (*models.User, error) {
	user, err := s.userRepo.GetByHandleForAuth(ctx, in.Handle)
	if err != nil {
		return nil, err
	}
	// Unknown handle and wrong password report identically.
	if user == nil || user.Guest {
		return nil, models.NewInvalidCredentialError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, models.NewInvalidCredentialError()
	}
	return user, nil
}

// CreateGuest registers an ephemeral account with a generated handle. The
// unique index is the arbiter: on collision we draw again.
func (s *IdentityService) CreateGuest(ctx context.Context) (*models.User, error) {
	for i := 0; i < guestAttempts; i++ {
		user := &models.User{
			Handle: fmt.Sprintf("%s%04d", validation.GuestHandlePrefix, rand.Intn(10000)),
			Guest:  true,
		}
		err := s.userRepo.Create(ctx, user)
		if err == nil {
			observability.GuestSessions.Inc()
			return user, nil
		}
		if models.HasCode(err, models.CodeDuplicateHandle) {
			continue
		}
		return nil, err
	}
	return nil, models.NewInternalError(fmt.Errorf("no free guest handle after %d attempts", guestAttempts))
}

func (s *IdentityService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *IdentityService) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	user, err := s.userRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user", handle)
	}
	return user, nil
}

// Rename changes the display handle. Content, likes, comments and follow
// edges key on the numeric ID, so nothing else moves.
func (s *IdentityService) Rename(ctx context.Context, in RenameInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.Guest {
		return nil, models.NewForbiddenError("guest accounts cannot be renamed")
	}
	if err := validation.ValidateHandle(in.NewHandle); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.userRepo.Rename(ctx, in.UserID, in.NewHandle); err != nil {
		return nil, err
	}
	user.Handle = in.NewHandle
	return user, nil
}

func (s *IdentityService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.Guest {
		return nil, models.NewForbiddenError("guest accounts cannot edit their profile")
	}

	const maxBioLen = 500

	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.Email != nil {
		if *in.Email == "" {
			user.Email = nil
		} else {
			if err := validation.ValidateEmail(*in.Email); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			user.Email = in.Email
		}
	}
	if in.PictureRef != "" {
		user.PictureRef = in.PictureRef
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteGuest destroys the account at logout when it is a guest; for a
// registered account it is a no-op. Content the guest leaves behind is
// reclaimed by the sweeper.
func (s *IdentityService) DeleteGuest(ctx context.Context, userID uint) (bool, error) {
	deleted, err := s.userRepo.DeleteGuest(ctx, userID)
	if err != nil {
		return false, err
	}
	if deleted {
		observability.GuestSessions.Dec()
	}
	return deleted, nil
}
