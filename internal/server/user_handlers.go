package server

import (
	"harnect/internal/models"
	"harnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.identityService.GetUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:handle — the public profile with
// follow counts, and the viewer's relation when authenticated.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	profile, err := s.socialService.GetProfile(c.UserContext(), c.Params("handle"), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/users/me. The bio and email fields are
// tri-state: absent leaves the value alone, empty clears it.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Bio        *string `json:"bio"`
		Email      *string `json:"email"`
		PictureRef string  `json:"picture_ref"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.identityService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:     currentUserID(c),
		Bio:        req.Bio,
		Email:      req.Email,
		PictureRef: req.PictureRef,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// RenameMe handles PUT /api/users/me/handle. The response carries a fresh
// token because the old one still names the previous handle.
func (s *Server) RenameMe(c *fiber.Ctx) error {
	var req struct {
		Handle string `json:"handle"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Handle == "" {
		return models.RespondWithError(c, models.NewValidationError("Handle is required"))
	}

	user, err := s.identityService.Rename(c.UserContext(), service.RenameInput{
		UserID:    currentUserID(c),
		NewHandle: req.Handle,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
