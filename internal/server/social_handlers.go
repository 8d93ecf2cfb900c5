package server

import (
	"harnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/users/:handle/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	state, err := s.socialService.ToggleFollow(c.UserContext(), c.Params("handle"), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(state)
}

// GetFollowStatus handles GET /api/users/:handle/follow
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	following, err := s.socialService.IsFollowing(c.UserContext(), currentUserID(c), c.Params("handle"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}
