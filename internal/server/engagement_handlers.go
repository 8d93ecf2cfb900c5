package server

import (
	"harnect/internal/models"
	"harnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/content/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, err := s.engagementService.ToggleLike(c.UserContext(), itemID, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(state)
}

// CreateComment handles POST /api/content/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engagementService.AddComment(c.UserContext(), service.AddCommentInput{
		ItemID:   itemID,
		AuthorID: currentUserID(c),
		Text:     req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/content/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.engagementService.RemoveComment(c.UserContext(), service.RemoveCommentInput{
		CommentID:   commentID,
		RequesterID: currentUserID(c),
	}); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// GetComments handles GET /api/content/:id/comments — oldest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	comments, err := s.engagementService.ListComments(c.UserContext(), itemID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}
