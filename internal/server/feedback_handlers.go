package server

import (
	"harnect/internal/models"
	"harnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateFeedback handles POST /api/feedback. Ownership is bound to the
// authenticated caller, never to a caller-supplied label.
func (s *Server) CreateFeedback(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	entry, err := s.feedbackService.Submit(c.UserContext(), service.SubmitFeedbackInput{
		AuthorID: currentUserID(c),
		Message:  req.Message,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UpdateFeedback handles PUT /api/feedback/:id
func (s *Server) UpdateFeedback(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	entry, err := s.feedbackService.Edit(c.UserContext(), service.EditFeedbackInput{
		ID:          id,
		RequesterID: currentUserID(c),
		Message:     req.Message,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(entry)
}

// DeleteFeedback handles DELETE /api/feedback/:id
func (s *Server) DeleteFeedback(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.feedbackService.Remove(c.UserContext(), id, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Feedback deleted"})
}

// ListFeedback handles GET /api/feedback — newest first.
func (s *Server) ListFeedback(c *fiber.Ctx) error {
	p := parsePagination(c, service.DefaultPageSize)
	entries, err := s.feedbackService.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(entries)
}
