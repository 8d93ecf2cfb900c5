package server

import (
	"harnect/internal/models"
	"harnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Explore handles GET /api/explore?q=… — case-insensitive substring search
// over handles and captions. An empty query serves the recent-content page.
func (s *Server) Explore(c *fiber.Ctx) error {
	p := parsePagination(c, service.DefaultPageSize)
	result, err := s.searchService.Search(c.UserContext(), c.Query("q"), p.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(result)
}
